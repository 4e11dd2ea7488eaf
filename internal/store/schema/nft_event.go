package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/feral-file/ff-marketplace-mirror/internal/domain"
)

// NFTEvent represents the nft_events table - the append-only ledger of confirmed on-chain events.
// Rows are never updated or deleted.
type NFTEvent struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// NFTID references the NFT this event relates to
	NFTID uint64 `gorm:"column:nft_id;not null;index"`
	// EventType is one of MINT, LISTED, UNLISTED, TRANSFER
	EventType domain.NFTEventType `gorm:"column:event_type;not null;type:text;index"`
	// FromAddress is the sender or seller (nil for mints)
	FromAddress *string `gorm:"column:from_address;type:text;index"`
	// ToAddress is the recipient or buyer (nil for listing changes)
	ToAddress *string `gorm:"column:to_address;type:text;index"`
	// PriceWei is the price in wei as a base-10 string
	PriceWei *string `gorm:"column:price_wei;type:numeric(78,0)"`
	// PlatformFeeWei is the marketplace fee of a sale
	PlatformFeeWei *string `gorm:"column:platform_fee_wei;type:numeric(78,0)"`
	// RoyaltyAmountWei is the royalty paid on a sale
	RoyaltyAmountWei *string `gorm:"column:royalty_amount_wei;type:numeric(78,0)"`
	// RoyaltyReceiver is the royalty recipient of a sale
	RoyaltyReceiver *string `gorm:"column:royalty_receiver;type:text"`
	// TxHash is the transaction that emitted the event
	TxHash string `gorm:"column:tx_hash;not null;type:text;uniqueIndex:idx_nft_events_tx_hash_log_index,priority:1"`
	// LogIndex is the position of the identifying log within its block
	LogIndex uint `gorm:"column:log_index;not null;type:integer;uniqueIndex:idx_nft_events_tx_hash_log_index,priority:2"`
	// BlockNumber is the block the transaction was mined in
	BlockNumber uint64 `gorm:"column:block_number;not null;type:bigint"`
	// BlockTimestamp is the timestamp of that block
	BlockTimestamp time.Time `gorm:"column:block_timestamp;not null;type:timestamptz"`
	// ChainID is the EIP-155 chain id the event was observed on
	ChainID int64 `gorm:"column:chain_id;not null;type:bigint"`
	// Raw is the decoded event as observed on chain
	Raw datatypes.JSON `gorm:"column:raw;type:jsonb"`
	// CreatedAt is the timestamp when this record was written
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the NFTEvent model
func (NFTEvent) TableName() string {
	return "nft_events"
}
