package schema

import (
	"time"
)

// NFT represents the nfts table - the current-state projection of an NFT.
// Token fields are both null until the mint is confirmed.
type NFT struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Name is the display name
	Name string `gorm:"column:name;not null;type:text"`
	// Description is the optional long description
	Description *string `gorm:"column:description;type:text"`
	// ImageURL points to the artwork
	ImageURL *string `gorm:"column:image_url;type:text"`
	// CollectionID references an optional collection
	CollectionID *uint64 `gorm:"column:collection_id;type:bigint"`
	// TokenID is the on-chain token id as a base-10 string
	TokenID *string `gorm:"column:token_id;type:text;index:idx_nfts_contract_token,priority:2"`
	// ContractAddress is the lower-case address of the NFT contract
	ContractAddress *string `gorm:"column:contract_address;type:text;index:idx_nfts_contract_token,priority:1"`
	// OwnerID references the current holder
	OwnerID uint64 `gorm:"column:owner_id;not null;index"`
	// CreatorID references the original minter
	CreatorID uint64 `gorm:"column:creator_id;not null"`
	// IsForSale reports whether an active marketplace listing exists
	IsForSale bool `gorm:"column:is_for_sale;not null;default:false;index"`
	// Price is the listing price in native coin units
	Price *string `gorm:"column:price;type:numeric"`
	// RoyaltyPercent is fixed at creation
	RoyaltyPercent *string `gorm:"column:royalty_percent;type:numeric(5,2)"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the NFT model
func (NFT) TableName() string {
	return "nfts"
}

// IsMinted reports whether the on-chain token has been confirmed
func (n *NFT) IsMinted() bool {
	return n.TokenID != nil && n.ContractAddress != nil
}
