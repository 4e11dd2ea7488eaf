package store

import (
	"context"
	"time"

	"gorm.io/datatypes"

	"github.com/feral-file/ff-marketplace-mirror/internal/domain"
	"github.com/feral-file/ff-marketplace-mirror/internal/store/schema"
)

// CreateUserInput represents the input for creating a user
type CreateUserInput struct {
	WalletAddress string
	Username      *string
	Role          domain.UserRole
}

// CreateNFTInput represents the input for creating a draft NFT
type CreateNFTInput struct {
	Name           string
	Description    *string
	ImageURL       *string
	CollectionID   *uint64
	CreatorID      uint64
	RoyaltyPercent *string
}

// CreateNFTEventInput represents a ledger entry to append
type CreateNFTEventInput struct {
	EventType        domain.NFTEventType
	FromAddress      *string
	ToAddress        *string
	PriceWei         *string
	PlatformFeeWei   *string
	RoyaltyAmountWei *string
	RoyaltyReceiver  *string
	TxHash           string
	LogIndex         uint
	BlockNumber      uint64
	BlockTimestamp   time.Time
	ChainID          int64
	Raw              datatypes.JSON
}

// NFTProjectionUpdate lists the projection fields to change. Nil fields are left untouched.
type NFTProjectionUpdate struct {
	TokenID         *string
	ContractAddress *string
	OwnerID         *uint64
	IsForSale       *bool
	Price           *string
}

// NFTPrecondition is the projection state a change was verified against.
// It is checked again once the NFT row is locked.
type NFTPrecondition struct {
	// Draft requires the NFT to have no token yet
	Draft bool
	// OwnerID requires the NFT to be owned by this user when non-nil
	OwnerID *uint64
}

// ApplyNFTEventInput pairs a ledger entry with the projection change it causes
type ApplyNFTEventInput struct {
	NFTID      uint64
	Event      CreateNFTEventInput
	Projection NFTProjectionUpdate
	Expect     NFTPrecondition
}

// UpdateNFTListingInput represents a listing change that is not backed by a ledger entry
type UpdateNFTListingInput struct {
	NFTID     uint64
	IsForSale bool
	// Price replaces the stored price when non-nil
	Price *string
}

// NFTEventFilter represents the filter for ledger queries
type NFTEventFilter struct {
	NFTID     *uint64
	Address   *string
	EventType *domain.NFTEventType
	Limit     int
	Offset    uint64
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// GetUserByID retrieves a user by ID, nil if not found
	GetUserByID(ctx context.Context, id uint64) (*schema.User, error)
	// CreateUser creates a user
	CreateUser(ctx context.Context, input CreateUserInput) (*schema.User, error)

	// GetNFTByID retrieves an NFT by ID, nil if not found
	GetNFTByID(ctx context.Context, id uint64) (*schema.NFT, error)
	// CreateNFT creates a draft NFT owned by its creator
	CreateNFT(ctx context.Context, input CreateNFTInput) (*schema.NFT, error)
	// GetListedNFTs retrieves NFTs currently marked for sale with ID greater than afterID, ordered by ID
	GetListedNFTs(ctx context.Context, afterID uint64, limit int) ([]schema.NFT, error)
	// UpdateNFTListing sets the listing flag and optionally the price of an NFT
	UpdateNFTListing(ctx context.Context, input UpdateNFTListingInput) error

	// ApplyNFTEvent appends a ledger entry and applies its projection change in a single transaction.
	// It returns false without touching the projection when the (tx_hash, log_index) entry already exists
	// for the NFT, and a PreconditionFailed error when the NFT no longer matches input.Expect.
	ApplyNFTEvent(ctx context.Context, input ApplyNFTEventInput) (bool, error)
	// GetNFTEventByTxHashAndLogIndex retrieves a ledger entry by its idempotency key, nil if not found
	GetNFTEventByTxHashAndLogIndex(ctx context.Context, txHash string, logIndex uint) (*schema.NFTEvent, error)
	// GetNFTEvents retrieves ledger entries newest first, with the total count matching the filter
	GetNFTEvents(ctx context.Context, filter NFTEventFilter) ([]schema.NFTEvent, uint64, error)
	// GetPlatformRevenueWei sums the platform fees of all sales in wei
	GetPlatformRevenueWei(ctx context.Context) (string, error)

	// GetKeyValue retrieves a value by key, empty if not found
	GetKeyValue(ctx context.Context, key string) (string, error)
	// SetKeyValue stores a value by key
	SetKeyValue(ctx context.Context, key string, value string) error
}
