package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-marketplace-mirror/internal/domain"
	"github.com/feral-file/ff-marketplace-mirror/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool of the underlying *sql.DB.
// Zero values fall back to the defaults of NormalizeConnectionPoolSettings.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// =============================================================================
// Users
// =============================================================================

// GetUserByID retrieves a user by ID
func (s *pgStore) GetUserByID(ctx context.Context, id uint64) (*schema.User, error) {
	var user schema.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// CreateUser creates a user with a normalized wallet address
func (s *pgStore) CreateUser(ctx context.Context, input CreateUserInput) (*schema.User, error) {
	role := input.Role
	if role == "" {
		role = domain.UserRoleUser
	}

	user := schema.User{
		WalletAddress: domain.NormalizeAddress(input.WalletAddress),
		Username:      input.Username,
		Role:          role,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// =============================================================================
// NFTs
// =============================================================================

// GetNFTByID retrieves an NFT by ID
func (s *pgStore) GetNFTByID(ctx context.Context, id uint64) (*schema.NFT, error) {
	var nft schema.NFT
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&nft).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get nft: %w", err)
	}
	return &nft, nil
}

// CreateNFT creates a draft NFT; the creator is the initial owner
func (s *pgStore) CreateNFT(ctx context.Context, input CreateNFTInput) (*schema.NFT, error) {
	nft := schema.NFT{
		Name:           input.Name,
		Description:    input.Description,
		ImageURL:       input.ImageURL,
		CollectionID:   input.CollectionID,
		OwnerID:        input.CreatorID,
		CreatorID:      input.CreatorID,
		RoyaltyPercent: input.RoyaltyPercent,
	}
	if err := s.db.WithContext(ctx).Create(&nft).Error; err != nil {
		return nil, fmt.Errorf("failed to create nft: %w", err)
	}
	return &nft, nil
}

// GetListedNFTs retrieves a page of NFTs currently marked for sale
func (s *pgStore) GetListedNFTs(ctx context.Context, afterID uint64, limit int) ([]schema.NFT, error) {
	var nfts []schema.NFT
	err := s.db.WithContext(ctx).
		Where("is_for_sale = ? AND id > ?", true, afterID).
		Order("id ASC").
		Limit(limit).
		Find(&nfts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get listed nfts: %w", err)
	}
	return nfts, nil
}

// UpdateNFTListing sets the listing flag and optionally the price of an NFT
func (s *pgStore) UpdateNFTListing(ctx context.Context, input UpdateNFTListingInput) error {
	updates := map[string]interface{}{
		"is_for_sale": input.IsForSale,
		"updated_at":  time.Now(),
	}
	if input.Price != nil {
		updates["price"] = *input.Price
	}

	result := s.db.WithContext(ctx).
		Model(&schema.NFT{}).
		Where("id = ?", input.NFTID).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update nft listing: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewError(domain.ErrorKindNotFound, "NFT not found")
	}
	return nil
}

// =============================================================================
// Ledger
// =============================================================================

// ApplyNFTEvent appends a ledger entry and applies the projection change atomically
func (s *pgStore) ApplyNFTEvent(ctx context.Context, input ApplyNFTEventInput) (bool, error) {
	if err := validateWeiAmounts(input.Event); err != nil {
		return false, err
	}

	applied := false

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock the projection row so operations on the same NFT serialize
		var nft schema.NFT
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", input.NFTID).
			First(&nft).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewError(domain.ErrorKindNotFound, "NFT not found")
			}
			return fmt.Errorf("failed to lock nft: %w", err)
		}

		// 2. A replay of an entry already recorded for this NFT is a no-op
		var existing schema.NFTEvent
		err := tx.Where("tx_hash = ? AND log_index = ?", domain.NormalizeTxHash(input.Event.TxHash), input.Event.LogIndex).
			Limit(1).
			Find(&existing).Error
		if err != nil {
			return fmt.Errorf("failed to get nft event: %w", err)
		}
		if existing.ID != 0 {
			if existing.NFTID != input.NFTID {
				return domain.NewError(domain.ErrorKindDataIntegrityConflict, "transaction is already recorded for another NFT")
			}
			return nil
		}

		// 3. The state the caller verified must still hold
		if err := checkPrecondition(&nft, input.Expect); err != nil {
			return err
		}

		// 4. Append the ledger entry, skipping duplicates of (tx_hash, log_index)
		event := schema.NFTEvent{
			NFTID:            input.NFTID,
			EventType:        input.Event.EventType,
			FromAddress:      normalizeAddressPtr(input.Event.FromAddress),
			ToAddress:        normalizeAddressPtr(input.Event.ToAddress),
			PriceWei:         input.Event.PriceWei,
			PlatformFeeWei:   input.Event.PlatformFeeWei,
			RoyaltyAmountWei: input.Event.RoyaltyAmountWei,
			RoyaltyReceiver:  normalizeAddressPtr(input.Event.RoyaltyReceiver),
			TxHash:           domain.NormalizeTxHash(input.Event.TxHash),
			LogIndex:         input.Event.LogIndex,
			BlockNumber:      input.Event.BlockNumber,
			BlockTimestamp:   input.Event.BlockTimestamp,
			ChainID:          input.Event.ChainID,
			Raw:              input.Event.Raw,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tx_hash"}, {Name: "log_index"}},
			DoNothing: true,
		}).Clauses(clause.Returning{Columns: []clause.Column{}}).
			Create(&event).Error; err != nil {
			return fmt.Errorf("failed to create nft event: %w", err)
		}

		// The entry already existed: another request recorded it first
		if event.ID == 0 {
			return nil
		}

		// 5. Apply the projection change
		updates := projectionUpdates(&nft, input.Projection)
		if err := tx.Model(&schema.NFT{}).
			Where("id = ?", input.NFTID).
			Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update nft: %w", err)
		}

		applied = true
		return nil
	})
	if err != nil {
		return false, err
	}

	return applied, nil
}

func validateWeiAmounts(event CreateNFTEventInput) error {
	amounts := map[string]*string{
		"price_wei":          event.PriceWei,
		"platform_fee_wei":   event.PlatformFeeWei,
		"royalty_amount_wei": event.RoyaltyAmountWei,
	}
	for column, amount := range amounts {
		if amount != nil && !domain.IsValidWei(*amount) {
			return domain.NewError(domain.ErrorKindInvalidInput, fmt.Sprintf("%s is not a wei amount: %q", column, *amount))
		}
	}
	return nil
}

func checkPrecondition(nft *schema.NFT, expect NFTPrecondition) error {
	if expect.Draft && nft.IsMinted() {
		return domain.NewError(domain.ErrorKindPreconditionFailed, "NFT was minted by a concurrent confirmation")
	}
	if expect.OwnerID != nil && nft.OwnerID != *expect.OwnerID {
		return domain.NewError(domain.ErrorKindPreconditionFailed, "NFT owner changed by a concurrent confirmation")
	}
	return nil
}

// projectionUpdates builds the column updates for a projection change.
// A change of owner always clears the listing flag.
func projectionUpdates(current *schema.NFT, p NFTProjectionUpdate) map[string]interface{} {
	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if p.TokenID != nil {
		updates["token_id"] = *p.TokenID
	}
	if p.ContractAddress != nil {
		updates["contract_address"] = domain.NormalizeAddress(*p.ContractAddress)
	}
	if p.IsForSale != nil {
		updates["is_for_sale"] = *p.IsForSale
	}
	if p.Price != nil {
		updates["price"] = *p.Price
	}
	if p.OwnerID != nil {
		updates["owner_id"] = *p.OwnerID
		if *p.OwnerID != current.OwnerID {
			updates["is_for_sale"] = false
		}
	}
	return updates
}

func normalizeAddressPtr(address *string) *string {
	if address == nil {
		return nil
	}
	normalized := domain.NormalizeAddress(*address)
	return &normalized
}

// GetNFTEventByTxHashAndLogIndex retrieves a ledger entry by its idempotency key
func (s *pgStore) GetNFTEventByTxHashAndLogIndex(ctx context.Context, txHash string, logIndex uint) (*schema.NFTEvent, error) {
	var event schema.NFTEvent
	err := s.db.WithContext(ctx).
		Where("tx_hash = ? AND log_index = ?", domain.NormalizeTxHash(txHash), logIndex).
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get nft event: %w", err)
	}
	return &event, nil
}

// GetNFTEvents retrieves ledger entries newest first
func (s *pgStore) GetNFTEvents(ctx context.Context, filter NFTEventFilter) ([]schema.NFTEvent, uint64, error) {
	if filter.Offset > math.MaxInt64 {
		return nil, 0, domain.NewError(domain.ErrorKindInvalidInput, "offset out of range")
	}

	query := s.db.WithContext(ctx).Model(&schema.NFTEvent{})

	if filter.NFTID != nil {
		query = query.Where("nft_id = ?", *filter.NFTID)
	}
	if filter.Address != nil {
		address := domain.NormalizeAddress(*filter.Address)
		query = query.Where("(from_address = ? OR to_address = ?)", address, address)
	}
	if filter.EventType != nil {
		query = query.Where("event_type = ?", *filter.EventType)
	}

	// Count total
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count nft events: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = domain.DEFAULT_PAGE_LIMIT
	}
	if limit > domain.MAX_PAGE_LIMIT {
		limit = domain.MAX_PAGE_LIMIT
	}

	var events []schema.NFTEvent
	err := query.
		Order("block_number DESC, log_index DESC").
		Limit(limit).
		Offset(int(filter.Offset)). //nolint:gosec,G115
		Find(&events).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get nft events: %w", err)
	}

	return events, uint64(total), nil //nolint:gosec,G115
}

// GetPlatformRevenueWei sums platform fees over all sales.
// Sales recorded without a fee count DEFAULT_PLATFORM_FEE_BPS of their price.
func (s *pgStore) GetPlatformRevenueWei(ctx context.Context) (string, error) {
	var revenue string
	err := s.db.WithContext(ctx).
		Model(&schema.NFTEvent{}).
		Select("COALESCE(SUM(COALESCE(platform_fee_wei, div(price_wei * ?, 10000))), 0)::text", domain.DEFAULT_PLATFORM_FEE_BPS).
		Where("event_type = ?", domain.NFTEventTypeTransfer).
		Scan(&revenue).Error
	if err != nil {
		return "", fmt.Errorf("failed to get platform revenue: %w", err)
	}
	return revenue, nil
}

// =============================================================================
// Key-value store
// =============================================================================

// SetKeyValue stores a value by key
func (s *pgStore) SetKeyValue(ctx context.Context, key string, value string) error {
	kv := schema.KeyValueStore{
		Key:   key,
		Value: value,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&kv).Error
	if err != nil {
		return fmt.Errorf("failed to set key-value: %w", err)
	}

	return nil
}

// GetKeyValue retrieves a value by key
func (s *pgStore) GetKeyValue(ctx context.Context, key string) (string, error) {
	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get key-value: %w", err)
	}

	return kv.Value, nil
}
