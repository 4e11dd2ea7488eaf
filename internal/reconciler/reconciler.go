package reconciler

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/feral-file/ff-marketplace-mirror/internal/domain"
	"github.com/feral-file/ff-marketplace-mirror/internal/logger"
	"github.com/feral-file/ff-marketplace-mirror/internal/marketplace"
	"github.com/feral-file/ff-marketplace-mirror/internal/metrics"
	"github.com/feral-file/ff-marketplace-mirror/internal/providers/ethereum"
	"github.com/feral-file/ff-marketplace-mirror/internal/store"
	"github.com/feral-file/ff-marketplace-mirror/internal/store/schema"
)

const (
	OperationConfirmMint       = "confirm_mint"
	OperationConfirmList       = "confirm_list"
	OperationConfirmUnlist     = "confirm_unlist"
	OperationConfirmPurchase   = "confirm_purchase"
	OperationSyncListingStatus = "sync_listing_status"
)

const (
	msgExpectedEventMissing = "receipt does not contain the expected event"
	msgEventMismatch        = "receipt does not match expected operation"
	msgTransactionFailed    = "transaction failed"
)

// Config holds reconciler configuration
type Config struct {
	// ChainID is the CAIP-2 id of the chain receipts are read from
	ChainID domain.Chain
	// MarketplaceAddress is the marketplace contract whose events are trusted
	MarketplaceAddress string
	// KeepListingOnTransientError makes SyncListingStatus return transient chain
	// failures instead of marking the NFT as unlisted. Bulk callers set it.
	KeepListingOnTransientError bool
}

// ListingStatus is the listing state mirrored by SyncListingStatus
type ListingStatus struct {
	IsListed bool    `json:"isListed"`
	Price    *string `json:"price,omitempty"`
}

// Reconciler verifies client-reported transactions against the chain and
// records them in the ledger and the NFT projection.
// A confirmation that was already recorded succeeds without changes.
//
//go:generate mockgen -source=reconciler.go -destination=../mocks/reconciler.go -package=mocks -mock_names=Reconciler=MockReconciler
type Reconciler interface {
	// ConfirmMint records the mint of a draft NFT to the caller's wallet
	ConfirmMint(ctx context.Context, nftID, callerUserID uint64, txHash string) error

	// ConfirmList records a marketplace listing by the owner at the given price (in ether)
	ConfirmList(ctx context.Context, nftID, callerUserID uint64, txHash, price string) error

	// ConfirmUnlist records the removal of a marketplace listing, keeping the last price
	ConfirmUnlist(ctx context.Context, nftID, callerUserID uint64, txHash string) error

	// ConfirmPurchase records a marketplace sale to the caller
	ConfirmPurchase(ctx context.Context, nftID, callerUserID uint64, txHash string) error

	// SyncListingStatus mirrors the marketplace listing read from the contract.
	// No ledger entry is written.
	SyncListingStatus(ctx context.Context, nftID, callerUserID uint64) (*ListingStatus, error)
}

type reconciler struct {
	config     Config
	chainID    int64
	chain      ethereum.ChainClient
	store      store.Store
	identities IdentityResolver
}

// NewReconciler creates a new reconciler
func NewReconciler(config Config, chain ethereum.ChainClient, store store.Store, identities IdentityResolver) (Reconciler, error) {
	chainID, err := config.ChainID.ID()
	if err != nil {
		return nil, fmt.Errorf("invalid chain id: %w", err)
	}
	if !domain.IsValidAddress(config.MarketplaceAddress) {
		return nil, fmt.Errorf("invalid marketplace address: %s", config.MarketplaceAddress)
	}
	config.MarketplaceAddress = domain.NormalizeAddress(config.MarketplaceAddress)

	return &reconciler{
		config:     config,
		chainID:    chainID,
		chain:      chain,
		store:      store,
		identities: identities,
	}, nil
}

// ConfirmMint records the mint of a draft NFT to the caller's wallet
func (r *reconciler) ConfirmMint(ctx context.Context, nftID, callerUserID uint64, txHash string) error {
	started := time.Now()
	result, err := r.confirmMint(ctx, nftID, callerUserID, txHash)
	r.finish(ctx, OperationConfirmMint, nftID, txHash, result, err, started)
	return err
}

func (r *reconciler) confirmMint(ctx context.Context, nftID, callerUserID uint64, txHash string) (string, error) {
	if err := validateTxHash(txHash); err != nil {
		return "", err
	}

	nft, err := r.loadNFT(ctx, nftID)
	if err != nil {
		return "", err
	}

	caller, err := r.identities.ResolveIdentity(ctx, callerUserID)
	if err != nil {
		return "", err
	}

	receipt, err := r.fetchReceipt(ctx, txHash)
	if err != nil {
		return "", err
	}

	// The minted token must land in the caller's wallet
	mint := marketplace.FindMintTransfer(receipt, caller.WalletAddress)
	if mint == nil {
		if hasMintTransfer(receipt) {
			return "", domain.NewError(domain.ErrorKindUnauthorized, "token was not minted to the caller's wallet")
		}
		return "", domain.NewError(domain.ErrorKindEventMismatch, msgExpectedEventMissing)
	}

	tokenID := mint.TokenID.String()
	if nft.IsMinted() {
		if sameToken(nft, mint.Contract, mint.TokenID) {
			return metrics.ResultNoop, nil
		}
		return "", domain.NewError(domain.ErrorKindPreconditionFailed, "NFT is already minted with a different token")
	}

	recorded, err := r.isRecorded(ctx, nftID, txHash, mint.LogIndex)
	if err != nil {
		return "", err
	}
	if recorded {
		return metrics.ResultNoop, nil
	}

	return r.apply(ctx, nftID, txHash, receipt, store.CreateNFTEventInput{
		EventType: domain.NFTEventTypeMint,
		ToAddress: &caller.WalletAddress,
		LogIndex:  mint.LogIndex,
		Raw:       rawEvent(mint),
	}, store.NFTProjectionUpdate{
		TokenID:         &tokenID,
		ContractAddress: &mint.Contract,
		OwnerID:         &caller.UserID,
	}, store.NFTPrecondition{Draft: true})
}

// ConfirmList records a marketplace listing by the owner at the given price
func (r *reconciler) ConfirmList(ctx context.Context, nftID, callerUserID uint64, txHash, price string) error {
	started := time.Now()
	result, err := r.confirmList(ctx, nftID, callerUserID, txHash, price)
	r.finish(ctx, OperationConfirmList, nftID, txHash, result, err, started)
	return err
}

func (r *reconciler) confirmList(ctx context.Context, nftID, callerUserID uint64, txHash, price string) (string, error) {
	if err := validateTxHash(txHash); err != nil {
		return "", err
	}
	priceWei, err := domain.ParseEther(strings.TrimSpace(price))
	if err != nil {
		return "", domain.WrapError(domain.ErrorKindInvalidInput, "invalid price", err)
	}
	if priceWei.Sign() <= 0 {
		return "", domain.NewError(domain.ErrorKindInvalidInput, "price must be positive")
	}

	nft, caller, err := r.loadOwnedMintedNFT(ctx, nftID, callerUserID, "listing")
	if err != nil {
		return "", err
	}

	receipt, err := r.fetchReceipt(ctx, txHash)
	if err != nil {
		return "", err
	}

	listed := marketplace.DecodeListed(receipt, r.config.MarketplaceAddress)
	if listed == nil {
		return "", domain.NewError(domain.ErrorKindEventMismatch, msgExpectedEventMissing)
	}
	if !sameToken(nft, listed.NFT, listed.TokenID) || !domain.SameAddress(listed.Seller, caller.WalletAddress) {
		return "", domain.NewError(domain.ErrorKindEventMismatch, msgEventMismatch)
	}

	recorded, err := r.isRecorded(ctx, nftID, txHash, listed.LogIndex)
	if err != nil {
		return "", err
	}
	if recorded {
		return metrics.ResultNoop, nil
	}

	// The projection mirrors the caller's price; the emitted price is kept in raw
	isForSale := true
	projectedPrice := domain.FormatEther(priceWei)
	return r.apply(ctx, nftID, txHash, receipt, store.CreateNFTEventInput{
		EventType:   domain.NFTEventTypeListed,
		FromAddress: &caller.WalletAddress,
		PriceWei:    domain.WeiString(priceWei),
		LogIndex:    listed.LogIndex,
		Raw:         rawEvent(listed),
	}, store.NFTProjectionUpdate{
		IsForSale: &isForSale,
		Price:     &projectedPrice,
	}, store.NFTPrecondition{OwnerID: &nft.OwnerID})
}

// ConfirmUnlist records the removal of a marketplace listing
func (r *reconciler) ConfirmUnlist(ctx context.Context, nftID, callerUserID uint64, txHash string) error {
	started := time.Now()
	result, err := r.confirmUnlist(ctx, nftID, callerUserID, txHash)
	r.finish(ctx, OperationConfirmUnlist, nftID, txHash, result, err, started)
	return err
}

func (r *reconciler) confirmUnlist(ctx context.Context, nftID, callerUserID uint64, txHash string) (string, error) {
	if err := validateTxHash(txHash); err != nil {
		return "", err
	}

	nft, caller, err := r.loadOwnedMintedNFT(ctx, nftID, callerUserID, "unlisting")
	if err != nil {
		return "", err
	}

	receipt, err := r.fetchReceipt(ctx, txHash)
	if err != nil {
		return "", err
	}

	unlisted := marketplace.DecodeUnlisted(receipt, r.config.MarketplaceAddress)
	if unlisted == nil {
		return "", domain.NewError(domain.ErrorKindEventMismatch, msgExpectedEventMissing)
	}
	if !sameToken(nft, unlisted.NFT, unlisted.TokenID) || !domain.SameAddress(unlisted.Seller, caller.WalletAddress) {
		return "", domain.NewError(domain.ErrorKindEventMismatch, msgEventMismatch)
	}

	recorded, err := r.isRecorded(ctx, nftID, txHash, unlisted.LogIndex)
	if err != nil {
		return "", err
	}
	if recorded {
		return metrics.ResultNoop, nil
	}

	// Price stays so the NFT can be relisted at the same price
	isForSale := false
	return r.apply(ctx, nftID, txHash, receipt, store.CreateNFTEventInput{
		EventType:   domain.NFTEventTypeUnlisted,
		FromAddress: &caller.WalletAddress,
		LogIndex:    unlisted.LogIndex,
		Raw:         rawEvent(unlisted),
	}, store.NFTProjectionUpdate{
		IsForSale: &isForSale,
	}, store.NFTPrecondition{OwnerID: &nft.OwnerID})
}

// ConfirmPurchase records a marketplace sale to the caller
func (r *reconciler) ConfirmPurchase(ctx context.Context, nftID, callerUserID uint64, txHash string) error {
	started := time.Now()
	result, err := r.confirmPurchase(ctx, nftID, callerUserID, txHash)
	r.finish(ctx, OperationConfirmPurchase, nftID, txHash, result, err, started)
	return err
}

func (r *reconciler) confirmPurchase(ctx context.Context, nftID, callerUserID uint64, txHash string) (string, error) {
	if err := validateTxHash(txHash); err != nil {
		return "", err
	}

	nft, err := r.loadNFT(ctx, nftID)
	if err != nil {
		return "", err
	}
	if !nft.IsMinted() {
		return "", domain.NewError(domain.ErrorKindPreconditionFailed, "NFT must be minted before purchase can be confirmed")
	}

	buyer, err := r.identities.ResolveIdentity(ctx, callerUserID)
	if err != nil {
		return "", err
	}
	if buyer.WalletAddress == "" {
		return "", domain.NewError(domain.ErrorKindPreconditionFailed, "buyer has no wallet address")
	}

	receipt, err := r.fetchReceipt(ctx, txHash)
	if err != nil {
		return "", err
	}

	purchased := marketplace.DecodePurchased(receipt, r.config.MarketplaceAddress)
	if purchased == nil {
		return "", domain.NewError(domain.ErrorKindEventMismatch, msgExpectedEventMissing)
	}
	if !sameToken(nft, purchased.NFT, purchased.TokenID) || !domain.SameAddress(purchased.Buyer, buyer.WalletAddress) {
		return "", domain.NewError(domain.ErrorKindEventMismatch, msgEventMismatch)
	}

	// A retry after success sees the buyer as owner, so the ledger is consulted before the seller check
	recorded, err := r.isRecorded(ctx, nftID, txHash, purchased.LogIndex)
	if err != nil {
		return "", err
	}
	if recorded {
		return metrics.ResultNoop, nil
	}

	owner, err := r.identities.ResolveIdentity(ctx, nft.OwnerID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve current owner: %w", err)
	}
	if !domain.SameAddress(owner.WalletAddress, purchased.Seller) {
		return "", domain.NewError(domain.ErrorKindDataIntegrityConflict, "purchase seller does not match the recorded owner")
	}

	var royaltyReceiver *string
	if !domain.IsZeroAddress(purchased.RoyaltyReceiver) {
		royaltyReceiver = &purchased.RoyaltyReceiver
	}

	isForSale := false
	return r.apply(ctx, nftID, txHash, receipt, store.CreateNFTEventInput{
		EventType:        domain.NFTEventTypeTransfer,
		FromAddress:      &purchased.Seller,
		ToAddress:        &purchased.Buyer,
		PriceWei:         domain.WeiString(purchased.Price),
		PlatformFeeWei:   domain.WeiString(purchased.PlatformFee),
		RoyaltyAmountWei: domain.WeiString(purchased.RoyaltyAmount),
		RoyaltyReceiver:  royaltyReceiver,
		LogIndex:         purchased.LogIndex,
		Raw:              rawEvent(purchased),
	}, store.NFTProjectionUpdate{
		OwnerID:   &buyer.UserID,
		IsForSale: &isForSale,
	}, store.NFTPrecondition{OwnerID: &nft.OwnerID})
}

// SyncListingStatus mirrors the marketplace listing read from the contract
func (r *reconciler) SyncListingStatus(ctx context.Context, nftID, callerUserID uint64) (*ListingStatus, error) {
	started := time.Now()
	status, err := r.syncListingStatus(ctx, nftID, callerUserID)
	result := ""
	if err == nil {
		result = metrics.ResultApplied
	}
	r.finish(ctx, OperationSyncListingStatus, nftID, "", result, err, started)
	return status, err
}

func (r *reconciler) syncListingStatus(ctx context.Context, nftID, callerUserID uint64) (*ListingStatus, error) {
	nft, caller, err := r.loadOwnedMintedNFT(ctx, nftID, callerUserID, "listing sync")
	if err != nil {
		return nil, err
	}

	listing, err := r.chain.GetListing(ctx, r.config.MarketplaceAddress, *nft.ContractAddress, *nft.TokenID)
	if err != nil && r.config.KeepListingOnTransientError && domain.KindOf(err) == domain.ErrorKindTransient {
		return nil, err
	}
	if err != nil {
		logger.WarnCtx(ctx, "Failed to read listing, treating NFT as unlisted",
			zap.Uint64("nft_id", nftID),
			zap.Error(err))
	}

	if err != nil || listing == nil || !listing.IsActive {
		if err := r.store.UpdateNFTListing(ctx, store.UpdateNFTListingInput{
			NFTID:     nftID,
			IsForSale: false,
		}); err != nil {
			return nil, fmt.Errorf("failed to update nft listing: %w", err)
		}
		return &ListingStatus{IsListed: false, Price: nft.Price}, nil
	}

	if !domain.SameAddress(listing.Seller, caller.WalletAddress) {
		return nil, domain.NewError(domain.ErrorKindDataIntegrityConflict, "NFT is listed by a different seller")
	}

	price := domain.FormatEther(listing.Price)
	if err := r.store.UpdateNFTListing(ctx, store.UpdateNFTListingInput{
		NFTID:     nftID,
		IsForSale: true,
		Price:     &price,
	}); err != nil {
		return nil, fmt.Errorf("failed to update nft listing: %w", err)
	}

	return &ListingStatus{IsListed: true, Price: &price}, nil
}

// =============================================================================
// Shared steps
// =============================================================================

func validateTxHash(txHash string) error {
	if !domain.IsValidTxHash(txHash) {
		return domain.NewError(domain.ErrorKindInvalidInput, fmt.Sprintf("invalid transaction hash: %s", txHash))
	}
	return nil
}

func (r *reconciler) loadNFT(ctx context.Context, nftID uint64) (*schema.NFT, error) {
	nft, err := r.store.GetNFTByID(ctx, nftID)
	if err != nil {
		return nil, fmt.Errorf("failed to get nft: %w", err)
	}
	if nft == nil {
		return nil, domain.NewError(domain.ErrorKindNotFound, "NFT not found")
	}
	return nft, nil
}

// loadOwnedMintedNFT loads an NFT that must be minted and owned by the caller
func (r *reconciler) loadOwnedMintedNFT(ctx context.Context, nftID, callerUserID uint64, action string) (*schema.NFT, *Identity, error) {
	nft, err := r.loadNFT(ctx, nftID)
	if err != nil {
		return nil, nil, err
	}
	if !nft.IsMinted() {
		return nil, nil, domain.NewError(domain.ErrorKindPreconditionFailed, fmt.Sprintf("NFT must be minted before %s", action))
	}
	if nft.OwnerID != callerUserID {
		return nil, nil, domain.NewError(domain.ErrorKindUnauthorized, fmt.Sprintf("only the owner can confirm %s", action))
	}

	caller, err := r.identities.ResolveIdentity(ctx, callerUserID)
	if err != nil {
		return nil, nil, err
	}

	return nft, caller, nil
}

// fetchReceipt returns the receipt of a successful transaction
func (r *reconciler) fetchReceipt(ctx context.Context, txHash string) (*types.Receipt, error) {
	receipt, err := r.chain.GetReceipt(ctx, txHash)
	if err != nil {
		return nil, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, domain.NewError(domain.ErrorKindReceiptInvalid, msgTransactionFailed)
	}
	return receipt, nil
}

// isRecorded reports whether the ledger already holds the entry for this NFT.
// An entry recorded for another NFT means the transaction is being replayed against the wrong record.
func (r *reconciler) isRecorded(ctx context.Context, nftID uint64, txHash string, logIndex uint) (bool, error) {
	event, err := r.store.GetNFTEventByTxHashAndLogIndex(ctx, txHash, logIndex)
	if err != nil {
		return false, fmt.Errorf("failed to get nft event: %w", err)
	}
	if event == nil {
		return false, nil
	}
	if event.NFTID != nftID {
		return false, domain.NewError(domain.ErrorKindDataIntegrityConflict, "transaction is already recorded for another NFT")
	}
	return true, nil
}

// apply completes the ledger entry with block data and writes it together with the projection change.
// expect is the projection state the operation was verified against.
func (r *reconciler) apply(
	ctx context.Context,
	nftID uint64,
	txHash string,
	receipt *types.Receipt,
	event store.CreateNFTEventInput,
	projection store.NFTProjectionUpdate,
	expect store.NFTPrecondition,
) (string, error) {
	var blockNumber uint64
	if receipt.BlockNumber != nil {
		blockNumber = receipt.BlockNumber.Uint64()
	}

	blockTimestamp, err := r.chain.GetBlockTimestamp(ctx, blockNumber)
	if err != nil {
		return "", err
	}

	event.TxHash = domain.NormalizeTxHash(txHash)
	event.BlockNumber = blockNumber
	event.BlockTimestamp = blockTimestamp
	event.ChainID = r.chainID

	applied, err := r.store.ApplyNFTEvent(ctx, store.ApplyNFTEventInput{
		NFTID:      nftID,
		Event:      event,
		Projection: projection,
		Expect:     expect,
	})
	if err != nil {
		if domain.KindOf(err) != "" {
			return "", err
		}
		return "", fmt.Errorf("failed to apply nft event: %w", err)
	}

	// Lost the race against a concurrent confirmation of the same entry
	if !applied {
		return metrics.ResultNoop, nil
	}
	return metrics.ResultApplied, nil
}

// finish records metrics and logs the outcome of an operation
func (r *reconciler) finish(ctx context.Context, operation string, nftID uint64, txHash string, result string, err error, started time.Time) {
	fields := []zap.Field{
		zap.String("operation", operation),
		zap.Uint64("nft_id", nftID),
	}
	if txHash != "" {
		fields = append(fields, zap.String("tx_hash", txHash))
	}

	if err != nil {
		kind := domain.KindOf(err)
		metrics.ObserveReconcile(operation, strings.ToLower(string(kind)), started)
		if kind == "" {
			logger.ErrorCtx(ctx, err, fields...)
			return
		}
		logger.WarnCtx(ctx, "Reconciliation rejected", append(fields, zap.String("kind", string(kind)), zap.Error(err))...)
		return
	}

	metrics.ObserveReconcile(operation, result, started)
	if result == metrics.ResultNoop {
		logger.DebugCtx(ctx, "Reconciliation already recorded", fields...)
		return
	}
	logger.InfoCtx(ctx, "Reconciliation applied", fields...)
}

func hasMintTransfer(receipt *types.Receipt) bool {
	for _, transfer := range marketplace.DecodeTransfers(receipt, "") {
		if domain.IsZeroAddress(transfer.From) {
			return true
		}
	}
	return false
}

// sameToken reports whether an on-chain contract and token id refer to the NFT
func sameToken(nft *schema.NFT, contract string, tokenID *big.Int) bool {
	if !nft.IsMinted() || tokenID == nil {
		return false
	}
	if !domain.SameAddress(*nft.ContractAddress, contract) {
		return false
	}
	stored, ok := new(big.Int).SetString(*nft.TokenID, 10)
	return ok && stored.Cmp(tokenID) == 0
}

func rawEvent(v interface{}) datatypes.JSON {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(data)
}
