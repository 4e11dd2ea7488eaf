package rest

import (
	"errors"
	"fmt"
	"math/big"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ff-marketplace-mirror/internal/api/middleware"
	"github.com/feral-file/ff-marketplace-mirror/internal/api/rest/dto"
	"github.com/feral-file/ff-marketplace-mirror/internal/domain"
	"github.com/feral-file/ff-marketplace-mirror/internal/logger"
	"github.com/feral-file/ff-marketplace-mirror/internal/reconciler"
	"github.com/feral-file/ff-marketplace-mirror/internal/store"
)

// Handler defines the interface for REST API handlers
type Handler interface {
	// ConfirmMint records the mint transaction of a draft NFT
	// POST /api/v1/nfts/:id/confirm-mint
	ConfirmMint(c *gin.Context)

	// ConfirmList records a marketplace listing
	// POST /api/v1/nfts/:id/list
	ConfirmList(c *gin.Context)

	// ConfirmUnlist records a marketplace unlisting
	// POST /api/v1/nfts/:id/unlist
	ConfirmUnlist(c *gin.Context)

	// ConfirmPurchase records a marketplace sale to the caller
	// POST /api/v1/nfts/:id/confirm-purchase
	ConfirmPurchase(c *gin.Context)

	// SyncListing mirrors the listing state read from the marketplace contract
	// POST /api/v1/nfts/:id/sync-listing
	SyncListing(c *gin.Context)

	// GetNFTEvents retrieves the ledger of an NFT, newest first
	// GET /api/v1/nfts/:id/events?event_type=<type>&limit=<limit>&offset=<offset>
	GetNFTEvents(c *gin.Context)

	// GetEventsByAddress retrieves ledger entries where the address is sender or recipient
	// GET /api/v1/events/address/:address?limit=<limit>&offset=<offset>
	GetEventsByAddress(c *gin.Context)

	// GetEventsByType retrieves ledger entries of one type
	// GET /api/v1/events/type/:event_type?limit=<limit>&offset=<offset>
	GetEventsByType(c *gin.Context)

	// GetPlatformRevenue sums marketplace fees over all recorded sales (admin only)
	// GET /api/v1/stats/platform-revenue
	GetPlatformRevenue(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	reconciler reconciler.Reconciler
	store      store.Store
}

// NewHandler creates a new REST API handler
func NewHandler(r reconciler.Reconciler, s store.Store) Handler {
	return &handler{
		reconciler: r,
		store:      s,
	}
}

// ConfirmMint records the mint transaction of a draft NFT
func (h *handler) ConfirmMint(c *gin.Context) {
	nftID, callerID, ok := h.nftAndCaller(c)
	if !ok {
		return
	}

	var req dto.ConfirmTxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	if err := h.reconciler.ConfirmMint(c.Request.Context(), nftID, callerID, req.TxHash); err != nil {
		respondError(c, err, zap.Uint64("nft_id", nftID), zap.String("tx_hash", req.TxHash))
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Mint confirmed"})
}

// ConfirmList records a marketplace listing
func (h *handler) ConfirmList(c *gin.Context) {
	nftID, callerID, ok := h.nftAndCaller(c)
	if !ok {
		return
	}

	var req dto.ConfirmListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	if err := h.reconciler.ConfirmList(c.Request.Context(), nftID, callerID, req.TxHash, req.Price); err != nil {
		respondError(c, err, zap.Uint64("nft_id", nftID), zap.String("tx_hash", req.TxHash))
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Listing confirmed"})
}

// ConfirmUnlist records a marketplace unlisting
func (h *handler) ConfirmUnlist(c *gin.Context) {
	nftID, callerID, ok := h.nftAndCaller(c)
	if !ok {
		return
	}

	var req dto.ConfirmTxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	if err := h.reconciler.ConfirmUnlist(c.Request.Context(), nftID, callerID, req.TxHash); err != nil {
		respondError(c, err, zap.Uint64("nft_id", nftID), zap.String("tx_hash", req.TxHash))
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Unlisting confirmed"})
}

// ConfirmPurchase records a marketplace sale to the caller
func (h *handler) ConfirmPurchase(c *gin.Context) {
	nftID, callerID, ok := h.nftAndCaller(c)
	if !ok {
		return
	}

	var req dto.ConfirmTxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	if err := h.reconciler.ConfirmPurchase(c.Request.Context(), nftID, callerID, req.TxHash); err != nil {
		respondError(c, err, zap.Uint64("nft_id", nftID), zap.String("tx_hash", req.TxHash))
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Purchase confirmed"})
}

// SyncListing mirrors the listing state read from the marketplace contract
func (h *handler) SyncListing(c *gin.Context) {
	nftID, callerID, ok := h.nftAndCaller(c)
	if !ok {
		return
	}

	status, err := h.reconciler.SyncListingStatus(c.Request.Context(), nftID, callerID)
	if err != nil {
		respondError(c, err, zap.Uint64("nft_id", nftID))
		return
	}

	c.JSON(http.StatusOK, dto.SyncListingResponse{
		Message:  "Listing status synced",
		IsListed: status.IsListed,
		Price:    status.Price,
	})
}

// GetNFTEvents retrieves the ledger of an NFT
func (h *handler) GetNFTEvents(c *gin.Context) {
	nftID, err := parseNFTID(c)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	queryParams, err := ParseNFTEventsQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if err := queryParams.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	filter := store.NFTEventFilter{
		NFTID:  &nftID,
		Limit:  queryParams.Limit,
		Offset: queryParams.Offset,
	}
	if queryParams.EventType != "" {
		eventType, err := ParseEventType(queryParams.EventType)
		if err != nil {
			respondValidationError(c, err.Error())
			return
		}
		filter.EventType = &eventType
	}

	nft, err := h.store.GetNFTByID(c.Request.Context(), nftID)
	if err != nil {
		respondInternalError(c, err, "Failed to get NFT", zap.Uint64("nft_id", nftID))
		return
	}
	if nft == nil {
		respondNotFound(c, "NFT not found")
		return
	}

	h.listEvents(c, filter)
}

// GetEventsByAddress retrieves ledger entries where the address is sender or recipient
func (h *handler) GetEventsByAddress(c *gin.Context) {
	address := c.Param("address")
	if !domain.IsValidAddress(address) {
		respondBadRequest(c, "Invalid address", address)
		return
	}

	queryParams, err := ParsePaginationQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if err := queryParams.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	h.listEvents(c, store.NFTEventFilter{
		Address: &address,
		Limit:   queryParams.Limit,
		Offset:  queryParams.Offset,
	})
}

// GetEventsByType retrieves ledger entries of one type
func (h *handler) GetEventsByType(c *gin.Context) {
	eventType, err := ParseEventType(c.Param("event_type"))
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	queryParams, err := ParsePaginationQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if err := queryParams.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	h.listEvents(c, store.NFTEventFilter{
		EventType: &eventType,
		Limit:     queryParams.Limit,
		Offset:    queryParams.Offset,
	})
}

// GetPlatformRevenue sums marketplace fees over all recorded sales
func (h *handler) GetPlatformRevenue(c *gin.Context) {
	revenueWei, err := h.store.GetPlatformRevenueWei(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to get platform revenue")
		return
	}

	wei, ok := new(big.Int).SetString(revenueWei, 10)
	if !ok {
		respondInternalError(c, fmt.Errorf("invalid revenue amount: %q", revenueWei), "Failed to get platform revenue")
		return
	}

	c.JSON(http.StatusOK, dto.PlatformRevenueResponse{
		RevenueWei: wei.String(),
		Revenue:    domain.FormatEther(wei),
	})
}

// HealthCheck returns the health status of the API and the time of the last completed listing sweep
func (h *handler) HealthCheck(c *gin.Context) {
	body := gin.H{
		"status":  "ok",
		"service": "marketplace-mirror-api",
	}

	lastSweep, err := h.store.GetKeyValue(c.Request.Context(), domain.LISTING_SWEEPER_CHECKPOINT_KEY)
	if err != nil {
		logger.WarnCtx(c.Request.Context(), "Failed to read listing sweep checkpoint", zap.Error(err))
	} else if lastSweep != "" {
		body["lastListingSweepAt"] = lastSweep
	}

	c.JSON(http.StatusOK, body)
}

func (h *handler) listEvents(c *gin.Context, filter store.NFTEventFilter) {
	events, total, err := h.store.GetNFTEvents(c.Request.Context(), filter)
	if err != nil {
		respondInternalError(c, err, "Failed to get NFT events")
		return
	}

	c.JSON(http.StatusOK, dto.MapNFTEventsToDTO(events, total, filter.Limit, filter.Offset))
}

// nftAndCaller extracts the NFT id and the authenticated user, responding on failure
func (h *handler) nftAndCaller(c *gin.Context) (uint64, uint64, bool) {
	nftID, err := parseNFTID(c)
	if err != nil {
		respondBadRequest(c, err.Error())
		return 0, 0, false
	}

	callerID, ok := middleware.UserID(c)
	if !ok {
		respondInternalError(c, errors.New("missing authenticated user"), "Authentication context missing")
		return 0, 0, false
	}

	return nftID, callerID, true
}
