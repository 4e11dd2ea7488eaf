package dto

import (
	"encoding/json"
	"time"

	"github.com/feral-file/ff-marketplace-mirror/internal/domain"
	"github.com/feral-file/ff-marketplace-mirror/internal/store/schema"
)

// ConfirmTxRequest is the body of the confirm endpoints
type ConfirmTxRequest struct {
	TxHash string `json:"tx_hash" binding:"required"`
}

// ConfirmListRequest is the body of the list endpoint
type ConfirmListRequest struct {
	TxHash string `json:"tx_hash" binding:"required"`
	// Price is the listing price in ether, e.g. "1.5"
	Price string `json:"price" binding:"required"`
}

// MessageResponse acknowledges a confirmation
type MessageResponse struct {
	Message string `json:"message"`
}

// SyncListingResponse reports the mirrored listing state
type SyncListingResponse struct {
	Message  string  `json:"message"`
	IsListed bool    `json:"is_listed"`
	Price    *string `json:"price,omitempty"`
}

// NFTEventResponse represents a ledger entry
type NFTEventResponse struct {
	ID               uint64              `json:"id"`
	NFTID            uint64              `json:"nft_id"`
	EventType        domain.NFTEventType `json:"event_type"`
	FromAddress      *string             `json:"from_address,omitempty"`
	ToAddress        *string             `json:"to_address,omitempty"`
	PriceWei         *string             `json:"price_wei,omitempty"`
	PlatformFeeWei   *string             `json:"platform_fee_wei,omitempty"`
	RoyaltyAmountWei *string             `json:"royalty_amount_wei,omitempty"`
	RoyaltyReceiver  *string             `json:"royalty_receiver,omitempty"`
	TxHash           string              `json:"tx_hash"`
	LogIndex         uint                `json:"log_index"`
	BlockNumber      uint64              `json:"block_number"`
	BlockTimestamp   time.Time           `json:"block_timestamp"`
	ChainID          int64               `json:"chain_id"`
	Raw              json.RawMessage     `json:"raw,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
}

// NFTEventListResponse is a page of ledger entries
type NFTEventListResponse struct {
	Items  []NFTEventResponse `json:"items"`
	Total  uint64             `json:"total"`
	Limit  int                `json:"limit"`
	Offset uint64             `json:"offset"`
}

// PlatformRevenueResponse reports the marketplace revenue
type PlatformRevenueResponse struct {
	RevenueWei string `json:"revenue_wei"`
	// Revenue is RevenueWei in ether
	Revenue string `json:"revenue"`
}

// MapNFTEventToDTO converts a ledger row into its response
func MapNFTEventToDTO(e schema.NFTEvent) NFTEventResponse {
	return NFTEventResponse{
		ID:               e.ID,
		NFTID:            e.NFTID,
		EventType:        e.EventType,
		FromAddress:      e.FromAddress,
		ToAddress:        e.ToAddress,
		PriceWei:         e.PriceWei,
		PlatformFeeWei:   e.PlatformFeeWei,
		RoyaltyAmountWei: e.RoyaltyAmountWei,
		RoyaltyReceiver:  e.RoyaltyReceiver,
		TxHash:           e.TxHash,
		LogIndex:         e.LogIndex,
		BlockNumber:      e.BlockNumber,
		BlockTimestamp:   e.BlockTimestamp,
		ChainID:          e.ChainID,
		Raw:              json.RawMessage(e.Raw),
		CreatedAt:        e.CreatedAt,
	}
}

// MapNFTEventsToDTO converts ledger rows into a page
func MapNFTEventsToDTO(events []schema.NFTEvent, total uint64, limit int, offset uint64) NFTEventListResponse {
	items := make([]NFTEventResponse, 0, len(events))
	for _, e := range events {
		items = append(items, MapNFTEventToDTO(e))
	}
	return NFTEventListResponse{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
}
