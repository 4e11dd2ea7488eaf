package rest

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-marketplace-mirror/internal/domain"
)

// PaginationQueryParams holds the common pagination query parameters
type PaginationQueryParams struct {
	Limit  int    `form:"limit,default=20"`
	Offset uint64 `form:"offset,default=0"`
}

// NFTEventsQueryParams holds query parameters for GET /nfts/:id/events
type NFTEventsQueryParams struct {
	PaginationQueryParams
	EventType string `form:"event_type"`
}

// Validate validates pagination parameters
func (p *PaginationQueryParams) Validate() error {
	if p.Limit < 1 || p.Limit > domain.MAX_PAGE_LIMIT {
		return fmt.Errorf("limit must be between 1 and %d", domain.MAX_PAGE_LIMIT)
	}
	if p.Offset > math.MaxInt64 {
		return fmt.Errorf("offset must not exceed %d", int64(math.MaxInt64))
	}
	return nil
}

// ParsePaginationQuery parses pagination query parameters
func ParsePaginationQuery(c *gin.Context) (*PaginationQueryParams, error) {
	var params PaginationQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	return &params, nil
}

// ParseNFTEventsQuery parses query parameters for GET /nfts/:id/events
func ParseNFTEventsQuery(c *gin.Context) (*NFTEventsQueryParams, error) {
	var params NFTEventsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	return &params, nil
}

// ParseEventType parses an event type case-insensitively
func ParseEventType(s string) (domain.NFTEventType, error) {
	eventType := domain.NFTEventType(strings.ToUpper(strings.TrimSpace(s)))
	if !domain.IsValidNFTEventType(eventType) {
		return "", fmt.Errorf("invalid event type: %s", s)
	}
	return eventType, nil
}

// parseNFTID parses the :id path parameter
func parseNFTID(c *gin.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid NFT id: %s", c.Param("id"))
	}
	return id, nil
}
