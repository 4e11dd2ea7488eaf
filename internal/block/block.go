package block

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-marketplace-mirror/internal/logger"
)

// DefaultMaxEntries bounds the timestamp cache when no size is configured
const DefaultMaxEntries = 4096

// TimestampProvider provides cached access to block timestamps.
// Timestamps of mined blocks never change, so entries only leave the cache by size.
//
//go:generate mockgen -source=block.go -destination=../mocks/block_provider.go -package=mocks -mock_names=TimestampProvider=MockTimestampProvider,TimestampFetcher=MockTimestampFetcher
type TimestampProvider interface {
	// GetBlockTimestamp returns the timestamp for a given block number, potentially from cache
	GetBlockTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error)
}

// TimestampFetcher fetches block timestamps from the chain
type TimestampFetcher interface {
	// FetchBlockTimestamp fetches the timestamp for a given block number
	FetchBlockTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error)
}

// Config holds configuration for the TimestampProvider
type Config struct {
	// MaxEntries is the number of block timestamps kept in memory
	MaxEntries int
}

type timestampProvider struct {
	fetcher    TimestampFetcher
	timestamps *lru.Cache[uint64, time.Time]
}

// NewTimestampProvider creates a TimestampProvider with a bounded LRU cache
func NewTimestampProvider(fetcher TimestampFetcher, config Config) TimestampProvider {
	maxEntries := config.MaxEntries
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	// lru.New only fails on a non-positive size
	timestamps, _ := lru.New[uint64, time.Time](maxEntries)
	return &timestampProvider{
		fetcher:    fetcher,
		timestamps: timestamps,
	}
}

// GetBlockTimestamp returns the timestamp for a given block number, using cache if present
func (p *timestampProvider) GetBlockTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error) {
	if cached, ok := p.timestamps.Get(blockNumber); ok {
		logger.DebugCtx(ctx, "Using cached block timestamp",
			zap.Uint64("block_number", blockNumber),
			zap.Time("timestamp", cached))
		return cached, nil
	}

	timestamp, err := p.fetcher.FetchBlockTimestamp(ctx, blockNumber)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to fetch block timestamp for block %d: %w", blockNumber, err)
	}

	p.timestamps.Add(blockNumber, timestamp)
	return timestamp, nil
}
