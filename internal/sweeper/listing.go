package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-marketplace-mirror/internal/adapter"
	"github.com/feral-file/ff-marketplace-mirror/internal/domain"
	"github.com/feral-file/ff-marketplace-mirror/internal/logger"
	"github.com/feral-file/ff-marketplace-mirror/internal/metrics"
	"github.com/feral-file/ff-marketplace-mirror/internal/reconciler"
	"github.com/feral-file/ff-marketplace-mirror/internal/store"
	"github.com/feral-file/ff-marketplace-mirror/internal/store/schema"
)

// ListingSweeperConfig holds configuration for the listing sweeper
type ListingSweeperConfig struct {
	Interval       time.Duration // Time to sleep between sweep cycles
	BatchSize      int           // Listed NFTs loaded per page
	WorkerPoolSize int           // Concurrent contract reads
}

// listingSweeper re-reads the marketplace listing of every NFT the projection
// believes is for sale, so listings cancelled or bought outside the app are cleared
type listingSweeper struct {
	config     *ListingSweeperConfig
	store      store.Store
	reconciler reconciler.Reconciler
	clock      adapter.Clock
	pool       pond.Pool
	running    atomic.Bool
	stopChan   chan struct{}
	stoppedCh  chan struct{}
}

// NewListingSweeper creates a new listing sweeper
func NewListingSweeper(
	config *ListingSweeperConfig,
	st store.Store,
	rec reconciler.Reconciler,
	clock adapter.Clock,
) Sweeper {
	return &listingSweeper{
		config:     config,
		store:      st,
		reconciler: rec,
		clock:      clock,
		stopChan:   make(chan struct{}),
		stoppedCh:  make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (s *listingSweeper) Name() string {
	return "listing-sweeper"
}

// Start runs sweep cycles separated by the configured interval
func (s *listingSweeper) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting listing sweeper",
		zap.Duration("interval", s.config.Interval),
		zap.Int("batch_size", s.config.BatchSize),
		zap.Int("worker_pool_size", s.config.WorkerPoolSize),
	)

	s.pool = pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithQueueSize(s.config.BatchSize),
		pond.WithContext(ctx),
	)
	defer s.pool.StopAndWait()

	for {
		err := s.runSweepCycle(ctx)
		metrics.ObserveSweepCycle(err)
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.ErrorCtx(ctx, err)
		}

		if !s.sleep(ctx, s.config.Interval) {
			logger.InfoCtx(ctx, "Listing sweeper stopping")
			return nil
		}
	}
}

// Stop gracefully stops the sweeper with timeout support
func (s *listingSweeper) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	logger.InfoCtx(ctx, "Stopping listing sweeper")
	close(s.stopChan)

	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Listing sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Listing sweeper stop interrupted by context timeout")
		return ctx.Err()
	}
}

// runSweepCycle walks all listed NFTs by ascending id and syncs each of them
func (s *listingSweeper) runSweepCycle(ctx context.Context) error {
	startTime := s.clock.Now()
	cycleID := ulid.MustNewDefault(startTime).String()
	logger.InfoCtx(ctx, "Starting sweep cycle", zap.String("cycle_id", cycleID))

	var total int
	var stillListed, unlisted, failed atomic.Int32
	var afterID uint64
	for {
		if s.stopping() {
			return context.Canceled
		}

		nfts, err := s.store.GetListedNFTs(ctx, afterID, s.config.BatchSize)
		if err != nil {
			return fmt.Errorf("failed to get listed NFTs: %w", err)
		}
		if len(nfts) == 0 {
			break
		}

		// The first transient chain failure stops the cycle; remaining NFTs keep their listing
		group := s.pool.NewGroup()
		for _, nft := range nfts {
			group.SubmitErr(func() error {
				return s.syncNFT(ctx, nft, &stillListed, &unlisted, &failed)
			})
		}
		if err := group.Wait(); err != nil {
			return fmt.Errorf("failed to sync listed NFTs: %w", err)
		}

		total += len(nfts)
		afterID = nfts[len(nfts)-1].ID
		if len(nfts) < s.config.BatchSize {
			break
		}
	}

	if err := s.saveCheckpointWithRetry(ctx); err != nil {
		return err
	}

	logger.InfoCtx(ctx, "Sweep cycle completed",
		zap.String("cycle_id", cycleID),
		zap.Duration("duration", s.clock.Since(startTime)),
		zap.Int("total_checked", total),
		zap.Int32("still_listed", stillListed.Load()),
		zap.Int32("unlisted", unlisted.Load()),
		zap.Int32("failed", failed.Load()),
	)

	return nil
}

// syncNFT mirrors the on-chain listing of one NFT on behalf of its owner.
// Only transient chain failures are returned; other failures are counted and skipped.
func (s *listingSweeper) syncNFT(ctx context.Context, nft schema.NFT, stillListed, unlisted, failed *atomic.Int32) error {
	status, err := s.reconciler.SyncListingStatus(ctx, nft.ID, nft.OwnerID)
	metrics.ObserveSweptNFT(err)
	if err != nil {
		failed.Add(1)
		if domain.KindOf(err) == domain.ErrorKindTransient {
			return err
		}
		logger.WarnCtx(ctx, "Failed to sync listing",
			zap.Uint64("nft_id", nft.ID),
			zap.Uint64("owner_id", nft.OwnerID),
			zap.Error(err),
		)
		return nil
	}

	if status.IsListed {
		stillListed.Add(1)
		return nil
	}

	unlisted.Add(1)
	logger.InfoCtx(ctx, "Listing no longer active on chain",
		zap.Uint64("nft_id", nft.ID),
	)
	return nil
}

// saveCheckpointWithRetry records the completion time of the cycle with exponential backoff retry
func (s *listingSweeper) saveCheckpointWithRetry(ctx context.Context) error {
	completedAt := s.clock.Now().UTC().Format(time.RFC3339)

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = 5 * time.Minute

	operation := func() error {
		return s.store.SetKeyValue(ctx, domain.LISTING_SWEEPER_CHECKPOINT_KEY, completedAt)
	}

	notifyOnError := func(err error, duration time.Duration) {
		logger.WarnCtx(ctx, "Failed to save sweep checkpoint, retrying",
			zap.Error(err),
			zap.Duration("next_retry_in", duration),
		)
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notifyOnError); err != nil {
		return fmt.Errorf("failed to save sweep checkpoint: %w", err)
	}

	return nil
}

// sleep sleeps for the given duration but can be interrupted by context cancellation or stop
// Returns true if sleep completed normally
func (s *listingSweeper) sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-s.clock.After(duration):
		return true
	case <-ctx.Done():
		return false
	case <-s.stopChan:
		return false
	}
}

func (s *listingSweeper) stopping() bool {
	select {
	case <-s.stopChan:
		return true
	default:
		return false
	}
}
