package ethereum

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/ff-marketplace-mirror/internal/adapter"
	"github.com/feral-file/ff-marketplace-mirror/internal/domain"
	"github.com/feral-file/ff-marketplace-mirror/internal/logger"
)

// DialConfig controls how the node connection is established
type DialConfig struct {
	RPCURL         string
	ChainID        domain.Chain
	MaxElapsedTime time.Duration
}

// Dial connects to the node, retrying with exponential backoff, and
// verifies that the node serves the configured chain.
func Dial(ctx context.Context, dialer adapter.EthClientDialer, cfg DialConfig) (adapter.EthClient, error) {
	expectedChainID, err := cfg.ChainID.ID()
	if err != nil {
		return nil, fmt.Errorf("invalid chain id: %w", err)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = cfg.MaxElapsedTime
	if b.MaxElapsedTime <= 0 {
		b.MaxElapsedTime = time.Minute
	}

	var client adapter.EthClient
	operation := func() error {
		c, err := dialer.Dial(ctx, cfg.RPCURL)
		if err != nil {
			return fmt.Errorf("failed to dial node: %w", err)
		}

		chainID, err := c.ChainID(ctx)
		if err != nil {
			c.Close()
			return fmt.Errorf("failed to get chain id: %w", err)
		}
		if chainID.Int64() != expectedChainID {
			c.Close()
			return backoff.Permanent(fmt.Errorf("node chain id %s does not match configured %s", chainID.String(), cfg.ChainID))
		}

		client = c
		return nil
	}

	notify := func(err error, next time.Duration) {
		logger.WarnCtx(ctx, "Node connection failed, retrying",
			zap.Error(err),
			zap.Duration("next_retry_in", next))
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notify); err != nil {
		return nil, err
	}

	return client, nil
}
