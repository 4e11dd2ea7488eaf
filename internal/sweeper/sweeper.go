package sweeper

import (
	"context"
)

// Sweeper is a long-running background task that periodically reconciles
// the projection with on-chain state
type Sweeper interface {
	// Start runs the sweep loop until the context is canceled or Stop is called
	Start(ctx context.Context) error

	// Stop signals the loop to exit and waits for in-flight work
	Stop(ctx context.Context) error

	// Name returns the sweeper's name for logging
	Name() string
}
