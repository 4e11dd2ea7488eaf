package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	chainRPCOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "marketplace_mirror",
		Subsystem: "chain_client",
		Name:      "operations_total",
		Help:      "Count of node RPC operations.",
	}, []string{"operation", "chain", "status"})
	chainRPCOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "marketplace_mirror",
		Subsystem: "chain_client",
		Name:      "operation_duration_seconds",
		Help:      "Duration of node RPC operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "chain", "status"})
)

// ChainClient tracks metrics for RPC calls to the chain node.
type ChainClient struct {
	chain string
}

// NewChainClient constructs a metrics collector for RPC calls against a chain.
func NewChainClient(chain string) *ChainClient {
	if chain == "" {
		chain = "unknown"
	}
	return &ChainClient{chain: chain}
}

// Observe records a single RPC call outcome and duration.
func (m *ChainClient) Observe(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	chainRPCOperationsTotal.WithLabelValues(operation, m.chain, status).Inc()
	chainRPCOperationDuration.WithLabelValues(operation, m.chain, status).Observe(time.Since(started).Seconds())
}
