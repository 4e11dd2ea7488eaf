package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// ResultApplied is recorded when a new ledger entry was written
	ResultApplied = "applied"
	// ResultNoop is recorded when the operation was already reflected in the ledger
	ResultNoop = "noop"
)

var (
	reconcileOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "marketplace_mirror",
		Subsystem: "reconciler",
		Name:      "operations_total",
		Help:      "Count of reconciliation operations by result.",
	}, []string{"operation", "result"})
	reconcileOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "marketplace_mirror",
		Subsystem: "reconciler",
		Name:      "operation_duration_seconds",
		Help:      "Duration of reconciliation operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "result"})
	sweepCyclesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "marketplace_mirror",
		Subsystem: "listing_sweeper",
		Name:      "cycles_total",
		Help:      "Count of listing sweep cycles.",
	}, []string{"status"})
	sweepNFTsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "marketplace_mirror",
		Subsystem: "listing_sweeper",
		Name:      "nfts_total",
		Help:      "Count of NFTs visited by the listing sweeper.",
	}, []string{"status"})
)

// ObserveReconcile records the outcome of one reconciliation operation.
// result is ResultApplied, ResultNoop or an error kind.
func ObserveReconcile(operation, result string, started time.Time) {
	if result == "" {
		result = "error"
	}
	reconcileOperationsTotal.WithLabelValues(operation, result).Inc()
	reconcileOperationDuration.WithLabelValues(operation, result).Observe(time.Since(started).Seconds())
}

// ObserveSweepCycle records one listing sweep cycle.
func ObserveSweepCycle(err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	sweepCyclesTotal.WithLabelValues(status).Inc()
}

// ObserveSweptNFT records the outcome of syncing one NFT during a sweep.
func ObserveSweptNFT(err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	sweepNFTsTotal.WithLabelValues(status).Inc()
}
