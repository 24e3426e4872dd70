package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Transaction executor
var (
	TxTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gicoin_tx_total",
			Help: "Transactions by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	TxInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gicoin_tx_in_flight",
		Help: "Executor calls currently waiting on submission or confirmation",
	})

	TxConfirmDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gicoin_tx_confirm_duration_seconds",
		Help:    "Time from submission to a classified receipt",
		Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
	})
)

// Read-state cache
var (
	CacheFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gicoin_cache_fetches_total",
			Help: "Read-state refreshes by projection and result",
		},
		[]string{"projection", "result"},
	)
)

// Event subscription
var (
	EventsObserved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gicoin_events_observed_total",
			Help: "Contract events appended to the event log",
		},
		[]string{"event"},
	)

	EventsDeduplicated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gicoin_events_deduplicated_total",
		Help: "Event logs dropped by the tx hash cooldown",
	})

	EventDecodeErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gicoin_event_decode_errors_total",
		Help: "Logs that matched a known topic but failed to decode",
	})

	BackfillBlocks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gicoin_backfill_blocks_total",
		Help: "Blocks scanned by backfill",
	})
)
