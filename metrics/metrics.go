package metrics

import (
	"net/http"

	"comments-contract/types"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "rewards"

const (
	StatusApplied  = "applied"
	StatusRejected = "rejected"
	StatusFiltered = "filtered"
)

var (
	ReplayHeight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "replay_height",
		Help:      "Last block number committed by the replay",
	})

	Transactions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_total",
			Help:      "Replayed transactions by action and outcome",
		},
		[]string{"action", "status"},
	)

	Events = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Events emitted by replayed transactions",
		},
		[]string{"contract", "event"},
	)

	BlockProcessingMs = promauto.NewSummary(prometheus.SummaryOpts{
		Namespace:  namespace,
		Name:       "block_processing_ms",
		Help:       "Time spent replaying one block",
		Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
	})
)

// ObserveTx records the outcome of one executed transaction.
func ObserveTx(action string, logs *types.Logs) {
	status := StatusApplied
	if len(logs.Errors) > 0 {
		status = StatusRejected
	}
	Transactions.WithLabelValues(action, status).Inc()
	for _, e := range logs.Events {
		Events.WithLabelValues(e.Contract, e.Event).Inc()
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
