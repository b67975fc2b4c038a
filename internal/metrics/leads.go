package metrics

import "github.com/prometheus/client_golang/prometheus"

// Lead pipeline Prometheus metrics.
var (
	LeadsIngestedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "leadscout",
			Name:      "leads_ingested_total",
			Help:      "Total leads ingested into the store",
		},
		[]string{"kind", "source"},
	)

	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "leadscout",
			Name:      "searches_total",
			Help:      "Total search operations run",
		},
		[]string{"kind", "status"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "leadscout",
			Name:      "search_duration_seconds",
			Help:      "Search latency by kind",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"kind"},
	)

	LeadsTaggedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "leadscout",
			Name:      "leads_tagged_total",
			Help:      "Total tag assignments on person leads",
		},
	)

	PersistenceOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "leadscout",
			Name:      "persistence_ops_total",
			Help:      "Lead file save/load operations",
		},
		[]string{"op", "format", "status"}, // op "save"/"load", status "ok"/"error"
	)

	PollRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "leadscout",
			Name:      "poll_runs_total",
			Help:      "Total background poll runs",
		},
		[]string{"result"}, // "ok" / "error"
	)

	PollLastNewLeads = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "leadscout",
			Name:      "poll_last_new_leads",
			Help:      "New leads found by the most recent poll run",
		},
	)

	ArchiveInsertsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "leadscout",
			Name:      "archive_inserts_total",
			Help:      "Archive insert attempts",
		},
		[]string{"result"}, // "added" / "duplicate" / "error"
	)
)

var leadMetricsRegistered bool

// RegisterLeadMetrics registers the lead pipeline metrics. Must be called
// once from main.
func RegisterLeadMetrics() {
	if leadMetricsRegistered {
		return
	}
	prometheus.MustRegister(LeadsIngestedTotal)
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(LeadsTaggedTotal)
	prometheus.MustRegister(PersistenceOpsTotal)
	prometheus.MustRegister(PollRunsTotal)
	prometheus.MustRegister(PollLastNewLeads)
	prometheus.MustRegister(ArchiveInsertsTotal)
	leadMetricsRegistered = true
}
