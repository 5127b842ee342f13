package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var resourcesCollectedTotal = promauto.With(prometheus.DefaultRegisterer).NewCounterVec(
	prometheus.CounterOpts{
		Name: "replica_alerter_resources_collected_total",
		Help: "Total number of watched resources collected, per kind.",
	},
	[]string{"kind"},
)

var collectFailuresTotal = promauto.With(prometheus.DefaultRegisterer).NewCounterVec(
	prometheus.CounterOpts{
		Name: "replica_alerter_collect_failures_total",
		Help: "Total number of collector runs that failed entirely, per kind.",
	},
	[]string{"kind"},
)

var alertsSentTotal = promauto.With(prometheus.DefaultRegisterer).NewCounterVec(
	prometheus.CounterOpts{
		Name: "replica_alerter_alerts_sent_total",
		Help: "Total number of alert events accepted by the incident endpoint, per action.",
	},
	[]string{"action"},
)

var dispatchFailuresTotal = promauto.With(prometheus.DefaultRegisterer).NewCounterVec(
	prometheus.CounterOpts{
		Name: "replica_alerter_dispatch_failures_total",
		Help: "Total number of alert events that could not be delivered, per action.",
	},
	[]string{"action"},
)

// RecordResourcesCollected adds the number of metrics one collector produced.
func RecordResourcesCollected(kind string, count int) {
	resourcesCollectedTotal.WithLabelValues(kind).Add(float64(count))
}

// RecordCollectFailure increments the counter when a whole kind's collection fails.
func RecordCollectFailure(kind string) {
	collectFailuresTotal.WithLabelValues(kind).Inc()
}

// RecordAlertSent increments the counter for a delivered trigger or resolve.
func RecordAlertSent(action string) {
	alertsSentTotal.WithLabelValues(action).Inc()
}

// RecordDispatchFailure increments the counter for a failed delivery attempt.
func RecordDispatchFailure(action string) {
	dispatchFailuresTotal.WithLabelValues(action).Inc()
}
