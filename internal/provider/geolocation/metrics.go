package geolocation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var lookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "geolocation_lookups_total",
		Help: "Geolocation provider lookups by endpoint and outcome",
	},
	[]string{"endpoint", "outcome"},
)

func recordLookup(endpoint string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "unavailable"
	}
	lookupsTotal.WithLabelValues(endpoint, outcome).Inc()
}
