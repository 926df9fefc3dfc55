package ai

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// providerRequests counts completion attempts per provider and outcome
var providerRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "studyhub",
		Subsystem: "ai",
		Name:      "provider_requests_total",
		Help:      "Completion attempts per provider and outcome",
	},
	[]string{"provider", "outcome"},
)
