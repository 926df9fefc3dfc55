package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// cacheLookups counts health cache lookups by result
var cacheLookups = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "studyhub",
		Subsystem: "insight",
		Name:      "cache_lookups_total",
		Help:      "Health score cache lookups by result",
	},
	[]string{"result"},
)
