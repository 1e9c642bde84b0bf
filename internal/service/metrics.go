package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var sideEffectFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "storefront",
	Subsystem: "orders",
	Name:      "side_effect_failures_total",
	Help:      "Failures of non-fatal post-creation order steps.",
}, []string{"step"})
