package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "orders",
		Name:      "placed_total",
		Help:      "Orders that resulted in a private channel.",
	})

	ordersFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "orders",
		Name:      "failed_total",
		Help:      "Order submissions rejected after validation.",
	}, []string{"reason"})

	loginsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "auth",
		Name:      "logins_total",
		Help:      "Completed Discord OAuth logins.",
	})
)
