package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voguemanic_orders_placed_total",
		Help: "Orders persisted with status Placed.",
	})

	OrdersCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voguemanic_orders_cancelled_total",
		Help: "Orders moved to status Cancelled.",
	})

	ResaleTransfers = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voguemanic_resale_transfers_total",
		Help: "Resale ownership transfers applied by the outbox.",
	})

	OutboxRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voguemanic_outbox_retries_total",
		Help: "Outbox delivery attempts after the first.",
	})

	OutboxFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voguemanic_outbox_failures_total",
		Help: "Outbox events parked after exhausting retries.",
	})
)
