// Package metrics defines and registers all custom Prometheus metrics for the
// logistics API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry via promauto
// at package init; the HTTP layer exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "logistics"

// ShipmentsCreatedTotal counts newly registered shipments.
var ShipmentsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shipments_created_total",
		Help:      "Total number of shipments created.",
	},
)

// StatusTransitionsTotal counts applied status transitions.
// Label:
//   - status: the new shipment status (e.g. "in_transit")
var StatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_transitions_total",
		Help:      "Total number of shipment status transitions applied, by new status.",
	},
	[]string{"status"},
)

// BackwardTransitionsTotal counts transitions that moved a shipment back to
// an earlier delivery phase. These are allowed but signal likely operator
// error, so they are tracked separately.
var BackwardTransitionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backward_transitions_total",
		Help:      "Total number of shipment transitions that moved backward to an earlier phase.",
	},
)

// ComplaintsFiledTotal counts newly filed complaints.
var ComplaintsFiledTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "complaints_filed_total",
		Help:      "Total number of complaints filed.",
	},
)

// AggregateCacheTotal counts dashboard aggregate lookups.
// Label:
//   - result: "hit" (served from cache) or "miss" (recounted from storage)
var AggregateCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "aggregate_cache_total",
		Help:      "Total number of aggregate reads, labelled by cache result (hit/miss).",
	},
	[]string{"result"},
)
