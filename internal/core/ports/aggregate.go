package ports

import "context"

// Aggregates are the derived dashboard counts. They are recomputed from
// record state, never independently persisted.
type Aggregates struct {
	PendingComplaintCount int64 `json:"pending_complaint_count"`
	AlertShipmentCount    int64 `json:"alert_shipment_count"`
}

// AggregateCache is a short-lived cache for the derived counts. A miss is
// (nil, nil); Invalidate drops the cached value so the next read recounts.
type AggregateCache interface {
	Get(ctx context.Context) (*Aggregates, error)
	Set(ctx context.Context, agg Aggregates) error
	Invalidate(ctx context.Context) error
}

// AggregateService serves the notification feed.
type AggregateService interface {
	GetAggregates(ctx context.Context, actor Actor) (*Aggregates, error)
}
