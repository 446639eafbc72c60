package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/swiftroute/logistics-api/internal/api/metrics"
	"github.com/swiftroute/logistics-api/internal/core/domain"
	"github.com/swiftroute/logistics-api/internal/core/ports"
)

// AggregateService serves the derived dashboard counts. Counts are recomputed
// from record state on a cache miss and never independently persisted, so
// they can lag one recomputation cycle but never exceed the true value.
type AggregateService struct {
	shipments  ports.ShipmentRepository
	complaints ports.ComplaintRepository
	cache      ports.AggregateCache
	logger     zerolog.Logger
}

func NewAggregateService(
	shipments ports.ShipmentRepository,
	complaints ports.ComplaintRepository,
	cache ports.AggregateCache,
	logger zerolog.Logger,
) *AggregateService {
	return &AggregateService{shipments: shipments, complaints: complaints, cache: cache, logger: logger}
}

// GetAggregates returns the pending-complaint and cancelled-shipment counts.
func (s *AggregateService) GetAggregates(ctx context.Context, actor ports.Actor) (*ports.Aggregates, error) {
	if !domain.Allowed(actor.Role, domain.ActionViewAggregates) {
		return nil, domain.ErrNotAuthorized
	}

	if cached, err := s.cache.Get(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("aggregate cache read failed, recounting")
	} else if cached != nil {
		metrics.AggregateCacheTotal.WithLabelValues("hit").Inc()
		return cached, nil
	}
	metrics.AggregateCacheTotal.WithLabelValues("miss").Inc()

	pending, err := s.complaints.CountByStatus(ctx, domain.ComplaintPending)
	if err != nil {
		return nil, err
	}
	alerts, err := s.shipments.CountByStatus(ctx, domain.StatusCancelled)
	if err != nil {
		return nil, err
	}

	agg := ports.Aggregates{PendingComplaintCount: pending, AlertShipmentCount: alerts}
	if err := s.cache.Set(ctx, agg); err != nil {
		s.logger.Warn().Err(err).Msg("failed to cache aggregates")
	}
	return &agg, nil
}
