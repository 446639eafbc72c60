package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/swiftroute/logistics-api/internal/api/metrics"
	"github.com/swiftroute/logistics-api/internal/core/domain"
	"github.com/swiftroute/logistics-api/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ShipmentService implements the shipment registry use cases.
type ShipmentService struct {
	repo     ports.ShipmentRepository
	users    ports.UserRepository
	products ports.ProductRepository
	cache    ports.AggregateCache
	logger   zerolog.Logger
}

func NewShipmentService(
	repo ports.ShipmentRepository,
	users ports.UserRepository,
	products ports.ProductRepository,
	cache ports.AggregateCache,
	logger zerolog.Logger,
) *ShipmentService {
	return &ShipmentService{repo: repo, users: users, products: products, cache: cache, logger: logger}
}

// CreateShipment registers a new shipment with an initial manifest and
// status pending. Validation rejects before any state is written.
func (s *ShipmentService) CreateShipment(ctx context.Context, actor ports.Actor, input ports.CreateShipmentInput) (*domain.Shipment, error) {
	if !domain.Allowed(actor.Role, domain.ActionCreateShipment) {
		return nil, domain.ErrNotAuthorized
	}

	if len(input.Manifest) == 0 {
		return nil, domain.ErrEmptyManifest
	}
	manifest := make([]domain.ManifestLine, 0, len(input.Manifest))
	for _, line := range input.Manifest {
		if line.Quantity < 1 {
			return nil, fmt.Errorf("%w: product %s has quantity %d", domain.ErrInvalidQuantity, line.ProductID, line.Quantity)
		}
		if _, err := s.products.FindByID(ctx, line.ProductID); err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownProduct, line.ProductID)
		}
		manifest = append(manifest, domain.ManifestLine{ProductID: line.ProductID, Quantity: line.Quantity})
	}

	if input.DriverID != "" {
		if _, err := s.resolveDriver(ctx, input.DriverID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	shipment := &domain.Shipment{
		ID:           uuid.NewString(),
		TrackingCode: input.TrackingCode,
		Origin:       input.Origin,
		Destination:  input.Destination,
		Status:       domain.StatusPending,
		DriverID:     input.DriverID,
		Manifest:     manifest,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, shipment); err != nil {
		s.logger.Error().Err(err).Str("tracking_code", input.TrackingCode).Msg("failed to create shipment")
		return nil, err
	}

	metrics.ShipmentsCreatedTotal.Inc()
	s.logger.Info().
		Str("tracking_code", shipment.TrackingCode).
		Str("driver_id", shipment.DriverID).
		Msg("shipment created")

	return shipment, nil
}

// UpdateStatus moves a shipment to a new lifecycle state, optionally
// replacing the stored note and reassigning the driver in the same atomic
// command. Drivers may only update shipments assigned to them; the failure is
// identical whether the shipment is missing or merely not theirs.
func (s *ShipmentService) UpdateStatus(ctx context.Context, actor ports.Actor, input ports.UpdateStatusInput) (*domain.Shipment, error) {
	newStatus := domain.ShipmentStatus(input.Status)
	if !newStatus.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, input.Status)
	}

	shipment, err := s.loadForActor(ctx, actor, input.ShipmentID)
	if err != nil {
		return nil, err
	}

	if shipment.Status == domain.StatusDelivered && newStatus == domain.StatusCancelled {
		return nil, fmt.Errorf("%w: delivered shipments cannot be cancelled", domain.ErrInvalidStatus)
	}

	prevStatus := shipment.Status
	prevDriver := shipment.DriverID

	if input.DriverID != nil {
		if !domain.IsReviewer(actor.Role) {
			return nil, domain.ErrNotAuthorized
		}
		if *input.DriverID != "" {
			if _, err := s.resolveDriver(ctx, *input.DriverID); err != nil {
				return nil, err
			}
		}
		shipment.DriverID = *input.DriverID
	}

	if prevStatus.IsBackwardMove(newStatus) {
		metrics.BackwardTransitionsTotal.Inc()
		s.logger.Warn().
			Str("tracking_code", shipment.TrackingCode).
			Str("from", string(prevStatus)).
			Str("to", string(newStatus)).
			Msg("backward status transition, likely operator error")
	}

	shipment.Status = newStatus
	shipment.StatusNote = input.Note
	shipment.UpdatedAt = time.Now().UTC()

	write := ports.ShipmentWrite{Shipment: shipment}
	if prevDriver != shipment.DriverID {
		write.PrevDriverID = prevDriver
	}
	if newStatus == domain.StatusDelivered && prevStatus != domain.StatusDelivered && shipment.DriverID != "" {
		write.CreditDriverID = shipment.DriverID
	}

	if err := s.repo.Update(ctx, write); err != nil {
		s.logger.Error().Err(err).Str("tracking_code", shipment.TrackingCode).Msg("failed to update shipment status")
		return nil, err
	}

	metrics.StatusTransitionsTotal.WithLabelValues(string(newStatus)).Inc()
	if newStatus == domain.StatusCancelled || prevStatus == domain.StatusCancelled {
		s.invalidateAggregates(ctx)
	}

	s.logger.Info().
		Str("tracking_code", shipment.TrackingCode).
		Str("from", string(prevStatus)).
		Str("to", string(newStatus)).
		Str("actor", actor.ID).
		Msg("shipment status updated")

	return shipment, nil
}

// DeleteShipment removes a shipment. Deletion is blocked while a delivery is
// actively underway so an assigned driver is never orphaned mid-route.
func (s *ShipmentService) DeleteShipment(ctx context.Context, actor ports.Actor, shipmentID string) error {
	if !domain.Allowed(actor.Role, domain.ActionDeleteShipment) {
		return domain.ErrNotAuthorized
	}

	shipment, err := s.repo.FindByID(ctx, shipmentID)
	if err != nil {
		return err
	}
	if shipment.Status.IsActive() {
		return fmt.Errorf("%w: status is %s", domain.ErrActiveAssignment, shipment.Status)
	}

	if err := s.repo.Delete(ctx, shipmentID); err != nil {
		return err
	}

	if shipment.Status == domain.StatusCancelled {
		s.invalidateAggregates(ctx)
	}

	s.logger.Info().
		Str("tracking_code", shipment.TrackingCode).
		Str("actor", actor.ID).
		Msg("shipment deleted")
	return nil
}

// Track is an exact, case-sensitive tracking-code lookup.
func (s *ShipmentService) Track(ctx context.Context, code string) (*domain.Shipment, error) {
	return s.repo.FindByTrackingCode(ctx, code)
}

// ListShipments returns a page of shipments. Driver actors are always scoped
// to their own assignments regardless of the requested filter.
func (s *ShipmentService) ListShipments(ctx context.Context, actor ports.Actor, filter ports.ListShipmentsFilter) (*ports.ListShipmentsResult, error) {
	if actor.Role == domain.RoleDriver {
		filter.DriverID = actor.ID
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	// The free-text search also covers driver names, which live in the user
	// directory; matching driver ids are resolved up front and passed down.
	if search := strings.TrimSpace(filter.Search); search != "" && filter.DriverID == "" {
		ids, err := s.users.SearchDriverIDs(ctx, search)
		if err != nil {
			s.logger.Warn().Err(err).Msg("driver name search failed, matching shipment fields only")
		} else {
			filter.SearchDriverIDs = ids
		}
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &ports.ListShipmentsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

// loadForActor fetches a shipment and authorizes actor against it. Drivers
// receive ErrNotAuthorized for both a missing shipment and one assigned to
// someone else, so the outcome never confirms existence.
func (s *ShipmentService) loadForActor(ctx context.Context, actor ports.Actor, shipmentID string) (*domain.Shipment, error) {
	shipment, err := s.repo.FindByID(ctx, shipmentID)
	if err != nil {
		if domain.IsReviewer(actor.Role) {
			return nil, err
		}
		return nil, domain.ErrNotAuthorized
	}
	if domain.IsReviewer(actor.Role) {
		return shipment, nil
	}
	if actor.Role == domain.RoleDriver && shipment.DriverID == actor.ID {
		return shipment, nil
	}
	return nil, domain.ErrNotAuthorized
}

// resolveDriver validates that driverID references an existing user with the
// driver role.
func (s *ShipmentService) resolveDriver(ctx context.Context, driverID string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, driverID)
	if err != nil {
		return nil, domain.ErrDriverNotFound
	}
	if !user.IsDriver() {
		return nil, domain.ErrDriverRoleMismatch
	}
	return user, nil
}

func (s *ShipmentService) invalidateAggregates(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate aggregate cache")
	}
}
