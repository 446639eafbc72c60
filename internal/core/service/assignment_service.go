package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/swiftroute/logistics-api/internal/core/domain"
	"github.com/swiftroute/logistics-api/internal/core/ports"
)

// AssignmentService owns the shipment-to-driver relation and the derived
// per-driver load. Availability is recomputed by the repository inside the
// same transaction as the shipment write, so a driver is never left marked
// on_delivery for a shipment that was concurrently cancelled.
type AssignmentService struct {
	repo   ports.ShipmentRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewAssignmentService(repo ports.ShipmentRepository, users ports.UserRepository, logger zerolog.Logger) *AssignmentService {
	return &AssignmentService{repo: repo, users: users, logger: logger}
}

// AssignDriver sets a shipment's driver, or clears it when driverID is empty.
func (s *AssignmentService) AssignDriver(ctx context.Context, actor ports.Actor, shipmentID, driverID string) (*domain.Shipment, error) {
	if !domain.Allowed(actor.Role, domain.ActionAssignDriver) {
		return nil, domain.ErrNotAuthorized
	}

	shipment, err := s.repo.FindByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	if driverID != "" {
		driver, err := s.users.FindByID(ctx, driverID)
		if err != nil {
			return nil, domain.ErrDriverNotFound
		}
		if !driver.IsDriver() {
			return nil, domain.ErrDriverRoleMismatch
		}
	}

	prevDriver := shipment.DriverID
	shipment.DriverID = driverID
	shipment.UpdatedAt = time.Now().UTC()

	write := ports.ShipmentWrite{Shipment: shipment}
	if prevDriver != driverID {
		write.PrevDriverID = prevDriver
	}
	if err := s.repo.Update(ctx, write); err != nil {
		s.logger.Error().Err(err).Str("tracking_code", shipment.TrackingCode).Msg("failed to reassign driver")
		return nil, err
	}

	s.logger.Info().
		Str("tracking_code", shipment.TrackingCode).
		Str("from_driver", prevDriver).
		Str("to_driver", driverID).
		Str("actor", actor.ID).
		Msg("driver assignment changed")

	return shipment, nil
}

// DriverLoad counts a driver's shipments in non-terminal states.
func (s *AssignmentService) DriverLoad(ctx context.Context, driverID string) (int64, error) {
	return s.repo.CountActiveByDriver(ctx, driverID)
}
