package ports

import (
	"context"
	"time"

	"github.com/swiftroute/logistics-api/internal/core/domain"
)

// ListShipmentsFilter carries all query parameters for listing shipments.
// DriverID is enforced by the service layer for driver-role actors.
type ListShipmentsFilter struct {
	Status   string    // optional: filter by shipment status
	DriverID string    // empty = no filter; non-empty = scoped to one driver
	Search   string    // optional: substring match on tracking code, origin, destination
	// SearchDriverIDs extends Search to driver names: shipments assigned to
	// any of these ids also match. Filled by the service, not by callers.
	SearchDriverIDs []string
	DateFrom time.Time // optional: updated_at >= DateFrom
	DateTo   time.Time // optional: updated_at <= DateTo
	Page     int       // 1-based
	Limit    int       // max rows per page (capped by service)
}

// ShipmentWrite is a shipment update together with the driver-availability
// side effects that must commit in the same atomic unit. The repository
// recomputes the operating status of PrevDriverID and Shipment.DriverID from
// their remaining active assignments, and credits CreditDriverID with one
// completed delivery, all inside a single transaction with the shipment write.
type ShipmentWrite struct {
	Shipment       *domain.Shipment
	PrevDriverID   string
	CreditDriverID string
}

// ShipmentRepository defines persistence operations for shipments.
type ShipmentRepository interface {
	// Create inserts a new shipment and, when it carries an assigned driver,
	// marks that driver on_delivery in the same transaction.
	Create(ctx context.Context, s *domain.Shipment) error
	FindByID(ctx context.Context, id string) (*domain.Shipment, error)
	// FindByTrackingCode is an exact, case-sensitive lookup.
	FindByTrackingCode(ctx context.Context, code string) (*domain.Shipment, error)
	Update(ctx context.Context, w ShipmentWrite) error
	Delete(ctx context.Context, id string) error
	// List returns a page of shipments matching filter, in insertion order,
	// plus the total match count.
	List(ctx context.Context, filter ListShipmentsFilter) ([]*domain.Shipment, int64, error)
	CountByStatus(ctx context.Context, status domain.ShipmentStatus) (int64, error)
	// CountActiveByDriver counts a driver's shipments in non-terminal states.
	CountActiveByDriver(ctx context.Context, driverID string) (int64, error)
}
