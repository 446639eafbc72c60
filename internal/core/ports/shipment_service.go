package ports

import (
	"context"

	"github.com/swiftroute/logistics-api/internal/core/domain"
)

// ManifestLineInput is one (product, quantity) line of a new shipment.
type ManifestLineInput struct {
	ProductID string
	Quantity  int
}

// CreateShipmentInput carries all data needed to create a new shipment.
type CreateShipmentInput struct {
	TrackingCode string
	Origin       string
	Destination  string
	Manifest     []ManifestLineInput
	DriverID     string // optional initial assignment
}

// UpdateStatusInput carries a status-transition command. DriverID, when
// non-nil, reassigns the shipment in the same atomic command (empty string
// unassigns).
type UpdateStatusInput struct {
	ShipmentID string
	Status     string
	Note       string
	DriverID   *string
}

// ListShipmentsResult is returned by ListShipments.
type ListShipmentsResult struct {
	Items      []*domain.Shipment
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ShipmentService defines the registry use cases.
type ShipmentService interface {
	CreateShipment(ctx context.Context, actor Actor, input CreateShipmentInput) (*domain.Shipment, error)
	UpdateStatus(ctx context.Context, actor Actor, input UpdateStatusInput) (*domain.Shipment, error)
	DeleteShipment(ctx context.Context, actor Actor, shipmentID string) error
	// Track is an exact tracking-code lookup; absence is ErrShipmentNotFound,
	// never an authorization signal.
	Track(ctx context.Context, code string) (*domain.Shipment, error)
	ListShipments(ctx context.Context, actor Actor, filter ListShipmentsFilter) (*ListShipmentsResult, error)
}

// AssignmentService owns the shipment-to-driver relation.
type AssignmentService interface {
	// AssignDriver sets or clears (empty driverID) a shipment's driver.
	AssignDriver(ctx context.Context, actor Actor, shipmentID, driverID string) (*domain.Shipment, error)
	// DriverLoad is the count of a driver's non-terminal shipments.
	// Informational only: no capacity cap is enforced.
	DriverLoad(ctx context.Context, driverID string) (int64, error)
}
