package domain

import (
	"errors"
	"time"
)

// ShipmentStatus represents the lifecycle state of a shipment.
type ShipmentStatus string

const (
	StatusPending        ShipmentStatus = "pending"
	StatusShipped        ShipmentStatus = "shipped"
	StatusInTransit      ShipmentStatus = "in_transit"
	StatusOutForDelivery ShipmentStatus = "out_for_delivery"
	StatusDelivered      ShipmentStatus = "delivered"
	StatusCancelled      ShipmentStatus = "cancelled"
)

// statusRank orders the forward progression of the delivery phases. The
// registry does not reject backward moves (drivers may correct a mistaken
// update) but uses the rank to detect and log them.
var statusRank = map[ShipmentStatus]int{
	StatusPending:        0,
	StatusShipped:        1,
	StatusInTransit:      2,
	StatusOutForDelivery: 3,
	StatusDelivered:      4,
}

var ErrShipmentNotFound = errors.New("shipment not found")
var ErrDuplicateTrackingCode = errors.New("tracking code already exists")
var ErrEmptyManifest = errors.New("manifest is empty")
var ErrInvalidQuantity = errors.New("manifest quantity must be at least 1")
var ErrUnknownProduct = errors.New("unknown product in manifest")
var ErrInvalidStatus = errors.New("invalid shipment status")
var ErrActiveAssignment = errors.New("shipment has an active assignment")
var ErrNotAuthorized = errors.New("not authorized")

// IsValid reports whether s is a member of the status enum.
func (s ShipmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusShipped, StatusInTransit, StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether s ends the shipment lifecycle.
func (s ShipmentStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// IsActive reports whether a delivery is underway. Deleting a shipment in an
// active phase is blocked so an in-flight delivery is never orphaned.
func (s ShipmentStatus) IsActive() bool {
	return s == StatusShipped || s == StatusInTransit || s == StatusOutForDelivery
}

// IsBackwardMove reports whether moving from s to next steps back to an
// earlier delivery phase. Cancellation is never a backward move.
func (s ShipmentStatus) IsBackwardMove(next ShipmentStatus) bool {
	if next == StatusCancelled {
		return false
	}
	from, okFrom := statusRank[s]
	to, okTo := statusRank[next]
	return okFrom && okTo && to < from
}

// ManifestLine is a single (product, quantity) entry on a shipment.
type ManifestLine struct {
	ProductID string `json:"product_id" bson:"product_id"`
	Quantity  int    `json:"quantity" bson:"quantity"`
}

// Shipment is the core aggregate root of the registry. StatusNote holds only
// the latest transition note; history is not retained.
type Shipment struct {
	ID           string         `json:"id" bson:"_id,omitempty"`
	TrackingCode string         `json:"tracking_code" bson:"tracking_code"`
	Origin       string         `json:"origin" bson:"origin"`
	Destination  string         `json:"destination" bson:"destination"`
	Status       ShipmentStatus `json:"status" bson:"status"`
	DriverID     string         `json:"driver_id,omitempty" bson:"driver_id,omitempty"`
	Manifest     []ManifestLine `json:"manifest" bson:"manifest"`
	StatusNote   string         `json:"status_note,omitempty" bson:"status_note,omitempty"`
	CreatedAt    time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" bson:"updated_at"`
}
