package handler

import (
	"time"

	"github.com/swiftroute/logistics-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type manifestLineRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"   validate:"required,gte=1"`
}

type createShipmentRequest struct {
	TrackingCode string                `json:"tracking_code" validate:"required"`
	Origin       string                `json:"origin"        validate:"required"`
	Destination  string                `json:"destination"   validate:"required"`
	Manifest     []manifestLineRequest `json:"manifest"      validate:"required,min=1,dive"`
	DriverID     string                `json:"driver_id"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Note   string `json:"note"`
	// DriverID reassigns the shipment in the same command when present;
	// an explicit empty string unassigns.
	DriverID *string `json:"driver_id"`
}

type assignDriverRequest struct {
	DriverID string `json:"driver_id"`
}

// Response types are owned by the transport layer so the JSON contract is not
// coupled to internal domain changes.

type manifestLineResponse struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type shipmentResponse struct {
	ID           string                 `json:"id"`
	TrackingCode string                 `json:"tracking_code"`
	Origin       string                 `json:"origin"`
	Destination  string                 `json:"destination"`
	Status       string                 `json:"status"`
	DriverID     string                 `json:"driver_id,omitempty"`
	Manifest     []manifestLineResponse `json:"manifest"`
	StatusNote   string                 `json:"status_note,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

func toShipmentResponse(s *domain.Shipment) shipmentResponse {
	manifest := make([]manifestLineResponse, 0, len(s.Manifest))
	for _, line := range s.Manifest {
		manifest = append(manifest, manifestLineResponse{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	return shipmentResponse{
		ID:           s.ID,
		TrackingCode: s.TrackingCode,
		Origin:       s.Origin,
		Destination:  s.Destination,
		Status:       string(s.Status),
		DriverID:     s.DriverID,
		Manifest:     manifest,
		StatusNote:   s.StatusNote,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listShipmentsResponse struct {
	Data       []shipmentResponse `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

type driverLoadResponse struct {
	DriverID    string `json:"driver_id"`
	ActiveCount int64  `json:"active_count"`
}
