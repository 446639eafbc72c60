package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/swiftroute/logistics-api/internal/core/domain"
	"github.com/swiftroute/logistics-api/internal/core/ports"
)

type stubShipmentService struct {
	createFn func(ctx context.Context, actor ports.Actor, input ports.CreateShipmentInput) (*domain.Shipment, error)
	updateFn func(ctx context.Context, actor ports.Actor, input ports.UpdateStatusInput) (*domain.Shipment, error)
	listFn   func(ctx context.Context, actor ports.Actor, filter ports.ListShipmentsFilter) (*ports.ListShipmentsResult, error)
	trackFn  func(ctx context.Context, code string) (*domain.Shipment, error)
}

func (s *stubShipmentService) CreateShipment(ctx context.Context, actor ports.Actor, input ports.CreateShipmentInput) (*domain.Shipment, error) {
	return s.createFn(ctx, actor, input)
}

func (s *stubShipmentService) UpdateStatus(ctx context.Context, actor ports.Actor, input ports.UpdateStatusInput) (*domain.Shipment, error) {
	return s.updateFn(ctx, actor, input)
}

func (s *stubShipmentService) DeleteShipment(context.Context, ports.Actor, string) error {
	return nil
}

func (s *stubShipmentService) Track(ctx context.Context, code string) (*domain.Shipment, error) {
	return s.trackFn(ctx, code)
}

func (s *stubShipmentService) ListShipments(ctx context.Context, actor ports.Actor, filter ports.ListShipmentsFilter) (*ports.ListShipmentsResult, error) {
	return s.listFn(ctx, actor, filter)
}

type stubAssignmentService struct {
	assignFn func(ctx context.Context, actor ports.Actor, shipmentID, driverID string) (*domain.Shipment, error)
	loadFn   func(ctx context.Context, driverID string) (int64, error)
}

func (s *stubAssignmentService) AssignDriver(ctx context.Context, actor ports.Actor, shipmentID, driverID string) (*domain.Shipment, error) {
	return s.assignFn(ctx, actor, shipmentID, driverID)
}

func (s *stubAssignmentService) DriverLoad(ctx context.Context, driverID string) (int64, error) {
	return s.loadFn(ctx, driverID)
}

func withClaims(c echo.Context, userID, role string) echo.Context {
	c.Set("user_id", userID)
	c.Set("role", role)
	return c
}

func sampleShipment() *domain.Shipment {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Shipment{
		ID:           "shp_1",
		TrackingCode: "SHP-1001",
		Origin:       "Rotterdam",
		Destination:  "Hamburg",
		Status:       domain.StatusPending,
		Manifest:     []domain.ManifestLine{{ProductID: "prod_1", Quantity: 2}},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestShipmentHandler_Create_Success(t *testing.T) {
	stub := &stubShipmentService{
		createFn: func(_ context.Context, actor ports.Actor, input ports.CreateShipmentInput) (*domain.Shipment, error) {
			if actor.ID != "admin_1" || actor.Role != "admin" {
				t.Fatalf("unexpected actor: %+v", actor)
			}
			if input.TrackingCode != "SHP-1001" || len(input.Manifest) != 1 {
				t.Fatalf("unexpected input: %+v", input)
			}
			return sampleShipment(), nil
		},
	}
	h := NewShipmentHandler(stub, &stubAssignmentService{})

	c, rec := newTestContext(t, http.MethodPost, "/v1/shipments",
		`{"tracking_code":"SHP-1001","origin":"Rotterdam","destination":"Hamburg","manifest":[{"product_id":"prod_1","quantity":2}]}`)
	withClaims(c, "admin_1", "admin")

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["tracking_code"] != "SHP-1001" || resp["status"] != "pending" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestShipmentHandler_Create_EmptyManifestRejectedByValidation(t *testing.T) {
	stub := &stubShipmentService{
		createFn: func(_ context.Context, _ ports.Actor, _ ports.CreateShipmentInput) (*domain.Shipment, error) {
			t.Fatal("service must not be called for an empty manifest")
			return nil, nil
		},
	}
	h := NewShipmentHandler(stub, &stubAssignmentService{})

	c, _ := newTestContext(t, http.MethodPost, "/v1/shipments",
		`{"tracking_code":"SHP-1001","origin":"A","destination":"B","manifest":[]}`)
	withClaims(c, "admin_1", "admin")

	err := h.Create(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestShipmentHandler_Create_MissingClaims(t *testing.T) {
	h := NewShipmentHandler(&stubShipmentService{}, &stubAssignmentService{})

	c, _ := newTestContext(t, http.MethodPost, "/v1/shipments", `{}`)

	err := h.Create(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestShipmentHandler_UpdateStatus_PassesReassignment(t *testing.T) {
	var got ports.UpdateStatusInput
	stub := &stubShipmentService{
		updateFn: func(_ context.Context, _ ports.Actor, input ports.UpdateStatusInput) (*domain.Shipment, error) {
			got = input
			s := sampleShipment()
			s.Status = domain.StatusInTransit
			return s, nil
		},
	}
	h := NewShipmentHandler(stub, &stubAssignmentService{})

	c, rec := newTestContext(t, http.MethodPatch, "/v1/shipments/shp_1/status",
		`{"status":"in_transit","note":"on the road","driver_id":"driver_2"}`)
	c.SetParamNames("id")
	c.SetParamValues("shp_1")
	withClaims(c, "manager_1", "manager")

	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.ShipmentID != "shp_1" || got.Status != "in_transit" || got.Note != "on the road" {
		t.Fatalf("unexpected input: %+v", got)
	}
	if got.DriverID == nil || *got.DriverID != "driver_2" {
		t.Fatalf("reassignment must be passed through, got %v", got.DriverID)
	}
}

func TestShipmentHandler_UpdateStatus_AbsentDriverFieldStaysNil(t *testing.T) {
	var got ports.UpdateStatusInput
	stub := &stubShipmentService{
		updateFn: func(_ context.Context, _ ports.Actor, input ports.UpdateStatusInput) (*domain.Shipment, error) {
			got = input
			return sampleShipment(), nil
		},
	}
	h := NewShipmentHandler(stub, &stubAssignmentService{})

	c, _ := newTestContext(t, http.MethodPatch, "/v1/shipments/shp_1/status", `{"status":"shipped"}`)
	c.SetParamNames("id")
	c.SetParamValues("shp_1")
	withClaims(c, "manager_1", "manager")

	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	// No driver_id key means no reassignment, which is different from
	// "driver_id": "" (unassign).
	if got.DriverID != nil {
		t.Fatalf("expected nil DriverID, got %q", *got.DriverID)
	}
}

func TestShipmentHandler_List_ParsesQuery(t *testing.T) {
	var got ports.ListShipmentsFilter
	stub := &stubShipmentService{
		listFn: func(_ context.Context, _ ports.Actor, filter ports.ListShipmentsFilter) (*ports.ListShipmentsResult, error) {
			got = filter
			return &ports.ListShipmentsResult{
				Items: []*domain.Shipment{sampleShipment()},
				Total: 1, Page: 2, Limit: 5, TotalPages: 1,
			}, nil
		},
	}
	h := NewShipmentHandler(stub, &stubAssignmentService{})

	c, rec := newTestContext(t, http.MethodGet,
		"/v1/shipments?status=pending&search=rotterdam&page=2&limit=5&date_from=2026-03-01T00:00:00Z", "")
	withClaims(c, "manager_1", "manager")

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.Status != "pending" || got.Search != "rotterdam" || got.Page != 2 || got.Limit != 5 {
		t.Fatalf("unexpected filter: %+v", got)
	}
	if got.DateFrom.IsZero() {
		t.Error("date_from must be parsed")
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	pagination, ok := resp["pagination"].(map[string]any)
	if !ok || pagination["total"] != float64(1) {
		t.Fatalf("unexpected pagination: %+v", resp["pagination"])
	}
}

func TestShipmentHandler_List_BadDate(t *testing.T) {
	h := NewShipmentHandler(&stubShipmentService{}, &stubAssignmentService{})

	c, _ := newTestContext(t, http.MethodGet, "/v1/shipments?date_from=yesterday", "")
	withClaims(c, "manager_1", "manager")

	err := h.List(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestShipmentHandler_Track(t *testing.T) {
	stub := &stubShipmentService{
		trackFn: func(_ context.Context, code string) (*domain.Shipment, error) {
			if code != "SHP-1001" {
				return nil, domain.ErrShipmentNotFound
			}
			return sampleShipment(), nil
		},
	}
	h := NewShipmentHandler(stub, &stubAssignmentService{})

	c, rec := newTestContext(t, http.MethodGet, "/v1/shipments/track/SHP-1001", "")
	c.SetParamNames("code")
	c.SetParamValues("SHP-1001")
	withClaims(c, "staff_1", "staff")

	if err := h.Track(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestShipmentHandler_DriverLoad(t *testing.T) {
	assignments := &stubAssignmentService{
		loadFn: func(_ context.Context, driverID string) (int64, error) {
			if driverID != "driver_1" {
				t.Fatalf("unexpected driver id: %s", driverID)
			}
			return 3, nil
		},
	}
	h := NewShipmentHandler(&stubShipmentService{}, assignments)

	c, rec := newTestContext(t, http.MethodGet, "/v1/drivers/driver_1/load", "")
	c.SetParamNames("id")
	c.SetParamValues("driver_1")
	withClaims(c, "manager_1", "manager")

	if err := h.DriverLoad(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["active_count"] != float64(3) {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}
