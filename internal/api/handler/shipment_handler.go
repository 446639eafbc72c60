package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/swiftroute/logistics-api/internal/core/ports"
)

// ShipmentHandler handles HTTP requests for shipment and assignment operations.
type ShipmentHandler struct {
	shipments   ports.ShipmentService
	assignments ports.AssignmentService
}

func NewShipmentHandler(shipments ports.ShipmentService, assignments ports.AssignmentService) *ShipmentHandler {
	return &ShipmentHandler{shipments: shipments, assignments: assignments}
}

// Create handles POST /v1/shipments.
//
// @Summary      Create a new shipment
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createShipmentRequest  true  "Shipment details"
// @Success      201   {object}  shipmentResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/shipments [post]
func (h *ShipmentHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createShipmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	manifest := make([]ports.ManifestLineInput, 0, len(req.Manifest))
	for _, line := range req.Manifest {
		manifest = append(manifest, ports.ManifestLineInput{ProductID: line.ProductID, Quantity: line.Quantity})
	}

	shipment, err := h.shipments.CreateShipment(c.Request().Context(), actor, ports.CreateShipmentInput{
		TrackingCode: req.TrackingCode,
		Origin:       req.Origin,
		Destination:  req.Destination,
		Manifest:     manifest,
		DriverID:     req.DriverID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toShipmentResponse(shipment))
}

// UpdateStatus handles PATCH /v1/shipments/:id/status.
//
// @Summary      Update a shipment's status
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Shipment id"
// @Param        body  body      updateStatusRequest  true  "New status, optional note and reassignment"
// @Success      200   {object}  shipmentResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/shipments/{id}/status [patch]
func (h *ShipmentHandler) UpdateStatus(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	shipment, err := h.shipments.UpdateStatus(c.Request().Context(), actor, ports.UpdateStatusInput{
		ShipmentID: c.Param("id"),
		Status:     req.Status,
		Note:       req.Note,
		DriverID:   req.DriverID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toShipmentResponse(shipment))
}

// Delete handles DELETE /v1/shipments/:id.
//
// @Summary      Delete a shipment
// @Tags         shipments
// @Security     BearerAuth
// @Param        id  path  string  true  "Shipment id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /v1/shipments/{id} [delete]
func (h *ShipmentHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.shipments.DeleteShipment(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Track handles GET /v1/shipments/track/:code.
//
// @Summary      Look up a shipment by tracking code
// @Tags         shipments
// @Produce      json
// @Security     BearerAuth
// @Param        code  path      string  true  "Tracking code (e.g. SHP-1001)"
// @Success      200   {object}  shipmentResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/shipments/track/{code} [get]
func (h *ShipmentHandler) Track(c echo.Context) error {
	if _, err := ctxActor(c); err != nil {
		return err
	}
	shipment, err := h.shipments.Track(c.Request().Context(), c.Param("code"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toShipmentResponse(shipment))
}

// List handles GET /v1/shipments.
//
// @Summary      List shipments
// @Tags         shipments
// @Produce      json
// @Security     BearerAuth
// @Param        status     query     string  false  "Filter by status"
// @Param        driver_id  query     string  false  "Filter by assigned driver"
// @Param        search     query     string  false  "Substring match on tracking code, origin, destination, driver name"
// @Param        date_from  query     string  false  "updated_at lower bound (RFC3339)"
// @Param        date_to    query     string  false  "updated_at upper bound (RFC3339)"
// @Param        page       query     int     false  "Page (1-based)"
// @Param        limit      query     int     false  "Page size (max 100)"
// @Success      200        {object}  listShipmentsResponse
// @Router       /v1/shipments [get]
func (h *ShipmentHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	filter := ports.ListShipmentsFilter{
		Status:   c.QueryParam("status"),
		DriverID: c.QueryParam("driver_id"),
		Search:   c.QueryParam("search"),
		Page:     queryInt(c, "page"),
		Limit:    queryInt(c, "limit"),
	}
	if from := c.QueryParam("date_from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date_from must be RFC3339")
		}
		filter.DateFrom = t
	}
	if to := c.QueryParam("date_to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date_to must be RFC3339")
		}
		filter.DateTo = t
	}

	result, err := h.shipments.ListShipments(c.Request().Context(), actor, filter)
	if err != nil {
		return err
	}

	data := make([]shipmentResponse, 0, len(result.Items))
	for _, s := range result.Items {
		data = append(data, toShipmentResponse(s))
	}
	return c.JSON(http.StatusOK, listShipmentsResponse{
		Data: data,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// Assign handles PATCH /v1/shipments/:id/driver.
//
// @Summary      Assign or unassign a shipment's driver
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Shipment id"
// @Param        body  body      assignDriverRequest  true  "Driver id (empty to unassign)"
// @Success      200   {object}  shipmentResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/shipments/{id}/driver [patch]
func (h *ShipmentHandler) Assign(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req assignDriverRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	shipment, err := h.assignments.AssignDriver(c.Request().Context(), actor, c.Param("id"), req.DriverID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toShipmentResponse(shipment))
}

// DriverLoad handles GET /v1/drivers/:id/load.
//
// @Summary      Current active-shipment count for a driver
// @Tags         drivers
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Driver id"
// @Success      200  {object}  driverLoadResponse
// @Router       /v1/drivers/{id}/load [get]
func (h *ShipmentHandler) DriverLoad(c echo.Context) error {
	if _, err := ctxActor(c); err != nil {
		return err
	}
	driverID := c.Param("id")
	count, err := h.assignments.DriverLoad(c.Request().Context(), driverID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, driverLoadResponse{DriverID: driverID, ActiveCount: count})
}

func queryInt(c echo.Context, name string) int {
	n, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return n
}
