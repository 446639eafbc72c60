package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/swiftroute/logistics-api/internal/core/domain"
	"github.com/swiftroute/logistics-api/internal/core/ports"
)

// ComplaintHandler handles HTTP requests for the complaint ledger.
type ComplaintHandler struct {
	service ports.ComplaintService
}

func NewComplaintHandler(service ports.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{service: service}
}

type fileComplaintRequest struct {
	Subject  string `json:"subject"  validate:"required"`
	Message  string `json:"message"  validate:"required"`
	Priority string `json:"priority" validate:"omitempty,oneof=low medium high"`
}

type updateComplaintRequest struct {
	Status string `json:"status" validate:"required"`
}

type complaintResponse struct {
	ID         string    `json:"id"`
	ReporterID string    `json:"reporter_id"`
	Subject    string    `json:"subject"`
	Message    string    `json:"message"`
	Status     string    `json:"status"`
	Priority   string    `json:"priority,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func toComplaintResponse(c *domain.Complaint) complaintResponse {
	return complaintResponse{
		ID:         c.ID,
		ReporterID: c.ReporterID,
		Subject:    c.Subject,
		Message:    c.Message,
		Status:     string(c.Status),
		Priority:   c.Priority,
		CreatedAt:  c.CreatedAt,
	}
}

// File handles POST /v1/complaints.
//
// @Summary      File a new complaint
// @Tags         complaints
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      fileComplaintRequest  true  "Complaint details"
// @Success      201   {object}  complaintResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/complaints [post]
func (h *ComplaintHandler) File(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req fileComplaintRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	complaint, err := h.service.FileComplaint(c.Request().Context(), actor, ports.FileComplaintInput{
		Subject:  req.Subject,
		Message:  req.Message,
		Priority: req.Priority,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toComplaintResponse(complaint))
}

// UpdateStatus handles PUT /v1/complaints/:id.
//
// @Summary      Advance a complaint's resolution status
// @Tags         complaints
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "Complaint id"
// @Param        body  body      updateComplaintRequest  true  "New status"
// @Success      200   {object}  complaintResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/complaints/{id} [put]
func (h *ComplaintHandler) UpdateStatus(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateComplaintRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	complaint, err := h.service.UpdateComplaintStatus(c.Request().Context(), actor, c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toComplaintResponse(complaint))
}

// Delete handles DELETE /v1/complaints/:id.
//
// @Summary      Delete a complaint
// @Tags         complaints
// @Security     BearerAuth
// @Param        id  path  string  true  "Complaint id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/complaints/{id} [delete]
func (h *ComplaintHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteComplaint(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// List handles GET /v1/complaints. Non-privileged actors only receive their
// own complaints.
//
// @Summary      List complaints
// @Tags         complaints
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status"
// @Success      200     {array}   complaintResponse
// @Router       /v1/complaints [get]
func (h *ComplaintHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	complaints, err := h.service.ListComplaints(c.Request().Context(), actor, c.QueryParam("status"))
	if err != nil {
		return err
	}

	resp := make([]complaintResponse, 0, len(complaints))
	for _, item := range complaints {
		resp = append(resp, toComplaintResponse(item))
	}
	return c.JSON(http.StatusOK, resp)
}
