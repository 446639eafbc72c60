package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/swiftroute/logistics-api/internal/core/ports"
)

// AggregateHandler serves the derived dashboard counts.
type AggregateHandler struct {
	service ports.AggregateService
}

func NewAggregateHandler(service ports.AggregateService) *AggregateHandler {
	return &AggregateHandler{service: service}
}

// Get handles GET /v1/aggregates.
//
// @Summary      Dashboard aggregate counts
// @Tags         aggregates
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.Aggregates
// @Failure      403  {object}  errorResponse
// @Router       /v1/aggregates [get]
func (h *AggregateHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	agg, err := h.service.GetAggregates(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, agg)
}
