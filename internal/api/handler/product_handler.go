package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/swiftroute/logistics-api/internal/core/domain"
	"github.com/swiftroute/logistics-api/internal/core/ports"
)

// ProductHandler handles catalog administration.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

type productRequest struct {
	SKU          string  `json:"sku"           validate:"required"`
	Name         string  `json:"name"          validate:"required"`
	Category     string  `json:"category"`
	Stock        int     `json:"stock"         validate:"gte=0"`
	UnitPrice    float64 `json:"unit_price"    validate:"gte=0"`
	ReorderLevel int     `json:"reorder_level" validate:"gte=0"`
}

type productResponse struct {
	ID           string    `json:"id"`
	SKU          string    `json:"sku"`
	Name         string    `json:"name"`
	Category     string    `json:"category,omitempty"`
	Stock        int       `json:"stock"`
	UnitPrice    float64   `json:"unit_price"`
	ReorderLevel int       `json:"reorder_level"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Category:     p.Category,
		Stock:        p.Stock,
		UnitPrice:    p.UnitPrice,
		ReorderLevel: p.ReorderLevel,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (h *ProductHandler) bindInput(c echo.Context) (ports.ProductInput, error) {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return ports.ProductInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return ports.ProductInput{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return ports.ProductInput{
		SKU:          req.SKU,
		Name:         req.Name,
		Category:     req.Category,
		Stock:        req.Stock,
		UnitPrice:    req.UnitPrice,
		ReorderLevel: req.ReorderLevel,
	}, nil
}

// Create handles POST /v1/products.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product details"
// @Success      201   {object}  productResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	input, err := h.bindInput(c)
	if err != nil {
		return err
	}

	product, err := h.service.CreateProduct(c.Request().Context(), actor, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toProductResponse(product))
}

// List handles GET /v1/products.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  productResponse
// @Router       /v1/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	if _, err := ctxActor(c); err != nil {
		return err
	}
	products, err := h.service.ListProducts(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]productResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, toProductResponse(p))
	}
	return c.JSON(http.StatusOK, resp)
}

// GetBySKU handles GET /v1/products/sku/:sku.
//
// @Summary      Look up a product by SKU
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        sku  path      string  true  "SKU"
// @Success      200  {object}  productResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/products/sku/{sku} [get]
func (h *ProductHandler) GetBySKU(c echo.Context) error {
	if _, err := ctxActor(c); err != nil {
		return err
	}
	product, err := h.service.GetBySKU(c.Request().Context(), c.Param("sku"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(product))
}

// Update handles PUT /v1/products/:id.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Product id"
// @Param        body  body      productRequest  true  "Product details"
// @Success      200   {object}  productResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	input, err := h.bindInput(c)
	if err != nil {
		return err
	}

	product, err := h.service.UpdateProduct(c.Request().Context(), actor, c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(product))
}

// Delete handles DELETE /v1/products/:id.
//
// @Summary      Delete a product
// @Tags         products
// @Security     BearerAuth
// @Param        id  path  string  true  "Product id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteProduct(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
