package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/swiftroute/logistics-api/internal/core/domain"
	"github.com/swiftroute/logistics-api/internal/core/ports"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	service ports.AuthService
}

func NewAuthHandler(service ports.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

type registerRequest struct {
	Name       string `json:"name"        validate:"required"`
	Email      string `json:"email"       validate:"omitempty,email"`
	Password   string `json:"password"    validate:"required,min=8"`
	Role       string `json:"role"        validate:"required,oneof=admin manager driver staff"`
	DriverCode string `json:"driver_code" validate:"required_if=Role driver"`
	Phone      string `json:"phone"`
}

type loginRequest struct {
	// Identifier is an email address or a driver code.
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password"   validate:"required"`
}

type userResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Email       string             `json:"email,omitempty"`
	Role        string             `json:"role"`
	DriverCode  string             `json:"driver_code,omitempty"`
	Phone       string             `json:"phone,omitempty"`
	Status      string             `json:"status,omitempty"`
	Performance domain.Performance `json:"performance"`
	CreatedAt   time.Time          `json:"created_at"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		DriverCode:  u.DriverCode,
		Phone:       u.Phone,
		Status:      string(u.Status),
		Performance: u.Performance,
		CreatedAt:   u.CreatedAt,
	}
}

// Register handles POST /auth/register.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User details"
// @Success      201   {object}  userResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.Register(c.Request().Context(), ports.RegisterUserInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Role:       req.Role,
		DriverCode: req.DriverCode,
		Phone:      req.Phone,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Login handles POST /auth/login.
//
// @Summary      Log in with email or driver code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.service.Login(c.Request().Context(), req.Identifier, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loginResponse{Token: token, User: toUserResponse(user)})
}
