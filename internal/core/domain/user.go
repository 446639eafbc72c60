package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleDriver  = "driver"
	RoleStaff   = "staff"
)

// DriverStatus is a driver's operating state. It transitions implicitly:
// assignment marks the driver on_delivery, completing or losing the last
// active shipment frees them back to active.
type DriverStatus string

const (
	DriverActive     DriverStatus = "active"
	DriverOnDelivery DriverStatus = "on_delivery"
	DriverOffline    DriverStatus = "offline"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrDriverNotFound = errors.New("driver not found")
var ErrDriverRoleMismatch = errors.New("user is not a driver")

// ValidRole reports whether r names a known role.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleDriver, RoleStaff:
		return true
	}
	return false
}

// Performance holds a driver's running delivery counters.
type Performance struct {
	TotalDeliveries int     `json:"total_deliveries" bson:"total_deliveries"`
	OnTimeRate      float64 `json:"on_time_rate" bson:"on_time_rate"`
}

// User models an authenticated actor. Driver-specific fields (DriverCode,
// Phone, Status, Performance) are zero-valued for other roles.
type User struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email,omitempty"`
	PasswordHash string       `json:"-"`
	Role         string       `json:"role"`
	DriverCode   string       `json:"driver_code,omitempty"`
	Phone        string       `json:"phone,omitempty"`
	Status       DriverStatus `json:"status,omitempty"`
	Performance  Performance  `json:"performance"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// IsDriver reports whether the user may appear as a shipment's assigned driver.
func (u *User) IsDriver() bool {
	return u.Role == RoleDriver
}
