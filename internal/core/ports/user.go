package ports

import (
	"context"

	"github.com/swiftroute/logistics-api/internal/core/domain"
)

// UserRepository is the identity directory: it resolves user references,
// roles, and driver records.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByDriverCode(ctx context.Context, code string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// SearchDriverIDs returns ids of drivers whose name contains the given
	// substring (case-insensitive). Used by the shipment free-text search.
	SearchDriverIDs(ctx context.Context, name string) ([]string, error)
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id string) error
}

// RegisterUserInput carries a new user registration.
type RegisterUserInput struct {
	Name       string
	Email      string
	Password   string
	Role       string
	DriverCode string // required for drivers
	Phone      string
}

// UpdateUserInput carries an admin edit of an existing user. Nil fields are
// left unchanged.
type UpdateUserInput struct {
	Name       *string
	Phone      *string
	Status     *string
	OnTimeRate *float64
}

// AuthService handles registration and login.
type AuthService interface {
	Register(ctx context.Context, input RegisterUserInput) (*domain.User, error)
	// Login accepts an email or a driver code as identifier and returns a
	// signed token plus the authenticated user.
	Login(ctx context.Context, identifier, password string) (string, *domain.User, error)
}

// UserService covers directory administration.
type UserService interface {
	ListUsers(ctx context.Context, actor Actor) ([]*domain.User, error)
	UpdateUser(ctx context.Context, actor Actor, userID string, input UpdateUserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, actor Actor, userID string) error
}
