package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/swiftroute/logistics-api/internal/core/domain"
	"github.com/swiftroute/logistics-api/internal/core/ports"
)

// UserService covers directory administration beyond registration.
type UserService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// ListUsers returns the full directory. Any authenticated actor may list
// users; the client needs driver names to render assignments.
func (s *UserService) ListUsers(ctx context.Context, actor ports.Actor) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) UpdateUser(ctx context.Context, actor ports.Actor, userID string, input ports.UpdateUserInput) (*domain.User, error) {
	if !domain.Allowed(actor.Role, domain.ActionManageUsers) {
		return nil, domain.ErrNotAuthorized
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Status != nil {
		status := domain.DriverStatus(*input.Status)
		switch status {
		case domain.DriverActive, domain.DriverOnDelivery, domain.DriverOffline:
			user.Status = status
		default:
			return nil, fmt.Errorf("invalid driver status %q", *input.Status)
		}
	}
	if input.OnTimeRate != nil {
		user.Performance.OnTimeRate = *input.OnTimeRate
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, actor ports.Actor, userID string) error {
	if !domain.Allowed(actor.Role, domain.ActionManageUsers) {
		return domain.ErrNotAuthorized
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", userID).Str("actor", actor.ID).Msg("user deleted")
	return nil
}
