package app

import (
	"context"
	"fmt"
	"log/slog"

	"dietlog/internal/domain"
)

// AccountService is the admin view over user accounts.
type AccountService struct {
	users domain.UserRepository
	log   *slog.Logger
}

// NewAccountService creates an AccountService.
func NewAccountService(users domain.UserRepository, log *slog.Logger) *AccountService {
	return &AccountService{users: users, log: loggerOrDefault(log)}
}

// List returns every account.
func (s *AccountService) List(ctx context.Context, actor domain.User) ([]domain.User, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	return s.users.ListUsers(ctx)
}

// SetRole changes the role of user id. Admins cannot demote themselves.
func (s *AccountService) SetRole(ctx context.Context, actor domain.User, id int64, role domain.Role) error {
	if actor.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	if !role.Valid() {
		return fmt.Errorf("%w: unknown role %q", domain.ErrValidation, role)
	}
	if id == actor.ID && role != domain.RoleAdmin {
		return fmt.Errorf("%w: cannot change your own role", domain.ErrValidation)
	}
	ok, err := s.users.SetRole(ctx, id, role)
	if err != nil {
		return fmt.Errorf("set role: %w", err)
	}
	if !ok {
		return domain.ErrNotFound
	}
	s.log.Info("role changed", "admin_id", actor.ID, "user_id", id, "role", string(role))
	return nil
}

// Delete removes user id and everything they own.
func (s *AccountService) Delete(ctx context.Context, actor domain.User, id int64) error {
	if actor.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	if id == actor.ID {
		return fmt.Errorf("%w: cannot delete your own account", domain.ErrValidation)
	}
	ok, err := s.users.DeleteUser(ctx, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if !ok {
		return domain.ErrNotFound
	}
	s.log.Info("user deleted", "admin_id", actor.ID, "user_id", id)
	return nil
}
