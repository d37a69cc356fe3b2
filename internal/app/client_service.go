package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"dietlog/internal/domain"
)

// ClientService manages the clients assigned to a dietitian.
type ClientService struct {
	users    domain.UserRepository
	clients  domain.ClientRepository
	progress *ProgressService
	log      *slog.Logger
}

// NewClientService creates a ClientService.
func NewClientService(users domain.UserRepository, clients domain.ClientRepository, progress *ProgressService, log *slog.Logger) *ClientService {
	return &ClientService{users: users, clients: clients, progress: progress, log: loggerOrDefault(log)}
}

// Assign links the user named clientUsername to actor.
func (s *ClientService) Assign(ctx context.Context, actor domain.User, clientUsername string) (*domain.User, error) {
	if err := requireDietitian(actor); err != nil {
		return nil, err
	}
	client, err := s.users.GetByUsername(ctx, strings.TrimSpace(clientUsername))
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if client.ID == actor.ID {
		return nil, fmt.Errorf("%w: cannot assign yourself as a client", domain.ErrValidation)
	}
	if err := s.clients.LinkClient(ctx, actor.ID, client.ID); err != nil {
		return nil, fmt.Errorf("link client: %w", err)
	}
	s.log.Info("client assigned", "dietitian_id", actor.ID, "client_id", client.ID)
	return client, nil
}

// Unassign removes the link between actor and clientID.
func (s *ClientService) Unassign(ctx context.Context, actor domain.User, clientID int64) error {
	if err := requireDietitian(actor); err != nil {
		return err
	}
	ok, err := s.clients.UnlinkClient(ctx, actor.ID, clientID)
	if err != nil {
		return fmt.Errorf("unlink client: %w", err)
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// List returns actor's clients.
func (s *ClientService) List(ctx context.Context, actor domain.User) ([]domain.User, error) {
	if err := requireDietitian(actor); err != nil {
		return nil, err
	}
	return s.clients.ListClients(ctx, actor.ID)
}

// Progress returns a client's snapshot for day. Only a linked dietitian or
// an admin may read it.
func (s *ClientService) Progress(ctx context.Context, actor domain.User, clientID int64, day string) (domain.ProgressSnapshot, error) {
	if err := authorizeClient(ctx, s.clients, actor, clientID); err != nil {
		return domain.ProgressSnapshot{}, err
	}
	return s.progress.Day(ctx, clientID, day)
}

func requireDietitian(actor domain.User) error {
	if actor.Role != domain.RoleDietitian && actor.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	return nil
}
