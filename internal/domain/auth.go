// Package domain contains the core business entities, the nutrition
// formulas and the repository ports.
package domain

import (
	"context"
	"time"
)

// Role controls which operations a user may perform.
type Role string

const (
	RoleUser      Role = "user"
	RoleDietitian Role = "dietitian"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleDietitian || r == RoleAdmin
}

// User represents an authenticated user in the system.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Session represents an active user session.
type Session struct {
	Token     string
	UserID    int64
	UserAgent string
	IP        string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// UserRepository defines the port for user persistence operations.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	Create(ctx context.Context, username, passwordHash string, role Role) (*User, error)
	Count(ctx context.Context) (int, error)
	ListUsers(ctx context.Context) ([]User, error)
	SetRole(ctx context.Context, id int64, role Role) (bool, error)
	DeleteUser(ctx context.Context, id int64) (bool, error)
}

// SessionRepository defines the port for session persistence operations.
type SessionRepository interface {
	Create(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error
	GetByToken(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) error
}

// ClientRepository is the port for dietitian-client assignments.
type ClientRepository interface {
	LinkClient(ctx context.Context, dietitianID, clientID int64) error
	UnlinkClient(ctx context.Context, dietitianID, clientID int64) (bool, error)
	IsClient(ctx context.Context, dietitianID, clientID int64) (bool, error)
	ListClients(ctx context.Context, dietitianID int64) ([]User, error)
}
