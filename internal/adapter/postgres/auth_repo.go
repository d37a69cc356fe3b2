package postgres

import (
	"context"
	"time"

	"dietlog/internal/domain"

	sq "github.com/Masterminds/squirrel"
)

var userColumns = []string{"id", "username", "password_hash", "role", "created_at"}

func (d *DB) getUser(ctx context.Context, where sq.Eq) (*domain.User, error) {
	var u domain.User
	ok, err := d.scanOne(ctx,
		d.sb.Select(userColumns...).From("users").Where(where),
		&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt,
	)
	if err != nil || !ok {
		return nil, err
	}
	return &u, nil
}

// GetByUsername retrieves a user by username.
func (d *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return d.getUser(ctx, sq.Eq{"username": username})
}

// GetByID retrieves a user by ID.
func (d *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return d.getUser(ctx, sq.Eq{"id": id})
}

// Create creates a new user.
func (d *DB) Create(ctx context.Context, username, passwordHash string, role domain.Role) (*domain.User, error) {
	var u domain.User
	_, err := d.scanOne(ctx,
		d.sb.Insert("users").
			Columns("username", "password_hash", "role", "created_at").
			Values(username, passwordHash, string(role), time.Now().UTC()).
			Suffix("RETURNING id, username, password_hash, role, created_at"),
		&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Count returns the total number of users.
func (d *DB) Count(ctx context.Context) (int, error) {
	var count int
	_, err := d.scanOne(ctx, d.sb.Select("COUNT(*)").From("users"), &count)
	return count, err
}

// ListUsers returns all users ordered by ID.
func (d *DB) ListUsers(ctx context.Context) ([]domain.User, error) {
	return d.listUsers(ctx, d.sb.Select(userColumns...).From("users").OrderBy("id"))
}

func (d *DB) listUsers(ctx context.Context, q sq.SelectBuilder) ([]domain.User, error) {
	rows, err := d.query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.User, 0)
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// SetRole changes a user's role.
func (d *DB) SetRole(ctx context.Context, id int64, role domain.Role) (bool, error) {
	n, err := d.exec(ctx, d.sb.Update("users").Set("role", string(role)).Where(sq.Eq{"id": id}))
	return n > 0, err
}

// DeleteUser removes a user; owned rows cascade.
func (d *DB) DeleteUser(ctx context.Context, id int64) (bool, error) {
	n, err := d.exec(ctx, d.sb.Delete("users").Where(sq.Eq{"id": id}))
	return n > 0, err
}

// LinkClient assigns clientID to dietitianID. Linking twice is a no-op.
func (d *DB) LinkClient(ctx context.Context, dietitianID, clientID int64) error {
	_, err := d.exec(ctx, d.sb.Insert("client_links").
		Columns("dietitian_id", "client_id", "created_at").
		Values(dietitianID, clientID, time.Now().UTC()).
		Suffix("ON CONFLICT (dietitian_id, client_id) DO NOTHING"))
	return err
}

// UnlinkClient removes an assignment.
func (d *DB) UnlinkClient(ctx context.Context, dietitianID, clientID int64) (bool, error) {
	n, err := d.exec(ctx, d.sb.Delete("client_links").
		Where(sq.Eq{"dietitian_id": dietitianID, "client_id": clientID}))
	return n > 0, err
}

// IsClient reports whether clientID is assigned to dietitianID.
func (d *DB) IsClient(ctx context.Context, dietitianID, clientID int64) (bool, error) {
	var one int
	return d.scanOne(ctx, d.sb.Select("1").From("client_links").
		Where(sq.Eq{"dietitian_id": dietitianID, "client_id": clientID}), &one)
}

// ListClients returns the clients of dietitianID ordered by username.
func (d *DB) ListClients(ctx context.Context, dietitianID int64) ([]domain.User, error) {
	return d.listUsers(ctx, d.sb.Select("u.id", "u.username", "u.password_hash", "u.role", "u.created_at").
		From("users u").
		Join("client_links l ON l.client_id = u.id").
		Where(sq.Eq{"l.dietitian_id": dietitianID}).
		OrderBy("u.username"))
}

// SessionRepo implements session repository operations on DB.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo wraps a DB as a SessionRepository.
func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
	_, err := r.db.exec(ctx, r.db.sb.Insert("sessions").
		Columns("token", "user_id", "user_agent", "ip", "expires_at", "created_at").
		Values(token, userID, userAgent, ip, expiresAt.UTC(), time.Now().UTC()))
	return err
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	var s domain.Session
	ok, err := r.db.scanOne(ctx,
		r.db.sb.Select("token", "user_id", "user_agent", "ip", "expires_at", "created_at").
			From("sessions").Where(sq.Eq{"token": token}),
		&s.Token, &s.UserID, &s.UserAgent, &s.IP, &s.ExpiresAt, &s.CreatedAt,
	)
	if err != nil || !ok {
		return nil, err
	}
	return &s, nil
}

// Delete deletes a session by token.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	_, err := r.db.exec(ctx, r.db.sb.Delete("sessions").Where(sq.Eq{"token": token}))
	return err
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	_, err := r.db.exec(ctx, r.db.sb.Delete("sessions").Where(sq.Lt{"expires_at": time.Now().UTC()}))
	return err
}
