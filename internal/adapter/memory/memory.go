// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"dietlog/internal/domain"
)

// DB implements an in-memory database storage. A single mutex guards all
// state; every read returns copies.
type DB struct {
	mu          sync.Mutex
	users       []domain.User
	sessions    map[string]domain.Session
	links       map[clientLink]time.Time
	profiles    map[int64]domain.Profile
	products    map[int64]domain.Product
	entries     []domain.LogEntry
	dishes      map[int64]domain.Dish
	plans       map[int64]domain.MealPlan
	weights     []domain.WeightEntry
	waterEvents []domain.WaterEvent

	userIDCounter       int64
	productIDCounter    int64
	entryIDCounter      int64
	dishIDCounter       int64
	ingredientIDCounter int64
	planIDCounter       int64
	planItemIDCounter   int64
	weightIDCounter     int64
	waterIDCounter      int64
}

type clientLink struct {
	dietitianID int64
	clientID    int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		sessions: make(map[string]domain.Session),
		links:    make(map[clientLink]time.Time),
		profiles: make(map[int64]domain.Profile),
		products: make(map[int64]domain.Product),
		dishes:   make(map[int64]domain.Dish),
		plans:    make(map[int64]domain.MealPlan),
	}
}

// Ensure interfaces are met.
var (
	_ domain.UserRepository    = (*DB)(nil)
	_ domain.ClientRepository  = (*DB)(nil)
	_ domain.ProfileRepository = (*DB)(nil)
	_ domain.ProductRepository = (*DB)(nil)
	_ domain.DiaryRepository   = (*DB)(nil)
	_ domain.DishRepository    = (*DB)(nil)
	_ domain.PlanRepository    = (*DB)(nil)
	_ domain.WeightRepository  = (*DB)(nil)
	_ domain.WaterRepository   = (*DB)(nil)
	_ domain.SessionRepository = (*SessionRepo)(nil)
)

// --- UserRepository ---

// GetByUsername retrieves a user by username.
func (db *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

// GetByID retrieves a user by ID.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if i := db.userIndex(id); i >= 0 {
		u := db.users[i]
		return &u, nil
	}
	return nil, nil
}

// Create creates a new user.
func (db *DB) Create(ctx context.Context, username, passwordHash string, role domain.Role) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return nil, errors.New("user already exists")
		}
	}

	db.userIDCounter++
	u := domain.User{
		ID:           db.userIDCounter,
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	db.users = append(db.users, u)
	return &u, nil
}

// Count returns the total number of users.
func (db *DB) Count(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users), nil
}

// ListUsers returns all users ordered by ID.
func (db *DB) ListUsers(ctx context.Context) ([]domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]domain.User, len(db.users))
	copy(out, db.users)
	return out, nil
}

// SetRole changes a user's role.
func (db *DB) SetRole(ctx context.Context, id int64, role domain.Role) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	i := db.userIndex(id)
	if i < 0 {
		return false, nil
	}
	db.users[i].Role = role
	return true, nil
}

// DeleteUser removes a user together with everything they own. Products
// they created stay in the catalog without a creator.
func (db *DB) DeleteUser(ctx context.Context, id int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	i := db.userIndex(id)
	if i < 0 {
		return false, nil
	}
	db.users = append(db.users[:i], db.users[i+1:]...)

	for token, s := range db.sessions {
		if s.UserID == id {
			delete(db.sessions, token)
		}
	}
	for l := range db.links {
		if l.dietitianID == id || l.clientID == id {
			delete(db.links, l)
		}
	}
	delete(db.profiles, id)
	for pid, p := range db.products {
		if p.CreatedBy == id {
			p.CreatedBy = 0
			db.products[pid] = p
		}
	}
	db.entries = filter(db.entries, func(e domain.LogEntry) bool { return e.UserID != id })
	db.weights = filter(db.weights, func(w domain.WeightEntry) bool { return w.UserID != id })
	db.waterEvents = filter(db.waterEvents, func(w domain.WaterEvent) bool { return w.UserID != id })
	for did, d := range db.dishes {
		if d.OwnerID == id {
			delete(db.dishes, did)
		}
	}
	for pid, p := range db.plans {
		if p.DietitianID == id || p.ClientID == id {
			delete(db.plans, pid)
		}
	}
	return true, nil
}

func (db *DB) userIndex(id int64) int {
	for i, u := range db.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

// --- ClientRepository ---

// LinkClient assigns clientID to dietitianID. Linking twice is a no-op.
func (db *DB) LinkClient(ctx context.Context, dietitianID, clientID int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	l := clientLink{dietitianID: dietitianID, clientID: clientID}
	if _, ok := db.links[l]; !ok {
		db.links[l] = time.Now().UTC()
	}
	return nil
}

// UnlinkClient removes an assignment.
func (db *DB) UnlinkClient(ctx context.Context, dietitianID, clientID int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	l := clientLink{dietitianID: dietitianID, clientID: clientID}
	if _, ok := db.links[l]; !ok {
		return false, nil
	}
	delete(db.links, l)
	return true, nil
}

// IsClient reports whether clientID is assigned to dietitianID.
func (db *DB) IsClient(ctx context.Context, dietitianID, clientID int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	_, ok := db.links[clientLink{dietitianID: dietitianID, clientID: clientID}]
	return ok, nil
}

// ListClients returns the clients of dietitianID ordered by username.
func (db *DB) ListClients(ctx context.Context, dietitianID int64) ([]domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var out []domain.User
	for l := range db.links {
		if l.dietitianID != dietitianID {
			continue
		}
		if i := db.userIndex(l.clientID); i >= 0 {
			out = append(out, db.users[i])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

// --- SessionRepository ---

// SessionRepo implements session persistence.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new session repository.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessions[token] = domain.Session{
		Token:     token,
		UserID:    userID,
		UserAgent: userAgent,
		IP:        ip,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.sessions[token]; ok {
		return &s, nil
	}
	return nil, nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := time.Now()
	for k, v := range r.db.sessions {
		if now.After(v.ExpiresAt) {
			delete(r.db.sessions, k)
		}
	}
	return nil
}

func filter[T any](in []T, keep func(T) bool) []T {
	out := in[:0]
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
