package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"dietlog/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	getByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	getByIDFn       func(ctx context.Context, id int64) (*domain.User, error)
	createFn        func(ctx context.Context, username, passwordHash string, role domain.Role) (*domain.User, error)
	countFn         func(ctx context.Context) (int, error)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) Create(ctx context.Context, username, passwordHash string, role domain.Role) (*domain.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, username, passwordHash, role)
	}
	return &domain.User{ID: 1, Username: username, PasswordHash: passwordHash, Role: role}, nil
}

func (m *mockUserRepo) Count(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

func (m *mockUserRepo) ListUsers(context.Context) ([]domain.User, error) { return nil, nil }

func (m *mockUserRepo) SetRole(context.Context, int64, domain.Role) (bool, error) { return false, nil }

func (m *mockUserRepo) DeleteUser(context.Context, int64) (bool, error) { return false, nil }

type mockSessionRepo struct {
	createFn        func(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error
	getByTokenFn    func(ctx context.Context, token string) (*domain.Session, error)
	deleteFn        func(ctx context.Context, token string) error
	deleteExpiredFn func(ctx context.Context) error
}

func (m *mockSessionRepo) Create(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
	if m.createFn != nil {
		return m.createFn(ctx, userID, token, userAgent, ip, expiresAt)
	}
	return nil
}

func (m *mockSessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	if m.getByTokenFn != nil {
		return m.getByTokenFn(ctx, token)
	}
	return nil, nil
}

func (m *mockSessionRepo) Delete(ctx context.Context, token string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, token)
	}
	return nil
}

func (m *mockSessionRepo) DeleteExpired(ctx context.Context) error {
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn(ctx)
	}
	return nil
}

func TestAuthService_Login_Success(t *testing.T) {
	ctx := context.Background()
	password := "testpass123"
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)

	users := &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: 1, Username: "testuser", PasswordHash: string(hash)}, nil
		},
	}

	var gotExpiry time.Time
	sessions := &mockSessionRepo{
		createFn: func(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
			assert.Equal(t, int64(1), userID)
			assert.NotEmpty(t, token)
			assert.Equal(t, "agent", userAgent)
			assert.Equal(t, "10.0.0.1", ip)
			gotExpiry = expiresAt
			return nil
		},
	}

	svc := NewAuthService(users, sessions, 2*time.Hour, nil)
	token, err := svc.Login(ctx, "testuser", password, "agent", "10.0.0.1")

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), gotExpiry, time.Minute)
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correctpass"), bcrypt.MinCost)
	users := &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: 1, Username: "testuser", PasswordHash: string(hash)}, nil
		},
	}
	svc := NewAuthService(users, &mockSessionRepo{}, 0, nil)

	_, err := svc.Login(context.Background(), "testuser", "wrongpass", "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownOrSSOUser(t *testing.T) {
	ctx := context.Background()

	svc := NewAuthService(&mockUserRepo{}, &mockSessionRepo{}, 0, nil)
	_, err := svc.Login(ctx, "ghost", "whatever1", "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	sso := &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: 3, Username: username}, nil
		},
	}
	svc = NewAuthService(sso, &mockSessionRepo{}, 0, nil)
	_, err = svc.Login(ctx, "ssouser", "", "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials, "password login is closed for SSO accounts")
}

func TestAuthService_ValidateSession_Valid(t *testing.T) {
	sessions := &mockSessionRepo{
		getByTokenFn: func(ctx context.Context, tok string) (*domain.Session, error) {
			return &domain.Session{Token: tok, UserID: 1, UserAgent: "ua", ExpiresAt: time.Now().Add(time.Hour)}, nil
		},
	}
	users := &mockUserRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.User, error) {
			return &domain.User{ID: 1, Username: "testuser", Role: domain.RoleUser}, nil
		},
	}

	svc := NewAuthService(users, sessions, 0, nil)
	user, err := svc.ValidateSession(context.Background(), "validtoken", "ua")

	require.NoError(t, err)
	assert.Equal(t, "testuser", user.Username)
}

func TestAuthService_ValidateSession_Rejections(t *testing.T) {
	tests := []struct {
		name        string
		session     *domain.Session
		userAgent   string
		want        error
		wantDeleted bool
	}{
		{"missing", nil, "ua", ErrSessionNotFound, false},
		{"expired", &domain.Session{UserID: 1, UserAgent: "ua", ExpiresAt: time.Now().Add(-time.Hour)}, "ua", ErrSessionExpired, true},
		{"other agent", &domain.Session{UserID: 1, UserAgent: "ua", ExpiresAt: time.Now().Add(time.Hour)}, "curl", ErrSessionExpired, true},
		{"deleted user", &domain.Session{UserID: 9, UserAgent: "ua", ExpiresAt: time.Now().Add(time.Hour)}, "ua", ErrUserNotFound, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			deleted := false
			sessions := &mockSessionRepo{
				getByTokenFn: func(ctx context.Context, tok string) (*domain.Session, error) { return tc.session, nil },
				deleteFn: func(ctx context.Context, tok string) error {
					deleted = true
					return nil
				},
			}
			svc := NewAuthService(&mockUserRepo{}, sessions, 0, nil)

			_, err := svc.ValidateSession(context.Background(), "tok", tc.userAgent)
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, tc.wantDeleted, deleted)
		})
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	var gotRole domain.Role
	users := &mockUserRepo{
		createFn: func(ctx context.Context, username, passwordHash string, role domain.Role) (*domain.User, error) {
			gotRole = role
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte("longenough")))
			return &domain.User{ID: 5, Username: username, Role: role}, nil
		},
	}
	svc := NewAuthService(users, &mockSessionRepo{}, 0, nil)

	u, err := svc.Register(ctx, "  carol ", "longenough")
	require.NoError(t, err)
	assert.Equal(t, "carol", u.Username)
	assert.Equal(t, domain.RoleUser, gotRole)

	_, err = svc.Register(ctx, "carol", "short")
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = svc.Register(ctx, "   ", "longenough")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAuthService_Register_Taken(t *testing.T) {
	users := &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: 1, Username: username}, nil
		},
	}
	svc := NewAuthService(users, &mockSessionRepo{}, 0, nil)

	_, err := svc.Register(context.Background(), "carol", "longenough")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAuthService_CreateInitialUser_Success(t *testing.T) {
	users := &mockUserRepo{
		countFn: func(ctx context.Context) (int, error) { return 0, nil },
		createFn: func(ctx context.Context, username, passwordHash string, role domain.Role) (*domain.User, error) {
			assert.Equal(t, "admin", username)
			assert.NotEmpty(t, passwordHash)
			assert.Equal(t, domain.RoleAdmin, role)
			return &domain.User{ID: 1, Username: username, Role: role}, nil
		},
	}
	svc := NewAuthService(users, &mockSessionRepo{}, 0, nil)

	require.NoError(t, svc.CreateInitialUser(context.Background(), "admin", "password123"))
}

func TestAuthService_CreateInitialUser_UsersExist(t *testing.T) {
	users := &mockUserRepo{
		countFn: func(ctx context.Context) (int, error) { return 1, nil },
	}
	svc := NewAuthService(users, &mockSessionRepo{}, 0, nil)

	err := svc.CreateInitialUser(context.Background(), "admin", "password123")
	assert.ErrorIs(t, err, ErrAlreadySetUp)

	needs, err := svc.NeedsSetup(context.Background())
	require.NoError(t, err)
	assert.False(t, needs)
}

func TestAuthService_LoginWithUser_ExistingUser(t *testing.T) {
	created := false
	users := &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: 1, Username: "ssouser"}, nil
		},
		createFn: func(ctx context.Context, username, passwordHash string, role domain.Role) (*domain.User, error) {
			created = true
			return nil, errors.New("unexpected")
		},
	}
	svc := NewAuthService(users, &mockSessionRepo{}, 0, nil)

	token, err := svc.LoginWithUser(context.Background(), "ssouser", "ua", "")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.False(t, created)
}

func TestAuthService_LoginWithUser_Provisions(t *testing.T) {
	var sessionUser int64
	users := &mockUserRepo{
		createFn: func(ctx context.Context, username, passwordHash string, role domain.Role) (*domain.User, error) {
			assert.Empty(t, passwordHash)
			assert.Equal(t, domain.RoleUser, role)
			return &domain.User{ID: 2, Username: username, Role: role}, nil
		},
	}
	sessions := &mockSessionRepo{
		createFn: func(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
			sessionUser = userID
			return nil
		},
	}
	svc := NewAuthService(users, sessions, 0, nil)

	_, err := svc.LoginWithUser(context.Background(), "newssouser", "ua", "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), sessionUser)
}

func TestAuthService_CleanupExpired(t *testing.T) {
	called := false
	sessions := &mockSessionRepo{
		deleteExpiredFn: func(ctx context.Context) error {
			called = true
			return nil
		},
	}
	svc := NewAuthService(&mockUserRepo{}, sessions, 0, nil)

	require.NoError(t, svc.CleanupExpired(context.Background()))
	assert.True(t, called)
	assert.Equal(t, 24*time.Hour, svc.SessionTTL())
}
