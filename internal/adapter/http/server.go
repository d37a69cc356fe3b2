package adapthttp

import (
	"log/slog"
	"net/http"

	"dietlog/internal/app"
	"dietlog/internal/domain"
)

// Services bundles the application services the adapter drives.
type Services struct {
	Auth     *app.AuthService
	Accounts *app.AccountService
	Profiles *app.ProfileService
	Catalog  *app.CatalogService
	Diary    *app.DiaryService
	Dishes   *app.DishService
	Progress *app.ProgressService
	Plans    *app.PlanService
	Clients  *app.ClientService
	Weight   *app.WeightService
	Water    *app.WaterService
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	svc        Services
	oidcConfig OIDCConfig
	log        *slog.Logger
	webDir     string

	disableAuth bool
	devUser     domain.User
}

// New creates a Server wired to the given application services.
func New(svc Services, webDir string, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{svc: svc, webDir: webDir, log: log}
}

// WithOIDC enables single sign-on through the given provider.
func (s *Server) WithOIDC(cfg OIDCConfig) *Server {
	s.oidcConfig = cfg
	return s
}

// WithoutAuth disables session checks and treats every request as user.
// Intended for local development and tests.
func (s *Server) WithoutAuth(user domain.User) *Server {
	s.disableAuth = true
	s.devUser = user
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.HandleFunc("POST /auth/login", s.handleLogin)
	api.HandleFunc("POST /auth/logout", s.handleLogout)
	api.HandleFunc("POST /auth/register", s.handleRegister)
	api.HandleFunc("POST /auth/setup", s.handleSetupUser)
	api.HandleFunc("GET /auth/config", s.handleConfig)
	api.HandleFunc("GET /auth/sso/login", s.handleSSOLogin)
	api.HandleFunc("GET /auth/sso/callback", s.handleSSOCallback)

	protected := func(pattern string, h http.HandlerFunc) {
		api.Handle(pattern, s.authMiddleware(h))
	}

	protected("GET /auth/me", s.handleMe)

	protected("GET /profile", s.handleProfileGet)
	protected("PUT /profile", s.handleProfilePut)
	protected("POST /targets/preview", s.handleTargetsPreview)

	protected("GET /products", s.handleProductSearch)
	protected("POST /products", s.handleProductCreate)
	protected("GET /products/{id}", s.handleProductGet)
	protected("PUT /products/{id}", s.handleProductUpdate)
	protected("DELETE /products/{id}", s.handleProductDelete)

	protected("GET /dishes", s.handleDishList)
	protected("POST /dishes", s.handleDishCreate)
	protected("GET /dishes/{id}", s.handleDishGet)
	protected("DELETE /dishes/{id}", s.handleDishDelete)
	protected("POST /dishes/{id}/ingredients", s.handleDishAddIngredient)
	protected("DELETE /dishes/{id}/ingredients/{ingredientID}", s.handleDishRemoveIngredient)

	protected("GET /diary", s.handleDiaryDay)
	protected("POST /diary/product", s.handleDiaryLogProduct)
	protected("POST /diary/dish", s.handleDiaryLogDish)
	protected("DELETE /diary/{id}", s.handleDiaryDelete)

	protected("GET /progress/today", s.handleProgressToday)
	protected("GET /progress/day", s.handleProgressDay)
	protected("GET /progress/daily", s.handleProgressDaily)
	protected("GET /progress/body", s.handleProgressBody)

	protected("GET /clients", s.handleClientList)
	protected("POST /clients", s.handleClientAssign)
	protected("DELETE /clients/{id}", s.handleClientUnassign)
	protected("GET /clients/{id}/progress", s.handleClientProgress)

	protected("GET /plans", s.handlePlanList)
	protected("POST /plans", s.handlePlanCreate)
	protected("GET /plans/{id}", s.handlePlanGet)
	protected("POST /plans/{id}/items", s.handlePlanAddItem)
	protected("DELETE /plans/{id}/items/{itemID}", s.handlePlanRemoveItem)

	protected("GET /admin/users", s.handleAdminUsers)
	protected("PUT /admin/users/{id}/role", s.handleAdminSetRole)
	protected("DELETE /admin/users/{id}", s.handleAdminDeleteUser)

	protected("GET /weight/today", s.handleWeightToday)
	protected("PUT /weight/today", s.handleWeightPut)
	protected("GET /weight/recent", s.handleWeightRecent)
	protected("POST /weight/undo-last", s.handleWeightUndoLast)

	protected("GET /water/today", s.handleWaterToday)
	protected("POST /water/event", s.handleWaterEvent)
	protected("GET /water/recent", s.handleWaterRecent)
	protected("POST /water/undo-last", s.handleWaterUndoLast)

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.Handle("/", spaFromDisk(s.webDir))

	return s.loggingMiddleware(withNoCache(root))
}
