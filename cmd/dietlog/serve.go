package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	adapthttp "dietlog/internal/adapter/http"
	"dietlog/internal/app"
	"dietlog/internal/config"
	"dietlog/internal/domain"

	"github.com/spf13/cobra"
)

const sessionCleanupInterval = time.Hour

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, app.NewLogger(cfg.Log))
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	st, err := openStore(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() { _ = st.close() }()

	svc := newServices(st, cfg, log)
	srv := adapthttp.New(svc, cfg.Server.WebDir, log)

	oidcCfg, err := adapthttp.NewOIDCConfig(ctx, cfg.Auth)
	if err != nil {
		return err
	}
	srv.WithOIDC(oidcCfg)

	if err := bootstrapAdmin(ctx, svc.Auth, cfg.Auth, log); err != nil {
		return err
	}
	if cfg.Auth.Disabled {
		dev, err := devUser(ctx, st.repo)
		if err != nil {
			return err
		}
		log.Warn("authentication disabled, all requests act as the dev admin")
		srv.WithoutAuth(*dev)
	}

	go cleanupSessions(ctx, svc.Auth, log)

	httpSrv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", cfg.Server.Addr, "sso", oidcCfg.Enabled)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func newServices(st *store, cfg *config.Config, log *slog.Logger) adapthttp.Services {
	repo := st.repo
	profiles := app.NewProfileService(repo, log)
	progress := app.NewProgressService(repo, repo, repo, profiles)
	return adapthttp.Services{
		Auth:     app.NewAuthService(repo, st.sessions, cfg.Auth.SessionTTL, log),
		Accounts: app.NewAccountService(repo, log),
		Profiles: profiles,
		Catalog:  app.NewCatalogService(repo, log),
		Diary:    app.NewDiaryService(repo, repo, repo, log),
		Dishes:   app.NewDishService(repo, repo, log),
		Progress: progress,
		Plans:    app.NewPlanService(repo, repo, repo, repo, profiles, log),
		Clients:  app.NewClientService(repo, repo, progress, log),
		Weight:   app.NewWeightService(repo, profiles, log),
		Water:    app.NewWaterService(repo),
	}
}

// bootstrapAdmin creates the configured admin account on an empty store.
func bootstrapAdmin(ctx context.Context, auth *app.AuthService, cfg config.AuthConfig, log *slog.Logger) error {
	if cfg.AdminUsername == "" {
		return nil
	}
	err := auth.CreateInitialUser(ctx, cfg.AdminUsername, cfg.AdminPassword)
	if errors.Is(err, app.ErrAlreadySetUp) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	log.Info("bootstrap admin created", "username", cfg.AdminUsername)
	return nil
}

func devUser(ctx context.Context, users domain.UserRepository) (*domain.User, error) {
	const name = "dev"
	u, err := users.GetByUsername(ctx, name)
	if err != nil || u != nil {
		return u, err
	}
	return users.Create(ctx, name, "", domain.RoleAdmin)
}

func cleanupSessions(ctx context.Context, auth *app.AuthService, log *slog.Logger) {
	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := auth.CleanupExpired(ctx); err != nil {
				log.Warn("session cleanup failed", "error", err)
			}
		}
	}
}
