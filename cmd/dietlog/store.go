package main

import (
	"context"
	"fmt"
	"log/slog"

	"dietlog/internal/adapter/memory"
	"dietlog/internal/adapter/postgres"
	"dietlog/internal/config"
	"dietlog/internal/domain"
)

// repository is implemented by both storage adapters.
type repository interface {
	domain.UserRepository
	domain.ClientRepository
	domain.ProfileRepository
	domain.ProductRepository
	domain.DiaryRepository
	domain.DishRepository
	domain.PlanRepository
	domain.WeightRepository
	domain.WaterRepository
}

type store struct {
	repo     repository
	sessions domain.SessionRepository
	close    func() error
}

// openStore connects to PostgreSQL, or falls back to the in-memory store
// when no database URL is configured.
func openStore(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*store, error) {
	if cfg.UseMemory() {
		log.Warn("DATABASE_URL not set, using in-memory store; data is lost on exit")
		db := memory.New()
		return &store{repo: db, sessions: db.NewSessionRepo(), close: func() error { return nil }}, nil
	}

	db, err := postgres.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	log.Info("database ready")
	return &store{repo: db, sessions: postgres.NewSessionRepo(db), close: db.Close}, nil
}
