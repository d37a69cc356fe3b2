package app_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"dietlog/internal/adapter/memory"
	"dietlog/internal/app"
	"dietlog/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), append([]any{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}

type fixture struct {
	db       *memory.DB
	profiles *app.ProfileService
	catalog  *app.CatalogService
	diary    *app.DiaryService
	dishes   *app.DishService
	progress *app.ProgressService
	plans    *app.PlanService
	clients  *app.ClientService
	accounts *app.AccountService
	weights  *app.WeightService
	water    *app.WaterService
}

func newFixture() *fixture {
	db := memory.New()
	profiles := app.NewProfileService(db, quiet)
	progress := app.NewProgressService(db, db, db, profiles)
	return &fixture{
		db:       db,
		profiles: profiles,
		catalog:  app.NewCatalogService(db, quiet),
		diary:    app.NewDiaryService(db, db, db, quiet),
		dishes:   app.NewDishService(db, db, quiet),
		progress: progress,
		plans:    app.NewPlanService(db, db, db, db, profiles, quiet),
		clients:  app.NewClientService(db, db, progress, quiet),
		accounts: app.NewAccountService(db, quiet),
		weights:  app.NewWeightService(db, profiles, quiet),
		water:    app.NewWaterService(db),
	}
}

func (f *fixture) user(t *testing.T, name string, role domain.Role) domain.User {
	t.Helper()
	u, err := f.db.Create(context.Background(), name, "", role)
	require.NoError(t, err)
	return *u
}

func (f *fixture) product(t *testing.T, owner domain.User, name string, kcal, protein, fat, carbs string) *domain.Product {
	t.Helper()
	p, err := f.catalog.Create(context.Background(), owner, app.ProductInput{
		Name: name,
		Per100: domain.Nutrients{
			Calories: dec(kcal),
			Protein:  dec(protein),
			Fat:      dec(fat),
			Carbs:    dec(carbs),
		},
	})
	require.NoError(t, err)
	return p
}

// maleMaintenance yields 2759.00 kcal / 206.92 P / 76.64 F / 310.39 C.
func maleMaintenance() app.ProfileInput {
	return app.ProfileInput{
		WeightKg: dec("80"),
		HeightCm: dec("180"),
		Age:      30,
		Sex:      domain.SexMale,
		Activity: domain.ActivityMedium,
		Goal:     domain.GoalMaintenance,
	}
}
