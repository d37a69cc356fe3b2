package app_test

import (
	"context"
	"testing"
	"time"

	"dietlog/internal/app"
	"dietlog/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_CreateValidates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.user(t, "alice", domain.RoleUser)

	_, err := f.catalog.Create(ctx, alice, app.ProductInput{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.catalog.Create(ctx, alice, app.ProductInput{Name: "Oil", Per100: domain.Nutrients{Fat: dec("-1")}})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.catalog.Create(ctx, alice, app.ProductInput{Name: "Oil", Per100: domain.Nutrients{Calories: dec("1e10")}})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.catalog.Create(ctx, alice, app.ProductInput{Name: "Oil", Per100: domain.Nutrients{Fat: dec("100.01")}})
	assert.ErrorIs(t, err, domain.ErrValidation)

	oil, err := f.catalog.Create(ctx, alice, app.ProductInput{Name: "Oil", Per100: domain.Nutrients{Calories: dec("884"), Fat: dec("100")}})
	require.NoError(t, err)
	_, err = f.diary.LogProduct(ctx, alice.ID, oil.ID, dec("100000.01"), domain.MealLunch, time.Time{})
	assert.ErrorIs(t, err, domain.ErrValidation)

	p, err := f.catalog.Create(ctx, alice, app.ProductInput{Name: " Oats ", Per100: domain.Nutrients{Calories: dec("389.125")}})
	require.NoError(t, err)
	assert.Equal(t, "Oats", p.Name)
	assert.Equal(t, alice.ID, p.CreatedBy)
	assertDec(t, "389.12", p.Per100.Calories)
}

func TestCatalogService_UpdateAndDeleteOwnership(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.user(t, "alice", domain.RoleUser)
	bob := f.user(t, "bob", domain.RoleUser)
	admin := f.user(t, "root", domain.RoleAdmin)
	p := f.product(t, alice, "Oats", "389", "16.9", "6.9", "66.3")

	in := app.ProductInput{Name: "Rolled oats", Per100: domain.Nutrients{Calories: dec("379")}}

	_, err := f.catalog.Update(ctx, bob, p.ID, in)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	updated, err := f.catalog.Update(ctx, alice, p.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Rolled oats", updated.Name)

	_, err = f.catalog.Update(ctx, alice, 999, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, f.catalog.Delete(ctx, bob, p.ID), domain.ErrForbidden)
	require.NoError(t, f.catalog.Delete(ctx, admin, p.ID))

	_, err = f.catalog.Get(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogService_EditDoesNotRewriteHistory(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.user(t, "alice", domain.RoleUser)
	p := f.product(t, alice, "Oats", "389", "16.9", "6.9", "66.3")

	entry, err := f.diary.LogProduct(ctx, alice.ID, p.ID, dec("50"), domain.MealBreakfast, testNoon())
	require.NoError(t, err)

	_, err = f.catalog.Update(ctx, alice, p.ID, app.ProductInput{Name: "Oats", Per100: domain.Nutrients{Calories: dec("1000")}})
	require.NoError(t, err)

	entries, err := f.diary.ListDay(ctx, alice.ID, domain.LocalDay(entry.LoggedAt))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assertDec(t, "194.5", entries[0].Calories)
}

func TestCatalogService_SearchClampsLimit(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.user(t, "alice", domain.RoleUser)
	for _, name := range []string{"Apple", "Apricot", "Banana"} {
		f.product(t, alice, name, "50", "0", "0", "12")
	}

	got, err := f.catalog.Search(ctx, " ap ", 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Apple", got[0].Name)

	got, err = f.catalog.Search(ctx, "", 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = f.catalog.Search(ctx, "", 10_000)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}
