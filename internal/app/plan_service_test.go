package app_test

import (
	"context"
	"testing"

	"dietlog/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanService_AuthorAndCoverage(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	diet := f.user(t, "diet", domain.RoleDietitian)
	bob := f.user(t, "bob", domain.RoleUser)
	require.NoError(t, f.db.LinkClient(ctx, diet.ID, bob.ID))
	_, err := f.profiles.Save(ctx, bob.ID, maleMaintenance())
	require.NoError(t, err)
	oats := f.product(t, diet, "Oats", "389", "16.9", "6.9", "66.3")

	plan, err := f.plans.Create(ctx, diet, bob.ID, "Monday", "2026-03-09")
	require.NoError(t, err)
	assert.Equal(t, diet.ID, plan.DietitianID)
	assert.Empty(t, plan.Items)

	view, err := f.plans.AddItem(ctx, diet, plan.ID, oats.ID, dec("100"), "lunch")
	require.NoError(t, err)
	require.Len(t, view.Plan.Items, 1)
	assert.Equal(t, domain.MealLunch, view.Plan.Items[0].Meal)
	assertDec(t, "389", view.Plan.Totals.Calories)
	assertDec(t, "14.1", view.Coverage.Progress.Calories)
	assertDec(t, "8.2", view.Coverage.Progress.Protein)
	assertDec(t, "9.0", view.Coverage.Progress.Fat)
	assertDec(t, "21.4", view.Coverage.Progress.Carbs)

	own, err := f.plans.Get(ctx, bob, plan.ID)
	require.NoError(t, err, "clients read their own plans")
	assertDec(t, "389", own.Plan.Totals.Calories)

	list, err := f.plans.ListForClient(ctx, bob, bob.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assertDec(t, "389", list[0].Totals.Calories)

	view, err = f.plans.RemoveItem(ctx, diet, plan.ID, view.Plan.Items[0].ID)
	require.NoError(t, err)
	assert.Empty(t, view.Plan.Items)
	assertDec(t, "0", view.Coverage.Progress.Calories)
}

func TestPlanService_Authorization(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	diet := f.user(t, "diet", domain.RoleDietitian)
	other := f.user(t, "other", domain.RoleDietitian)
	admin := f.user(t, "root", domain.RoleAdmin)
	bob := f.user(t, "bob", domain.RoleUser)
	eve := f.user(t, "eve", domain.RoleUser)
	require.NoError(t, f.db.LinkClient(ctx, diet.ID, bob.ID))
	oats := f.product(t, diet, "Oats", "389", "16.9", "6.9", "66.3")

	_, err := f.plans.Create(ctx, other, bob.ID, "Plan", "2026-03-09")
	assert.ErrorIs(t, err, domain.ErrForbidden, "unlinked dietitian")
	_, err = f.plans.Create(ctx, bob, bob.ID, "Plan", "2026-03-09")
	assert.ErrorIs(t, err, domain.ErrForbidden, "clients cannot author")

	plan, err := f.plans.Create(ctx, admin, bob.ID, "Plan", "2026-03-09")
	require.NoError(t, err, "admins may author for anyone")

	_, err = f.plans.AddItem(ctx, other, plan.ID, oats.ID, dec("10"), domain.MealLunch)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.plans.AddItem(ctx, bob, plan.ID, oats.ID, dec("10"), domain.MealLunch)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.plans.Get(ctx, eve, plan.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.plans.ListForClient(ctx, eve, bob.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.plans.Get(ctx, diet, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPlanService_Validation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	admin := f.user(t, "root", domain.RoleAdmin)
	bob := f.user(t, "bob", domain.RoleUser)

	_, err := f.plans.Create(ctx, admin, bob.ID, "", "2026-03-09")
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.plans.Create(ctx, admin, bob.ID, "Plan", "March 9")
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.plans.Create(ctx, admin, 999, "Plan", "2026-03-09")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	plan, err := f.plans.Create(ctx, admin, bob.ID, "Plan", "2026-03-09")
	require.NoError(t, err)
	_, err = f.plans.AddItem(ctx, admin, plan.ID, 1, dec("0"), domain.MealLunch)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.plans.AddItem(ctx, admin, plan.ID, 999, dec("10"), domain.MealLunch)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.plans.RemoveItem(ctx, admin, plan.ID, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
