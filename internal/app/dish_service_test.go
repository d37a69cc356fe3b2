package app_test

import (
	"context"
	"testing"

	"dietlog/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// porridge builds 80 g oats + 200 g milk: 439.2 kcal, 20.12 P, 12.72 F,
// 62.64 C over 280 g.
func porridge(t *testing.T, f *fixture, owner domain.User) *domain.Dish {
	t.Helper()
	ctx := context.Background()
	oats := f.product(t, owner, "Oats", "389", "16.9", "6.9", "66.3")
	milk := f.product(t, owner, "Milk", "64", "3.3", "3.6", "4.8")

	d, err := f.dishes.Create(ctx, owner.ID, "Porridge")
	require.NoError(t, err)
	_, err = f.dishes.AddIngredient(ctx, owner.ID, d.ID, oats.ID, dec("80"))
	require.NoError(t, err)
	d, err = f.dishes.AddIngredient(ctx, owner.ID, d.ID, milk.ID, dec("200"))
	require.NoError(t, err)
	return d
}

func TestDishService_TotalsFollowIngredients(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.user(t, "alice", domain.RoleUser)

	d := porridge(t, f, alice)
	require.Len(t, d.Ingredients, 2)
	assertDec(t, "439.2", d.Totals.Calories)
	assertDec(t, "20.12", d.Totals.Protein)
	assertDec(t, "12.72", d.Totals.Fat)
	assertDec(t, "62.64", d.Totals.Carbs)
	assertDec(t, "280", d.TotalGrams)

	stored, err := f.dishes.List(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assertDec(t, "439.2", stored[0].Totals.Calories, "totals are persisted")

	d, err = f.dishes.RemoveIngredient(ctx, alice.ID, d.ID, d.Ingredients[1].ID)
	require.NoError(t, err)
	assertDec(t, "311.2", d.Totals.Calories)
	assertDec(t, "80", d.TotalGrams)

	_, err = f.dishes.RemoveIngredient(ctx, alice.ID, d.ID, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDishService_Validation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.user(t, "alice", domain.RoleUser)
	oats := f.product(t, alice, "Oats", "389", "16.9", "6.9", "66.3")

	_, err := f.dishes.Create(ctx, alice.ID, " ")
	assert.ErrorIs(t, err, domain.ErrValidation)

	d, err := f.dishes.Create(ctx, alice.ID, "Bowl")
	require.NoError(t, err)

	_, err = f.dishes.AddIngredient(ctx, alice.ID, d.ID, oats.ID, dec("-5"))
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.dishes.AddIngredient(ctx, alice.ID, d.ID, 999, dec("5"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDishService_OwnerOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.user(t, "alice", domain.RoleUser)
	bob := f.user(t, "bob", domain.RoleUser)
	d := porridge(t, f, alice)

	_, err := f.dishes.Get(ctx, bob.ID, d.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.dishes.AddIngredient(ctx, bob.ID, d.ID, *d.Ingredients[0].ProductID, dec("10"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.dishes.Delete(ctx, bob.ID, d.ID), domain.ErrNotFound)

	require.NoError(t, f.dishes.Delete(ctx, alice.ID, d.ID))
	_, err = f.dishes.Get(ctx, alice.ID, d.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
