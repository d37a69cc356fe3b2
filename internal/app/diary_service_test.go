package app_test

import (
	"context"
	"testing"
	"time"

	"dietlog/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNoon() time.Time {
	return time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
}

func TestDiaryService_LogProduct(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.user(t, "alice", domain.RoleUser)
	oats := f.product(t, alice, "Oats", "389", "16.9", "6.9", "66.3")

	e, err := f.diary.LogProduct(ctx, alice.ID, oats.ID, dec("50"), "Breakfast", testNoon())
	require.NoError(t, err)
	assert.NotZero(t, e.ID)
	assert.Equal(t, "Oats", e.Name)
	assert.Equal(t, domain.MealBreakfast, e.Meal)
	require.NotNil(t, e.ProductID)
	assert.Equal(t, oats.ID, *e.ProductID)
	assertDec(t, "194.5", e.Calories)
	assertDec(t, "8.45", e.Protein)
	assertDec(t, "3.45", e.Fat)
	assertDec(t, "33.15", e.Carbs)
}

func TestDiaryService_LogProductErrors(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.user(t, "alice", domain.RoleUser)
	oats := f.product(t, alice, "Oats", "389", "16.9", "6.9", "66.3")

	_, err := f.diary.LogProduct(ctx, alice.ID, oats.ID, dec("0"), domain.MealLunch, time.Time{})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.diary.LogProduct(ctx, alice.ID, 999, dec("10"), domain.MealLunch, time.Time{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDiaryService_UnknownMealIsSnack(t *testing.T) {
	f := newFixture()
	alice := f.user(t, "alice", domain.RoleUser)
	oats := f.product(t, alice, "Oats", "389", "16.9", "6.9", "66.3")

	e, err := f.diary.LogProduct(context.Background(), alice.ID, oats.ID, dec("10"), "elevenses", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, domain.MealSnack, e.Meal)
	assert.WithinDuration(t, time.Now(), e.LoggedAt, time.Minute)
}

func TestDiaryService_LogDish(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.user(t, "alice", domain.RoleUser)
	bob := f.user(t, "bob", domain.RoleUser)
	dish := porridge(t, f, alice)

	e, err := f.diary.LogDish(ctx, alice.ID, dish.ID, dec("140"), domain.MealBreakfast, testNoon())
	require.NoError(t, err)
	require.NotNil(t, e.DishID)
	assert.Nil(t, e.ProductID)
	assert.Equal(t, "Porridge", e.Name)
	assertDec(t, "219.60", e.Calories)
	assertDec(t, "10.06", e.Protein)
	assertDec(t, "6.36", e.Fat)
	assertDec(t, "31.32", e.Carbs)

	_, err = f.diary.LogDish(ctx, bob.ID, dish.ID, dec("140"), domain.MealBreakfast, testNoon())
	assert.ErrorIs(t, err, domain.ErrNotFound, "dishes are private")

	empty, err := f.dishes.Create(ctx, alice.ID, "Nothing")
	require.NoError(t, err)
	_, err = f.diary.LogDish(ctx, alice.ID, empty.ID, dec("100"), domain.MealLunch, testNoon())
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDiaryService_LogWholeDish(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.user(t, "alice", domain.RoleUser)
	cheese := f.product(t, alice, "Cheese", "100", "10", "5", "1")
	water := f.product(t, alice, "Water", "0", "0", "0", "0")

	d, err := f.dishes.Create(ctx, alice.ID, "Fondue")
	require.NoError(t, err)
	_, err = f.dishes.AddIngredient(ctx, alice.ID, d.ID, cheese.ID, dec("100"))
	require.NoError(t, err)
	d, err = f.dishes.AddIngredient(ctx, alice.ID, d.ID, water.ID, dec("200"))
	require.NoError(t, err)

	e, err := f.diary.LogDish(ctx, alice.ID, d.ID, d.TotalGrams, domain.MealDinner, testNoon())
	require.NoError(t, err)
	assertDec(t, d.Totals.Calories.String(), e.Calories)
	assertDec(t, d.Totals.Protein.String(), e.Protein)
	assertDec(t, d.Totals.Fat.String(), e.Fat)
	assertDec(t, d.Totals.Carbs.String(), e.Carbs)
	assertDec(t, "100", e.Calories)
	assertDec(t, "10", e.Protein)
}

func TestDiaryService_ListAndDelete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.user(t, "alice", domain.RoleUser)
	bob := f.user(t, "bob", domain.RoleUser)
	oats := f.product(t, alice, "Oats", "389", "16.9", "6.9", "66.3")

	noon := testNoon()
	today, err := f.diary.LogProduct(ctx, alice.ID, oats.ID, dec("50"), domain.MealBreakfast, noon)
	require.NoError(t, err)
	_, err = f.diary.LogProduct(ctx, alice.ID, oats.ID, dec("50"), domain.MealBreakfast, noon.AddDate(0, 0, 1))
	require.NoError(t, err)

	day, err := f.diary.ListDay(ctx, alice.ID, "2026-03-10")
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.Equal(t, today.ID, day[0].ID)

	_, err = f.diary.ListDay(ctx, alice.ID, "10/03/2026")
	assert.ErrorIs(t, err, domain.ErrValidation)

	both, err := f.diary.ListRange(ctx, alice.ID, noon.Add(-time.Hour), noon.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.Len(t, both, 2)

	_, err = f.diary.ListRange(ctx, alice.ID, noon, noon)
	assert.ErrorIs(t, err, domain.ErrValidation)

	assert.ErrorIs(t, f.diary.Delete(ctx, bob.ID, today.ID), domain.ErrNotFound)
	require.NoError(t, f.diary.Delete(ctx, alice.ID, today.ID))
	assert.ErrorIs(t, f.diary.Delete(ctx, alice.ID, today.ID), domain.ErrNotFound)
}
