package app_test

import (
	"context"
	"testing"

	"dietlog/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientService_AssignListUnassign(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	diet := f.user(t, "diet", domain.RoleDietitian)
	bob := f.user(t, "bob", domain.RoleUser)

	got, err := f.clients.Assign(ctx, diet, " bob ")
	require.NoError(t, err)
	assert.Equal(t, bob.ID, got.ID)

	list, err := f.clients.List(ctx, diet)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "bob", list[0].Username)

	require.NoError(t, f.clients.Unassign(ctx, diet, bob.ID))
	assert.ErrorIs(t, f.clients.Unassign(ctx, diet, bob.ID), domain.ErrNotFound)

	list, err = f.clients.List(ctx, diet)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestClientService_AssignErrors(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	diet := f.user(t, "diet", domain.RoleDietitian)
	bob := f.user(t, "bob", domain.RoleUser)

	_, err := f.clients.Assign(ctx, bob, "diet")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.clients.Assign(ctx, diet, "nobody")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.clients.Assign(ctx, diet, "diet")
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.clients.List(ctx, bob)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestClientService_Progress(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	diet := f.user(t, "diet", domain.RoleDietitian)
	bob := f.user(t, "bob", domain.RoleUser)
	_, err := f.profiles.Save(ctx, bob.ID, maleMaintenance())
	require.NoError(t, err)
	oats := f.product(t, bob, "Oats", "389", "16.9", "6.9", "66.3")
	_, err = f.diary.LogProduct(ctx, bob.ID, oats.ID, dec("50"), domain.MealBreakfast, testNoon())
	require.NoError(t, err)

	_, err = f.clients.Progress(ctx, diet, bob.ID, "2026-03-10")
	assert.ErrorIs(t, err, domain.ErrForbidden, "not linked yet")

	_, err = f.clients.Assign(ctx, diet, "bob")
	require.NoError(t, err)

	snap, err := f.clients.Progress(ctx, diet, bob.ID, "2026-03-10")
	require.NoError(t, err)
	assertDec(t, "194.5", snap.Totals.Calories)
	assertDec(t, "7.0", snap.Progress.Calories)
}
