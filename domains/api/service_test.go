package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angkomuhtar/simple-api-express/models"
)

func validRequest() *models.UserRequest {
	return models.NewUserRequest(map[string]string{
		"name":        "John Doe",
		"email":       "j@x.com",
		"gender":      "MALE",
		"departement": "IT",
		"image":       "a.png",
	})
}

func TestServiceCreatePublishesEvent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.service.CreateUser(ctx, validRequest())
	require.NoError(t, err)
	assert.Positive(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	events := f.broker.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "users.events", events[0].topic)
	assert.Equal(t, user.ID, events[0].key)
	assert.Equal(t, models.UserCreated, events[0].event.Type)
	assert.Equal(t, user.ID, events[0].event.User.ID)
	assert.NotEmpty(t, events[0].event.ID)
}

func TestServiceRejectsEnumViolationAtPersistence(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := validRequest()
	gender := models.Gender("OTHER")
	req.Gender = &gender

	_, err := f.service.CreateUser(ctx, req)
	require.Error(t, err)

	var constraintErr *models.ConstraintError
	require.True(t, errors.As(err, &constraintErr))
	assert.Equal(t, "gender", constraintErr.Errors[0].Path)

	users, err := f.service.ListUsers(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.Empty(t, f.broker.Events())
}

func TestServiceUpdateAndDeleteEvents(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.service.CreateUser(ctx, validRequest())
	require.NoError(t, err)

	req := validRequest()
	name := "Jane Roe"
	req.Name = &name

	updated, err := f.service.UpdateUser(ctx, user, req)
	require.NoError(t, err)
	assert.Equal(t, "Jane Roe", updated.Name)
	assert.Equal(t, "John Doe", user.Name, "the loaded row is not mutated")
	assert.False(t, updated.UpdatedAt.Before(user.UpdatedAt))

	require.NoError(t, f.service.DeleteUser(ctx, user.ID))
	assert.ErrorIs(t, f.service.DeleteUser(ctx, user.ID), ErrUserNotFound)

	_, err = f.service.GetUser(ctx, user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	events := f.broker.Events()
	require.Len(t, events, 3)
	assert.Equal(t, models.UserUpdated, events[1].event.Type)
	assert.Equal(t, "Jane Roe", events[1].event.User.Name)
	assert.Equal(t, models.UserDeleted, events[2].event.Type)
}

func TestServiceUpdateEnumViolationReturnsConstraintError(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.service.CreateUser(ctx, validRequest())
	require.NoError(t, err)

	req := validRequest()
	department := models.Department("FINANCE")
	req.Department = &department

	_, err = f.service.UpdateUser(ctx, user, req)

	var constraintErr *models.ConstraintError
	require.True(t, errors.As(err, &constraintErr))

	stored, err := f.service.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DepartmentIT, stored.Department)
}

func TestServiceListEscapesWildcards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, name := range []string{"100% Real", "snake_case", "plain name"} {
		req := validRequest()
		name := name
		req.Name = &name

		_, err := f.service.CreateUser(ctx, req)
		require.NoError(t, err)
	}

	users, err := f.service.ListUsers(ctx, "%")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "100% Real", users[0].Name)

	users, err = f.service.ListUsers(ctx, "_")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "snake_case", users[0].Name)

	users, err = f.service.ListUsers(ctx, "!")
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestServiceUpdateMissingRowIsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.service.CreateUser(ctx, validRequest())
	require.NoError(t, err)

	_, err = f.db.NewDelete().Model(user).WherePK().Exec(ctx)
	require.NoError(t, err)

	_, err = f.service.UpdateUser(ctx, user, validRequest())
	assert.ErrorIs(t, err, ErrUserNotFound)

	count, err := f.db.NewSelect().Model((*models.User)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	events := f.broker.Events()
	require.Len(t, events, 1, "no update event for a row that is gone")
	assert.Equal(t, models.UserCreated, events[0].event.Type)
}

func TestServiceListFoldsCaseOnBothSides(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := validRequest()
	name := "Özil Mesut"
	req.Name = &name

	_, err := f.service.CreateUser(ctx, req)
	require.NoError(t, err)

	for _, filter := range []string{"Özil", "zIL", "mesut"} {
		users, err := f.service.ListUsers(ctx, filter)
		require.NoError(t, err)
		assert.Len(t, users, 1, filter)
	}
}
