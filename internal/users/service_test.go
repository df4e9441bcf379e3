package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/tahmidr/matrimony-backend/pkg/errors"
	"github.com/tahmidr/matrimony-backend/pkg/pagination"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Repo: NewRepository(newTestDB(t))})
	require.NoError(t, err)
	return svc
}

func TestServiceSaveNormalizesEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	saved, err := svc.Save(ctx, SaveUserRequest{Email: "  Amina@Example.COM ", Name: " Amina "})
	require.NoError(t, err)
	assert.Equal(t, "amina@example.com", saved.Email)
	assert.Equal(t, "Amina", saved.Name)
	assert.Equal(t, "user", saved.Role)
}

func TestServiceSaveIsIdempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.Save(ctx, SaveUserRequest{Email: "amina@example.com", Name: "Amina"})
	require.NoError(t, err)

	second, err := svc.Save(ctx, SaveUserRequest{Email: "amina@example.com", Name: "Amina Rahman"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Amina Rahman", second.Name)
}

func TestServiceSaveIgnoresRoleAndActiveFields(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	role := "admin"
	inactive := false
	saved, err := svc.Save(ctx, SaveUserRequest{
		Email:    "amina@example.com",
		Name:     "Amina",
		Role:     &role,
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "user", saved.Role)
	assert.True(t, saved.IsActive)

	// A promoted account keeps its role across later profile saves too.
	_, err = svc.PromoteToAdmin(ctx, "amina@example.com")
	require.NoError(t, err)

	saved, err = svc.Save(ctx, SaveUserRequest{Email: "amina@example.com", Name: "Amina", Role: &role})
	require.NoError(t, err)
	assert.Equal(t, "admin", saved.Role)
}

func TestServiceGetByEmailNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetByEmail(context.Background(), "missing@example.com")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestServicePromoteToAdmin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Save(ctx, SaveUserRequest{Email: "promote@example.com", Name: "P"})
	require.NoError(t, err)

	promoted, err := svc.PromoteToAdmin(ctx, "promote@example.com")
	require.NoError(t, err)
	assert.Equal(t, "admin", promoted.Role)

	_, err = svc.PromoteToAdmin(ctx, "missing@example.com")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestServiceListPaginates(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		_, err := svc.Save(ctx, SaveUserRequest{Email: email, Name: "User"})
		require.NoError(t, err)
	}

	result, err := svc.List(ctx, "", pagination.Params{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, result.Users, 2)
	assert.Equal(t, int64(3), result.Meta.Total)
	assert.Equal(t, 2, result.Meta.TotalPages)
}
