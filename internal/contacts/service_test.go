package contacts

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tahmidr/matrimony-backend/internal/biodatas"
	"github.com/tahmidr/matrimony-backend/pkg/db/models"
	pkgerrors "github.com/tahmidr/matrimony-backend/pkg/errors"
)

func newTestService(t *testing.T) (Service, *Repository, *gorm.DB) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Biodata{}, &models.ContactRequest{}))

	repo := NewRepository(conn)
	svc, err := NewService(ServiceParams{
		Repo:     repo,
		Biodatas: biodatas.NewRepository(conn),
	})
	require.NoError(t, err)
	return svc, repo, conn
}

func mustCreateBiodata(t *testing.T, db *gorm.DB, no int, owner string) *models.Biodata {
	t.Helper()
	row := &models.Biodata{
		ID:                uuid.New(),
		BiodataNo:         no,
		OwnerEmail:        owner,
		Type:              "Male",
		Name:              fmt.Sprintf("Profile %d", no),
		Age:               28,
		PermanentDivision: "Dhaka",
		PresentDivision:   "Dhaka",
		ContactEmail:      owner,
		PhoneNumber:       "+8801000000000",
	}
	require.NoError(t, db.Create(row).Error)
	return row
}

func TestRequestApprovalReleasesContactFields(t *testing.T) {
	svc, repo, db := newTestService(t)
	ctx := context.Background()

	target := mustCreateBiodata(t, db, 1, "owner@x.com")

	created, err := svc.Request(ctx, "viewer@x.com", CreateContactRequest{BiodataID: target.ID})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, created.Status)
	assert.Nil(t, created.ContactEmail)

	approved, err := repo.HasApproved(ctx, "viewer@x.com", target.ID)
	require.NoError(t, err)
	assert.False(t, approved)

	list, err := svc.ListForUser(ctx, "viewer@x.com")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].ContactEmail, "pending requests never expose contacts")

	require.NoError(t, svc.Approve(ctx, created.ID))

	approved, err = repo.HasApproved(ctx, "viewer@x.com", target.ID)
	require.NoError(t, err)
	assert.True(t, approved)

	list, err = svc.ListForUser(ctx, "viewer@x.com")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, StatusApproved, list[0].Status)
	require.NotNil(t, list[0].ContactEmail)
	assert.Equal(t, "owner@x.com", *list[0].ContactEmail)
	require.NotNil(t, list[0].PhoneNumber)
}

func TestRequestDuplicateConflicts(t *testing.T) {
	svc, _, db := newTestService(t)
	ctx := context.Background()

	target := mustCreateBiodata(t, db, 1, "owner@x.com")

	_, err := svc.Request(ctx, "viewer@x.com", CreateContactRequest{BiodataID: target.ID})
	require.NoError(t, err)

	_, err = svc.Request(ctx, "viewer@x.com", CreateContactRequest{BiodataID: target.ID})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestRequestOwnBiodataRejected(t *testing.T) {
	svc, _, db := newTestService(t)

	target := mustCreateBiodata(t, db, 1, "owner@x.com")

	_, err := svc.Request(context.Background(), "owner@x.com", CreateContactRequest{BiodataID: target.ID})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestApproveQueueAndCounts(t *testing.T) {
	svc, repo, db := newTestService(t)
	ctx := context.Background()

	first := mustCreateBiodata(t, db, 1, "a@x.com")
	second := mustCreateBiodata(t, db, 2, "b@x.com")

	reqA, err := svc.Request(ctx, "viewer@x.com", CreateContactRequest{BiodataID: first.ID})
	require.NoError(t, err)
	_, err = svc.Request(ctx, "viewer@x.com", CreateContactRequest{BiodataID: second.ID})
	require.NoError(t, err)

	pending, err := svc.ListPending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	count, err := repo.CountPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, svc.Approve(ctx, reqA.ID))

	// approving twice finds nothing pending
	err = svc.Approve(ctx, reqA.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	pending, err = svc.ListPending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestRemoveOwnerScoped(t *testing.T) {
	svc, _, db := newTestService(t)
	ctx := context.Background()

	target := mustCreateBiodata(t, db, 1, "owner@x.com")
	created, err := svc.Request(ctx, "viewer@x.com", CreateContactRequest{BiodataID: target.ID})
	require.NoError(t, err)

	err = svc.Remove(ctx, created.ID, "mallory@x.com")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	require.NoError(t, svc.Remove(ctx, created.ID, "viewer@x.com"))

	list, err := svc.ListForUser(ctx, "viewer@x.com")
	require.NoError(t, err)
	assert.Empty(t, list)
}
