package biodatas

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tahmidr/matrimony-backend/pkg/db/models"
	pkgerrors "github.com/tahmidr/matrimony-backend/pkg/errors"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (g gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return g.db.WithContext(ctx).Transaction(fn)
}

type stubContactApprover struct {
	approved map[string]bool
}

func (s *stubContactApprover) HasApproved(ctx context.Context, userEmail string, biodataID uuid.UUID) (bool, error) {
	return s.approved[userEmail+"|"+biodataID.String()], nil
}

func newTestService(t *testing.T) (Service, *gorm.DB, *stubContactApprover) {
	t.Helper()
	db := newTestDB(t)
	contacts := &stubContactApprover{approved: map[string]bool{}}
	svc, err := NewService(ServiceParams{
		Repo:     NewRepository(db),
		TxRunner: gormTxRunner{db: db},
		Contacts: contacts,
	})
	require.NoError(t, err)
	return svc, db, contacts
}

func sampleUpsertRequest() UpsertRequest {
	return UpsertRequest{
		Type:              "Female",
		Name:              "Amina Rahman",
		Age:               24,
		PermanentDivision: "Dhaka",
		PresentDivision:   "Sylhet",
		ContactEmail:      "amina@example.com",
		PhoneNumber:       "+8801712345678",
	}
}

func TestUpsertAssignsSequentialNumbers(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Upsert(ctx, "amina@example.com", sampleUpsertRequest(), Viewer{Email: "amina@example.com", Role: "user"})
	require.NoError(t, err)
	assert.Equal(t, 1, first.BiodataNo)

	req := sampleUpsertRequest()
	req.ContactEmail = "farhan@example.com"
	second, err := svc.Upsert(ctx, "farhan@example.com", req, Viewer{Email: "farhan@example.com", Role: "user"})
	require.NoError(t, err)
	assert.Equal(t, 2, second.BiodataNo)
}

func TestUpsertUpdatesKeepNumberAndPremium(t *testing.T) {
	svc, db, _ := newTestService(t)
	ctx := context.Background()
	viewer := Viewer{Email: "amina@example.com", Role: "user"}

	created, err := svc.Upsert(ctx, "amina@example.com", sampleUpsertRequest(), viewer)
	require.NoError(t, err)

	// make it premium behind the service's back
	require.NoError(t, db.Model(&models.Biodata{}).Where("id = ?", created.ID).UpdateColumn("is_premium", true).Error)

	req := sampleUpsertRequest()
	req.Name = "Amina R."
	updated, err := svc.Upsert(ctx, "amina@example.com", req, viewer)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.BiodataNo, updated.BiodataNo)
	assert.Equal(t, "Amina R.", updated.Name)
	assert.True(t, updated.IsPremium, "profile update must not clear premium")
}

func TestUpsertForbiddenForOtherUsers(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Upsert(context.Background(), "amina@example.com", sampleUpsertRequest(), Viewer{Email: "mallory@example.com", Role: "user"})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())
}

func TestListValidatesFilters(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.List(ctx, ListQuery{Gender: "Other"})
	require.Error(t, err)

	_, err = svc.List(ctx, ListQuery{MinAge: 17, MaxAge: 25})
	require.Error(t, err)

	_, err = svc.List(ctx, ListQuery{MinAge: 30, MaxAge: 20})
	require.Error(t, err)

	_, err = svc.List(ctx, ListQuery{Sort: "sideways"})
	require.Error(t, err)
}

func TestListFiltersAndPaginates(t *testing.T) {
	svc, db, _ := newTestService(t)
	ctx := context.Background()

	mustCreateBiodata(t, db, 1, "a@x.com", "Female", "Dhaka", 22, false)
	mustCreateBiodata(t, db, 2, "b@x.com", "Female", "Dhaka", 26, false)
	mustCreateBiodata(t, db, 3, "c@x.com", "Male", "Dhaka", 24, false)
	mustCreateBiodata(t, db, 4, "d@x.com", "Female", "Sylhet", 23, false)

	resp, err := svc.List(ctx, ListQuery{
		Gender:            "Female",
		PermanentDivision: "Dhaka",
		MinAge:            20,
		MaxAge:            30,
		Page:              1,
		Limit:             1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Total)
	assert.Equal(t, 2, resp.TotalPages)
	require.Len(t, resp.Biodatas, 1)
	assert.Equal(t, 22, resp.Biodatas[0].Age, "ascending age by default")
}

func TestGetByIDContactVisibility(t *testing.T) {
	svc, db, contacts := newTestService(t)
	ctx := context.Background()

	target := mustCreateBiodata(t, db, 1, "owner@x.com", "Female", "Dhaka", 24, false)
	mustCreateBiodata(t, db, 2, "premium@x.com", "Male", "Dhaka", 30, true)
	mustCreateBiodata(t, db, 3, "basic@x.com", "Male", "Dhaka", 31, false)

	// anonymous viewer: no contact fields
	dto, err := svc.GetByID(ctx, target.ID, Viewer{})
	require.NoError(t, err)
	assert.Nil(t, dto.ContactEmail)
	assert.Nil(t, dto.PhoneNumber)

	// owner sees contact fields
	dto, err = svc.GetByID(ctx, target.ID, Viewer{Email: "owner@x.com", Role: "user"})
	require.NoError(t, err)
	require.NotNil(t, dto.ContactEmail)
	assert.Equal(t, "owner@x.com", *dto.ContactEmail)

	// admin sees contact fields
	dto, err = svc.GetByID(ctx, target.ID, Viewer{Email: "admin@x.com", Role: "admin"})
	require.NoError(t, err)
	assert.NotNil(t, dto.ContactEmail)

	// premium member sees contact fields
	dto, err = svc.GetByID(ctx, target.ID, Viewer{Email: "premium@x.com", Role: "user"})
	require.NoError(t, err)
	assert.NotNil(t, dto.ContactEmail)

	// ordinary member does not
	dto, err = svc.GetByID(ctx, target.ID, Viewer{Email: "basic@x.com", Role: "user"})
	require.NoError(t, err)
	assert.Nil(t, dto.ContactEmail)

	// until their contact request is approved
	contacts.approved["basic@x.com|"+target.ID.String()] = true
	dto, err = svc.GetByID(ctx, target.ID, Viewer{Email: "basic@x.com", Role: "user"})
	require.NoError(t, err)
	assert.NotNil(t, dto.ContactEmail)
}

func TestRequestPremiumConflicts(t *testing.T) {
	svc, db, _ := newTestService(t)
	ctx := context.Background()

	row := mustCreateBiodata(t, db, 1, "owner@x.com", "Female", "Dhaka", 24, false)
	owner := Viewer{Email: "owner@x.com", Role: "user"}

	require.NoError(t, svc.RequestPremium(ctx, row.ID, owner))

	err := svc.RequestPremium(ctx, row.ID, owner)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())

	require.NoError(t, svc.ApprovePremium(ctx, row.ID))

	err = svc.RequestPremium(ctx, row.ID, owner)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())

	err = svc.RequestPremium(ctx, row.ID, Viewer{Email: "other@x.com", Role: "user"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeForbidden, pkgerrors.As(err).Code())
}

func TestGetByOwnerForbiddenForStrangers(t *testing.T) {
	svc, db, _ := newTestService(t)
	ctx := context.Background()

	mustCreateBiodata(t, db, 1, "owner@x.com", "Female", "Dhaka", 24, false)

	_, err := svc.GetByOwner(ctx, "owner@x.com", Viewer{Email: "stranger@x.com", Role: "user"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeForbidden, pkgerrors.As(err).Code())

	dto, err := svc.GetByOwner(ctx, "owner@x.com", Viewer{Email: "owner@x.com", Role: "user"})
	require.NoError(t, err)
	assert.NotNil(t, dto.ContactEmail)
}
