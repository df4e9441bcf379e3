package biodatas

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tahmidr/matrimony-backend/pkg/db/models"
	"github.com/tahmidr/matrimony-backend/pkg/enums"
	pkgerrors "github.com/tahmidr/matrimony-backend/pkg/errors"
	"github.com/tahmidr/matrimony-backend/pkg/pagination"
)

const (
	// MinFilterAge and MaxFilterAge bound the public age filter.
	MinFilterAge = 18
	MaxFilterAge = 60
)

// ListQuery carries the raw listing filters from the HTTP layer.
type ListQuery struct {
	Gender            string
	PermanentDivision string
	PresentDivision   string
	MinAge            int
	MaxAge            int
	Sort              string
	Page              int
	Limit             int
}

// Viewer identifies the caller for contact-visibility decisions.
// Anonymous viewers have an empty Email.
type Viewer struct {
	Email string
	Role  string
}

// UpsertRequest is the create-or-update payload keyed by owner email.
type UpsertRequest struct {
	Type     string  `json:"type" validate:"required,oneof=Male Female"`
	Name     string  `json:"name" validate:"required"`
	PhotoURL *string `json:"photoURL,omitempty"`

	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	Age         int        `json:"age" validate:"required,min=18,max=100"`
	Height      *string    `json:"height,omitempty"`
	Weight      *string    `json:"weight,omitempty"`
	Occupation  *string    `json:"occupation,omitempty"`
	Race        *string    `json:"race,omitempty"`
	BloodType   *string    `json:"bloodType,omitempty"`
	FatherName  *string    `json:"fatherName,omitempty"`
	MotherName  *string    `json:"motherName,omitempty"`

	PermanentDivision string `json:"permanentDivision" validate:"required"`
	PresentDivision   string `json:"presentDivision" validate:"required"`

	ExpectedPartnerAge    *string `json:"expectedPartnerAge,omitempty"`
	ExpectedPartnerHeight *string `json:"expectedPartnerHeight,omitempty"`
	ExpectedPartnerWeight *string `json:"expectedPartnerWeight,omitempty"`

	ContactEmail string `json:"contactEmail" validate:"required,email"`
	PhoneNumber  string `json:"phoneNumber" validate:"required"`
}

// Service defines the behavior needed by the biodata controllers.
type Service interface {
	List(ctx context.Context, query ListQuery) (*ListResponse, error)
	GetByID(ctx context.Context, id uuid.UUID, viewer Viewer) (*BiodataDTO, error)
	GetByOwner(ctx context.Context, email string, viewer Viewer) (*BiodataDTO, error)
	Upsert(ctx context.Context, ownerEmail string, req UpsertRequest, viewer Viewer) (*BiodataDTO, error)
	RequestPremium(ctx context.Context, id uuid.UUID, viewer Viewer) error
	ApprovePremium(ctx context.Context, id uuid.UUID) error
	ListPendingPremium(ctx context.Context) ([]BiodataSummary, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// contactApprover reports whether the viewer holds an approved contact
// request for the biodata. Implemented by the contacts repository.
type contactApprover interface {
	HasApproved(ctx context.Context, userEmail string, biodataID uuid.UUID) (bool, error)
}

type service struct {
	repo        *Repository
	tx          txRunner
	repoFactory func(tx *gorm.DB) *Repository
	contacts    contactApprover
	listingCfg  listingLimits
}

type listingLimits struct {
	defaultLimit int
	maxLimit     int
}

// ServiceParams bundles the dependencies required to build a biodatas service.
type ServiceParams struct {
	Repo        *Repository
	TxRunner    txRunner
	RepoFactory func(tx *gorm.DB) *Repository
	Contacts    contactApprover

	DefaultLimit int
	MaxLimit     int
}

// NewService constructs a biodatas service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("biodatas repository is required")
	}
	if params.TxRunner == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	factory := params.RepoFactory
	if factory == nil {
		factory = NewRepository
	}
	limits := listingLimits{defaultLimit: params.DefaultLimit, maxLimit: params.MaxLimit}
	if limits.defaultLimit <= 0 {
		limits.defaultLimit = pagination.DefaultLimit
	}
	if limits.maxLimit <= 0 {
		limits.maxLimit = pagination.MaxLimit
	}
	return &service{
		repo:        params.Repo,
		tx:          params.TxRunner,
		repoFactory: factory,
		contacts:    params.Contacts,
		listingCfg:  limits,
	}, nil
}

func (s *service) List(ctx context.Context, query ListQuery) (*ListResponse, error) {
	filter, err := s.buildFilter(query)
	if err != nil {
		return nil, err
	}

	rows, total, err := s.repo.List(ctx, *filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list biodatas")
	}

	page := pagination.NormalizePage(query.Page)
	return &ListResponse{
		Biodatas:   SummariesFromModels(rows),
		Total:      total,
		Page:       page,
		TotalPages: pagination.TotalPages(total, filter.Limit),
	}, nil
}

func (s *service) buildFilter(query ListQuery) (*ListFilter, error) {
	filter := &ListFilter{}

	if query.Gender != "" {
		parsed, err := enums.ParseBiodataType(query.Gender)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid gender filter").
				WithDetails(map[string]any{"gender": query.Gender})
		}
		filter.Type = string(parsed)
	}
	if query.PermanentDivision != "" {
		parsed, err := enums.ParseDivision(query.PermanentDivision)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid permanentDivision filter").
				WithDetails(map[string]any{"permanentDivision": query.PermanentDivision})
		}
		filter.PermanentDivision = string(parsed)
	}
	if query.PresentDivision != "" {
		parsed, err := enums.ParseDivision(query.PresentDivision)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid presentDivision filter").
				WithDetails(map[string]any{"presentDivision": query.PresentDivision})
		}
		filter.PresentDivision = string(parsed)
	}

	minAge, maxAge := query.MinAge, query.MaxAge
	if minAge != 0 || maxAge != 0 {
		if minAge == 0 {
			minAge = MinFilterAge
		}
		if maxAge == 0 {
			maxAge = MaxFilterAge
		}
		if minAge < MinFilterAge || maxAge > MaxFilterAge || minAge > maxAge {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "age filter out of range").
				WithDetails(map[string]any{"minAge": minAge, "maxAge": maxAge, "min": MinFilterAge, "max": MaxFilterAge})
		}
		filter.MinAge = minAge
		filter.MaxAge = maxAge
	}

	sort, err := enums.ParseSortOrder(query.Sort)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid sort order").
			WithDetails(map[string]any{"sort": query.Sort})
	}
	filter.Sort = sort

	limit := query.Limit
	if limit <= 0 {
		limit = s.listingCfg.defaultLimit
	}
	if limit > s.listingCfg.maxLimit {
		limit = s.listingCfg.maxLimit
	}
	filter.Limit = limit
	filter.Offset = (pagination.NormalizePage(query.Page) - 1) * limit

	return filter, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID, viewer Viewer) (*BiodataDTO, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "biodata not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load biodata")
	}

	includeContact, err := s.contactVisible(ctx, row.OwnerEmail, row.ID, viewer)
	if err != nil {
		return nil, err
	}
	return FromModel(row, includeContact), nil
}

func (s *service) GetByOwner(ctx context.Context, email string, viewer Viewer) (*BiodataDTO, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if !viewerIsOwnerOrAdmin(viewer, email) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not your biodata")
	}

	row, err := s.repo.FindByOwnerEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "biodata not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load biodata")
	}
	return FromModel(row, true), nil
}

func (s *service) Upsert(ctx context.Context, ownerEmail string, req UpsertRequest, viewer Viewer) (*BiodataDTO, error) {
	ownerEmail = strings.ToLower(strings.TrimSpace(ownerEmail))
	if ownerEmail == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner email is required")
	}
	if !viewerIsOwnerOrAdmin(viewer, ownerEmail) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not your biodata")
	}
	if _, err := enums.ParseBiodataType(req.Type); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid biodata type")
	}
	if _, err := enums.ParseDivision(req.PermanentDivision); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid permanentDivision")
	}
	if _, err := enums.ParseDivision(req.PresentDivision); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid presentDivision")
	}

	var saved *BiodataDTO
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repoFactory(tx)

		existing, err := repo.FindByOwnerEmail(ctx, ownerEmail)
		switch {
		case err == nil:
			row := req.apply(existing)
			if err := repo.Update(ctx, row); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update biodata")
			}
			reloaded, err := repo.FindByID(ctx, row.ID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload biodata")
			}
			saved = FromModel(reloaded, true)
			return nil

		case errors.Is(err, gorm.ErrRecordNotFound):
			no, err := repo.NextBiodataNo(ctx)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "allocate biodata number")
			}
			row := req.apply(nil)
			row.ID = uuid.New()
			row.BiodataNo = no
			row.OwnerEmail = ownerEmail
			if err := repo.Create(ctx, row); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create biodata")
			}
			saved = FromModel(row, true)
			return nil

		default:
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup biodata")
		}
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (s *service) RequestPremium(ctx context.Context, id uuid.UUID, viewer Viewer) error {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "biodata not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load biodata")
	}
	if !viewerIsOwnerOrAdmin(viewer, row.OwnerEmail) {
		return pkgerrors.New(pkgerrors.CodeForbidden, "not your biodata")
	}
	if row.IsPremium {
		return pkgerrors.New(pkgerrors.CodeConflict, "biodata is already premium")
	}
	if row.PremiumRequested {
		return pkgerrors.New(pkgerrors.CodeConflict, "premium already requested")
	}

	affected, err := s.repo.MarkPremiumRequested(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "request premium")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "premium already requested")
	}
	return nil
}

func (s *service) ApprovePremium(ctx context.Context, id uuid.UUID) error {
	affected, err := s.repo.ApprovePremium(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "approve premium")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "no pending premium request")
	}
	return nil
}

func (s *service) ListPendingPremium(ctx context.Context) ([]BiodataSummary, error) {
	rows, err := s.repo.ListPendingPremium(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list premium requests")
	}
	return SummariesFromModels(rows), nil
}

// contactVisible applies the release rules: owner, admin, viewers whose own
// biodata is premium, and approved contact requesters see contact fields.
func (s *service) contactVisible(ctx context.Context, ownerEmail string, biodataID uuid.UUID, viewer Viewer) (bool, error) {
	if viewer.Email == "" {
		return false, nil
	}
	if viewerIsOwnerOrAdmin(viewer, ownerEmail) {
		return true, nil
	}

	own, err := s.repo.FindByOwnerEmail(ctx, viewer.Email)
	if err == nil && own.IsPremium {
		return true, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check viewer biodata")
	}

	if s.contacts != nil {
		approved, err := s.contacts.HasApproved(ctx, viewer.Email, biodataID)
		if err != nil {
			return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check contact approval")
		}
		if approved {
			return true, nil
		}
	}
	return false, nil
}

func viewerIsOwnerOrAdmin(viewer Viewer, ownerEmail string) bool {
	if viewer.Role == string(enums.RoleAdmin) {
		return true
	}
	return viewer.Email != "" && strings.EqualFold(viewer.Email, ownerEmail)
}

func (r UpsertRequest) apply(existing *models.Biodata) *models.Biodata {
	row := existing
	if row == nil {
		row = &models.Biodata{}
	}
	row.Type = r.Type
	row.Name = strings.TrimSpace(r.Name)
	row.PhotoURL = r.PhotoURL
	row.DateOfBirth = r.DateOfBirth
	row.Age = r.Age
	row.Height = r.Height
	row.Weight = r.Weight
	row.Occupation = r.Occupation
	row.Race = r.Race
	row.BloodType = r.BloodType
	row.FatherName = r.FatherName
	row.MotherName = r.MotherName
	row.PermanentDivision = r.PermanentDivision
	row.PresentDivision = r.PresentDivision
	row.ExpectedPartnerAge = r.ExpectedPartnerAge
	row.ExpectedPartnerHeight = r.ExpectedPartnerHeight
	row.ExpectedPartnerWeight = r.ExpectedPartnerWeight
	row.ContactEmail = strings.ToLower(strings.TrimSpace(r.ContactEmail))
	row.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
	return row
}
