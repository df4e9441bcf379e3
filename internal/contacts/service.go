package contacts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tahmidr/matrimony-backend/pkg/db/models"
	pkgerrors "github.com/tahmidr/matrimony-backend/pkg/errors"
)

// Service defines the behavior needed by the contact request controllers.
type Service interface {
	Request(ctx context.Context, userEmail string, req CreateContactRequest) (*ContactRequestDTO, error)
	ListForUser(ctx context.Context, userEmail string) ([]ContactRequestDTO, error)
	ListPending(ctx context.Context) ([]ContactRequestDTO, error)
	Approve(ctx context.Context, id uuid.UUID) error
	Remove(ctx context.Context, id uuid.UUID, userEmail string) error
}

type biodataFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Biodata, error)
}

type service struct {
	repo     *Repository
	biodatas biodataFinder
}

// ServiceParams bundles the dependencies required to build a contacts service.
type ServiceParams struct {
	Repo     *Repository
	Biodatas biodataFinder
}

// NewService constructs a contacts service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("contacts repository is required")
	}
	if params.Biodatas == nil {
		return nil, fmt.Errorf("biodata finder is required")
	}
	return &service{repo: params.Repo, biodatas: params.Biodatas}, nil
}

func (s *service) Request(ctx context.Context, userEmail string, req CreateContactRequest) (*ContactRequestDTO, error) {
	userEmail = strings.ToLower(strings.TrimSpace(userEmail))
	if userEmail == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user identity")
	}

	target, err := s.biodatas.FindByID(ctx, req.BiodataID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "biodata not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load biodata")
	}
	if strings.EqualFold(target.OwnerEmail, userEmail) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cannot request your own contact details")
	}

	exists, err := s.repo.Exists(ctx, userEmail, req.BiodataID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check contact request")
	}
	if exists {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "contact request already exists")
	}

	row := &models.ContactRequest{
		ID:        uuid.New(),
		UserEmail: userEmail,
		BiodataID: req.BiodataID,
		Status:    StatusPending,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "contact request already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save contact request")
	}

	dto := fromRow(requestRow{
		ID:        row.ID,
		UserEmail: userEmail,
		BiodataID: target.ID,
		BiodataNo: target.BiodataNo,
		Name:      target.Name,
		Status:    StatusPending,
	})
	return &dto, nil
}

func (s *service) ListForUser(ctx context.Context, userEmail string) ([]ContactRequestDTO, error) {
	userEmail = strings.ToLower(strings.TrimSpace(userEmail))
	if userEmail == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user identity")
	}

	rows, err := s.repo.ListByUserEmail(ctx, userEmail)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list contact requests")
	}
	return fromRows(rows), nil
}

func (s *service) ListPending(ctx context.Context) ([]ContactRequestDTO, error) {
	rows, err := s.repo.ListPending(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list pending requests")
	}
	return fromRows(rows), nil
}

func (s *service) Approve(ctx context.Context, id uuid.UUID) error {
	affected, err := s.repo.Approve(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "approve contact request")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "no pending contact request")
	}
	return nil
}

func (s *service) Remove(ctx context.Context, id uuid.UUID, userEmail string) error {
	userEmail = strings.ToLower(strings.TrimSpace(userEmail))
	if userEmail == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user identity")
	}

	affected, err := s.repo.Delete(ctx, id, userEmail)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete contact request")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "contact request not found")
	}
	return nil
}
