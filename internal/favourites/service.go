package favourites

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

// Service defines the behavior needed by the favourites controllers.
type Service interface {
	Add(ctx context.Context, userEmail string, req AddFavouriteRequest) (*FavouriteDTO, error)
	ListForUser(ctx context.Context, userEmail string) ([]FavouriteDTO, error)
	Remove(ctx context.Context, id uuid.UUID, userEmail string) error
}

// biodataFinder resolves a biodata row by id. Implemented by the biodatas
// repository.
type biodataFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Biodata, error)
}

type service struct {
	repo     *Repository
	biodatas biodataFinder
}

// ServiceParams bundles the dependencies required to build a favourites service.
type ServiceParams struct {
	Repo     *Repository
	Biodatas biodataFinder
}

// NewService constructs a favourites service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("favourites repository is required")
	}
	if params.Biodatas == nil {
		return nil, fmt.Errorf("biodata finder is required")
	}
	return &service{repo: params.Repo, biodatas: params.Biodatas}, nil
}

func (s *service) Add(ctx context.Context, userEmail string, req AddFavouriteRequest) (*FavouriteDTO, error) {
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

	exists, err := s.repo.Exists(ctx, userEmail, req.BiodataID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check favourite")
	}
	if exists {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "biodata already favourited")
	}

	row := &models.Favourite{
		ID:        uuid.New(),
		UserEmail: userEmail,
		BiodataID: req.BiodataID,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		// lost a race with a concurrent add
		if pkgerrors.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "biodata already favourited")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save favourite")
	}

	dto := fromRow(favouriteRow{
		ID:                row.ID,
		BiodataID:         target.ID,
		BiodataNo:         target.BiodataNo,
		Name:              target.Name,
		PermanentDivision: target.PermanentDivision,
		Occupation:        target.Occupation,
	})
	return &dto, nil
}

func (s *service) ListForUser(ctx context.Context, userEmail string) ([]FavouriteDTO, error) {
	userEmail = strings.ToLower(strings.TrimSpace(userEmail))
	if userEmail == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user identity")
	}

	rows, err := s.repo.ListByUserEmail(ctx, userEmail)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list favourites")
	}
	return fromRows(rows), nil
}

func (s *service) Remove(ctx context.Context, id uuid.UUID, userEmail string) error {
	userEmail = strings.ToLower(strings.TrimSpace(userEmail))
	if userEmail == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user identity")
	}

	affected, err := s.repo.Delete(ctx, id, userEmail)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete favourite")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "favourite not found")
	}
	return nil
}
