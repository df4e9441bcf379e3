package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/tahmidr/matrimony-backend/pkg/enums"
	pkgerrors "github.com/tahmidr/matrimony-backend/pkg/errors"
	"github.com/tahmidr/matrimony-backend/pkg/pagination"
)

// SaveUserRequest is the upsert payload sent after a client-side sign-in
// completes. Role and IsActive are accepted because existing clients send
// them, but they are never honored: role changes go through the admin promote
// endpoint only.
type SaveUserRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Name     string  `json:"name" validate:"required"`
	PhotoURL *string `json:"photo,omitempty"`
	Role     *string `json:"role,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// ListUsersResult pairs a page of users with its pagination metadata.
type ListUsersResult struct {
	Users []UserDTO       `json:"users"`
	Meta  pagination.Meta `json:"meta"`
}

// Service defines the behavior needed by the users controllers.
type Service interface {
	Save(ctx context.Context, req SaveUserRequest) (*UserDTO, error)
	GetByEmail(ctx context.Context, email string) (*UserDTO, error)
	List(ctx context.Context, search string, params pagination.Params) (*ListUsersResult, error)
	PromoteToAdmin(ctx context.Context, email string) (*UserDTO, error)
}

type service struct {
	repo *Repository
}

// ServiceParams bundles the dependencies required to build a users service.
type ServiceParams struct {
	Repo *Repository
}

// NewService constructs a users service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("users repository is required")
	}
	return &service{repo: params.Repo}, nil
}

func (s *service) Save(ctx context.Context, req SaveUserRequest) (*UserDTO, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	user, err := s.repo.Upsert(ctx, CreateUserDTO{
		Email:    email,
		Name:     strings.TrimSpace(req.Name),
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save user")
	}
	return FromModel(user), nil
}

func (s *service) GetByEmail(ctx context.Context, email string) (*UserDTO, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	return FromModel(user), nil
}

func (s *service) List(ctx context.Context, search string, params pagination.Params) (*ListUsersResult, error) {
	normalized := pagination.Normalize(params)
	users, total, err := s.repo.List(ctx, strings.TrimSpace(search), normalized.Limit, normalized.Offset())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list users")
	}
	return &ListUsersResult{
		Users: FromModels(users),
		Meta:  pagination.NewMeta(normalized, total),
	}, nil
}

func (s *service) PromoteToAdmin(ctx context.Context, email string) (*UserDTO, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	affected, err := s.repo.UpdateRole(ctx, email, string(enums.RoleAdmin))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "promote user")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload user")
	}
	return FromModel(user), nil
}
