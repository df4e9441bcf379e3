package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/tahmidr/matrimony-backend/api/middleware"
	"github.com/tahmidr/matrimony-backend/internal/favourites"
	pkgerrors "github.com/tahmidr/matrimony-backend/pkg/errors"
)

type stubFavouriteService struct {
	lastEmail string
	dto       *favourites.FavouriteDTO
	list      []favourites.FavouriteDTO
	err       error
}

func (s *stubFavouriteService) Add(ctx context.Context, userEmail string, req favourites.AddFavouriteRequest) (*favourites.FavouriteDTO, error) {
	s.lastEmail = userEmail
	return s.dto, s.err
}

func (s *stubFavouriteService) ListForUser(ctx context.Context, userEmail string) ([]favourites.FavouriteDTO, error) {
	s.lastEmail = userEmail
	return s.list, s.err
}

func (s *stubFavouriteService) Remove(ctx context.Context, id uuid.UUID, userEmail string) error {
	s.lastEmail = userEmail
	return s.err
}

func TestFavouriteAddUsesCallerIdentity(t *testing.T) {
	stub := &stubFavouriteService{dto: &favourites.FavouriteDTO{ID: uuid.New()}}

	body := strings.NewReader(`{"biodataId":"` + uuid.NewString() + `"}`)
	ctx := middleware.WithUserEmail(context.Background(), "viewer@x.com")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/favourites", body).WithContext(ctx)
	rec := httptest.NewRecorder()
	FavouriteAdd(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.lastEmail != "viewer@x.com" {
		t.Fatalf("expected caller email from context, got %q", stub.lastEmail)
	}
}

func TestFavouriteAddConflict(t *testing.T) {
	stub := &stubFavouriteService{err: pkgerrors.New(pkgerrors.CodeConflict, "biodata already favourited")}

	body := strings.NewReader(`{"biodataId":"` + uuid.NewString() + `"}`)
	ctx := middleware.WithUserEmail(context.Background(), "viewer@x.com")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/favourites", body).WithContext(ctx)
	rec := httptest.NewRecorder()
	FavouriteAdd(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestFavouriteAddRejectsUnknownFields(t *testing.T) {
	body := strings.NewReader(`{"biodataId":"` + uuid.NewString() + `","extra":true}`)
	ctx := middleware.WithUserEmail(context.Background(), "viewer@x.com")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/favourites", body).WithContext(ctx)
	rec := httptest.NewRecorder()
	FavouriteAdd(&stubFavouriteService{}, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %d", rec.Code)
	}
}
