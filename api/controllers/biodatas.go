package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tahmidr/matrimony-backend/api/middleware"
	"github.com/tahmidr/matrimony-backend/api/responses"
	"github.com/tahmidr/matrimony-backend/api/validators"
	"github.com/tahmidr/matrimony-backend/internal/biodatas"
	pkgerrors "github.com/tahmidr/matrimony-backend/pkg/errors"
	"github.com/tahmidr/matrimony-backend/pkg/logger"
)

func viewerFromContext(r *http.Request) biodatas.Viewer {
	ctx := r.Context()
	return biodatas.Viewer{
		Email: middleware.UserEmailFromContext(ctx),
		Role:  middleware.RoleFromContext(ctx),
	}
}

// BiodataList serves the public filtered listing. The response shape is
// fixed by existing clients, so it skips the success envelope.
func BiodataList(svc biodatas.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "biodatas service unavailable"))
			return
		}

		q := r.URL.Query()

		page, err := validators.ParseQueryInt(r, "page", 0, 0, 1<<20)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, 1<<10)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		minAge, err := validators.ParseQueryInt(r, "minAge", 0, 0, 200)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		maxAge, err := validators.ParseQueryInt(r, "maxAge", 0, 0, 200)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		query := biodatas.ListQuery{
			Gender:            strings.TrimSpace(q.Get("gender")),
			PermanentDivision: strings.TrimSpace(q.Get("permanentDivision")),
			PresentDivision:   strings.TrimSpace(q.Get("presentDivision")),
			MinAge:            minAge,
			MaxAge:            maxAge,
			Sort:              strings.TrimSpace(q.Get("sort")),
			Page:              page,
			Limit:             limit,
		}

		resp, err := svc.List(ctx, query)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteRaw(w, http.StatusOK, resp)
	}
}

// BiodataGetByID returns a single profile. Contact fields appear only for
// entitled viewers.
func BiodataGetByID(svc biodatas.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "biodatas service unavailable"))
			return
		}

		raw := strings.TrimSpace(chi.URLParam(r, "id"))
		id, err := uuid.Parse(raw)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid biodata id"))
			return
		}

		dto, err := svc.GetByID(ctx, id, viewerFromContext(r))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// BiodataGetByOwner returns the profile owned by the given email. Restricted
// to the owner and admins.
func BiodataGetByOwner(svc biodatas.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "biodatas service unavailable"))
			return
		}

		email := strings.TrimSpace(chi.URLParam(r, "email"))
		if email == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "email is required"))
			return
		}

		dto, err := svc.GetByOwner(ctx, email, viewerFromContext(r))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// BiodataUpsert creates or replaces the profile owned by the given email.
// First writes allocate the next sequential public number.
func BiodataUpsert(svc biodatas.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "biodatas service unavailable"))
			return
		}

		email := strings.TrimSpace(chi.URLParam(r, "email"))
		if email == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "email is required"))
			return
		}

		var body biodatas.UpsertRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.Upsert(ctx, email, body, viewerFromContext(r))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// BiodataRequestPremium flags the owner's profile for premium review.
func BiodataRequestPremium(svc biodatas.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "biodatas service unavailable"))
			return
		}

		raw := strings.TrimSpace(chi.URLParam(r, "id"))
		id, err := uuid.Parse(raw)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid biodata id"))
			return
		}

		if err := svc.RequestPremium(ctx, id, viewerFromContext(r)); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "requested"})
	}
}
