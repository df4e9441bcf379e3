package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tahmidr/matrimony-backend/api/middleware"
	"github.com/tahmidr/matrimony-backend/api/responses"
	"github.com/tahmidr/matrimony-backend/api/validators"
	"github.com/tahmidr/matrimony-backend/internal/contacts"
	pkgerrors "github.com/tahmidr/matrimony-backend/pkg/errors"
	"github.com/tahmidr/matrimony-backend/pkg/logger"
)

// ContactRequestCreate opens a pending request for a biodata's contact details.
func ContactRequestCreate(svc contacts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contacts service unavailable"))
			return
		}

		var body contacts.CreateContactRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.Request(ctx, middleware.UserEmailFromContext(ctx), body)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// ContactRequestList returns the caller's requests. Contact fields are
// present only on approved entries.
func ContactRequestList(svc contacts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contacts service unavailable"))
			return
		}

		list, err := svc.ListForUser(ctx, middleware.UserEmailFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// ContactRequestRemove withdraws a request owned by the caller.
func ContactRequestRemove(svc contacts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contacts service unavailable"))
			return
		}

		raw := strings.TrimSpace(chi.URLParam(r, "id"))
		id, err := uuid.Parse(raw)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request id"))
			return
		}

		if err := svc.Remove(ctx, id, middleware.UserEmailFromContext(ctx)); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"removed": true})
	}
}
