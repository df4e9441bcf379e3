package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tahmidr/matrimony-backend/api/middleware"
	"github.com/tahmidr/matrimony-backend/api/responses"
	"github.com/tahmidr/matrimony-backend/api/validators"
	"github.com/tahmidr/matrimony-backend/internal/favourites"
	pkgerrors "github.com/tahmidr/matrimony-backend/pkg/errors"
	"github.com/tahmidr/matrimony-backend/pkg/logger"
)

// FavouriteAdd bookmarks a biodata for the caller.
func FavouriteAdd(svc favourites.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "favourites service unavailable"))
			return
		}

		var body favourites.AddFavouriteRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.Add(ctx, middleware.UserEmailFromContext(ctx), body)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// FavouriteList returns the caller's bookmarks with biodata display fields.
func FavouriteList(svc favourites.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "favourites service unavailable"))
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

// FavouriteRemove deletes a bookmark owned by the caller.
func FavouriteRemove(svc favourites.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "favourites service unavailable"))
			return
		}

		raw := strings.TrimSpace(chi.URLParam(r, "id"))
		id, err := uuid.Parse(raw)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid favourite id"))
			return
		}

		if err := svc.Remove(ctx, id, middleware.UserEmailFromContext(ctx)); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"removed": true})
	}
}
