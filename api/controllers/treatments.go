package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/smileroute/smileroute-backend/api/responses"
	treatmentsvc "github.com/smileroute/smileroute-backend/internal/treatments"
	pkgerrors "github.com/smileroute/smileroute-backend/pkg/errors"
	"github.com/smileroute/smileroute-backend/pkg/logger"
	pkgpagination "github.com/smileroute/smileroute-backend/pkg/pagination"
)

// ListTreatments serves the treatment catalog with cursor pagination.
func ListTreatments(svc treatmentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "treatment service unavailable"))
			return
		}

		params := treatmentsvc.ListParams{Params: pkgpagination.Params{
			Cursor: r.URL.Query().Get("cursor"),
		}}
		if raw := r.URL.Query().Get("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid limit"))
				return
			}
			params.Limit = limit
		}

		result, err := svc.ListTreatments(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// GetTreatment serves a single catalog entry.
func GetTreatment(svc treatmentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "treatment service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "treatmentID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid treatment id"))
			return
		}

		row, err := svc.GetTreatment(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"id":          row.ID,
			"name":        row.Name,
			"description": row.Description,
			"unit_price":  row.UnitPrice.StringFixed(2),
			"tags":        []string(row.Tags),
		})
	}
}
