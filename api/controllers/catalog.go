package controllers

import (
	"net/http"

	"github.com/shoplite/shoplite-backend/api/responses"
	catalogsvc "github.com/shoplite/shoplite-backend/internal/catalog"
	pkgerrors "github.com/shoplite/shoplite-backend/pkg/errors"
	"github.com/shoplite/shoplite-backend/pkg/logger"
)

// CatalogCategories lists the distinct categories known to the catalog.
func CatalogCategories(svc *catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		categories, err := svc.Categories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string][]string{"categories": categories})
	}
}

// CatalogKeywords returns the fixed quick-pick keyword list.
func CatalogKeywords(svc *catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		responses.WriteSuccess(w, map[string][]string{"keywords": svc.Keywords()})
	}
}
