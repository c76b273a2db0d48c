package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/shoplite/shoplite-backend/api/responses"
	"github.com/shoplite/shoplite-backend/api/validators"
	catalogsvc "github.com/shoplite/shoplite-backend/internal/catalog"
	pkgerrors "github.com/shoplite/shoplite-backend/pkg/errors"
	"github.com/shoplite/shoplite-backend/pkg/logger"
)

const maxBrowsePage = 10000

// ProductsBrowse serves one catalog page for the active filter set.
//
// The client echoes the fingerprint of its previously applied filters in
// prev_filters; when it no longer matches the current criteria the page is
// snapped back to 1 (policy permitting).
func ProductsBrowse(svc *catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		page, err := validators.ParseQueryInt(r, "page", 1, 1, maxBrowsePage)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		minPrice, err := validators.ParseQueryDecimal(r, "min_price")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		maxPrice, err := validators.ParseQueryDecimal(r, "max_price")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var criteria catalogsvc.Criteria
		criteria.SetSearchQuery(r.URL.Query().Get("search"))
		criteria.SetCategory(r.URL.Query().Get("category"))
		criteria.SetKeyword(r.URL.Query().Get("keyword"))
		criteria.SetMinPrice(minPrice)
		criteria.SetMaxPrice(maxPrice)

		req := catalogsvc.BrowseRequest{
			Page:            page,
			Criteria:        criteria,
			Sort:            catalogsvc.ParseSortMode(r.URL.Query().Get("sort")),
			PrevFingerprint: strings.TrimSpace(r.URL.Query().Get("prev_filters")),
		}

		result, err := svc.Browse(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// ProductsGet loads a single product by its upstream identifier.
func ProductsGet(svc *catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := validators.ParseQueryInt64(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}
