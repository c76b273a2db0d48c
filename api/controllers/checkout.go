package controllers

import (
	"net/http"

	"github.com/shoplite/shoplite-backend/api/responses"
	ordersvc "github.com/shoplite/shoplite-backend/internal/orders"
	pkgerrors "github.com/shoplite/shoplite-backend/pkg/errors"
	"github.com/shoplite/shoplite-backend/pkg/logger"
)

// Checkout converts the caller's cart into an order in one transaction.
func Checkout(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		userID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Checkout(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
