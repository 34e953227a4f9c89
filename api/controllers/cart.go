package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hrgrifes/atelier-backend/api/responses"
	"github.com/hrgrifes/atelier-backend/api/validators"
	cartsvc "github.com/hrgrifes/atelier-backend/internal/cart"
	"github.com/hrgrifes/atelier-backend/internal/checkout"
	"github.com/hrgrifes/atelier-backend/internal/content"
	"github.com/hrgrifes/atelier-backend/pkg/config"
	pkgerrors "github.com/hrgrifes/atelier-backend/pkg/errors"
	"github.com/hrgrifes/atelier-backend/pkg/logger"
)

type cartStateRequest struct {
	Open *bool `json:"open" validate:"required"`
}

type cartResponse struct {
	Items []content.Item `json:"items"`
	Open  bool           `json:"open"`
}

// CartGet returns the cart entries in pick order plus the drawer state.
func CartGet(svc *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items := svc.Items(r.Context())
		if items == nil {
			items = []content.Item{}
		}
		responses.WriteSuccess(w, cartResponse{Items: items, Open: svc.IsOpen(r.Context())})
	}
}

// CartAdd appends an item snapshot to the cart.
func CartAdd(svc *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var item content.Item
		if err := validators.DecodeJSONBody(r, &item); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Add(r.Context(), item); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]int{"count": svc.Count(r.Context())})
	}
}

// CartRemove drops the entry at the given position.
func CartRemove(svc *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "cart position must be an integer"))
			return
		}

		if err := svc.Remove(r.Context(), index); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]int{"count": svc.Count(r.Context())})
	}
}

// CartClear empties the cart.
func CartClear(svc *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Clear(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}

// CartSetState records whether the drawer is open.
func CartSetState(svc *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req cartStateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		svc.SetOpen(r.Context(), *req.Open)
		responses.WriteSuccess(w, map[string]bool{"open": *req.Open})
	}
}

// CartCheckout composes the order handoff from the current cart. The cart is
// left intact; the visitor completes the order on the other side of the link.
func CartCheckout(cfg config.CheckoutConfig, svc *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, err := checkout.Compose(cfg, svc.Items(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}
