package controllers

import (
	"net/http"

	"github.com/angelmondragon/promostore-backend/api/middleware"
	"github.com/angelmondragon/promostore-backend/api/responses"
	"github.com/angelmondragon/promostore-backend/api/validators"
	cartsvc "github.com/angelmondragon/promostore-backend/internal/cart"
	pkgerrors "github.com/angelmondragon/promostore-backend/pkg/errors"
	"github.com/angelmondragon/promostore-backend/pkg/logger"
)

// CartFetch returns the session's cart and its summary.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "session id missing"))
			return
		}

		view, err := svc.GetCart(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

type addCartItemRequest struct {
	ProductID     int     `json:"productId" validate:"required,gte=1"`
	Quantity      int     `json:"quantity" validate:"omitempty,gte=1,lte=9999"`
	SelectedColor *string `json:"selectedColor" validate:"omitempty,max=40"`
	SelectedSize  *string `json:"selectedSize" validate:"omitempty,max=40"`
}

func (r addCartItemRequest) toInput() cartsvc.AddItemInput {
	return cartsvc.AddItemInput{
		ProductID:     r.ProductID,
		Quantity:      r.Quantity,
		SelectedColor: r.SelectedColor,
		SelectedSize:  r.SelectedSize,
	}
}

// CartAddItem adds a product variant to the session's cart. Quantity
// defaults to one.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "session id missing"))
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.AddItem(r.Context(), sessionID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}
