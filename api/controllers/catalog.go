package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/promostore-backend/api/responses"
	"github.com/angelmondragon/promostore-backend/internal/catalog"
	pkgerrors "github.com/angelmondragon/promostore-backend/pkg/errors"
	"github.com/angelmondragon/promostore-backend/pkg/logger"
)

// CatalogReader is the read side of the catalog used by the handlers.
type CatalogReader interface {
	Products() []catalog.Product
	Product(id int) (catalog.Product, bool)
	Categories() []catalog.Category
	Suppliers() []catalog.Supplier
	PriceBounds() catalog.PriceRange
	DefaultCriteria() catalog.Criteria
}

func CatalogCategories(cat CatalogReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, cat.Categories())
	}
}

func CatalogSuppliers(cat CatalogReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, cat.Suppliers())
	}
}

func CatalogPriceRange(cat CatalogReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, cat.PriceBounds())
	}
}

// ProductGet returns a single product by its numeric id.
func ProductGet(cat CatalogReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, ok := cat.Product(id)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func productIDParam(r *http.Request) (int, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "productId"))
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid product id").WithDetails(map[string]any{"productId": raw})
	}
	return id, nil
}
