package controllers

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/promostore-backend/api/responses"
	"github.com/angelmondragon/promostore-backend/api/validators"
	"github.com/angelmondragon/promostore-backend/internal/catalog"
	"github.com/angelmondragon/promostore-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/promostore-backend/pkg/errors"
	"github.com/angelmondragon/promostore-backend/pkg/logger"
	"github.com/angelmondragon/promostore-backend/pkg/pagination"
)

const maxSearchLen = 120

type productListResponse struct {
	Criteria   catalog.Criteria  `json:"criteria"`
	Count      int               `json:"count"`
	Products   []catalog.Product `json:"products"`
	NextCursor string            `json:"nextCursor,omitempty"`
}

// ProductList runs the filter and sort pipeline synchronously over the query
// parameters. Absent parameters fall back to the unfiltered listing. The
// result is paged only when limit or cursor is given; Count is always the
// full match count.
func ProductList(cat CatalogReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		criteria, err := criteriaFromQuery(r, cat)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		products := catalog.FilterAndSort(cat.Products(), criteria)
		resp := productListResponse{
			Criteria: criteria,
			Count:    len(products),
			Products: products,
		}

		query := r.URL.Query()
		if query.Has("limit") || query.Has("cursor") {
			limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			page, err := pagination.Slice(products, pagination.Params{Limit: limit, Cursor: query.Get("cursor")}, productID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor"))
				return
			}
			resp.Products = page.Items
			resp.NextCursor = page.NextCursor
		}
		responses.WriteSuccess(w, resp)
	}
}

func criteriaFromQuery(r *http.Request, cat CatalogReader) (catalog.Criteria, error) {
	criteria := cat.DefaultCriteria()

	if category := validators.ParseQueryString(r, "category", maxSearchLen); category != "" {
		criteria.Category = category
	}
	criteria.Search = validators.ParseQueryString(r, "q", maxSearchLen)
	criteria.Supplier = validators.ParseQueryString(r, "supplier", maxSearchLen)

	if raw := strings.TrimSpace(r.URL.Query().Get("sort")); raw != "" {
		key, err := enums.ParseSortKey(raw)
		if err != nil {
			return catalog.Criteria{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort key").
				WithDetails(map[string]any{"sort": raw, "allowed": enums.SortKeys()})
		}
		criteria.SortKey = key
	}

	var err error
	if criteria.PriceRange.Min, err = validators.ParseQueryInt64(r, "price_min", criteria.PriceRange.Min); err != nil {
		return catalog.Criteria{}, err
	}
	if criteria.PriceRange.Max, err = validators.ParseQueryInt64(r, "price_max", criteria.PriceRange.Max); err != nil {
		return catalog.Criteria{}, err
	}
	return criteria, nil
}

func productID(p catalog.Product) int {
	return p.ID
}
