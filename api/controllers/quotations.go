package controllers

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/promostore-backend/api/responses"
	"github.com/angelmondragon/promostore-backend/api/validators"
	"github.com/angelmondragon/promostore-backend/internal/quotation"
	"github.com/angelmondragon/promostore-backend/pkg/logger"
)

func QuotationDraft(svc quotation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, svc.Draft(id))
	}
}

type generateQuotationRequest struct {
	Fields map[string]string `json:"fields" validate:"required"`
}

// QuotationGenerate validates the submitted form and returns the priced
// document as JSON, or the exported file for ?format=html|pdf.
func QuotationGenerate(svc quotation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload generateQuotationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
		result, err := svc.Generate(r.Context(), id, payload.Fields, format)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if result.Format == quotation.FormatJSON || len(result.Body) == 0 {
			responses.WriteSuccessStatus(w, http.StatusCreated, result.Document)
			return
		}
		filename := strings.ToLower(result.Document.Reference) + "." + result.Format
		responses.WriteBody(w, http.StatusOK, result.ContentType, filename, result.Body)
	}
}
