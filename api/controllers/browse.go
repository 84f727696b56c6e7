package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/angelmondragon/promostore-backend/api/middleware"
	"github.com/angelmondragon/promostore-backend/api/responses"
	"github.com/angelmondragon/promostore-backend/api/validators"
	"github.com/angelmondragon/promostore-backend/internal/catalog"
	"github.com/angelmondragon/promostore-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/promostore-backend/pkg/errors"
	"github.com/angelmondragon/promostore-backend/pkg/logger"
)

// maxBrowseWait bounds a long-poll on GET /browse?wait_seq=.
const maxBrowseWait = 10 * time.Second

// BrowseSessions hands out the per-session browse runner.
type BrowseSessions interface {
	Get(sessionID string) (*catalog.Runner, error)
}

type browseCriteriaRequest struct {
	Category   string             `json:"category" validate:"max=120"`
	Search     string             `json:"search" validate:"max=120"`
	Supplier   string             `json:"supplier" validate:"max=120"`
	SortKey    string             `json:"sortKey" validate:"omitempty,oneof=name price-asc price-desc stock"`
	PriceRange *priceRangeRequest `json:"priceRange"`
}

type priceRangeRequest struct {
	Min int64 `json:"min" validate:"gte=0"`
	Max int64 `json:"max" validate:"gte=0"`
}

func (req browseCriteriaRequest) toCriteria(cat CatalogReader) catalog.Criteria {
	criteria := cat.DefaultCriteria()
	if category := strings.TrimSpace(req.Category); category != "" {
		criteria.Category = category
	}
	criteria.Search = validators.SanitizeString(req.Search, maxSearchLen)
	criteria.Supplier = strings.TrimSpace(req.Supplier)
	if req.SortKey != "" {
		criteria.SortKey = enums.SortKey(req.SortKey)
	}
	if req.PriceRange != nil {
		criteria.PriceRange = catalog.PriceRange{Min: req.PriceRange.Min, Max: req.PriceRange.Max}
	}
	return criteria
}

type browseAcceptedResponse struct {
	Seq uint64 `json:"seq"`
}

// BrowseSubmit replaces the session's criteria and schedules a run.
func BrowseSubmit(sessions BrowseSessions, cat CatalogReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runner, err := sessionRunner(r, sessions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload browseCriteriaRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		seq := runner.Submit(payload.toCriteria(cat))
		responses.WriteSuccessStatus(w, http.StatusAccepted, browseAcceptedResponse{Seq: seq})
	}
}

// BrowseState returns the session's listing. With wait_seq it blocks until
// that request, or a newer one, has settled or the wait times out.
func BrowseState(sessions BrowseSessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runner, err := sessionRunner(r, sessions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		seq, err := validators.ParseQueryInt64(r, "wait_seq", 0)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if seq == 0 {
			responses.WriteSuccess(w, runner.State())
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), maxBrowseWait)
		defer cancel()
		state, err := runner.Wait(ctx, uint64(seq))
		switch {
		case err == nil, errors.Is(err, context.DeadlineExceeded):
			responses.WriteSuccess(w, state)
		case errors.Is(err, catalog.ErrUnknownSequence):
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown browse sequence").
				WithDetails(map[string]any{"wait_seq": seq, "latest": state.Seq}))
		case errors.Is(err, catalog.ErrRunnerClosed):
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "browse session expired"))
		default:
			responses.WriteError(r.Context(), logg, w, err)
		}
	}
}

// BrowseRetry re-runs the current criteria after a failure.
func BrowseRetry(sessions BrowseSessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runner, err := sessionRunner(r, sessions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusAccepted, browseAcceptedResponse{Seq: runner.Retry()})
	}
}

// BrowseReset clears every filter back to the unfiltered listing.
func BrowseReset(sessions BrowseSessions, cat CatalogReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runner, err := sessionRunner(r, sessions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		seq := runner.Submit(cat.DefaultCriteria())
		responses.WriteSuccessStatus(w, http.StatusAccepted, browseAcceptedResponse{Seq: seq})
	}
}

func sessionRunner(r *http.Request, sessions BrowseSessions) (*catalog.Runner, error) {
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id missing")
	}
	runner, err := sessions.Get(sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "opening browse session")
	}
	return runner, nil
}
