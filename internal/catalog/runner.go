package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/angelmondragon/promostore-backend/pkg/enums"
	"github.com/angelmondragon/promostore-backend/pkg/logger"
)

// Browse outcomes reported to a RunObserver.
const (
	OutcomeApplied = "applied"
	OutcomeStale   = "stale"
	OutcomeFailed  = "failed"
)

// ErrRunnerClosed is returned by Wait once the runner has been shut down.
var ErrRunnerClosed = errors.New("browse runner closed")

// ErrUnknownSequence is returned by Wait for a sequence that was never issued.
var ErrUnknownSequence = errors.New("unknown browse sequence")

// FailureMessage is shown while a listing is in the failed state.
const FailureMessage = "Ocurrió un error al filtrar los productos. Intenta nuevamente."

// ProductSource supplies the unfiltered product list for every run.
type ProductSource interface {
	Products() []Product
}

// Pipeline turns the full product list into the visible one.
type Pipeline func(all []Product, c Criteria) ([]Product, error)

// RunObserver receives one call per finished or discarded request.
type RunObserver interface {
	ObserveBrowse(outcome string, elapsed time.Duration)
}

// BrowseState is a snapshot of a session's product listing.
type BrowseState struct {
	Status enums.BrowseStatus `json:"status"`
	// Seq is the most recently requested sequence, AppliedSeq the one whose
	// products are on display.
	Seq        uint64    `json:"seq"`
	AppliedSeq uint64    `json:"appliedSeq"`
	Criteria   Criteria  `json:"criteria"`
	Products   []Product `json:"products"`
	Error      string    `json:"error,omitempty"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// RunnerOptions tunes a Runner. Zero values fall back to defaults.
type RunnerOptions struct {
	Delay    time.Duration
	Pipeline Pipeline
	Observer RunObserver
	Logger   *logger.Logger
}

// Runner re-runs the pipeline after every criteria change. Each request is
// deferred by Delay; a newer request cancels a pending one, and results of
// superseded requests are discarded so the latest request always wins.
type Runner struct {
	source   ProductSource
	delay    time.Duration
	pipeline Pipeline
	observer RunObserver
	logg     *logger.Logger

	mu      sync.Mutex
	seq     uint64
	state   BrowseState
	cancel  context.CancelFunc
	settled chan struct{}
	closed  bool
}

// NewRunner builds an idle runner showing the unfiltered catalog.
func NewRunner(source ProductSource, initial Criteria, opts RunnerOptions) (*Runner, error) {
	if source == nil {
		return nil, fmt.Errorf("product source required")
	}
	if opts.Delay < 0 {
		return nil, fmt.Errorf("delay must not be negative")
	}
	pipeline := opts.Pipeline
	if pipeline == nil {
		pipeline = func(all []Product, c Criteria) ([]Product, error) {
			return FilterAndSort(all, c), nil
		}
	}
	return &Runner{
		source:   source,
		delay:    opts.Delay,
		pipeline: pipeline,
		observer: opts.Observer,
		logg:     opts.Logger,
		state: BrowseState{
			Status:    enums.BrowseStatusIdle,
			Criteria:  initial,
			Products:  source.Products(),
			UpdatedAt: time.Now().UTC(),
		},
		settled: make(chan struct{}),
	}, nil
}

// Submit schedules a run for c and returns its sequence number.
func (r *Runner) Submit(c Criteria) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return r.seq
	}
	if r.cancel != nil {
		r.cancel()
	}
	r.seq++
	seq := r.seq

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel

	r.state.Status = enums.BrowseStatusLoading
	r.state.Seq = seq
	r.state.Criteria = c
	r.state.Error = ""
	r.state.UpdatedAt = time.Now().UTC()

	go r.run(ctx, seq, c)
	return seq
}

// Retry re-submits the most recently requested criteria.
func (r *Runner) Retry() uint64 {
	r.mu.Lock()
	c := r.state.Criteria
	r.mu.Unlock()
	return r.Submit(c)
}

// State returns a snapshot of the listing.
func (r *Runner) State() BrowseState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot()
}

// Wait blocks until request seq, or a newer one, has settled.
func (r *Runner) Wait(ctx context.Context, seq uint64) (BrowseState, error) {
	for {
		r.mu.Lock()
		if seq > r.seq {
			state := r.snapshot()
			r.mu.Unlock()
			return state, ErrUnknownSequence
		}
		if r.state.Status.Settled() && r.state.Seq >= seq {
			state := r.snapshot()
			r.mu.Unlock()
			return state, nil
		}
		if r.closed {
			state := r.snapshot()
			r.mu.Unlock()
			return state, ErrRunnerClosed
		}
		ch := r.settled
		r.mu.Unlock()

		select {
		case <-ctx.Done():
			return r.State(), ctx.Err()
		case <-ch:
		}
	}
}

// Close cancels pending work and releases waiters.
func (r *Runner) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.broadcast()
}

func (r *Runner) run(ctx context.Context, seq uint64, c Criteria) {
	if r.delay > 0 {
		timer := time.NewTimer(r.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			r.observe(OutcomeStale, 0)
			return
		case <-timer.C:
		}
	}

	start := time.Now()
	products, err := r.execute(c)
	r.apply(seq, products, err, time.Since(start))
}

// execute turns panics into errors so a broken pipeline never takes the
// process down with it.
func (r *Runner) execute(c Criteria) (products []Product, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("browse pipeline panic: %v", rec)
		}
	}()
	return r.pipeline(r.source.Products(), c)
}

func (r *Runner) apply(seq uint64, products []Product, err error, elapsed time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if seq != r.seq || r.closed {
		r.observe(OutcomeStale, elapsed)
		return
	}
	r.cancel = nil
	r.state.UpdatedAt = time.Now().UTC()

	if err != nil {
		r.state.Status = enums.BrowseStatusFailed
		r.state.Error = FailureMessage
		r.observe(OutcomeFailed, elapsed)
		if r.logg != nil {
			ctx := r.logg.WithFields(context.Background(), map[string]any{"seq": seq})
			r.logg.Error(ctx, "browse.failed", err)
		}
		r.broadcast()
		return
	}

	if products == nil {
		products = []Product{}
	}
	r.state.Status = enums.BrowseStatusReady
	r.state.AppliedSeq = seq
	r.state.Products = products
	r.state.Error = ""
	r.observe(OutcomeApplied, elapsed)
	r.broadcast()
}

func (r *Runner) observe(outcome string, elapsed time.Duration) {
	if r.observer != nil {
		r.observer.ObserveBrowse(outcome, elapsed)
	}
}

// broadcast must be called with mu held.
func (r *Runner) broadcast() {
	close(r.settled)
	r.settled = make(chan struct{})
}

// snapshot must be called with mu held.
func (r *Runner) snapshot() BrowseState {
	state := r.state
	state.Products = make([]Product, len(r.state.Products))
	copy(state.Products, r.state.Products)
	return state
}
