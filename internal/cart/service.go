package cart

import (
	"context"
	"fmt"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru"

	"github.com/angelmondragon/promostore-backend/internal/catalog"
	pkgerrors "github.com/angelmondragon/promostore-backend/pkg/errors"
	"github.com/angelmondragon/promostore-backend/pkg/logger"
)

// Mutation results reported to an Observer.
const (
	MutationApplied  = "applied"
	MutationRejected = "rejected"
	MutationFailed   = "failed"
)

type productLookup interface {
	Product(id int) (catalog.Product, bool)
}

// Observer receives cart activity for metrics.
type Observer interface {
	ObserveCartLoad(outcome string)
	ObserveCartMutation(result string)
}

// Service exposes per-session cart operations.
type Service interface {
	GetCart(ctx context.Context, sessionID string) (View, error)
	AddItem(ctx context.Context, sessionID string, input AddItemInput) (View, error)
}

// AddItemInput is the request to add a product variant to the cart.
type AddItemInput struct {
	ProductID     int
	Quantity      int
	SelectedColor *string
	SelectedSize  *string
}

// View is the cart as returned to clients.
type View struct {
	Items   Cart    `json:"items"`
	Summary Summary `json:"summary"`
}

// ServiceParams wires the cart service.
type ServiceParams struct {
	Catalog   productLookup
	Storage   Storage
	Logger    *logger.Logger
	Observer  Observer
	MaxStores int
}

type service struct {
	catalog  productLookup
	storage  Storage
	logg     *logger.Logger
	observer Observer

	mu     sync.Mutex
	stores *lru.Cache

	// sessions serialises each session's reads and writes across store
	// evictions, so a stale *Store never races a freshly opened one.
	sessions sessionLocks
}

// NewService builds a cart service keeping at most MaxStores sessions open.
func NewService(params ServiceParams) (Service, error) {
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog required")
	}
	if params.Storage == nil {
		return nil, fmt.Errorf("cart storage required")
	}
	size := params.MaxStores
	if size <= 0 {
		size = 1024
	}
	stores, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("creating store cache: %w", err)
	}
	return &service{
		catalog:  params.Catalog,
		storage:  params.Storage,
		logg:     params.Logger,
		observer: params.Observer,
		stores:   stores,
		sessions: sessionLocks{locks: map[string]*sessionLock{}},
	}, nil
}

func (s *service) GetCart(ctx context.Context, sessionID string) (View, error) {
	unlock := s.sessions.lock(sessionID)
	defer unlock()

	store, err := s.store(ctx, sessionID)
	if err != nil {
		return View{}, err
	}
	return newView(store.Get()), nil
}

func (s *service) AddItem(ctx context.Context, sessionID string, input AddItemInput) (View, error) {
	product, err := s.resolve(input)
	if err != nil {
		s.observeMutation(MutationRejected)
		return View{}, err
	}

	unlock := s.sessions.lock(sessionID)
	defer unlock()

	store, err := s.store(ctx, sessionID)
	if err != nil {
		s.observeMutation(MutationFailed)
		return View{}, err
	}

	quantity := input.Quantity
	if quantity == 0 {
		quantity = 1
	}
	updated, err := store.AddItem(ctx, product, quantity, normalizeVariant(input.SelectedColor), normalizeVariant(input.SelectedSize))
	if err != nil {
		if pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
			s.observeMutation(MutationRejected)
		} else {
			s.observeMutation(MutationFailed)
		}
		return View{}, err
	}
	s.observeMutation(MutationApplied)
	return newView(updated), nil
}

func (s *service) resolve(input AddItemInput) (catalog.Product, error) {
	product, ok := s.catalog.Product(input.ProductID)
	if !ok {
		return catalog.Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
			WithDetails(map[string]any{"product_id": input.ProductID})
	}
	if input.Quantity < 0 || input.Quantity > MaxQuantity {
		return catalog.Product{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("quantity must be between 1 and %d", MaxQuantity)).
			WithDetails(map[string]any{"quantity": input.Quantity})
	}
	if color := normalizeVariant(input.SelectedColor); color != nil && !product.OffersColor(*color) {
		return catalog.Product{}, pkgerrors.New(pkgerrors.CodeValidation, "color not offered for product").
			WithDetails(map[string]any{"selectedColor": *color, "colors": product.Colors})
	}
	if size := normalizeVariant(input.SelectedSize); size != nil && !product.OffersSize(*size) {
		return catalog.Product{}, pkgerrors.New(pkgerrors.CodeValidation, "size not offered for product").
			WithDetails(map[string]any{"selectedSize": *size, "sizes": product.Sizes})
	}
	return product, nil
}

// store returns the session's open store, seeding it from storage on first use.
func (s *service) store(ctx context.Context, sessionID string) (*Store, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if value, ok := s.stores.Get(sessionID); ok {
		return value.(*Store), nil
	}

	store, err := Open(ctx, s.storage, SessionKey(sessionID), s.logg)
	if err != nil {
		return nil, err
	}
	if s.observer != nil {
		s.observer.ObserveCartLoad(store.LoadOutcome())
	}
	if s.logg != nil {
		store.Subscribe(func(c Cart) {
			summary := c.Summary()
			lctx := s.logg.WithFields(context.Background(), map[string]any{
				"session_id": sessionID,
				"cart_key":   store.Key(),
				"lines":      summary.Lines,
				"units":      summary.Units,
				"total":      summary.Total,
			})
			s.logg.Debug(lctx, "cart.updated")
		})
	}
	s.stores.Add(sessionID, store)
	return store, nil
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// sessionLocks hands out one mutex per session id, dropping it once no
// caller holds or waits on it.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

func (l *sessionLocks) lock(sessionID string) func() {
	l.mu.Lock()
	entry, ok := l.locks[sessionID]
	if !ok {
		entry = &sessionLock{}
		l.locks[sessionID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, sessionID)
		}
		l.mu.Unlock()
	}
}

func (s *service) observeMutation(result string) {
	if s.observer != nil {
		s.observer.ObserveCartMutation(result)
	}
}

func newView(c Cart) View {
	if c == nil {
		c = Cart{}
	}
	return View{Items: c, Summary: c.Summary()}
}

// normalizeVariant treats blank selections as absent.
func normalizeVariant(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
