package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/angelmondragon/promostore-backend/internal/catalog"
	pkgerrors "github.com/angelmondragon/promostore-backend/pkg/errors"
	"github.com/angelmondragon/promostore-backend/pkg/logger"
)

// Load outcomes reported when a store is opened.
const (
	LoadFound   = "found"
	LoadEmpty   = "empty"
	LoadCorrupt = "corrupt"
)

// Store owns one session's cart. Every mutation is written to storage
// before the in-memory cart is replaced and observers are notified.
type Store struct {
	storage Storage
	key     string
	logg    *logger.Logger
	outcome string

	// writeMu serialises mutations and their notifications; mu guards state.
	writeMu   sync.Mutex
	mu        sync.Mutex
	cart      Cart
	observers []observer
	nextObs   int
}

type observer struct {
	id int
	fn func(Cart)
}

// Open seeds a store from storage. A missing key yields an empty cart, as
// does a blob that fails to decode; only storage errors are returned.
func Open(ctx context.Context, storage Storage, key string, logg *logger.Logger) (*Store, error) {
	if storage == nil {
		return nil, fmt.Errorf("cart storage required")
	}
	if key == "" {
		key = StorageKey
	}
	s := &Store{
		storage:   storage,
		key:       key,
		logg:      logg,
		cart:      Cart{},
	}

	blob, err := storage.Load(ctx, key)
	switch {
	case errors.Is(err, ErrNotFound):
		s.outcome = LoadEmpty
		return s, nil
	case err != nil:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	loaded, err := Decode(blob)
	if err != nil {
		if logg != nil {
			wctx := logg.WithFields(ctx, map[string]any{"cart_key": key, "error": err.Error()})
			logg.Warn(wctx, "cart.discarded_corrupt_snapshot")
		}
		s.outcome = LoadCorrupt
		return s, nil
	}
	s.cart = loaded
	s.outcome = LoadFound
	return s, nil
}

// LoadOutcome reports how the store was seeded: found, empty or corrupt.
func (s *Store) LoadOutcome() string {
	return s.outcome
}

// Key returns the storage key backing the store.
func (s *Store) Key() string {
	return s.key
}

// Get returns a copy of the current cart.
func (s *Store) Get() Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

// AddItem merges quantity units of p into the cart and persists the result.
// On a storage failure the in-memory cart is left as it was.
func (s *Store) AddItem(ctx context.Context, p catalog.Product, quantity int, color, size *string) (Cart, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	current := s.cart
	s.mu.Unlock()

	next, err := AddToCart(current, p, quantity, color, size)
	if err != nil {
		return nil, err
	}

	blob, err := Encode(next)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := s.storage.Save(ctx, s.key, blob); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}

	s.mu.Lock()
	s.cart = next
	observers := append([]observer(nil), s.observers...)
	s.mu.Unlock()

	for _, o := range observers {
		o.fn(next.Clone())
	}
	return next.Clone(), nil
}

// Subscribe registers fn to receive the new cart after each successful
// mutation. Observers run in subscription order and must not mutate the
// store. The returned func unsubscribes.
func (s *Store) Subscribe(fn func(Cart)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextObs
	s.nextObs++
	s.observers = append(s.observers, observer{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, o := range s.observers {
			if o.id == id {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				return
			}
		}
	}
}
