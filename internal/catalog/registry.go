package catalog

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru"
)

// Registry keeps one Runner per storefront session. The least recently used
// runner is closed once more than size sessions are open.
type Registry struct {
	mu      sync.Mutex
	cache   *lru.Cache
	factory func() (*Runner, error)
}

// NewRegistry builds a registry whose runners come from factory.
func NewRegistry(size int, factory func() (*Runner, error)) (*Registry, error) {
	if factory == nil {
		return nil, fmt.Errorf("runner factory required")
	}
	cache, err := lru.NewWithEvict(size, func(_ interface{}, value interface{}) {
		if runner, ok := value.(*Runner); ok {
			runner.Close()
		}
	})
	if err != nil {
		return nil, fmt.Errorf("creating runner cache: %w", err)
	}
	return &Registry{cache: cache, factory: factory}, nil
}

// Get returns the session's runner, creating it on first use.
func (r *Registry) Get(sessionID string) (*Runner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if value, ok := r.cache.Get(sessionID); ok {
		return value.(*Runner), nil
	}
	runner, err := r.factory()
	if err != nil {
		return nil, err
	}
	r.cache.Add(sessionID, runner)
	return runner, nil
}

// Len reports the number of open sessions.
func (r *Registry) Len() int {
	return r.cache.Len()
}

// Close shuts every runner down.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Purge()
	return nil
}
