package cart

import (
	"context"
	"errors"
)

// StorageKey is the fixed key the cart blob is stored under.
const StorageKey = "cart"

// ErrNotFound is returned by Storage.Load when nothing is stored at key.
var ErrNotFound = errors.New("cart not found in storage")

// Storage is the durable key-value collaborator holding serialised carts.
type Storage interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, blob []byte) error
}

// SessionKey namespaces StorageKey for one storefront session.
func SessionKey(sessionID string) string {
	if sessionID == "" {
		return StorageKey
	}
	return StorageKey + ":" + sessionID
}
