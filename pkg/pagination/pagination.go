package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 25
	// MaxLimit caps how many items a single page can carry.
	MaxLimit = 100
)

// Params holds cursor pagination inputs from controllers.
type Params struct {
	Limit  int
	Cursor string
}

// Cursor marks where the next page starts. LastID is the id of the final item
// on the previous page and guards against the listing changing underneath.
type Cursor struct {
	Offset int
	LastID int
}

// Page is one window of an ordered listing.
type Page[T any] struct {
	Items      []T
	NextCursor string
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// EncodeCursor builds an opaque cursor string from the provided values.
func EncodeCursor(cursor Cursor) string {
	payload := fmt.Sprintf("%d|%d", cursor.Offset, cursor.LastID)
	return base64.RawURLEncoding.EncodeToString([]byte(payload))
}

// ParseCursor decodes the cursor string back into its components. An empty
// value yields nil.
func ParseCursor(value string) (*Cursor, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}

	decoded, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}
	parts := strings.SplitN(string(decoded), "|", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid cursor format")
	}

	offset, err := strconv.Atoi(parts[0])
	if err != nil || offset <= 0 {
		return nil, fmt.Errorf("invalid cursor offset %q", parts[0])
	}
	lastID, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid cursor id: %w", err)
	}
	return &Cursor{Offset: offset, LastID: lastID}, nil
}

// Slice cuts the page described by params out of items. idOf identifies an
// item so a cursor minted for a different listing is rejected.
func Slice[T any](items []T, params Params, idOf func(T) int) (Page[T], error) {
	cursor, err := ParseCursor(params.Cursor)
	if err != nil {
		return Page[T]{}, err
	}

	start := 0
	if cursor != nil {
		if cursor.Offset > len(items) || idOf(items[cursor.Offset-1]) != cursor.LastID {
			return Page[T]{}, fmt.Errorf("cursor does not match listing")
		}
		start = cursor.Offset
	}

	end := start + NormalizeLimit(params.Limit)
	if end >= len(items) {
		return Page[T]{Items: items[start:]}, nil
	}
	return Page[T]{
		Items:      items[start:end],
		NextCursor: EncodeCursor(Cursor{Offset: end, LastID: idOf(items[end-1])}),
	}, nil
}
