package cart

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/angelmondragon/promostore-backend/internal/catalog"
	pkgerrors "github.com/angelmondragon/promostore-backend/pkg/errors"
)

// MaxQuantity caps the units held by a single line.
const MaxQuantity = 9999

// Item is one cart line: a product snapshot plus the chosen variant and
// quantity. UnitPrice is captured when the line is created.
type Item struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	SKU           string  `json:"sku"`
	Category      string  `json:"category"`
	Supplier      string  `json:"supplier"`
	BasePrice     int64   `json:"basePrice"`
	Stock         int     `json:"stock"`
	Quantity      int     `json:"quantity"`
	SelectedColor *string `json:"selectedColor,omitempty"`
	SelectedSize  *string `json:"selectedSize,omitempty"`
	UnitPrice     int64   `json:"unitPrice"`
	TotalPrice    int64   `json:"totalPrice"`
}

// Identity is the key that separates otherwise identical lines.
type Identity struct {
	ProductID int
	Color     *string
	Size      *string
}

// Identity returns the line's merge key.
func (i Item) Identity() Identity {
	return Identity{ProductID: i.ID, Color: i.SelectedColor, Size: i.SelectedSize}
}

// Equal compares identities strictly: an absent variant only matches an
// absent variant.
func (id Identity) Equal(other Identity) bool {
	return id.ProductID == other.ProductID &&
		equalOptional(id.Color, other.Color) &&
		equalOptional(id.Size, other.Size)
}

func (id Identity) String() string {
	return fmt.Sprintf("%d/%s/%s", id.ProductID, optionalString(id.Color), optionalString(id.Size))
}

// Cart is the ordered list of lines, in insertion order.
type Cart []Item

// Summary aggregates a cart for display.
type Summary struct {
	Lines int   `json:"lines"`
	Units int   `json:"units"`
	Total int64 `json:"total"`
}

// AddToCart returns a new cart with quantity units of p added. A line with
// the same identity has its quantity increased and total recomputed;
// otherwise a line priced at p.BasePrice is appended. cart is never modified.
func AddToCart(cart Cart, p catalog.Product, quantity int, color, size *string) (Cart, error) {
	if quantity < 1 || quantity > MaxQuantity {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("quantity must be between 1 and %d", MaxQuantity)).
			WithDetails(map[string]any{"quantity": quantity})
	}

	want := Identity{ProductID: p.ID, Color: color, Size: size}
	next := make(Cart, len(cart), len(cart)+1)
	for i, item := range cart {
		next[i] = item.clone()
	}

	merged := false
	for i := range next {
		if !next[i].Identity().Equal(want) {
			continue
		}
		qty := next[i].Quantity + quantity
		if qty > MaxQuantity {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("line quantity would exceed %d", MaxQuantity)).
				WithDetails(map[string]any{"quantity": next[i].Quantity, "adding": quantity})
		}
		total, ok := lineTotal(next[i].UnitPrice, qty)
		if !ok {
			return nil, totalOverflow(next[i].UnitPrice, qty)
		}
		next[i].Quantity = qty
		next[i].TotalPrice = total
		merged = true
		break
	}

	if !merged {
		unitPrice := p.BasePrice
		total, ok := lineTotal(unitPrice, quantity)
		if !ok {
			return nil, totalOverflow(unitPrice, quantity)
		}
		next = append(next, Item{
			ID:            p.ID,
			Name:          p.Name,
			SKU:           p.SKU,
			Category:      p.Category,
			Supplier:      p.Supplier,
			BasePrice:     p.BasePrice,
			Stock:         p.Stock,
			Quantity:      quantity,
			SelectedColor: copyOptional(color),
			SelectedSize:  copyOptional(size),
			UnitPrice:     unitPrice,
			TotalPrice:    total,
		})
	}

	if _, ok := next.total(); !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart total out of range")
	}
	return next, nil
}

// Summary totals the cart.
func (c Cart) Summary() Summary {
	s := Summary{Lines: len(c)}
	for _, item := range c {
		s.Units += item.Quantity
		s.Total += item.TotalPrice
	}
	return s
}

// Clone deep-copies the cart.
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	for i, item := range c {
		out[i] = item.clone()
	}
	return out
}

// Validate checks the line invariants: positive quantity, total equal to
// unit price times quantity, and unique identities.
func (c Cart) Validate() error {
	seen := make([]Identity, 0, len(c))
	for idx, item := range c {
		if item.Quantity < 1 || item.Quantity > MaxQuantity {
			return fmt.Errorf("line %d: quantity %d out of range", idx, item.Quantity)
		}
		if item.UnitPrice < 0 {
			return fmt.Errorf("line %d: negative unit price", idx)
		}
		total, ok := lineTotal(item.UnitPrice, item.Quantity)
		if !ok {
			return fmt.Errorf("line %d: total overflows", idx)
		}
		if item.TotalPrice != total {
			return fmt.Errorf("line %d: total %d != %d x %d", idx, item.TotalPrice, item.UnitPrice, item.Quantity)
		}
		id := item.Identity()
		for _, other := range seen {
			if other.Equal(id) {
				return fmt.Errorf("line %d: duplicate identity %s", idx, id)
			}
		}
		seen = append(seen, id)
	}
	if _, ok := c.total(); !ok {
		return fmt.Errorf("cart total overflows")
	}
	return nil
}

// lineTotal multiplies without wrapping; ok is false on overflow.
func lineTotal(unitPrice int64, quantity int) (int64, bool) {
	if unitPrice < 0 || quantity < 0 {
		return 0, false
	}
	if quantity > 0 && unitPrice > math.MaxInt64/int64(quantity) {
		return 0, false
	}
	return unitPrice * int64(quantity), true
}

func (c Cart) total() (int64, bool) {
	var sum int64
	for _, item := range c {
		if item.TotalPrice < 0 || sum > math.MaxInt64-item.TotalPrice {
			return 0, false
		}
		sum += item.TotalPrice
	}
	return sum, true
}

func totalOverflow(unitPrice int64, quantity int) error {
	return pkgerrors.New(pkgerrors.CodeValidation, "line total out of range").
		WithDetails(map[string]any{"unitPrice": unitPrice, "quantity": quantity})
}

// Encode serialises the cart as the JSON array kept in storage.
func Encode(c Cart) ([]byte, error) {
	if c == nil {
		c = Cart{}
	}
	return json.Marshal(c)
}

// Decode parses and validates a stored cart blob.
func Decode(blob []byte) (Cart, error) {
	var c Cart
	if err := json.Unmarshal(blob, &c); err != nil {
		return nil, fmt.Errorf("decoding cart: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validating cart: %w", err)
	}
	if c == nil {
		c = Cart{}
	}
	return c, nil
}

func (i Item) clone() Item {
	i.SelectedColor = copyOptional(i.SelectedColor)
	i.SelectedSize = copyOptional(i.SelectedSize)
	return i
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func copyOptional(v *string) *string {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func optionalString(v *string) string {
	if v == nil {
		return "-"
	}
	return *v
}
