package cart

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/promostore-backend/internal/catalog"
	pkgerrors "github.com/angelmondragon/promostore-backend/pkg/errors"
)

func str(v string) *string { return &v }

var (
	polera = catalog.Product{ID: 1, Name: "Polera", SKU: "TEX-001", Category: "textiles", Supplier: "s1", BasePrice: 4990, Stock: 10,
		Colors: []string{"rojo", "azul"}, Sizes: []string{"M", "L"}}
	taza = catalog.Product{ID: 2, Name: "Taza", SKU: "HOG-002", Category: "hogar", Supplier: "s2", BasePrice: 2990, Stock: 5}
)

func mustAdd(t *testing.T, c Cart, p catalog.Product, qty int, color, size *string) Cart {
	t.Helper()
	next, err := AddToCart(c, p, qty, color, size)
	require.NoError(t, err)
	require.NoError(t, next.Validate())
	return next
}

func TestAddToCartMergesSameIdentity(t *testing.T) {
	c := mustAdd(t, Cart{}, polera, 2, str("rojo"), str("M"))
	c = mustAdd(t, c, polera, 3, str("rojo"), str("M"))

	require.Len(t, c, 1)
	assert.Equal(t, 5, c[0].Quantity)
	assert.Equal(t, int64(5*4990), c[0].TotalPrice)
	assert.Equal(t, int64(4990), c[0].UnitPrice)
}

func TestAddToCartSeparatesVariants(t *testing.T) {
	c := mustAdd(t, Cart{}, polera, 1, str("rojo"), nil)
	c = mustAdd(t, c, polera, 1, str("azul"), nil)
	c = mustAdd(t, c, polera, 1, nil, nil)

	require.Len(t, c, 3)
	assert.Equal(t, "rojo", *c[0].SelectedColor)
	assert.Equal(t, "azul", *c[1].SelectedColor)
	assert.Nil(t, c[2].SelectedColor)
}

func TestAddToCartKeepsInsertionOrder(t *testing.T) {
	c := mustAdd(t, Cart{}, taza, 1, nil, nil)
	c = mustAdd(t, c, polera, 1, nil, nil)
	c = mustAdd(t, c, taza, 4, nil, nil)

	require.Len(t, c, 2)
	assert.Equal(t, 2, c[0].ID)
	assert.Equal(t, 5, c[0].Quantity)
	assert.Equal(t, 1, c[1].ID)
}

func TestAddToCartAccumulatesAcrossSplits(t *testing.T) {
	split := mustAdd(t, Cart{}, polera, 2, str("azul"), str("L"))
	split = mustAdd(t, split, polera, 3, str("azul"), str("L"))
	whole := mustAdd(t, Cart{}, polera, 5, str("azul"), str("L"))

	assert.Equal(t, whole, split)
}

func TestAddToCartDoesNotMutateInput(t *testing.T) {
	original := mustAdd(t, Cart{}, polera, 1, str("rojo"), nil)
	snapshot := original.Clone()

	next := mustAdd(t, original, polera, 2, str("rojo"), nil)
	assert.Equal(t, snapshot, original)
	assert.Equal(t, 3, next[0].Quantity)

	*next[0].SelectedColor = "verde"
	assert.Equal(t, "rojo", *original[0].SelectedColor)
}

func TestAddToCartRejectsNonPositiveQuantity(t *testing.T) {
	for _, qty := range []int{0, -1} {
		_, err := AddToCart(Cart{}, polera, qty, nil, nil)
		require.Error(t, err)
		assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "qty %d", qty)
	}
}

func TestAddToCartRejectsQuantityAboveMax(t *testing.T) {
	for _, qty := range []int{MaxQuantity + 1, math.MaxInt64 / 4990} {
		_, err := AddToCart(Cart{}, polera, qty, nil, nil)
		require.Error(t, err)
		assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "qty %d", qty)
	}

	c := mustAdd(t, Cart{}, polera, MaxQuantity, nil, nil)
	assert.Equal(t, int64(MaxQuantity)*4990, c[0].TotalPrice)
}

func TestAddToCartRejectsMergePastMax(t *testing.T) {
	c := mustAdd(t, Cart{}, polera, MaxQuantity-1, nil, nil)

	_, err := AddToCart(c, polera, 2, nil, nil)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	c = mustAdd(t, c, polera, 1, nil, nil)
	assert.Equal(t, MaxQuantity, c[0].Quantity)
}

func TestAddToCartRejectsTotalOverflow(t *testing.T) {
	pricey := catalog.Product{ID: 7, Name: "Yate", BasePrice: math.MaxInt64 / 2}

	_, err := AddToCart(Cart{}, pricey, 3, nil, nil)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	c := mustAdd(t, Cart{}, pricey, 1, nil, nil)
	_, err = AddToCart(c, pricey, 1, nil, nil)
	require.NoError(t, err)
	_, err = AddToCart(c, taza, 1, nil, nil)
	require.NoError(t, err)

	big := mustAdd(t, Cart{}, pricey, 2, nil, nil)
	_, err = AddToCart(big, taza, 1, nil, nil)
	require.Error(t, err, "cart total would wrap")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestAddToCartKeepsCapturedUnitPrice(t *testing.T) {
	c := mustAdd(t, Cart{}, polera, 2, str("rojo"), nil)

	repriced := polera
	repriced.BasePrice = 5990
	c = mustAdd(t, c, repriced, 3, str("rojo"), nil)

	require.Len(t, c, 1)
	assert.Equal(t, int64(4990), c[0].UnitPrice)
	assert.Equal(t, int64(4990*5), c[0].TotalPrice)
	assert.Equal(t, 5, c[0].Quantity)
}

func TestAddToCartFromNil(t *testing.T) {
	c := mustAdd(t, nil, taza, 1, nil, nil)
	require.Len(t, c, 1)
}

func TestSummary(t *testing.T) {
	c := mustAdd(t, Cart{}, polera, 2, nil, nil)
	c = mustAdd(t, c, taza, 3, nil, nil)

	s := c.Summary()
	assert.Equal(t, Summary{Lines: 2, Units: 5, Total: 2*4990 + 3*2990}, s)
	assert.Equal(t, Summary{}, Cart{}.Summary())
}

func TestIdentityEqualIsStrictOnAbsentVariants(t *testing.T) {
	a := Identity{ProductID: 1, Color: str("rojo")}
	b := Identity{ProductID: 1, Color: str("rojo")}
	c := Identity{ProductID: 1}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, c.Equal(a))
	assert.True(t, c.Equal(Identity{ProductID: 1}))
	assert.Equal(t, "1/rojo/-", a.String())
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	c := mustAdd(t, Cart{}, polera, 2, str("azul"), str("M"))
	c = mustAdd(t, c, taza, 1, nil, nil)

	blob, err := Encode(c)
	require.NoError(t, err)

	decoded, err := Decode(blob)
	require.NoError(t, err)
	assert.Equal(t, c, decoded)
}

func TestEncodeNilCart(t *testing.T) {
	blob, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(blob))

	decoded, err := Decode(blob)
	require.NoError(t, err)
	assert.NotNil(t, decoded)
	assert.Empty(t, decoded)
}

func TestDecodeRejectsInvalidBlobs(t *testing.T) {
	cases := map[string]string{
		"not json":      "{oops",
		"not an array":  `{"id":1}`,
		"zero quantity": `[{"id":1,"quantity":0,"unitPrice":10,"totalPrice":0}]`,
		"bad total":     `[{"id":1,"quantity":2,"unitPrice":10,"totalPrice":25}]`,
		"wrapped total": `[{"id":1,"quantity":2,"unitPrice":9223372036854775807,"totalPrice":-2}]`,
		"over max":      `[{"id":1,"quantity":10000,"unitPrice":1,"totalPrice":10000}]`,
		"duplicate":     `[{"id":1,"quantity":1,"unitPrice":10,"totalPrice":10},{"id":1,"quantity":1,"unitPrice":10,"totalPrice":10}]`,
	}
	for name, blob := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(blob))
			assert.Error(t, err)
		})
	}
}

func TestSessionKey(t *testing.T) {
	assert.Equal(t, "cart", SessionKey(""))
	assert.Equal(t, "cart:abc", SessionKey("abc"))
}
