package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/promostore-backend/pkg/enums"
)

func TestDefaultCatalogDerivesCounts(t *testing.T) {
	c := Default()

	categories := c.Categories()
	require.NotEmpty(t, categories)
	assert.Equal(t, CategoryAll, categories[0].ID)
	assert.Equal(t, len(c.Products()), categories[0].Count)

	total := 0
	for _, cat := range categories[1:] {
		total += cat.Count
	}
	assert.Equal(t, categories[0].Count, total, "per-category counts must add up to the catalog size")

	supplierTotal := 0
	for _, sup := range c.Suppliers() {
		supplierTotal += sup.Products
	}
	assert.Equal(t, len(c.Products()), supplierTotal)
}

func TestNewRejectsInvalidReferenceData(t *testing.T) {
	cats := []Category{{ID: "hogar", Name: "Hogar"}}
	sups := []Supplier{{ID: "s1", Name: "Uno"}}

	cases := map[string][]Product{
		"duplicate id":     {{ID: 1, Category: "hogar", Supplier: "s1"}, {ID: 1, Category: "hogar", Supplier: "s1"}},
		"negative price":   {{ID: 1, Category: "hogar", Supplier: "s1", BasePrice: -1}},
		"negative stock":   {{ID: 1, Category: "hogar", Supplier: "s1", Stock: -5}},
		"unknown category": {{ID: 1, Category: "jardin", Supplier: "s1"}},
		"unknown supplier": {{ID: 1, Category: "hogar", Supplier: "s2"}},
	}
	for name, products := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := New(products, cats, sups)
			assert.Error(t, err)
		})
	}
}

func TestPriceBoundsAndDefaultCriteria(t *testing.T) {
	c, err := New(testProducts(), testCategories(), testSuppliers())
	require.NoError(t, err)

	assert.Equal(t, PriceRange{Min: 1000, Max: 2000}, c.PriceBounds())

	def := c.DefaultCriteria()
	assert.Equal(t, CategoryAll, def.Category)
	assert.Equal(t, enums.SortKeyName, def.SortKey)
	assert.Equal(t, c.PriceBounds(), def.PriceRange)
	assert.Empty(t, def.Search)
	assert.Empty(t, def.Supplier)

	empty, err := New(nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, PriceRange{}, empty.PriceBounds())
}

func TestProductsReturnsCopies(t *testing.T) {
	c, err := New(testProducts(), testCategories(), testSuppliers())
	require.NoError(t, err)

	list := c.Products()
	list[0].Name = "mutated"
	list[0].Colors[0] = "mutated"

	p, ok := c.Product(list[0].ID)
	require.True(t, ok)
	assert.Equal(t, "Alpha", p.Name)
	assert.Equal(t, "rojo", p.Colors[0])

	_, ok = c.Product(999)
	assert.False(t, ok)
}

func TestLookupHelpers(t *testing.T) {
	c, err := New(testProducts(), testCategories(), testSuppliers())
	require.NoError(t, err)

	assert.True(t, c.HasCategory(CategoryAll))
	assert.True(t, c.HasCategory("oficina"))
	assert.False(t, c.HasCategory("jardin"))
	assert.True(t, c.HasSupplier("s2"))
	assert.False(t, c.HasSupplier("s9"))

	p, _ := c.Product(1)
	assert.True(t, p.OffersColor("rojo"))
	assert.False(t, p.OffersColor("verde"))
	assert.False(t, p.OffersSize("XL"))
}

func testCategories() []Category {
	return []Category{
		{ID: "oficina", Name: "Oficina", Icon: "edit"},
		{ID: "hogar", Name: "Hogar", Icon: "home"},
	}
}

func testSuppliers() []Supplier {
	return []Supplier{{ID: "s1", Name: "Uno"}, {ID: "s2", Name: "Dos"}}
}

// testProducts mirrors the A/B/C catalog: A=1000, B=2000, C=1500.
func testProducts() []Product {
	return []Product{
		{ID: 1, Name: "Alpha", SKU: "OFI-100", Category: "oficina", Supplier: "s1", BasePrice: 1000, Stock: 10, Colors: []string{"rojo", "azul"}},
		{ID: 2, Name: "Bravo", SKU: "HOG-200", Category: "hogar", Supplier: "s2", BasePrice: 2000, Stock: 30},
		{ID: 3, Name: "Charlie", SKU: "OFI-300", Category: "oficina", Supplier: "s2", BasePrice: 1500, Stock: 20},
	}
}
