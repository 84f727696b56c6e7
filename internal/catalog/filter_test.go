package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/promostore-backend/pkg/enums"
)

func ids(products []Product) []int {
	out := make([]int, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestFilterAndSortPriceRangeScenario(t *testing.T) {
	got := FilterAndSort(testProducts(), Criteria{
		Category:   CategoryAll,
		SortKey:    enums.SortKeyPriceAsc,
		PriceRange: PriceRange{Min: 1000, Max: 1500},
	})
	assert.Equal(t, []int{1, 3}, ids(got))
}

func TestFilterAndSortStages(t *testing.T) {
	all := testProducts()
	wide := PriceRange{Min: 0, Max: 10000}

	tests := []struct {
		name     string
		criteria Criteria
		want     []int
	}{
		{"category", Criteria{Category: "oficina", PriceRange: wide}, []int{1, 3}},
		{"empty category means all", Criteria{PriceRange: wide}, []int{1, 2, 3}},
		{"search by name is case insensitive", Criteria{Category: CategoryAll, Search: "BRA", PriceRange: wide}, []int{2}},
		{"search by sku", Criteria{Category: CategoryAll, Search: "ofi-3", PriceRange: wide}, []int{3}},
		{"supplier", Criteria{Category: CategoryAll, Supplier: "s2", PriceRange: wide}, []int{2, 3}},
		{"price bounds inclusive", Criteria{Category: CategoryAll, PriceRange: PriceRange{Min: 1500, Max: 2000}}, []int{2, 3}},
		{"combined", Criteria{Category: "oficina", Supplier: "s2", Search: "char", PriceRange: wide}, []int{3}},
		{"no match", Criteria{Category: "hogar", Supplier: "s1", PriceRange: wide}, []int{}},
		{"price desc", Criteria{Category: CategoryAll, SortKey: enums.SortKeyPriceDesc, PriceRange: wide}, []int{2, 3, 1}},
		{"stock desc", Criteria{Category: CategoryAll, SortKey: enums.SortKeyStock, PriceRange: wide}, []int{2, 3, 1}},
		{"unknown sort key keeps order", Criteria{Category: CategoryAll, SortKey: "popularity", PriceRange: wide}, []int{1, 2, 3}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(FilterAndSort(all, tc.criteria)))
		})
	}
}

func TestFilterAndSortDoesNotMutateInput(t *testing.T) {
	all := testProducts()
	before := ids(all)

	got := FilterAndSort(all, Criteria{Category: CategoryAll, SortKey: enums.SortKeyPriceDesc, PriceRange: PriceRange{Max: 5000}})
	require.Len(t, got, 3)
	got[0].Name = "changed"

	assert.Equal(t, before, ids(all))
	assert.Equal(t, "Alpha", all[0].Name)
}

func TestFilterAndSortIsStable(t *testing.T) {
	all := []Product{
		{ID: 1, Name: "Uno", BasePrice: 500, Stock: 5},
		{ID: 2, Name: "Dos", BasePrice: 100, Stock: 5},
		{ID: 3, Name: "Tres", BasePrice: 500, Stock: 5},
		{ID: 4, Name: "Cuatro", BasePrice: 100, Stock: 9},
		{ID: 5, Name: "Uno", BasePrice: 500, Stock: 1},
	}
	wide := PriceRange{Max: 1000}

	assert.Equal(t, []int{2, 4, 1, 3, 5}, ids(FilterAndSort(all, Criteria{SortKey: enums.SortKeyPriceAsc, PriceRange: wide})))
	assert.Equal(t, []int{1, 3, 5, 2, 4}, ids(FilterAndSort(all, Criteria{SortKey: enums.SortKeyPriceDesc, PriceRange: wide})))
	assert.Equal(t, []int{4, 1, 2, 3, 5}, ids(FilterAndSort(all, Criteria{SortKey: enums.SortKeyStock, PriceRange: wide})))
	assert.Equal(t, []int{4, 2, 3, 1, 5}, ids(FilterAndSort(all, Criteria{SortKey: enums.SortKeyName, PriceRange: wide})))
}

func TestFilterAndSortNameUsesSpanishCollation(t *testing.T) {
	all := []Product{
		{ID: 1, Name: "Zapato"},
		{ID: 2, Name: "Oso"},
		{ID: 3, Name: "Ñandú"},
		{ID: 4, Name: "Ánfora"},
		{ID: 5, Name: "Nube"},
		{ID: 6, Name: "avión"},
	}
	got := FilterAndSort(all, Criteria{SortKey: enums.SortKeyName})

	names := make([]string, len(got))
	for i, p := range got {
		names[i] = p.Name
	}
	assert.Equal(t, []string{"Ánfora", "avión", "Nube", "Ñandú", "Oso", "Zapato"}, names)
}

func TestFilterAndSortResultSatisfiesPredicates(t *testing.T) {
	all := Default().Products()
	byID := map[int]Product{}
	for _, p := range all {
		byID[p.ID] = p
	}

	criteria := []Criteria{
		{Category: "textiles", PriceRange: PriceRange{Max: 100000}, SortKey: enums.SortKeyName},
		{Category: CategoryAll, Search: "a", Supplier: "sup-andes", PriceRange: PriceRange{Min: 1000, Max: 9000}, SortKey: enums.SortKeyStock},
		{Category: "tecnologia", Search: "tec", PriceRange: PriceRange{Min: 5000, Max: 20000}, SortKey: enums.SortKeyPriceDesc},
	}
	for _, c := range criteria {
		for _, p := range FilterAndSort(all, c) {
			orig, ok := byID[p.ID]
			require.True(t, ok, "product %d fabricated", p.ID)
			assert.Equal(t, orig.Name, p.Name)
			if c.Category != CategoryAll {
				assert.Equal(t, c.Category, p.Category)
			}
			if c.Supplier != "" {
				assert.Equal(t, c.Supplier, p.Supplier)
			}
			assert.True(t, c.PriceRange.Contains(p.BasePrice))
		}
	}
}
