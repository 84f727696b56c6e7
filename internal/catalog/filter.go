package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/angelmondragon/promostore-backend/pkg/enums"
)

// Criteria is the combined filter and sort request applied to the catalog.
type Criteria struct {
	Category   string        `json:"category"`
	Search     string        `json:"search"`
	Supplier   string        `json:"supplier"`
	SortKey    enums.SortKey `json:"sortKey"`
	PriceRange PriceRange    `json:"priceRange"`
}

// collationTag drives name ordering; catalog names are Spanish.
var collationTag = language.Spanish

// FilterAndSort returns the products matching c, in the order c asks for.
// The input slice is never modified. Stages run category, search, supplier,
// price range, then a stable sort. Unknown sort keys leave filter order.
func FilterAndSort(all []Product, c Criteria) []Product {
	out := make([]Product, 0, len(all))

	search := strings.ToLower(c.Search)
	for _, p := range all {
		if c.Category != "" && c.Category != CategoryAll && p.Category != c.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.SKU), search) {
			continue
		}
		if c.Supplier != "" && p.Supplier != c.Supplier {
			continue
		}
		if !c.PriceRange.Contains(p.BasePrice) {
			continue
		}
		out = append(out, p)
	}

	sortProducts(out, c.SortKey)
	return out
}

func sortProducts(products []Product, key enums.SortKey) {
	switch key {
	case enums.SortKeyName:
		// Collators keep scratch buffers and are not safe to share.
		col := collate.New(collationTag)
		sort.SliceStable(products, func(i, j int) bool {
			return col.CompareString(products[i].Name, products[j].Name) < 0
		})
	case enums.SortKeyPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].BasePrice < products[j].BasePrice
		})
	case enums.SortKeyPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].BasePrice > products[j].BasePrice
		})
	case enums.SortKeyStock:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Stock > products[j].Stock
		})
	}
}
