package catalog

import (
	"fmt"
	"strings"

	"github.com/angelmondragon/promostore-backend/pkg/enums"
)

// CategoryAll is the sentinel category that matches every product.
const CategoryAll = "all"

// Product is immutable reference data for a purchasable item.
type Product struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	SKU       string   `json:"sku"`
	Category  string   `json:"category"`
	Supplier  string   `json:"supplier"`
	BasePrice int64    `json:"basePrice"`
	Stock     int      `json:"stock"`
	Colors    []string `json:"colors,omitempty"`
	Sizes     []string `json:"sizes,omitempty"`
}

// OffersColor reports whether color is one of the product's variants.
func (p Product) OffersColor(color string) bool {
	return contains(p.Colors, color)
}

// OffersSize reports whether size is one of the product's variants.
func (p Product) OffersSize(size string) bool {
	return contains(p.Sizes, size)
}

// Category groups products; Count is derived from the catalog.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Count int    `json:"count"`
}

// Supplier is a product vendor; Products is derived from the catalog.
type Supplier struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Products int    `json:"products"`
}

// PriceRange holds inclusive price bounds in whole CLP.
type PriceRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// Contains reports whether price falls inside the inclusive range.
func (r PriceRange) Contains(price int64) bool {
	return price >= r.Min && price <= r.Max
}

// Catalog is the read-only set of products, categories and suppliers.
type Catalog struct {
	products   []Product
	byID       map[int]int
	categories []Category
	suppliers  []Supplier
	bounds     PriceRange
}

// New validates the reference data and derives category/supplier counts.
func New(products []Product, categories []Category, suppliers []Supplier) (*Catalog, error) {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		byID:     make(map[int]int, len(products)),
	}

	categoryIdx := map[string]int{}
	for _, cat := range categories {
		id := strings.TrimSpace(cat.ID)
		if id == "" || id == CategoryAll {
			continue
		}
		if _, dup := categoryIdx[id]; dup {
			return nil, fmt.Errorf("duplicate category %q", id)
		}
		categoryIdx[id] = len(c.categories)
		c.categories = append(c.categories, Category{ID: id, Name: cat.Name, Icon: cat.Icon})
	}

	supplierIdx := map[string]int{}
	for _, sup := range suppliers {
		id := strings.TrimSpace(sup.ID)
		if id == "" {
			return nil, fmt.Errorf("supplier id is required")
		}
		if _, dup := supplierIdx[id]; dup {
			return nil, fmt.Errorf("duplicate supplier %q", id)
		}
		supplierIdx[id] = len(c.suppliers)
		c.suppliers = append(c.suppliers, Supplier{ID: id, Name: sup.Name})
	}

	for i, p := range products {
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %d", p.ID)
		}
		if p.BasePrice < 0 {
			return nil, fmt.Errorf("product %d: negative base price", p.ID)
		}
		if p.Stock < 0 {
			return nil, fmt.Errorf("product %d: negative stock", p.ID)
		}
		ci, ok := categoryIdx[p.Category]
		if !ok {
			return nil, fmt.Errorf("product %d: unknown category %q", p.ID, p.Category)
		}
		si, ok := supplierIdx[p.Supplier]
		if !ok {
			return nil, fmt.Errorf("product %d: unknown supplier %q", p.ID, p.Supplier)
		}
		c.categories[ci].Count++
		c.suppliers[si].Products++

		if i == 0 || p.BasePrice < c.bounds.Min {
			c.bounds.Min = p.BasePrice
		}
		if i == 0 || p.BasePrice > c.bounds.Max {
			c.bounds.Max = p.BasePrice
		}

		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, cloneProduct(p))
	}

	all := Category{ID: CategoryAll, Name: "Todos", Icon: "apps", Count: len(c.products)}
	for _, cat := range categories {
		if cat.ID == CategoryAll {
			all.Name, all.Icon = cat.Name, cat.Icon
		}
	}
	c.categories = append([]Category{all}, c.categories...)

	return c, nil
}

// Products returns a copy of every product in catalog order.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	for i, p := range c.products {
		out[i] = cloneProduct(p)
	}
	return out
}

// Product looks up a product by id.
func (c *Catalog) Product(id int) (Product, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return cloneProduct(c.products[idx]), true
}

// Categories returns the categories with derived counts, "all" first.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Suppliers returns suppliers with their product counts.
func (c *Catalog) Suppliers() []Supplier {
	out := make([]Supplier, len(c.suppliers))
	copy(out, c.suppliers)
	return out
}

// HasCategory reports whether id is "all" or a known category.
func (c *Catalog) HasCategory(id string) bool {
	for _, cat := range c.categories {
		if cat.ID == id {
			return true
		}
	}
	return false
}

// HasSupplier reports whether id is a known supplier.
func (c *Catalog) HasSupplier(id string) bool {
	for _, sup := range c.suppliers {
		if sup.ID == id {
			return true
		}
	}
	return false
}

// PriceBounds returns the min and max base price ({0,0} for an empty catalog).
func (c *Catalog) PriceBounds() PriceRange {
	return c.bounds
}

// DefaultCriteria is the unfiltered listing: every product sorted by name.
func (c *Catalog) DefaultCriteria() Criteria {
	return Criteria{
		Category:   CategoryAll,
		SortKey:    enums.SortKeyName,
		PriceRange: c.bounds,
	}
}

func cloneProduct(p Product) Product {
	if p.Colors != nil {
		p.Colors = append([]string(nil), p.Colors...)
	}
	if p.Sizes != nil {
		p.Sizes = append([]string(nil), p.Sizes...)
	}
	return p
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
