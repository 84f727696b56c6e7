package catalog

var seedCategories = []Category{
	{ID: CategoryAll, Name: "Todos", Icon: "apps"},
	{ID: "textiles", Name: "Textiles", Icon: "checkroom"},
	{ID: "tecnologia", Name: "Tecnología", Icon: "devices"},
	{ID: "oficina", Name: "Oficina", Icon: "edit"},
	{ID: "hogar", Name: "Hogar", Icon: "home"},
	{ID: "bolsos", Name: "Bolsos", Icon: "work"},
}

var seedSuppliers = []Supplier{
	{ID: "sup-andes", Name: "Andes Promocionales"},
	{ID: "sup-pacifico", Name: "Pacífico Merch"},
	{ID: "sup-austral", Name: "Austral Regalos Corporativos"},
}

var seedProducts = []Product{
	{ID: 1, Name: "Polera Algodón Premium", SKU: "TEX-001", Category: "textiles", Supplier: "sup-andes", BasePrice: 4990, Stock: 1200,
		Colors: []string{"blanco", "negro", "azul"}, Sizes: []string{"S", "M", "L", "XL"}},
	{ID: 2, Name: "Polerón Canguro", SKU: "TEX-002", Category: "textiles", Supplier: "sup-pacifico", BasePrice: 15990, Stock: 340,
		Colors: []string{"gris", "negro"}, Sizes: []string{"M", "L", "XL"}},
	{ID: 3, Name: "Jockey Bordado", SKU: "TEX-003", Category: "textiles", Supplier: "sup-andes", BasePrice: 3590, Stock: 800,
		Colors: []string{"rojo", "azul", "negro"}},
	{ID: 4, Name: "Audífonos Bluetooth", SKU: "TEC-001", Category: "tecnologia", Supplier: "sup-pacifico", BasePrice: 18990, Stock: 150,
		Colors: []string{"negro", "blanco"}},
	{ID: 5, Name: "Pendrive 32GB", SKU: "TEC-002", Category: "tecnologia", Supplier: "sup-austral", BasePrice: 5490, Stock: 900},
	{ID: 6, Name: "Batería Portátil 10000mAh", SKU: "TEC-003", Category: "tecnologia", Supplier: "sup-pacifico", BasePrice: 12990, Stock: 260},
	{ID: 7, Name: "Cuaderno Ejecutivo", SKU: "OFI-001", Category: "oficina", Supplier: "sup-austral", BasePrice: 3990, Stock: 1500,
		Colors: []string{"negro", "café"}},
	{ID: 8, Name: "Bolígrafo Metálico", SKU: "OFI-002", Category: "oficina", Supplier: "sup-andes", BasePrice: 990, Stock: 5000,
		Colors: []string{"plateado", "azul", "negro"}},
	{ID: 9, Name: "Ánfora de Acero", SKU: "HOG-001", Category: "hogar", Supplier: "sup-austral", BasePrice: 8990, Stock: 420},
	{ID: 10, Name: "Taza Cerámica", SKU: "HOG-002", Category: "hogar", Supplier: "sup-andes", BasePrice: 2990, Stock: 2100,
		Colors: []string{"blanco", "negro"}},
	{ID: 11, Name: "Mochila Urbana", SKU: "BOL-001", Category: "bolsos", Supplier: "sup-pacifico", BasePrice: 21990, Stock: 95,
		Colors: []string{"negro", "gris"}},
	{ID: 12, Name: "Bolsa Ecológica", SKU: "BOL-002", Category: "bolsos", Supplier: "sup-austral", BasePrice: 1490, Stock: 3000,
		Colors: []string{"natural", "verde"}},
}

// Default builds the catalog from the bundled reference data.
func Default() *Catalog {
	c, err := New(seedProducts, seedCategories, seedSuppliers)
	if err != nil {
		panic("catalog: invalid seed data: " + err.Error())
	}
	return c
}
