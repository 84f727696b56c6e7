package quotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/promostore-backend/internal/catalog"
	"github.com/angelmondragon/promostore-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/promostore-backend/pkg/errors"
)

func validFields() map[string]string {
	return map[string]string{
		"company":  "Acme SpA",
		"contact":  "Ana Pérez",
		"email":    "ana@acme.cl",
		"phone":    "+56 9 1234 5678",
		"validity": "2026-12-31",
		"quantity": "10",
	}
}

func TestSchemaCoversEveryField(t *testing.T) {
	schema := Schema()
	require.Len(t, schema, 11)
	for _, spec := range schema {
		assert.True(t, spec.Name.IsValid(), spec.Name)
		assert.NotEmpty(t, spec.Label)
	}

	product, ok := Lookup(enums.QuotationFieldProduct)
	require.True(t, ok)
	assert.True(t, product.ReadOnly)
	assert.Equal(t, "Producto / Servicio", product.Label)

	price, _ := Lookup(enums.QuotationFieldUnitPrice)
	assert.True(t, price.ReadOnly)

	email, _ := Lookup(enums.QuotationFieldEmail)
	assert.Equal(t, enums.QuotationInputEmail, email.Type)

	quantity, _ := Lookup(enums.QuotationFieldQuantity)
	require.NotNil(t, quantity.Max)
	assert.Equal(t, 9999, *quantity.Max)
}

func TestInputGroupsReferenceKnownFields(t *testing.T) {
	seen := map[enums.QuotationField]bool{}
	for _, row := range InputGroups() {
		for _, name := range row {
			_, ok := Lookup(name)
			assert.True(t, ok, name)
			seen[name] = true
		}
	}
	assert.Len(t, seen, len(Schema()))

	groups := InputGroups()
	groups[0][0] = "mutated"
	assert.Equal(t, enums.QuotationFieldProduct, InputGroups()[0][0])
}

func TestSeedKnownProduct(t *testing.T) {
	form := Seed(catalog.Default(), 8)
	assert.Equal(t, "Bolígrafo Metálico", form.Product)
	assert.Equal(t, int64(990), form.UnitPrice)
	assert.Equal(t, 1, form.Quantity)
}

func TestSeedUnknownProductFallsBackToEmpty(t *testing.T) {
	form := Seed(catalog.Default(), 999)
	assert.Equal(t, Form{Quantity: 1}, form)
	assert.Equal(t, Form{Quantity: 1}, Seed(nil, 1))
}

func TestApplyCopiesFields(t *testing.T) {
	fields := validFields()
	fields["discount"] = "15"
	fields["notes"] = "  logo bordado  "

	form, err := Apply(Seed(catalog.Default(), 1), fields)
	require.NoError(t, err)
	assert.Equal(t, "Polera Algodón Premium", form.Product)
	assert.Equal(t, "Acme SpA", form.Company)
	assert.Equal(t, 10, form.Quantity)
	assert.Equal(t, 15, form.Discount)
	assert.Equal(t, "logo bordado", form.Notes)
	require.NoError(t, Validate(form))
}

func TestApplyRejectsUnknownAndReadOnlyFields(t *testing.T) {
	seed := Seed(catalog.Default(), 1)
	_, err := Apply(seed, map[string]string{"company": "x", "coupon": "FREE", "unitPrice": "1"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	details, ok := pkgerrors.As(err).Details().(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "unknown field", details["coupon"])
	assert.Equal(t, "field is read-only", details["unitPrice"])
	assert.NotContains(t, details, "company")
}

func TestApplyRejectsNonNumericQuantity(t *testing.T) {
	_, err := Apply(Form{}, map[string]string{"quantity": "diez"})
	require.Error(t, err)
	details := pkgerrors.As(err).Details().(map[string]string)
	assert.Equal(t, "must be a whole number", details["quantity"])
}

func TestValidate(t *testing.T) {
	base, err := Apply(Seed(catalog.Default(), 1), validFields())
	require.NoError(t, err)

	cases := map[string]struct {
		mutate func(*Form)
		field  string
	}{
		"missing company": {func(f *Form) { f.Company = "" }, "company"},
		"bad email":       {func(f *Form) { f.Email = "not-an-email" }, "email"},
		"bad validity":    {func(f *Form) { f.Validity = "31/12/2026" }, "validity"},
		"discount > 100":  {func(f *Form) { f.Discount = 101 }, "discount"},
		"zero quantity":   {func(f *Form) { f.Quantity = 0 }, "quantity"},
		"quantity > max":  {func(f *Form) { f.Quantity = 10000 }, "quantity"},
		"no product":      {func(f *Form) { f.Product = "" }, "product"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			form := base
			tc.mutate(&form)
			err := Validate(form)
			require.Error(t, err)
			details := pkgerrors.As(err).Details().(map[string]string)
			assert.Contains(t, details, tc.field)
		})
	}
}
