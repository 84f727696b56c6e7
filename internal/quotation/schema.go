package quotation

import "github.com/angelmondragon/promostore-backend/pkg/enums"

// FieldSpec describes how one form input is labelled and rendered.
type FieldSpec struct {
	Name     enums.QuotationField     `json:"name"`
	Label    string                   `json:"label"`
	Type     enums.QuotationInputType `json:"type"`
	Min      *int                     `json:"min,omitempty"`
	Max      *int                     `json:"max,omitempty"`
	ReadOnly bool                     `json:"readOnly"`
	Required bool                     `json:"required"`
}

func bound(v int) *int { return &v }

var fieldSpecs = []FieldSpec{
	{Name: enums.QuotationFieldCompany, Label: "Nombre de Empresa", Type: enums.QuotationInputText, Required: true},
	{Name: enums.QuotationFieldContact, Label: "Persona de Contacto", Type: enums.QuotationInputText, Required: true},
	{Name: enums.QuotationFieldEmail, Label: "Correo Electrónico", Type: enums.QuotationInputEmail, Required: true},
	{Name: enums.QuotationFieldPhone, Label: "Numero de Teléfono", Type: enums.QuotationInputText, Required: true},
	{Name: enums.QuotationFieldAddress, Label: "Dirección", Type: enums.QuotationInputText},
	{Name: enums.QuotationFieldProduct, Label: "Producto / Servicio", Type: enums.QuotationInputText, ReadOnly: true},
	{Name: enums.QuotationFieldUnitPrice, Label: "Precio Unitario", Type: enums.QuotationInputText, Min: bound(0), ReadOnly: true},
	{Name: enums.QuotationFieldQuantity, Label: "Cantidad", Type: enums.QuotationInputNumber, Min: bound(1), Max: bound(9999), Required: true},
	{Name: enums.QuotationFieldDiscount, Label: "Descuento (%)", Type: enums.QuotationInputNumber, Min: bound(0), Max: bound(100)},
	{Name: enums.QuotationFieldValidity, Label: "Fecha de Validez", Type: enums.QuotationInputDate, Required: true},
	{Name: enums.QuotationFieldNotes, Label: "Notas Adicionales", Type: enums.QuotationInputTextarea},
}

// Rows of the form as laid out for the buyer.
var inputGroups = [][]enums.QuotationField{
	{enums.QuotationFieldProduct, enums.QuotationFieldUnitPrice},
	{enums.QuotationFieldQuantity, enums.QuotationFieldDiscount},
	{enums.QuotationFieldCompany, enums.QuotationFieldContact},
	{enums.QuotationFieldEmail, enums.QuotationFieldPhone},
	{enums.QuotationFieldAddress},
	{enums.QuotationFieldValidity},
	{enums.QuotationFieldNotes},
}

// Schema returns the field definitions in declaration order.
func Schema() []FieldSpec {
	out := make([]FieldSpec, len(fieldSpecs))
	copy(out, fieldSpecs)
	return out
}

// InputGroups returns the form rows.
func InputGroups() [][]enums.QuotationField {
	out := make([][]enums.QuotationField, len(inputGroups))
	for i, row := range inputGroups {
		out[i] = append([]enums.QuotationField(nil), row...)
	}
	return out
}

// Lookup finds the spec for a field name.
func Lookup(name enums.QuotationField) (FieldSpec, bool) {
	for _, spec := range fieldSpecs {
		if spec.Name == name {
			return spec, true
		}
	}
	return FieldSpec{}, false
}

// Label returns the display label for name, or the raw name when unknown.
func Label(name enums.QuotationField) string {
	if spec, ok := Lookup(name); ok {
		return spec.Label
	}
	return name.String()
}
