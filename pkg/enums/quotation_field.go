package enums

import "fmt"

// QuotationField names an input of the quotation form.
type QuotationField string

const (
	QuotationFieldCompany   QuotationField = "company"
	QuotationFieldContact   QuotationField = "contact"
	QuotationFieldEmail     QuotationField = "email"
	QuotationFieldPhone     QuotationField = "phone"
	QuotationFieldAddress   QuotationField = "address"
	QuotationFieldProduct   QuotationField = "product"
	QuotationFieldUnitPrice QuotationField = "unitPrice"
	QuotationFieldQuantity  QuotationField = "quantity"
	QuotationFieldDiscount  QuotationField = "discount"
	QuotationFieldValidity  QuotationField = "validity"
	QuotationFieldNotes     QuotationField = "notes"
)

var validQuotationFields = []QuotationField{
	QuotationFieldCompany,
	QuotationFieldContact,
	QuotationFieldEmail,
	QuotationFieldPhone,
	QuotationFieldAddress,
	QuotationFieldProduct,
	QuotationFieldUnitPrice,
	QuotationFieldQuantity,
	QuotationFieldDiscount,
	QuotationFieldValidity,
	QuotationFieldNotes,
}

// String implements fmt.Stringer.
func (f QuotationField) String() string {
	return string(f)
}

// IsValid reports whether the value is a known QuotationField.
func (f QuotationField) IsValid() bool {
	for _, candidate := range validQuotationFields {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseQuotationField converts raw input into a QuotationField.
func ParseQuotationField(value string) (QuotationField, error) {
	for _, candidate := range validQuotationFields {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid quotation field %q", value)
}

// QuotationInputType is the HTML input type used to render a field.
type QuotationInputType string

const (
	QuotationInputText     QuotationInputType = "text"
	QuotationInputEmail    QuotationInputType = "email"
	QuotationInputNumber   QuotationInputType = "number"
	QuotationInputDate     QuotationInputType = "date"
	QuotationInputTextarea QuotationInputType = "textarea"
)
