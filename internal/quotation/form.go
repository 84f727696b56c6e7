package quotation

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/angelmondragon/promostore-backend/internal/catalog"
	"github.com/angelmondragon/promostore-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/promostore-backend/pkg/errors"
)

// Form is the quotation request: the product being quoted plus the buyer's details.
type Form struct {
	Product   string `json:"product" validate:"required"`
	UnitPrice int64  `json:"unitPrice" validate:"gte=0"`
	Quantity  int    `json:"quantity" validate:"gte=1,lte=9999"`
	Discount  int    `json:"discount" validate:"gte=0,lte=100"`
	Company   string `json:"company" validate:"required,max=160"`
	Contact   string `json:"contact" validate:"required,max=160"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,max=40"`
	Address   string `json:"address" validate:"max=240"`
	Validity  string `json:"validity" validate:"required,datetime=2006-01-02"`
	Notes     string `json:"notes" validate:"max=2000"`
}

type productLookup interface {
	Product(id int) (catalog.Product, bool)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// Seed prefills a form for productID. An unknown product yields an empty
// name and zero price rather than an error.
func Seed(products productLookup, productID int) Form {
	form := Form{Quantity: 1}
	if products == nil {
		return form
	}
	if p, ok := products.Product(productID); ok {
		form.Product = p.Name
		form.UnitPrice = p.BasePrice
	}
	return form
}

// Apply copies buyer-supplied values onto form. Every name must be a known,
// editable field; numeric fields must parse. form is not modified on error.
func Apply(form Form, fields map[string]string) (Form, error) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	details := map[string]string{}
	for _, raw := range names {
		name, err := enums.ParseQuotationField(raw)
		if err != nil {
			details[raw] = "unknown field"
			continue
		}
		spec, _ := Lookup(name)
		if spec.ReadOnly {
			details[raw] = "field is read-only"
			continue
		}
		if err := assign(&form, name, strings.TrimSpace(fields[raw])); err != nil {
			details[raw] = err.Error()
		}
	}
	if len(details) > 0 {
		return Form{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid quotation fields").WithDetails(details)
	}
	return form, nil
}

func assign(form *Form, name enums.QuotationField, value string) error {
	switch name {
	case enums.QuotationFieldCompany:
		form.Company = value
	case enums.QuotationFieldContact:
		form.Contact = value
	case enums.QuotationFieldEmail:
		form.Email = value
	case enums.QuotationFieldPhone:
		form.Phone = value
	case enums.QuotationFieldAddress:
		form.Address = value
	case enums.QuotationFieldValidity:
		form.Validity = value
	case enums.QuotationFieldNotes:
		form.Notes = value
	case enums.QuotationFieldQuantity:
		n, err := parseInt(value)
		if err != nil {
			return err
		}
		form.Quantity = n
	case enums.QuotationFieldDiscount:
		if value == "" {
			form.Discount = 0
			return nil
		}
		n, err := parseInt(value)
		if err != nil {
			return err
		}
		form.Discount = n
	default:
		return fmt.Errorf("field is not editable")
	}
	return nil
}

func parseInt(value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("must be a whole number")
	}
	return n, nil
}

// Validate checks the completed form before a document is produced.
func Validate(form Form) error {
	if err := validate.Struct(form); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func formatValidationErrors(err error) *pkgerrors.Error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid quotation")
	}
	details := map[string]string{}
	for _, fe := range errs {
		details[fe.Field()] = validationMessage(fe)
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "invalid quotation").WithDetails(details)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "datetime":
		return "must be a date formatted YYYY-MM-DD"
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte", "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	}
	return "is invalid"
}
