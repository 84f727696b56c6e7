package quotation

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Summary is the priced quotation. Amounts are whole pesos.
type Summary struct {
	Form           Form  `json:"form"`
	Subtotal       int64 `json:"subtotal"`
	DiscountAmount int64 `json:"discountAmount"`
	Total          int64 `json:"total"`
}

// Summarize prices form. The discount is rounded half away from zero to the peso.
func Summarize(form Form) Summary {
	subtotal := decimal.NewFromInt(form.UnitPrice).Mul(decimal.NewFromInt(int64(form.Quantity)))
	discount := subtotal.Mul(decimal.NewFromInt(int64(form.Discount))).Div(hundred).Round(0)
	total := subtotal.Sub(discount)
	return Summary{
		Form:           form,
		Subtotal:       subtotal.IntPart(),
		DiscountAmount: discount.IntPart(),
		Total:          total.IntPart(),
	}
}

// FormatCLP renders whole pesos with dot thousands separators, e.g. $12.345.
func FormatCLP(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)

	var b strings.Builder
	b.Grow(len(digits) + len(digits)/3 + 2)
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte('.')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
