package quotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	s := Summarize(Form{UnitPrice: 4990, Quantity: 10, Discount: 15})
	assert.Equal(t, int64(49900), s.Subtotal)
	assert.Equal(t, int64(7485), s.DiscountAmount)
	assert.Equal(t, int64(42415), s.Total)
}

func TestSummarizeRoundsDiscountToPeso(t *testing.T) {
	// 990 * 3 = 2970; 2970 * 5% = 148.5 -> 149
	s := Summarize(Form{UnitPrice: 990, Quantity: 3, Discount: 5})
	assert.Equal(t, int64(149), s.DiscountAmount)
	assert.Equal(t, int64(2821), s.Total)
}

func TestSummarizeNoDiscount(t *testing.T) {
	s := Summarize(Form{UnitPrice: 1490, Quantity: 2})
	assert.Equal(t, s.Subtotal, s.Total)
	assert.Zero(t, s.DiscountAmount)
}

func TestFormatCLP(t *testing.T) {
	cases := map[int64]string{
		0:        "$0",
		990:      "$990",
		4990:     "$4.990",
		12345:    "$12.345",
		21990:    "$21.990",
		1000000:  "$1.000.000",
		-4990:    "-$4.990",
		12345678: "$12.345.678",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatCLP(in), "amount %d", in)
	}
}
