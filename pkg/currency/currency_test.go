package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestByCode_KnownAndFallback(t *testing.T) {
	assert.Equal(t, "$", ByCode("USD").Symbol)
	assert.Equal(t, "$", ByCode(" usd ").Symbol, "lookup is case-insensitive")

	for _, code := range []string{"", "XXX", "dollars"} {
		got := ByCode(code)
		assert.Equal(t, DefaultCode, got.Code, "code %q", code)
		assert.Equal(t, "₹", got.Symbol)
	}
}

func TestIsKnownAndResolve(t *testing.T) {
	assert.True(t, IsKnown("aed"))
	assert.False(t, IsKnown("ZZZ"))
	assert.Equal(t, "AED", Resolve("aed"))
	assert.Equal(t, DefaultCode, Resolve("ZZZ"))
}

func TestAll_ReturnsCopy(t *testing.T) {
	all := All()
	assert.Len(t, all, 37)
	all[0].Symbol = "mutated"
	assert.Equal(t, "₹", ByCode("INR").Symbol)
}

func TestFormat(t *testing.T) {
	cases := []struct {
		name   string
		amount string
		code   string
		want   string
	}{
		{"usd two fraction digits", "1234.5", "USD", "$1,234.50"},
		{"jpy rounds half away from zero", "1234.5", "JPY", "JPY 1,235"},
		{"krw no decimals", "1000000", "KRW", "KRW 1,000,000"},
		{"idr no decimals", "99.4", "IDR", "Rp 99"},
		{"inr default glyph", "5000", "INR", "₹5,000.00"},
		{"alphabetic symbol gets a space", "10", "QAR", "QAR 10.00"},
		{"unknown falls back to default", "3000", "NOPE", "₹3,000.00"},
		{"small amount", "0.005", "EUR", "€0.01"},
		{"past float64 precision", "12345678901234567.89", "USD", "$12,345,678,901,234,567.89"},
		{"cents survive on large amounts", "9007199254740993.01", "INR", "₹9,007,199,254,740,993.01"},
		{"negative keeps sign", "-1234.5", "USD", "$-1,234.50"},
		{"negative below one", "-0.5", "EUR", "€-0.50"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Format(decimal.RequireFromString(tc.amount), tc.code))
		})
	}
}

func TestFormatter_LocaleSeparators(t *testing.T) {
	f := NewFormatter("EUR", "de-DE")
	assert.Equal(t, "€1.234,50", f.Format(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "€12.345.678.901.234.567,89", f.Format(decimal.RequireFromString("12345678901234567.89")))
}

func TestFormatter_ResolvedOncePerWorkshop(t *testing.T) {
	f := NewFormatter("gbp", "not a locale")
	assert.Equal(t, "GBP", f.Currency().Code)
	assert.Equal(t, "£2,500.00", f.Format(decimal.NewFromInt(2500)))
	assert.EqualValues(t, 0, FractionDigits("JPY"))
	assert.EqualValues(t, 2, FractionDigits("unknown"))
}
