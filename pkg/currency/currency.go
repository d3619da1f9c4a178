// Package currency is the static currency registry used for every monetary
// display: code → symbol/name lookup with a fixed default, and formatting with
// a per-currency decimal policy and locale-driven digit grouping.
package currency

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultCode is used whenever a code is empty or not in the registry.
const DefaultCode = "INR"

// DefaultLocale renders digits in Western Arabic numerals with comma grouping.
const DefaultLocale = "en-US"

// Info one registry entry.
type Info struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

var registry = []Info{
	{"INR", "₹", "Indian Rupee"},
	{"QAR", "QAR", "Qatari Riyal"},
	{"AED", "AED", "UAE Dirham"},
	{"SAR", "SAR", "Saudi Riyal"},
	{"KWD", "KWD", "Kuwaiti Dinar"},
	{"BHD", "BHD", "Bahraini Dinar"},
	{"OMR", "OMR", "Omani Rial"},
	{"JOD", "JOD", "Jordanian Dinar"},
	{"EGP", "EGP", "Egyptian Pound"},
	{"USD", "$", "US Dollar"},
	{"EUR", "€", "Euro"},
	{"GBP", "£", "British Pound"},
	{"SGD", "S$", "Singapore Dollar"},
	{"MYR", "RM", "Malaysian Ringgit"},
	{"AUD", "A$", "Australian Dollar"},
	{"CAD", "C$", "Canadian Dollar"},
	{"NZD", "NZ$", "New Zealand Dollar"},
	{"PKR", "Rs", "Pakistani Rupee"},
	{"BDT", "Tk", "Bangladeshi Taka"},
	{"LKR", "Rs", "Sri Lankan Rupee"},
	{"NPR", "Rs", "Nepalese Rupee"},
	{"THB", "THB", "Thai Baht"},
	{"IDR", "Rp", "Indonesian Rupiah"},
	{"PHP", "PHP", "Philippine Peso"},
	{"ZAR", "R", "South African Rand"},
	{"NGN", "NGN", "Nigerian Naira"},
	{"KES", "KSh", "Kenyan Shilling"},
	{"JPY", "JPY", "Japanese Yen"},
	{"CNY", "CNY", "Chinese Yuan"},
	{"KRW", "KRW", "South Korean Won"},
	{"TRY", "TRY", "Turkish Lira"},
	{"BRL", "R$", "Brazilian Real"},
	{"MXN", "MXN", "Mexican Peso"},
	{"CHF", "Fr", "Swiss Franc"},
	{"SEK", "kr", "Swedish Krona"},
	{"NOK", "kr", "Norwegian Krone"},
	{"RUB", "RUB", "Russian Ruble"},
}

// noDecimal currencies rendered without fraction digits.
var noDecimal = map[string]bool{"JPY": true, "KRW": true, "IDR": true}

var byCode = func() map[string]Info {
	m := make(map[string]Info, len(registry))
	for _, c := range registry {
		m[c.Code] = c
	}
	return m
}()

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsKnown reports whether code is in the registry.
func IsKnown(code string) bool {
	_, ok := byCode[normalize(code)]
	return ok
}

// ByCode looks code up, falling back to the default currency. It never fails.
func ByCode(code string) Info {
	if c, ok := byCode[normalize(code)]; ok {
		return c
	}
	return byCode[DefaultCode]
}

// Resolve returns the registry code to persist for code: itself when known, DefaultCode otherwise.
func Resolve(code string) string {
	return ByCode(code).Code
}

// All returns a copy of the registry in display order.
func All() []Info {
	out := make([]Info, len(registry))
	copy(out, registry)
	return out
}

// FractionDigits is the decimal policy for code.
func FractionDigits(code string) int32 {
	if noDecimal[ByCode(code).Code] {
		return 0
	}
	return 2
}

// Formatter renders amounts for one currency. Build one per workshop and reuse it.
type Formatter struct {
	info    Info
	digits  int32
	printer *message.Printer
	glyphs  [10]string // locale digit for each of 0-9
	point   string     // locale decimal separator
}

// NewFormatter resolves the currency (default on unknown) and the digit locale
// (DefaultLocale when the tag does not parse).
func NewFormatter(code, locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil || locale == "" {
		tag = language.AmericanEnglish
	}
	info := ByCode(code)
	f := &Formatter{
		info:    info,
		digits:  FractionDigits(info.Code),
		printer: message.NewPrinter(tag),
	}
	for i := range f.glyphs {
		f.glyphs[i] = f.printer.Sprintf("%d", i)
	}
	half := []rune(f.printer.Sprintf("%.1f", 0.5))
	f.point = string(half[1 : len(half)-1])
	return f
}

// Currency returns the resolved registry entry.
func (f *Formatter) Currency() Info { return f.info }

// Format renders symbol + grouped numeral, e.g. "$1,234.50", "JPY 1,235".
// Amounts are rounded half away from zero to the currency's fraction digits.
func (f *Formatter) Format(amount decimal.Decimal) string {
	rounded := amount.Round(f.digits)
	whole, frac, _ := strings.Cut(rounded.Abs().StringFixed(f.digits), ".")
	number := f.group(whole)
	if frac != "" {
		number += f.point + f.localize(frac)
	}
	if rounded.IsNegative() {
		number = "-" + number
	}
	return f.info.Symbol + separator(f.info.Symbol) + number
}

// group applies the locale grouping to the integer digits. Integer parts
// beyond int64 are printed ungrouped.
func (f *Formatter) group(whole string) string {
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return f.localize(whole)
	}
	return f.printer.Sprintf("%d", n)
}

func (f *Formatter) localize(digits string) string {
	var b strings.Builder
	for _, r := range digits {
		b.WriteString(f.glyphs[r-'0'])
	}
	return b.String()
}

// Format is a shortcut for NewFormatter(code, DefaultLocale).Format(amount).
func Format(amount decimal.Decimal, code string) string {
	return NewFormatter(code, DefaultLocale).Format(amount)
}

// separator puts a space after alphabetic symbols ("QAR 10.00") and none after glyphs ("₹10.00").
func separator(symbol string) string {
	r, _ := utf8.DecodeLastRuneInString(symbol)
	if unicode.IsLetter(r) {
		return " "
	}
	return ""
}
