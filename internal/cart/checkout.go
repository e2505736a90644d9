package cart

import (
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.MustParse("es-AR"))

var maxWhole = decimal.NewFromInt(math.MaxInt64)

// FormatAmount renders an amount with Argentine separators, e.g. 1.234.567,5.
// At most two fraction digits are kept and no digit goes through a float.
func FormatAmount(d decimal.Decimal) string {
	d = d.Round(2)
	whole := d.Truncate(0)

	var b strings.Builder
	if d.IsNegative() {
		b.WriteByte('-')
	}
	if whole.Abs().LessThanOrEqual(maxWhole) {
		b.WriteString(printer.Sprint(number.Decimal(whole.Abs().IntPart())))
	} else {
		b.WriteString(groupThousands(whole.Abs().String()))
	}

	if frac := d.Sub(whole).Abs(); !frac.IsZero() {
		b.WriteByte(',')
		b.WriteString(strings.TrimPrefix(frac.String(), "0."))
	}

	return b.String()
}

// groupThousands dot-separates a plain digit string.
func groupThousands(digits string) string {
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// OrderMessage composes the order text sent to the store.
func OrderMessage(storeName string, lines []Line, totals Totals) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Hola %s, me gustaría comprar:\n", storeName)
	for _, line := range lines {
		unit := "unidad"
		if line.Quantity > 1 {
			unit = "unidades"
		}
		fmt.Fprintf(&b, "- %s (%d %s)\n", line.Product.Model, line.Quantity, unit)
	}

	fmt.Fprintf(&b, "\nTotal en USD: %s\n", FormatAmount(totals.USD))
	fmt.Fprintf(&b, "Total en ARS: %s", FormatAmount(totals.ARS))

	return b.String()
}

// HandoffURL builds the wa.me link that opens a chat with text pre-filled.
// Spaces are sent as %20.
func HandoffURL(phone, text string) string {
	return "https://wa.me/" + phone + "?text=" + strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}
