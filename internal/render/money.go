// Package render formats statements for people: currency strings, date labels,
// display rows, a terminal table and a balance chart.
package render

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Money formats currency amounts with a fixed symbol and locale digit grouping.
type Money struct {
	symbol  string
	printer *message.Printer
	point   string
}

// NewMoney creates a Money formatter. An unparseable locale falls back to en-US.
func NewMoney(symbol, locale string) Money {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.AmericanEnglish
	}
	p := message.NewPrinter(tag)
	return Money{symbol: symbol, printer: p, point: decimalPoint(p)}
}

// decimalPoint extracts the locale's fraction separator from a formatted 1.5.
func decimalPoint(p *message.Printer) string {
	s := p.Sprint(number.Decimal(1.5, number.Scale(1)))
	s = strings.TrimPrefix(strings.TrimSuffix(s, "5"), "1")
	if s == "" {
		return "."
	}
	return s
}

// Format renders d rounded to cents, e.g. "$1,020.50" or "-$2.50".
func (m Money) Format(d decimal.Decimal) string {
	d = d.Round(2)
	neg := d.IsNegative()
	d = d.Abs()

	whole := d.Truncate(0)
	cents := d.Sub(whole).Shift(2).IntPart()

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(m.symbol)
	b.WriteString(m.printer.Sprintf("%d", whole.IntPart()))
	b.WriteString(m.point)
	if cents < 10 {
		b.WriteByte('0')
	}
	b.WriteString(m.printer.Sprintf("%d", cents))
	return b.String()
}
