package receipt

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Width is the character width of a rendered receipt.
const Width = 48

// DateLayout is how the invoice date is printed.
const DateLayout = "2006-01-02 15:04"

var funcs = template.FuncMap{
	"money":  money,
	"date":   func(t time.Time) string { return t.Format(DateLayout) },
	"center": center,
	"rule":   func() string { return strings.Repeat("-", Width) },
	"pair":   pair,
	"item":   item,
}

var tmpl = template.Must(template.New("receipt").Funcs(funcs).Parse(`{{center .Shop.Name}}
{{center .Shop.Address}}
{{center .Shop.Phone}}
{{rule}}
{{center .Title}}
{{rule}}
{{pair "Billed To:" .BilledTo.Name}}
{{pair "Customer ID:" .BilledTo.CustomerID}}
{{pair "Invoice No:" .Invoice.BillNo}}
{{pair "Date:" (date .Invoice.Date)}}
{{rule}}
{{printf "%-22s%5s%10s%11s" "Medicine Description" "Qty" "Rate" "Amount"}}
{{rule}}
{{range .Lines}}{{item .}}
{{end}}{{rule}}
{{pair "Subtotal" (money .Totals.Subtotal)}}
{{pair "Tax" (money .Totals.Tax)}}
{{pair "Total Due" (money .Totals.GrandTotal)}}
{{rule}}
{{pair "Cash Received" (money .Payment.CashReceived)}}
{{pair "Change Returned" (money .Payment.Change)}}
{{rule}}
{{range .Footer}}{{center .}}
{{end}}`))

// Render writes r as fixed-width plain text.
func Render(w io.Writer, r Receipt) error {
	return tmpl.Execute(w, r)
}

// money rounds half away from zero to cents.
func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// Widths are counted in runes so multi-byte names keep the columns aligned.
func center(s string) string {
	n := utf8.RuneCountInString(s)
	if n >= Width {
		return s
	}
	pad := (Width - n) / 2
	return strings.Repeat(" ", pad) + s
}

func pair(label, value string) string {
	gap := Width - utf8.RuneCountInString(label) - utf8.RuneCountInString(value)
	if gap < 1 {
		gap = 1
	}
	return label + strings.Repeat(" ", gap) + value
}

func item(l Line) string {
	name := l.Name
	if r := []rune(name); len(r) > 21 {
		name = string(r[:21])
	}
	return fmt.Sprintf("%-22s%5d%10s%11s", name, l.Quantity, money(l.UnitPrice), money(l.Subtotal))
}
