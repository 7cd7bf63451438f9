package reports

import (
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"khanmedical/m/domain"
)

// DailyDays caps the daily sales series.
const DailyDays = 10

const dayLayout = "2006-01-02"

type DailyTotal struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
}

type SalesView struct {
	Revenue        decimal.Decimal `json:"revenue"`
	RevenueDisplay string          `json:"revenueDisplay"`
	Bills          int             `json:"bills"`
	AvgTicket      decimal.Decimal `json:"avgTicket"`
	Daily          []DailyTotal    `json:"daily"`
}

// Sales aggregates revenue over all bills. Days are UTC calendar dates and
// only the latest DailyDays of them are returned, oldest first.
func Sales(bills []domain.Bill) SalesView {
	v := SalesView{Revenue: decimal.Zero, AvgTicket: decimal.Zero, Bills: len(bills), Daily: []DailyTotal{}}
	byDay := make(map[string]decimal.Decimal)
	for _, b := range bills {
		v.Revenue = v.Revenue.Add(b.Total)
		day := b.Date.UTC().Format(dayLayout)
		byDay[day] = byDay[day].Add(b.Total)
	}
	if len(bills) > 0 {
		v.AvgTicket = v.Revenue.Div(decimal.NewFromInt(int64(len(bills)))).Round(2)
	}

	v.RevenueDisplay = FormatMoney(v.Revenue)

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	slices.Sort(days)
	if len(days) > DailyDays {
		days = days[len(days)-DailyDays:]
	}
	for _, day := range days {
		v.Daily = append(v.Daily, DailyTotal{Date: day, Total: byDay[day]})
	}
	return v
}

var printer = message.NewPrinter(language.English)

// FormatMoney renders d with thousands grouping and two decimals, e.g.
// "$1,234.50". Only the whole part goes through the printer; the cents are
// taken from the exact decimal.
func FormatMoney(d decimal.Decimal) string {
	fixed := d.Abs().StringFixed(2)
	whole, cents, _ := strings.Cut(fixed, ".")
	if n, err := strconv.ParseInt(whole, 10, 64); err == nil {
		whole = printer.Sprint(number.Decimal(n))
	}
	sign := ""
	if d.Round(2).IsNegative() {
		sign = "-"
	}
	return sign + "$" + whole + "." + cents
}
