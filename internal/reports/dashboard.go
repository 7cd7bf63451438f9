// Package reports derives read-only views of the State for the dashboard,
// stock and sales screens.
package reports

import (
	"strings"

	"github.com/shopspring/decimal"

	"khanmedical/m/domain"
)

const (
	RecentBills = 5
	ChartPoints = 7
)

type ChartPoint struct {
	Label string          `json:"label"`
	Total decimal.Decimal `json:"total"`
}

type DashboardView struct {
	TotalSales   decimal.Decimal `json:"totalSales"`
	SalesDisplay string          `json:"salesDisplay"`
	Medicines    int             `json:"medicines"`
	Suppliers    int             `json:"suppliers"`
	LowStock     int             `json:"lowStock"`
	Transactions int             `json:"transactions"`
	RecentBills  []domain.Bill   `json:"recentBills"`
	Chart        []ChartPoint    `json:"chart"`
}

// Dashboard summarizes the State. Bills are expected newest first.
func Dashboard(state domain.State) DashboardView {
	v := DashboardView{
		TotalSales:   decimal.Zero,
		Medicines:    len(state.Medicines),
		Suppliers:    len(state.Suppliers),
		Transactions: len(state.Bills),
		RecentBills:  []domain.Bill{},
		Chart:        []ChartPoint{},
	}
	for _, b := range state.Bills {
		v.TotalSales = v.TotalSales.Add(b.Total)
	}
	v.SalesDisplay = FormatMoney(v.TotalSales)
	for _, m := range state.Medicines {
		if m.Stock < domain.LowStockThreshold {
			v.LowStock++
		}
	}
	v.RecentBills = append(v.RecentBills, state.Bills[:min(RecentBills, len(state.Bills))]...)

	n := min(ChartPoints, len(state.Bills))
	for i := n - 1; i >= 0; i-- {
		b := state.Bills[i]
		v.Chart = append(v.Chart, ChartPoint{Label: sequence(b.BillNo), Total: b.Total})
	}
	return v
}

// sequence is the trailing counter of a bill number, e.g. "003".
func sequence(billNo string) string {
	if i := strings.LastIndex(billNo, "-"); i >= 0 {
		return billNo[i+1:]
	}
	return billNo
}
