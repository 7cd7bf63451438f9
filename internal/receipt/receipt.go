// Package receipt projects a committed bill into the printable receipt.
package receipt

import (
	"time"

	"github.com/shopspring/decimal"

	"khanmedical/m/domain"
)

const (
	Title     = "Official Receipt"
	Signature = "Authorized Signature"
	Greeting  = "May you have a speedy recovery!"
)

type BilledTo struct {
	Name       string `json:"name"`
	CustomerID string `json:"customerId"`
}

type Invoice struct {
	BillNo string    `json:"billNo"`
	Date   time.Time `json:"date"`
}

type Line struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type Totals struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	GrandTotal decimal.Decimal `json:"grandTotal"`
}

type Payment struct {
	CashReceived decimal.Decimal `json:"cashReceived"`
	Change       decimal.Decimal `json:"change"`
}

// Receipt is the printable view of a Bill. It holds nothing the Bill does not.
type Receipt struct {
	Shop     domain.Shop `json:"shop"`
	Title    string      `json:"title"`
	BilledTo BilledTo    `json:"billedTo"`
	Invoice  Invoice     `json:"invoice"`
	Lines    []Line      `json:"lines"`
	Totals   Totals      `json:"totals"`
	Payment  Payment     `json:"payment"`
	Footer   []string    `json:"footer"`
}

// Build projects bill onto the receipt layout. Tax is always zero.
func Build(shop domain.Shop, bill domain.Bill) Receipt {
	lines := make([]Line, 0, len(bill.Items))
	for _, item := range bill.Items {
		lines = append(lines, Line{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		})
	}
	return Receipt{
		Shop:     shop,
		Title:    Title,
		BilledTo: BilledTo{Name: bill.CustomerName, CustomerID: bill.CustomerID},
		Invoice:  Invoice{BillNo: bill.BillNo, Date: bill.Date},
		Lines:    lines,
		Totals: Totals{
			Subtotal:   bill.Total,
			Tax:        decimal.Zero,
			GrandTotal: bill.Total,
		},
		Payment: Payment{CashReceived: bill.CashReceived, Change: bill.Balance},
		Footer:  []string{Signature, Greeting},
	}
}
