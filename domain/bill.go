package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// WalkInCustomerID is recorded on every bill regardless of the customer name entered.
	WalkInCustomerID = "WALK-IN"
	// DefaultCustomerName is used when checkout receives no customer name.
	DefaultCustomerName = "Walk-in Customer"
)

type BillItem struct {
	MedicineID string          `json:"medicineId"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

type Bill struct {
	BillNo       string          `json:"billNo"`
	Date         time.Time       `json:"date"`
	CustomerID   string          `json:"customerId"`
	CustomerName string          `json:"customerName"`
	Items        []BillItem      `json:"items"`
	Total        decimal.Decimal `json:"total"`
	CashReceived decimal.Decimal `json:"cashReceived"`
	Balance      decimal.Decimal `json:"balance"`
}

// FindBill returns the bill with the given number, if present.
func FindBill(bills []Bill, billNo string) (Bill, bool) {
	for _, b := range bills {
		if b.BillNo == billNo {
			return b, true
		}
	}
	return Bill{}, false
}
