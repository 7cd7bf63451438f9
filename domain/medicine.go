package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpiryLayout is the calendar-date layout used for Medicine.ExpiryDate.
const ExpiryLayout = "2006-01-02"

type Medicine struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	GenericName string          `json:"genericName,omitempty"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	CostPrice   decimal.Decimal `json:"costPrice"`
	Stock       int             `json:"stock"`
	ExpiryDate  string          `json:"expiryDate"`
	SupplierID  string          `json:"supplierId"`
}

// Expiry parses ExpiryDate as a calendar date in UTC.
func (m Medicine) Expiry() (time.Time, error) {
	return time.Parse(ExpiryLayout, m.ExpiryDate)
}

// FindMedicine returns the medicine with the given id, if present.
func FindMedicine(medicines []Medicine, id string) (Medicine, bool) {
	for _, m := range medicines {
		if m.ID == id {
			return m, true
		}
	}
	return Medicine{}, false
}
