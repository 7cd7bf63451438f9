package domain

import "time"

const (
	LowStockThreshold      = 10
	CriticalStockThreshold = 5
	ExpiryWarningMonths    = 3
)

// StockLevel classifies a stock count.
type StockLevel string

const (
	StockCritical StockLevel = "critical"
	StockLow      StockLevel = "low"
	StockOK       StockLevel = "ok"
)

// Level reports how urgently the medicine needs restocking.
func (m Medicine) Level() StockLevel {
	switch {
	case m.Stock < CriticalStockThreshold:
		return StockCritical
	case m.Stock < LowStockThreshold:
		return StockLow
	default:
		return StockOK
	}
}

// NearExpiry reports whether the expiry month is at most ExpiryWarningMonths
// calendar months after now. Already expired stock counts as near expiry.
// An unparseable date is never near expiry.
func (m Medicine) NearExpiry(now time.Time) bool {
	exp, err := m.Expiry()
	if err != nil {
		return false
	}
	months := (exp.Year()-now.Year())*12 + int(exp.Month()) - int(now.Month())
	return months <= ExpiryWarningMonths
}
