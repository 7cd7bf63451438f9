package reports

import (
	"time"

	"khanmedical/m/domain"
)

type StockItem struct {
	Medicine     domain.Medicine   `json:"medicine"`
	SupplierName string            `json:"supplierName"`
	Status       domain.StockLevel `json:"status"`
	Expiring     bool              `json:"expiring"`
}

type StockView struct {
	Critical   int         `json:"critical"`
	Low        int         `json:"low"`
	Healthy    int         `json:"healthy"`
	NearExpiry int         `json:"nearExpiry"`
	Attention  []StockItem `json:"attention"`
}

// Stock counts stock levels and lists every medicine that is low or near
// expiry, low stock first. Low includes critical.
func Stock(medicines []domain.Medicine, suppliers []domain.Supplier, now time.Time) StockView {
	v := StockView{Attention: []StockItem{}}
	var expiring []domain.Medicine
	for _, m := range medicines {
		switch m.Level() {
		case domain.StockCritical:
			v.Critical++
			v.Low++
		case domain.StockLow:
			v.Low++
		default:
			v.Healthy++
		}
		if m.NearExpiry(now) {
			v.NearExpiry++
			expiring = append(expiring, m)
		}
	}

	seen := make(map[string]bool)
	add := func(m domain.Medicine) {
		if seen[m.ID] {
			return
		}
		seen[m.ID] = true
		v.Attention = append(v.Attention, StockItem{
			Medicine:     m,
			SupplierName: domain.SupplierName(suppliers, m.SupplierID),
			Status:       m.Level(),
			Expiring:     m.NearExpiry(now),
		})
	}
	for _, m := range medicines {
		if m.Stock < domain.LowStockThreshold {
			add(m)
		}
	}
	for _, m := range expiring {
		add(m)
	}
	return v
}
