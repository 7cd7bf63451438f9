package billing

import (
	"slices"

	"github.com/shopspring/decimal"

	"khanmedical/m/domain"
)

// Status is the checkout state of a cart for a given tendered amount.
type Status string

const (
	StatusEmpty    Status = "empty"
	StatusBuilding Status = "building"
	StatusInvalid  Status = "invalid"
	StatusReady    Status = "ready"
)

// Cart is the uncommitted list of line items. Operations never modify the
// receiver; they return a new Cart.
type Cart struct {
	Lines []domain.BillItem `json:"items"`
}

// Total sums the line subtotals. It is recomputed on every call.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.Subtotal)
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Line returns the line for a medicine, if present.
func (c Cart) Line(medicineID string) (domain.BillItem, bool) {
	i := c.index(medicineID)
	if i < 0 {
		return domain.BillItem{}, false
	}
	return c.Lines[i], true
}

// Status classifies the cart against the cash tendered so far. A cart whose
// total is covered is ready; otherwise zero cash means nothing has been
// tendered yet.
func (c Cart) Status(cash decimal.Decimal) Status {
	switch {
	case c.IsEmpty():
		return StatusEmpty
	case !cash.LessThan(c.Total()):
		return StatusReady
	case cash.IsZero():
		return StatusBuilding
	default:
		return StatusInvalid
	}
}

// Balance is the change due: max(0, cash - total).
func Balance(cash, total decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, cash.Sub(total))
}

// Add puts one more unit of med in the cart, inserting a new line priced at
// med.Price when needed. The request is rejected if the resulting quantity
// would exceed med.Stock.
func Add(c Cart, med domain.Medicine) (Cart, error) {
	qty := 1
	if line, ok := c.Line(med.ID); ok {
		qty = line.Quantity + 1
	}
	if qty > med.Stock {
		return c, &StockError{MedicineID: med.ID, Name: med.Name, Requested: qty, Available: med.Stock}
	}
	out := c.clone()
	if i := out.index(med.ID); i >= 0 {
		out.Lines[i] = withQuantity(out.Lines[i], qty)
		return out, nil
	}
	out.Lines = append(out.Lines, domain.BillItem{
		MedicineID: med.ID,
		Name:       med.Name,
		Quantity:   1,
		UnitPrice:  med.Price,
		Subtotal:   med.Price,
	})
	return out, nil
}

// SetQuantity replaces the quantity of an existing line. Non-positive
// quantities, unknown medicines and medicines without a line are ignored.
func SetQuantity(c Cart, medicines []domain.Medicine, medicineID string, qty int) (Cart, error) {
	if qty <= 0 {
		return c, nil
	}
	med, ok := domain.FindMedicine(medicines, medicineID)
	if !ok {
		return c, nil
	}
	if qty > med.Stock {
		return c, &StockError{MedicineID: med.ID, Name: med.Name, Requested: qty, Available: med.Stock}
	}
	i := c.index(medicineID)
	if i < 0 {
		return c, nil
	}
	out := c.clone()
	out.Lines[i] = withQuantity(out.Lines[i], qty)
	return out, nil
}

// Remove drops the line for a medicine.
func Remove(c Cart, medicineID string) Cart {
	out := Cart{Lines: make([]domain.BillItem, 0, len(c.Lines))}
	for _, line := range c.Lines {
		if line.MedicineID != medicineID {
			out.Lines = append(out.Lines, line)
		}
	}
	return out
}

func withQuantity(line domain.BillItem, qty int) domain.BillItem {
	line.Quantity = qty
	line.Subtotal = line.UnitPrice.Mul(decimal.NewFromInt(int64(qty)))
	return line
}

func (c Cart) index(medicineID string) int {
	return slices.IndexFunc(c.Lines, func(line domain.BillItem) bool {
		return line.MedicineID == medicineID
	})
}

func (c Cart) clone() Cart {
	return Cart{Lines: slices.Clone(c.Lines)}
}
