package billing

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"khanmedical/m/domain"
)

// CommitInput is everything a sale needs to be committed.
type CommitInput struct {
	Cart         Cart
	CashReceived decimal.Decimal
	CustomerName string
	Bills        []domain.Bill
	Medicines    []domain.Medicine
	Now          time.Time
}

// Commit turns the cart into an immutable Bill and returns the medicine
// list with sold quantities deducted. On error neither value is usable and
// the inputs are untouched.
func Commit(in CommitInput) (domain.Bill, []domain.Medicine, error) {
	if in.Cart.IsEmpty() {
		return domain.Bill{}, nil, ErrEmptyCart
	}
	total := in.Cart.Total()
	if in.CashReceived.LessThan(total) {
		return domain.Bill{}, nil, &CashError{Total: total, Received: in.CashReceived}
	}

	sold := make(map[string]int, len(in.Cart.Lines))
	for _, line := range in.Cart.Lines {
		sold[line.MedicineID] += line.Quantity
	}
	for _, med := range in.Medicines {
		qty, ok := sold[med.ID]
		if ok && qty > med.Stock {
			return domain.Bill{}, nil, &StockError{MedicineID: med.ID, Name: med.Name, Requested: qty, Available: med.Stock}
		}
	}

	medicines := make([]domain.Medicine, len(in.Medicines))
	for i, med := range in.Medicines {
		if qty, ok := sold[med.ID]; ok {
			med.Stock -= qty
		}
		medicines[i] = med
	}

	name := strings.TrimSpace(in.CustomerName)
	if name == "" {
		name = domain.DefaultCustomerName
	}
	bill := domain.Bill{
		BillNo:       NextBillNo(in.Bills, in.Now),
		Date:         in.Now,
		CustomerID:   domain.WalkInCustomerID,
		CustomerName: name,
		Items:        slices.Clone(in.Cart.Lines),
		Total:        total,
		CashReceived: in.CashReceived,
		Balance:      Balance(in.CashReceived, total),
	}
	return bill, medicines, nil
}
