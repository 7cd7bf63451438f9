package pos

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"khanmedical/m/domain"
	"khanmedical/m/internal/billing"
	"khanmedical/m/internal/catalog"
)

// CartView is the cart as shown on the billing screen. Status and Balance
// are computed against CashReceived, which is zero unless a caller asks
// for a specific tendered amount.
type CartView struct {
	Items        []domain.BillItem `json:"items"`
	Total        decimal.Decimal   `json:"total"`
	CashReceived decimal.Decimal   `json:"cashReceived"`
	Balance      decimal.Decimal   `json:"balance"`
	Status       billing.Status    `json:"status"`
}

func view(c billing.Cart) CartView {
	return viewWithCash(c, decimal.Zero)
}

func viewWithCash(c billing.Cart, cash decimal.Decimal) CartView {
	total := c.Total()
	return CartView{
		Items:        append([]domain.BillItem{}, c.Lines...),
		Total:        total,
		CashReceived: cash,
		Balance:      billing.Balance(cash, total),
		Status:       c.Status(cash),
	}
}

// Cart returns the cart evaluated against cash tendered.
func (s *Store) Cart(cash decimal.Decimal) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return viewWithCash(s.cart, cash)
}

// AddToCart adds one unit of the medicine at its current price.
func (s *Store) AddToCart(medicineID string) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	med, ok := domain.FindMedicine(s.state.Medicines, medicineID)
	if !ok {
		return view(s.cart), catalog.ErrNotFound
	}
	cart, err := billing.Add(s.cart, med)
	if err != nil {
		return view(s.cart), err
	}
	s.cart = cart
	return view(s.cart), nil
}

func (s *Store) SetCartQuantity(medicineID string, qty int) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, err := billing.SetQuantity(s.cart, s.state.Medicines, medicineID, qty)
	if err != nil {
		return view(s.cart), err
	}
	s.cart = cart
	return view(s.cart), nil
}

func (s *Store) RemoveFromCart(medicineID string) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = billing.Remove(s.cart, medicineID)
	return view(s.cart)
}

func (s *Store) ClearCart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = billing.Cart{}
	return view(s.cart)
}

// Checkout commits the cart. Numbering, the stock decrement, the bill
// insert and the cart reset happen under one lock; a rejected checkout
// changes nothing.
func (s *Store) Checkout(ctx context.Context, cash decimal.Decimal, customerName string) (domain.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bill, medicines, err := billing.Commit(billing.CommitInput{
		Cart:         s.cart,
		CashReceived: cash,
		CustomerName: customerName,
		Bills:        s.state.Bills,
		Medicines:    s.state.Medicines,
		Now:          s.now(),
	})
	if err != nil {
		s.logger.Info("checkout rejected", slog.Any("error", err))
		if s.onReject != nil {
			s.onReject(err)
		}
		return domain.Bill{}, err
	}

	s.state.Bills = append([]domain.Bill{bill}, s.state.Bills...)
	s.state.Medicines = medicines
	s.cart = billing.Cart{}
	s.persist(ctx)

	s.logger.Info("checkout committed",
		slog.String("bill_no", bill.BillNo),
		slog.String("total", bill.Total.StringFixed(2)),
		slog.Int("items", len(bill.Items)))
	if s.onCheckout != nil {
		s.onCheckout(bill)
	}
	bill.Items = slices.Clone(bill.Items)
	return bill, nil
}

// Bills lists bills newest first, filtered by a bill number fragment.
func (s *Store) Bills(query string) []domain.Bill {
	s.mu.Lock()
	defer s.mu.Unlock()
	query = strings.ToLower(strings.TrimSpace(query))
	out := []domain.Bill{}
	for _, b := range s.state.Bills {
		if query == "" || strings.Contains(strings.ToLower(b.BillNo), query) {
			b.Items = slices.Clone(b.Items)
			out = append(out, b)
		}
	}
	return out
}

func (s *Store) Bill(billNo string) (domain.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bill, ok := domain.FindBill(s.state.Bills, billNo)
	if !ok {
		return domain.Bill{}, catalog.ErrNotFound
	}
	bill.Items = slices.Clone(bill.Items)
	return bill, nil
}
