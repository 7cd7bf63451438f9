package pos

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"khanmedical/m/domain"
	"khanmedical/m/internal/billing"
	"khanmedical/m/internal/catalog"
	"khanmedical/m/internal/storage"
)

var may14 = time.Date(2024, time.May, 14, 10, 0, 0, 0, time.UTC)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newStore(t *testing.T, gw storage.Gateway, opts Options) *Store {
	t.Helper()
	if opts.Now == nil {
		opts.Now = func() time.Time { return may14 }
	}
	return Open(context.Background(), gw, quietLogger(), opts)
}

func seeded(t *testing.T) (*Store, *storage.MemoryGateway) {
	t.Helper()
	gw := storage.NewMemoryGateway(quietLogger())
	state := domain.NewState()
	state.Medicines = []domain.Medicine{
		{ID: "MED-P", Name: "Paracetamol", Category: "Tablet", Price: dec("2.50"), Stock: 10, ExpiryDate: "2026-01-01"},
		{ID: "MED-B", Name: "Brufen", Category: "Tablet", Price: dec("4.00"), Stock: 2, ExpiryDate: "2026-01-01"},
	}
	require.NoError(t, gw.Save(context.Background(), state))
	return newStore(t, gw, Options{}), gw
}

type failingGateway struct {
	storage.Gateway
}

func (failingGateway) Save(context.Context, domain.State) error { return errors.New("disk full") }

func TestLoginLogout(t *testing.T) {
	ctx := context.Background()
	gw := storage.NewMemoryGateway(quietLogger())
	s := newStore(t, gw, Options{})

	_, err := s.Session()
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	_, err = s.Login(ctx, "admin", "   ")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	sess, err := s.Login(ctx, " admin ", "anything")
	require.NoError(t, err)
	assert.Equal(t, domain.Session{Username: "admin", IsLoggedIn: true}, sess)

	reopened := newStore(t, gw, Options{})
	got, err := reopened.Session()
	require.NoError(t, err)
	assert.Equal(t, "admin", got.Username)

	s.Logout(ctx)
	_, err = s.Session()
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestCheckoutScenario(t *testing.T) {
	ctx := context.Background()
	var committed []domain.Bill
	gw := storage.NewMemoryGateway(quietLogger())
	state := domain.NewState()
	state.Medicines = []domain.Medicine{{ID: "MED-P", Name: "Paracetamol", Price: dec("2.50"), Stock: 10}}
	require.NoError(t, gw.Save(ctx, state))
	s := newStore(t, gw, Options{OnCheckout: func(b domain.Bill) { committed = append(committed, b) }})

	for i := 0; i < 3; i++ {
		_, err := s.AddToCart("MED-P")
		require.NoError(t, err)
	}
	cart := s.Cart(decimal.Zero)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.True(t, cart.Total.Equal(dec("7.50")))
	assert.Equal(t, billing.StatusBuilding, cart.Status)
	assert.Equal(t, billing.StatusInvalid, s.Cart(dec("5")).Status)
	ready := s.Cart(dec("10"))
	assert.Equal(t, billing.StatusReady, ready.Status)
	assert.True(t, ready.Balance.Equal(dec("2.50")))

	bill, err := s.Checkout(ctx, dec("10.00"), "")
	require.NoError(t, err)
	assert.Equal(t, "BILL-2024-05-001", bill.BillNo)
	assert.True(t, bill.Balance.Equal(dec("2.50")))
	assert.Equal(t, domain.DefaultCustomerName, bill.CustomerName)
	assert.Equal(t, domain.WalkInCustomerID, bill.CustomerID)
	assert.Len(t, committed, 1)

	assert.Equal(t, billing.StatusEmpty, s.Cart(decimal.Zero).Status)
	med, err := s.Medicine("MED-P")
	require.NoError(t, err)
	assert.Equal(t, 7, med.Stock)

	persisted := storage.NewMemoryGateway(quietLogger())
	persisted.SetRaw(gw.Raw())
	reloaded := persisted.Load(ctx)
	require.Len(t, reloaded.Bills, 1)
	assert.Equal(t, 7, reloaded.Medicines[0].Stock)
}

func TestCheckoutRejectionChangesNothing(t *testing.T) {
	ctx := context.Background()
	var rejected []error
	s, gw := seeded(t)
	s.onReject = func(err error) { rejected = append(rejected, err) }
	saves := gw.Saves()

	_, err := s.Checkout(ctx, dec("100"), "")
	assert.ErrorIs(t, err, billing.ErrEmptyCart)

	_, err = s.AddToCart("MED-B")
	require.NoError(t, err)
	before := s.Snapshot()

	_, err = s.Checkout(ctx, dec("3.99"), "Imran")
	var cashErr *billing.CashError
	require.ErrorAs(t, err, &cashErr)
	assert.True(t, cashErr.Total.Equal(dec("4")))

	assert.Equal(t, before.Medicines, s.Snapshot().Medicines)
	assert.Empty(t, s.Bills(""))
	assert.Len(t, s.Cart(decimal.Zero).Items, 1)
	assert.Equal(t, saves, gw.Saves())
	assert.Len(t, rejected, 2)
}

func TestCartRejectsBeyondStock(t *testing.T) {
	s, _ := seeded(t)

	_, err := s.AddToCart("MED-B")
	require.NoError(t, err)
	_, err = s.AddToCart("MED-B")
	require.NoError(t, err)
	cart, err := s.AddToCart("MED-B")
	var stockErr *billing.StockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 2, stockErr.Available)
	assert.Equal(t, 2, cart.Items[0].Quantity)

	_, err = s.AddToCart("MED-404")
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	cart, err = s.SetCartQuantity("MED-P", 5)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1, "no line for MED-P so the request is ignored")

	_, err = s.AddToCart("MED-P")
	require.NoError(t, err)
	_, err = s.SetCartQuantity("MED-P", 11)
	assert.EqualError(t, err, "only 10 units available")
	cart, err = s.SetCartQuantity("MED-P", 10)
	require.NoError(t, err)
	assert.True(t, cart.Total.Equal(dec("33")))

	cart = s.RemoveFromCart("MED-B")
	assert.Len(t, cart.Items, 1)
	assert.Empty(t, s.ClearCart().Items)
}

func TestCheckoutNumbersSequentially(t *testing.T) {
	ctx := context.Background()
	s, _ := seeded(t)

	for i := 0; i < 3; i++ {
		_, err := s.AddToCart("MED-P")
		require.NoError(t, err)
		_, err = s.Checkout(ctx, dec("5"), "")
		require.NoError(t, err)
	}
	bills := s.Bills("")
	require.Len(t, bills, 3)
	assert.Equal(t, "BILL-2024-05-003", bills[0].BillNo, "newest first")
	assert.Equal(t, "BILL-2024-05-001", bills[2].BillNo)
	assert.Len(t, s.Bills("002"), 1)

	got, err := s.Bill("BILL-2024-05-002")
	require.NoError(t, err)
	assert.Equal(t, "BILL-2024-05-002", got.BillNo)
	_, err = s.Bill("BILL-1999-01-001")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestConcurrentCheckoutsNeverOversell(t *testing.T) {
	ctx := context.Background()
	gw := storage.NewMemoryGateway(quietLogger())
	state := domain.NewState()
	state.Medicines = []domain.Medicine{{ID: "MED-P", Name: "Paracetamol", Price: dec("1"), Stock: 5}}
	require.NoError(t, gw.Save(ctx, state))
	s := newStore(t, gw, Options{})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.AddToCart("MED-P"); err != nil {
				return
			}
			_, _ = s.Checkout(ctx, dec("10"), "")
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	sold := 0
	seen := map[string]bool{}
	for _, b := range snap.Bills {
		assert.False(t, seen[b.BillNo], "duplicate bill number %s", b.BillNo)
		seen[b.BillNo] = true
		for _, item := range b.Items {
			sold += item.Quantity
		}
	}
	assert.Equal(t, 5, sold+snap.Medicines[0].Stock)
	assert.GreaterOrEqual(t, snap.Medicines[0].Stock, 0)
}

func TestSaveFailureKeepsChange(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryGateway(quietLogger())
	s := newStore(t, failingGateway{Gateway: mem}, Options{})

	med, err := s.AddMedicine(ctx, catalog.MedicineDraft{
		Name: "Calpol", Category: "Syrup", Price: dec("3"), Stock: 4, ExpiryDate: "2026-06-30",
	})
	require.NoError(t, err)
	got, err := s.Medicine(med.ID)
	require.NoError(t, err)
	assert.Equal(t, "Calpol", got.Name)
	assert.Nil(t, mem.Raw())
}

func TestCatalogDelegation(t *testing.T) {
	ctx := context.Background()
	s, _ := seeded(t)

	_, err := s.AddMedicine(ctx, catalog.MedicineDraft{Name: ""})
	assert.ErrorIs(t, err, catalog.ErrInvalid)

	sup, err := s.AddSupplier(ctx, catalog.SupplierDraft{Name: "Getz", Phone: "021"})
	require.NoError(t, err)
	assert.Equal(t, "Getz", s.SupplierName(sup.ID))
	require.NoError(t, s.DeleteSupplier(ctx, sup.ID))
	assert.Equal(t, domain.UnknownSupplier, s.SupplierName(sup.ID))

	c, err := s.AddCustomer(ctx, catalog.CustomerDraft{Name: "Sana", Phone: "0333"})
	require.NoError(t, err)
	_, err = s.UpdateCustomer(ctx, c.ID, catalog.CustomerDraft{Name: "Sana K", Phone: "0333"})
	require.NoError(t, err)
	assert.Equal(t, "Sana K", s.Customers()[0].Name)

	_, err = s.UpdateMedicine(ctx, "MED-404", catalog.MedicineDraft{})
	assert.ErrorIs(t, err, catalog.ErrInvalid)
	assert.ErrorIs(t, s.DeleteMedicine(ctx, "MED-404"), catalog.ErrNotFound)
	require.NoError(t, s.DeleteMedicine(ctx, "MED-B"))
	assert.Len(t, s.Medicines(""), 1)
	assert.Len(t, s.Sellable("para", 0), 1)
}

func TestImportMedicinesSkipsDuplicatesAndInvalid(t *testing.T) {
	ctx := context.Background()
	s, _ := seeded(t)
	var skipped int

	added := s.ImportMedicines(ctx, []catalog.MedicineDraft{
		{Name: "paracetamol", Category: "Tablet", Price: dec("1"), Stock: 1, ExpiryDate: "2026-01-01"},
		{Name: "Amoxil", Category: "Capsule", Price: dec("6"), Stock: 30, ExpiryDate: "2026-01-01"},
		{Name: "Amoxil", Category: "Capsule", Price: dec("6"), Stock: 30, ExpiryDate: "2026-01-01"},
		{Name: "Broken", Category: "Capsule", Price: dec("-1"), ExpiryDate: "2026-01-01"},
	}, func(catalog.MedicineDraft, error) { skipped++ })

	assert.Equal(t, 1, added)
	assert.Equal(t, 1, skipped)
	assert.Len(t, s.Medicines(""), 3)
}

func TestResetClearsEverything(t *testing.T) {
	ctx := context.Background()
	s, gw := seeded(t)
	_, err := s.AddToCart("MED-P")
	require.NoError(t, err)

	require.NoError(t, s.Reset(ctx))
	assert.Empty(t, s.Snapshot().Medicines)
	assert.Empty(t, s.Cart(decimal.Zero).Items)
	assert.Nil(t, gw.Raw())
}

func TestSnapshotIsIsolated(t *testing.T) {
	s, _ := seeded(t)
	snap := s.Snapshot()
	snap.Medicines[0].Stock = 0
	med, err := s.Medicine("MED-P")
	require.NoError(t, err)
	assert.Equal(t, 10, med.Stock)
}
