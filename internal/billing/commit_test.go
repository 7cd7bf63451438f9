package billing

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"khanmedical/m/domain"
)

func TestCommitParacetamolScenario(t *testing.T) {
	med := paracetamol()
	other := domain.Medicine{ID: "MED-2", Name: "Cough Syrup", Price: dec("5"), Stock: 4}
	meds := []domain.Medicine{med, other}

	cart := Cart{}
	var err error
	for i := 0; i < 3; i++ {
		cart, err = Add(cart, med)
		require.NoError(t, err)
	}

	now := time.Date(2024, time.May, 20, 14, 30, 0, 0, time.UTC)
	bill, updated, err := Commit(CommitInput{
		Cart:         cart,
		CashReceived: dec("10.00"),
		CustomerName: "Ayesha",
		Bills:        bills("BILL-2024-05-001"),
		Medicines:    meds,
		Now:          now,
	})
	require.NoError(t, err)

	assert.Equal(t, "BILL-2024-05-002", bill.BillNo)
	assert.Equal(t, now, bill.Date)
	assert.Equal(t, domain.WalkInCustomerID, bill.CustomerID)
	assert.Equal(t, "Ayesha", bill.CustomerName)
	assert.Equal(t, "7.50", bill.Total.StringFixed(2))
	assert.Equal(t, "10.00", bill.CashReceived.StringFixed(2))
	assert.Equal(t, "2.50", bill.Balance.StringFixed(2))
	require.Len(t, bill.Items, 1)
	assert.Equal(t, 3, bill.Items[0].Quantity)

	require.Len(t, updated, 2)
	assert.Equal(t, 7, updated[0].Stock)
	assert.Equal(t, other, updated[1])
	assert.Equal(t, 10, meds[0].Stock, "input medicines must not be mutated")
}

func TestCommitDefaultsCustomerName(t *testing.T) {
	med := paracetamol()
	cart, err := Add(Cart{}, med)
	require.NoError(t, err)

	bill, _, err := Commit(CommitInput{Cart: cart, CashReceived: dec("3"), CustomerName: "   ", Medicines: []domain.Medicine{med}, Now: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCustomerName, bill.CustomerName)
}

func TestCommitRejections(t *testing.T) {
	med := paracetamol()
	cart, err := Add(Cart{}, med)
	require.NoError(t, err)
	cart, err = SetQuantity(cart, []domain.Medicine{med}, med.ID, 4)
	require.NoError(t, err)

	t.Run("empty cart", func(t *testing.T) {
		_, updated, err := Commit(CommitInput{CashReceived: dec("100"), Medicines: []domain.Medicine{med}, Now: time.Now()})
		assert.ErrorIs(t, err, ErrEmptyCart)
		assert.ErrorIs(t, err, ErrValidation)
		assert.Nil(t, updated)
	})

	t.Run("insufficient cash", func(t *testing.T) {
		_, updated, err := Commit(CommitInput{Cart: cart, CashReceived: dec("9.99"), Medicines: []domain.Medicine{med}, Now: time.Now()})
		require.ErrorIs(t, err, ErrInsufficientCash)
		var cashErr *CashError
		require.True(t, errors.As(err, &cashErr))
		assert.Equal(t, "10.00", cashErr.Total.StringFixed(2))
		assert.Nil(t, updated)
	})

	t.Run("stock changed since the line was added", func(t *testing.T) {
		shrunk := med
		shrunk.Stock = 3
		meds := []domain.Medicine{shrunk}
		_, updated, err := Commit(CommitInput{Cart: cart, CashReceived: dec("10"), Medicines: meds, Now: time.Now()})
		require.ErrorIs(t, err, ErrInsufficientStock)
		var stockErr *StockError
		require.True(t, errors.As(err, &stockErr))
		assert.Equal(t, 3, stockErr.Available)
		assert.Nil(t, updated)
		assert.Equal(t, 3, meds[0].Stock)
	})
}

func TestCommitToleratesDeletedMedicine(t *testing.T) {
	med := paracetamol()
	cart, err := Add(Cart{}, med)
	require.NoError(t, err)

	remaining := []domain.Medicine{{ID: "MED-9", Name: "Other", Price: dec("1"), Stock: 2}}
	bill, updated, err := Commit(CommitInput{Cart: cart, CashReceived: dec("2.50"), Medicines: remaining, Now: time.Now()})
	require.NoError(t, err)
	assert.True(t, bill.Balance.IsZero())
	assert.Equal(t, remaining, updated)
}
