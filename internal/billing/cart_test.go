package billing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"khanmedical/m/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func paracetamol() domain.Medicine {
	return domain.Medicine{ID: "MED-1", Name: "Paracetamol", Category: "Tablet", Price: dec("2.50"), CostPrice: dec("1.20"), Stock: 10, ExpiryDate: "2027-01-31", SupplierID: "SUP-1"}
}

func TestAddIncrementsExistingLine(t *testing.T) {
	med := paracetamol()
	cart := Cart{}
	var err error
	for i := 0; i < 3; i++ {
		cart, err = Add(cart, med)
		require.NoError(t, err)
	}

	require.Len(t, cart.Lines, 1)
	line := cart.Lines[0]
	assert.Equal(t, 3, line.Quantity)
	assert.Equal(t, "Paracetamol", line.Name)
	assert.True(t, line.UnitPrice.Equal(dec("2.50")))
	assert.Equal(t, "7.50", line.Subtotal.StringFixed(2))
	assert.Equal(t, "7.50", cart.Total().StringFixed(2))
}

func TestAddRejectsBeyondStock(t *testing.T) {
	med := paracetamol()
	med.Stock = 2
	cart, err := Add(Cart{}, med)
	require.NoError(t, err)
	cart, err = Add(cart, med)
	require.NoError(t, err)

	next, err := Add(cart, med)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.ErrorIs(t, err, ErrValidation)
	var stockErr *StockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 2, stockErr.Available)
	assert.Equal(t, 3, stockErr.Requested)
	assert.Equal(t, cart, next)
	assert.Equal(t, 2, next.Lines[0].Quantity)
}

func TestAddRejectsOutOfStockMedicine(t *testing.T) {
	med := paracetamol()
	med.Stock = 0
	cart, err := Add(Cart{}, med)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.True(t, cart.IsEmpty())
}

func TestAddDoesNotMutateInput(t *testing.T) {
	med := paracetamol()
	first, err := Add(Cart{}, med)
	require.NoError(t, err)
	second, err := Add(first, med)
	require.NoError(t, err)

	assert.Equal(t, 1, first.Lines[0].Quantity)
	assert.Equal(t, 2, second.Lines[0].Quantity)
}

func TestSetQuantity(t *testing.T) {
	med := paracetamol()
	meds := []domain.Medicine{med}
	cart, err := Add(Cart{}, med)
	require.NoError(t, err)

	t.Run("replaces quantity and subtotal", func(t *testing.T) {
		out, err := SetQuantity(cart, meds, med.ID, 4)
		require.NoError(t, err)
		assert.Equal(t, 4, out.Lines[0].Quantity)
		assert.Equal(t, "10.00", out.Lines[0].Subtotal.StringFixed(2))
	})

	t.Run("rejects more than stock", func(t *testing.T) {
		out, err := SetQuantity(cart, meds, med.ID, 11)
		require.Error(t, err)
		assert.Equal(t, "only 10 units available", err.Error())
		assert.Equal(t, cart, out)
	})

	t.Run("ignores non-positive quantity", func(t *testing.T) {
		for _, qty := range []int{0, -3} {
			out, err := SetQuantity(cart, meds, med.ID, qty)
			require.NoError(t, err)
			assert.Equal(t, cart, out)
		}
	})

	t.Run("ignores unknown medicine", func(t *testing.T) {
		out, err := SetQuantity(cart, meds, "MED-404", 2)
		require.NoError(t, err)
		assert.Equal(t, cart, out)
	})

	t.Run("ignores medicine without a line", func(t *testing.T) {
		other := domain.Medicine{ID: "MED-2", Name: "Ibuprofen", Price: dec("4"), Stock: 5}
		out, err := SetQuantity(cart, append(meds, other), other.ID, 2)
		require.NoError(t, err)
		assert.Equal(t, cart, out)
	})
}

func TestRemove(t *testing.T) {
	a := paracetamol()
	b := domain.Medicine{ID: "MED-2", Name: "Ibuprofen", Price: dec("4.25"), Stock: 5}
	cart, err := Add(Cart{}, a)
	require.NoError(t, err)
	cart, err = Add(cart, b)
	require.NoError(t, err)

	out := Remove(cart, a.ID)
	require.Len(t, out.Lines, 1)
	assert.Equal(t, b.ID, out.Lines[0].MedicineID)
	assert.Equal(t, "4.25", out.Total().StringFixed(2))
	assert.Len(t, cart.Lines, 2)

	assert.Equal(t, out, Remove(out, "MED-404"))
}

func TestTotalMatchesLineProducts(t *testing.T) {
	meds := []domain.Medicine{
		{ID: "A", Name: "A", Price: dec("0.10"), Stock: 100},
		{ID: "B", Name: "B", Price: dec("0.20"), Stock: 100},
		{ID: "C", Name: "C", Price: dec("19.99"), Stock: 100},
	}
	cart := Cart{}
	var err error
	for i := 0; i < 30; i++ {
		cart, err = Add(cart, meds[i%len(meds)])
		require.NoError(t, err)
	}
	cart, err = SetQuantity(cart, meds, "C", 7)
	require.NoError(t, err)

	want := decimal.Zero
	for _, line := range cart.Lines {
		want = want.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
		assert.True(t, line.Quantity > 0)
		med, _ := domain.FindMedicine(meds, line.MedicineID)
		assert.LessOrEqual(t, line.Quantity, med.Stock)
	}
	assert.True(t, cart.Total().Equal(want), "total %s want %s", cart.Total(), want)
	assert.Equal(t, "142.93", cart.Total().StringFixed(2))
}

func TestBalance(t *testing.T) {
	assert.Equal(t, "2.50", Balance(dec("10"), dec("7.50")).StringFixed(2))
	assert.True(t, Balance(dec("5"), dec("7.50")).IsZero())
	assert.True(t, Balance(dec("7.5"), dec("7.50")).IsZero())
}

func TestStatus(t *testing.T) {
	med := paracetamol()
	assert.Equal(t, StatusEmpty, Cart{}.Status(dec("5")))

	cart, err := Add(Cart{}, med)
	require.NoError(t, err)
	assert.Equal(t, StatusBuilding, cart.Status(decimal.Zero))
	assert.Equal(t, StatusInvalid, cart.Status(dec("1")))
	assert.Equal(t, StatusReady, cart.Status(dec("2.50")))
}

func TestStatusZeroTotalIsReady(t *testing.T) {
	free := paracetamol()
	free.Price = decimal.Zero

	cart, err := Add(Cart{}, free)
	require.NoError(t, err)
	assert.Equal(t, StatusReady, cart.Status(decimal.Zero))
}
