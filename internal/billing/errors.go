package billing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrValidation matches every checkout rejection.
	ErrValidation = errors.New("billing: validation failed")
	// ErrEmptyCart is returned when committing a cart without lines.
	ErrEmptyCart = fmt.Errorf("%w: cart is empty", ErrValidation)
	// ErrInsufficientStock matches every *StockError.
	ErrInsufficientStock = fmt.Errorf("%w: insufficient stock", ErrValidation)
	// ErrInsufficientCash matches every *CashError.
	ErrInsufficientCash = fmt.Errorf("%w: received amount is less than total", ErrValidation)
)

// StockError reports a quantity request beyond the medicine's remaining stock.
type StockError struct {
	MedicineID string
	Name       string
	Requested  int
	Available  int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("only %d units available", e.Available)
}

func (e *StockError) Is(target error) bool {
	return target == ErrInsufficientStock || target == ErrValidation
}

// CashError reports a checkout where the tendered cash does not cover the total.
type CashError struct {
	Total    decimal.Decimal
	Received decimal.Decimal
}

func (e *CashError) Error() string {
	return fmt.Sprintf("received amount %s is less than total %s", e.Received.StringFixed(2), e.Total.StringFixed(2))
}

func (e *CashError) Is(target error) bool {
	return target == ErrInsufficientCash || target == ErrValidation
}
