package reports

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"khanmedical/m/domain"
)

const (
	BillsSheet = "Bills"
	ItemsSheet = "Items"
	StockSheet = "Stock"
)

// WriteSalesWorkbook writes every bill and every bill line as an .xlsx file.
func WriteSalesWorkbook(w io.Writer, bills []domain.Bill) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), BillsSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(ItemsSheet); err != nil {
		return err
	}

	billRows := [][]interface{}{{"bill_no", "date", "customer_id", "customer_name", "items", "total", "cash_received", "balance"}}
	itemRows := [][]interface{}{{"bill_no", "medicine_id", "name", "quantity", "unit_price", "subtotal"}}
	for _, b := range bills {
		billRows = append(billRows, []interface{}{
			b.BillNo,
			b.Date.Format(time.RFC3339),
			b.CustomerID,
			b.CustomerName,
			len(b.Items),
			b.Total.InexactFloat64(),
			b.CashReceived.InexactFloat64(),
			b.Balance.InexactFloat64(),
		})
		for _, item := range b.Items {
			itemRows = append(itemRows, []interface{}{
				b.BillNo,
				item.MedicineID,
				item.Name,
				item.Quantity,
				item.UnitPrice.InexactFloat64(),
				item.Subtotal.InexactFloat64(),
			})
		}
	}
	if err := writeRows(f, BillsSheet, billRows); err != nil {
		return err
	}
	if err := writeRows(f, ItemsSheet, itemRows); err != nil {
		return err
	}
	return f.Write(w)
}

// WriteStockWorkbook writes the medicine list with resolved supplier names.
func WriteStockWorkbook(w io.Writer, medicines []domain.Medicine, suppliers []domain.Supplier, now time.Time) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), StockSheet); err != nil {
		return err
	}
	rows := [][]interface{}{{"id", "name", "generic_name", "category", "price", "cost_price", "stock", "status", "expiry_date", "near_expiry", "supplier"}}
	for _, m := range medicines {
		rows = append(rows, []interface{}{
			m.ID,
			m.Name,
			m.GenericName,
			m.Category,
			m.Price.InexactFloat64(),
			m.CostPrice.InexactFloat64(),
			m.Stock,
			string(m.Level()),
			m.ExpiryDate,
			m.NearExpiry(now),
			domain.SupplierName(suppliers, m.SupplierID),
		})
	}
	if err := writeRows(f, StockSheet, rows); err != nil {
		return err
	}
	return f.Write(w)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
