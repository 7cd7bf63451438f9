package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"khanmedical/m/internal/catalog"
)

// Columns is the expected CSV header.
var Columns = []string{"name", "generic_name", "category", "price", "cost_price", "stock", "expiry_date", "supplier_id"}

// Importer adds medicine drafts, ignoring names already in the catalog.
type Importer interface {
	ImportMedicines(ctx context.Context, drafts []catalog.MedicineDraft, skip func(catalog.MedicineDraft, error)) int
}

// LoadMedicines ingests the CSV at csvPath into the catalog and returns the
// number of medicines added. Unreadable or invalid rows are logged and skipped.
func LoadMedicines(ctx context.Context, store Importer, csvPath string, logger *slog.Logger) (int, error) {
	file, err := os.Open(csvPath)
	if err != nil {
		return 0, fmt.Errorf("open medicine catalog %s: %w", csvPath, err)
	}
	defer file.Close()

	drafts, err := ReadMedicines(file, logger)
	if err != nil {
		return 0, err
	}
	added := store.ImportMedicines(ctx, drafts, func(d catalog.MedicineDraft, err error) {
		logger.Warn("skipping medicine row", slog.String("name", d.Name), slog.Any("error", err))
	})
	logger.Info("seeded medicine catalog", slog.Int("rows", added), slog.String("path", csvPath))
	return added, nil
}

// ReadMedicines parses catalog rows into drafts. Columns are matched by
// header name, so their order is free.
func ReadMedicines(r io.Reader, logger *slog.Logger) ([]catalog.MedicineDraft, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read medicine header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range Columns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("medicine header is missing column %q", col)
		}
	}

	var drafts []catalog.MedicineDraft
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			logger.Warn("unable to read medicine row", slog.Int("line", line), slog.Any("error", err))
			continue
		}
		field := func(col string) string {
			if i := index[col]; i < len(record) {
				return strings.TrimSpace(record[i])
			}
			return ""
		}
		if field("name") == "" {
			continue
		}
		draft, err := rowDraft(field)
		if err != nil {
			logger.Warn("unable to parse medicine row", slog.Int("line", line), slog.Any("error", err))
			continue
		}
		drafts = append(drafts, draft)
	}
	return drafts, nil
}

func rowDraft(field func(string) string) (catalog.MedicineDraft, error) {
	price, err := decimal.NewFromString(field("price"))
	if err != nil {
		return catalog.MedicineDraft{}, fmt.Errorf("price: %w", err)
	}
	cost := decimal.Zero
	if raw := field("cost_price"); raw != "" {
		if cost, err = decimal.NewFromString(raw); err != nil {
			return catalog.MedicineDraft{}, fmt.Errorf("cost_price: %w", err)
		}
	}
	stock, err := strconv.Atoi(field("stock"))
	if err != nil {
		return catalog.MedicineDraft{}, fmt.Errorf("stock: %w", err)
	}
	return catalog.MedicineDraft{
		Name:        field("name"),
		GenericName: field("generic_name"),
		Category:    field("category"),
		Price:       price,
		CostPrice:   cost,
		Stock:       stock,
		ExpiryDate:  field("expiry_date"),
		SupplierID:  field("supplier_id"),
	}, nil
}
