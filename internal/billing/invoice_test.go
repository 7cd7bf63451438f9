package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"khanmedical/m/domain"
)

func bills(numbers ...string) []domain.Bill {
	out := make([]domain.Bill, len(numbers))
	for i, n := range numbers {
		out[i] = domain.Bill{BillNo: n}
	}
	return out
}

func TestNextBillNo(t *testing.T) {
	may := time.Date(2024, time.May, 17, 10, 0, 0, 0, time.UTC)
	june := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		bills []domain.Bill
		now   time.Time
		want  string
	}{
		{"first ever", nil, may, "BILL-2024-05-001"},
		{"continues month", bills("BILL-2024-05-001", "BILL-2024-05-002"), may, "BILL-2024-05-003"},
		{"new month resets", bills("BILL-2024-05-001", "BILL-2024-05-002"), june, "BILL-2024-06-001"},
		{"ignores other years", bills("BILL-2023-05-001", "BILL-2024-05-001"), may, "BILL-2024-05-002"},
		{"pads past ten", bills("BILL-2024-05-001", "BILL-2024-05-002", "BILL-2024-05-003", "BILL-2024-05-004",
			"BILL-2024-05-005", "BILL-2024-05-006", "BILL-2024-05-007", "BILL-2024-05-008", "BILL-2024-05-009"), may, "BILL-2024-05-010"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextBillNo(tt.bills, tt.now))
		})
	}
}

func TestNextBillNoIsStrictlyIncreasing(t *testing.T) {
	now := time.Date(2024, time.May, 3, 0, 0, 0, 0, time.UTC)
	var issued []domain.Bill
	seen := map[string]bool{}
	prev := ""
	for i := 0; i < 25; i++ {
		no := NextBillNo(issued, now)
		assert.False(t, seen[no], "duplicate %s", no)
		assert.Greater(t, no, prev)
		seen[no] = true
		prev = no
		issued = append([]domain.Bill{{BillNo: no}}, issued...)
	}
}
