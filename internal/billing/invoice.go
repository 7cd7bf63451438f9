package billing

import (
	"fmt"
	"strings"
	"time"

	"khanmedical/m/domain"
)

// BillPrefix returns the year-month bucket prefix, e.g. "BILL-2024-05-".
func BillPrefix(now time.Time) string {
	return fmt.Sprintf("BILL-%d-%02d-", now.Year(), int(now.Month()))
}

// NextBillNo derives the next invoice number for the month of now by
// counting the bills already issued under that month's prefix.
func NextBillNo(bills []domain.Bill, now time.Time) string {
	prefix := BillPrefix(now)
	count := 0
	for _, b := range bills {
		if strings.HasPrefix(b.BillNo, prefix) {
			count++
		}
	}
	return fmt.Sprintf("%s%03d", prefix, count+1)
}
