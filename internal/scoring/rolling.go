package scoring

import (
	"time"

	"github.com/jasho/finance-service/internal/models"
)

const (
	trailingWindowDays = 180
	// The divisor is a fixed 6 months regardless of how much history
	// actually falls inside the window. Users with short history get an
	// artificially small average; changing this needs a product decision
	// since downstream predictions depend on the current behavior.
	trailingWindowMonths = 6
)

// TrailingMonthlyAverage sums amounts of matching transactions created in
// the 180 days before now and divides by the 6-month normalization
// baseline, yielding a monthly average in minor units. The result is an
// intermediate ratio and may be fractional; callers round when producing
// final amounts. No matching transactions yields 0.
func TrailingMonthlyAverage(txs []models.Transaction, now time.Time, kinds ...models.TransactionKind) float64 {
	cutoff := now.AddDate(0, 0, -trailingWindowDays)
	var total int64
	for _, tx := range txs {
		if tx.CreatedAt.Before(cutoff) || tx.CreatedAt.After(now) {
			continue
		}
		for _, k := range kinds {
			if tx.Kind == k {
				total += tx.Amount
				break
			}
		}
	}
	return float64(total) / trailingWindowMonths
}
