// Package scoring implements the credit scoring and financial insight
// engine. Every function is a pure computation over an in-memory
// transaction snapshot plus an explicit "now"; nothing here performs I/O
// or holds state, so concurrent calls need no coordination.
package scoring

import "github.com/jasho/finance-service/internal/models"

// SumByKind returns the sum of amounts over transactions whose kind is in
// kinds, in minor currency units. An empty or non-matching input sums to 0.
// int64 gives headroom far beyond realistic minor-unit totals. Negative
// amounts violate the ledger contract and are summed as-is rather than
// clamped, so an upstream data-integrity bug surfaces instead of being
// masked.
func SumByKind(txs []models.Transaction, kinds ...models.TransactionKind) int64 {
	var total int64
	for _, tx := range txs {
		for _, k := range kinds {
			if tx.Kind == k {
				total += tx.Amount
				break
			}
		}
	}
	return total
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
