package scoring

import (
	"math"

	"github.com/jasho/finance-service/internal/models"
)

// DepositStability scores the consistency of monthly deposit income in
// [0, 1] using the coefficient of variation of per-month deposit totals,
// grouped by UTC calendar month. Sparse history short-circuits to a
// neutral value rather than drawing conclusions from too few points:
// fewer than 3 deposits returns 0.5, fewer than 2 distinct months 0.6.
func DepositStability(txs []models.Transaction) float64 {
	monthly := make(map[string]int64)
	var deposits int
	for _, tx := range txs {
		if tx.Kind != models.KindDeposit {
			continue
		}
		deposits++
		key := tx.CreatedAt.UTC().Format("2006-01")
		monthly[key] += tx.Amount
	}

	if deposits < 3 {
		return 0.5
	}
	if len(monthly) < 2 {
		return 0.6
	}

	var sum float64
	for _, total := range monthly {
		sum += float64(total)
	}
	mean := sum / float64(len(monthly))

	var variance float64
	for _, total := range monthly {
		d := float64(total) - mean
		variance += d * d
	}
	variance /= float64(len(monthly))

	// Mean of zero means the series carries no usable signal; treat as
	// maximally unstable.
	coeff := 1.0
	if mean != 0 {
		coeff = math.Sqrt(variance) / mean
	}
	return clamp01(1 - coeff)
}
