package scoring

import (
	"math"
	"time"

	"github.com/jasho/finance-service/internal/models"
)

// Factor weights. These are fixed product constants and must sum to
// exactly 1.0 so the composite stays in [0, 1] without post-hoc clamping.
const (
	weightIncome         = 0.25
	weightUtilization    = 0.30
	weightPaymentHistory = 0.30
	weightStability      = 0.10
	weightDebt           = 0.05
)

const (
	scoreFloor = 300
	scoreSpan  = 550
	// Income and outstanding debt normalize against 1,000,000 minor
	// units (KES 10,000) before clamping.
	amountNormalizer = 1_000_000
)

// ComputeCreditScore derives a creditworthiness score in [300, 850] from a
// user's transaction snapshot and outstanding loan total (minor units,
// 0 when the user has no loans). The result carries the five weighted
// factors, in fixed order, that explain the score. The computation is
// total: empty history yields a well-defined score built from the
// documented defaults.
func ComputeCreditScore(userID string, txs []models.Transaction, otherLoansOutstanding int64, now time.Time) models.CreditScoreResult {
	income := SumByKind(txs, models.KindDeposit)
	expenses := SumByKind(txs, models.KindWithdrawal, models.KindPayment)

	utilization := 0.0
	if expenses > 0 {
		denom := income
		if denom < 1 {
			denom = 1
		}
		utilization = float64(expenses) / float64(denom)
	}

	factors := []models.FactorContribution{
		{
			Key:    "income",
			Weight: weightIncome,
			Value:  clamp01(float64(income) / amountNormalizer),
			Note:   "total deposits relative to baseline",
		},
		{
			Key:    "utilization",
			Weight: weightUtilization,
			Value:  clamp01(1 - utilization),
			Note:   "share of income left after spending",
		},
		{
			Key:    "payment_history",
			Weight: weightPaymentHistory,
			Value:  PaymentPunctuality(txs),
			Note:   "fraction of payments settled on time",
		},
		{
			Key:    "stability",
			Weight: weightStability,
			Value:  DepositStability(txs),
			Note:   "consistency of monthly deposit income",
		},
		{
			Key:    "debt",
			Weight: weightDebt,
			Value:  clamp01(1 - float64(otherLoansOutstanding)/amountNormalizer),
			Note:   "outstanding loans relative to baseline",
		},
	}

	var weighted float64
	for _, f := range factors {
		weighted += f.Weight * f.Value
	}

	return models.CreditScoreResult{
		UserID:     userID,
		Score:      int(math.Round(scoreFloor + scoreSpan*weighted)),
		Factors:    factors,
		ComputedAt: now,
	}
}
