package scoring

import (
	"fmt"
	"math"
	"time"

	"github.com/jasho/finance-service/internal/models"
)

// Next-month prediction adds a 5% cushion on top of the trailing monthly
// average expense.
const predictionGrowth = 1.05

// ComputeFinancialInsights derives spending insights from a user's
// transaction snapshot: an income/expense/savings summary, per-category
// budget suggestions, and a predicted spend figure for the next month.
// Like the score computation it is total over any snapshot, including an
// empty one.
func ComputeFinancialInsights(userID string, txs []models.Transaction, now time.Time) models.FinancialInsightResult {
	income := SumByKind(txs, models.KindDeposit)
	expenses := SumByKind(txs, models.KindWithdrawal, models.KindPayment)
	savings := income - expenses
	if savings < 0 {
		savings = 0
	}

	monthlyAvgExpense := TrailingMonthlyAverage(txs, now, models.KindWithdrawal, models.KindPayment)
	predicted := int64(math.Round(monthlyAvgExpense * predictionGrowth))
	if predicted < 0 {
		predicted = 0
	}

	insights := []models.InsightEntry{
		{
			Title:  "Savings",
			Detail: fmt.Sprintf("You have saved %s overall.", FormatAmount(savings)),
			Metric: int64Ptr(savings),
		},
		{
			Title:  "Income",
			Detail: fmt.Sprintf("Your total income is %s.", FormatAmount(income)),
			Metric: int64Ptr(income),
		},
		{
			Title:  "Expenses",
			Detail: fmt.Sprintf("Your total spending is %s.", FormatAmount(expenses)),
			Metric: int64Ptr(expenses),
		},
	}

	return models.FinancialInsightResult{
		UserID:     userID,
		Insights:   insights,
		Budgets:    BudgetSuggestions(txs),
		Predicted:  []models.PredictedNeed{{Period: "next_month", Amount: predicted}},
		ComputedAt: now,
	}
}

// FormatAmount renders a minor-unit amount as major-unit KES with two
// decimals, using integer arithmetic only.
func FormatAmount(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%sKES %d.%02d", sign, minor/100, minor%100)
}

func int64Ptr(v int64) *int64 {
	return &v
}
