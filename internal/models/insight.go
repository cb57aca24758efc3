package models

import "time"

// InsightEntry is one human-readable financial observation. Metric, when
// present, carries the underlying amount in minor units.
type InsightEntry struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Metric *int64 `json:"metric,omitempty"`
}

// BudgetSuggestion proposes a per-category spending cap in minor units,
// derived as 90% of historical spend in that category.
type BudgetSuggestion struct {
	Category string `json:"category"`
	Limit    int64  `json:"limit"`
}

// PredictedNeed is a forecast of spend for an upcoming period, in minor
// units. Amount is never negative.
type PredictedNeed struct {
	Period string `json:"period"`
	Amount int64  `json:"amount"`
}

// FinancialInsightResult is the outcome of one insight run: three fixed
// entries (savings, income, expenses), up to five budget suggestions
// ordered by descending spend, and a single next-month spend prediction.
type FinancialInsightResult struct {
	UserID     string             `json:"user_id"`
	Insights   []InsightEntry     `json:"insights"`
	Budgets    []BudgetSuggestion `json:"budgets"`
	Predicted  []PredictedNeed    `json:"predicted_needs"`
	ComputedAt time.Time          `json:"computed_at"`
}
