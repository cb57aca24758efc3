package models

import "time"

// FactorContribution explains one weighted signal of a credit score.
// Weight is the factor's fixed share of the total score; Value is the
// normalized signal clamped to [0, 1].
type FactorContribution struct {
	Key    string  `json:"key"`
	Weight float64 `json:"weight"`
	Value  float64 `json:"value"`
	Note   string  `json:"note,omitempty"`
}

// CreditScoreResult is the outcome of one scoring run. Score is always
// within [300, 850] and Factors always holds the five fixed factors in
// order: income, utilization, payment_history, stability, debt.
type CreditScoreResult struct {
	UserID     string               `json:"user_id"`
	Score      int                  `json:"score"`
	Factors    []FactorContribution `json:"factors"`
	ComputedAt time.Time            `json:"computed_at"`
}

// ScoreSnapshot is a persisted point-in-time credit score, kept for the
// score history endpoint and the scheduled refresh job.
type ScoreSnapshot struct {
	ID         int64     `json:"id"`
	UserID     string    `json:"user_id"`
	Score      int       `json:"score"`
	ComputedAt time.Time `json:"computed_at"`
}
