package scoring

import (
	"math"
	"sort"

	"github.com/jasho/finance-service/internal/models"
)

const (
	budgetLimitRatio = 0.9
	maxBudgets       = 5
)

// BudgetSuggestions groups spend across all transactions by the category
// metadata field (defaulting to "misc" when absent) and proposes a cap of
// 90% of historical spend for the top 5 categories by total. Categories
// are ordered by descending total; equal totals order by ascending
// category label so the output is reproducible.
func BudgetSuggestions(txs []models.Transaction) []models.BudgetSuggestion {
	totals := make(map[string]int64)
	for _, tx := range txs {
		category, ok := tx.Metadata.StringVal(metaCategory)
		if !ok || category == "" {
			category = "misc"
		}
		totals[category] += tx.Amount
	}

	categories := make([]string, 0, len(totals))
	for category := range totals {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		if totals[categories[i]] != totals[categories[j]] {
			return totals[categories[i]] > totals[categories[j]]
		}
		return categories[i] < categories[j]
	})

	if len(categories) > maxBudgets {
		categories = categories[:maxBudgets]
	}

	suggestions := make([]models.BudgetSuggestion, 0, len(categories))
	for _, category := range categories {
		suggestions = append(suggestions, models.BudgetSuggestion{
			Category: category,
			Limit:    int64(math.Round(float64(totals[category]) * budgetLimitRatio)),
		})
	}
	return suggestions
}
