package scoring

import "github.com/jasho/finance-service/internal/models"

// Metadata keys written by the ledger.
const (
	metaDueDate  = "dueDate"
	metaPaidAt   = "paidAt"
	metaCategory = "category"
)

// PaymentPunctuality returns the fraction of payment transactions settled
// on or before their due date, in [0, 1]. A missing or unparseable dueDate
// counts as the zero time; a missing paidAt defaults to the transaction's
// own created-at. With no payment history at all the user gets the
// benefit of the doubt and the result is 1.0.
func PaymentPunctuality(txs []models.Transaction) float64 {
	var total, onTime int
	for _, tx := range txs {
		if tx.Kind != models.KindPayment {
			continue
		}
		total++
		due, _ := tx.Metadata.TimeVal(metaDueDate)
		paid, ok := tx.Metadata.TimeVal(metaPaidAt)
		if !ok {
			paid = tx.CreatedAt
		}
		if !paid.After(due) {
			onTime++
		}
	}
	if total == 0 {
		return 1.0
	}
	return float64(onTime) / float64(total)
}
