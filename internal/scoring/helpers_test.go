package scoring

import (
	"time"

	"github.com/jasho/finance-service/internal/models"
)

func mkTx(kind models.TransactionKind, amount int64, createdAt time.Time) models.Transaction {
	return models.Transaction{
		ID:        "tx-test",
		UserID:    "user-1",
		Kind:      kind,
		Amount:    amount,
		Currency:  "KES",
		CreatedAt: createdAt,
	}
}

func mkTxMeta(kind models.TransactionKind, amount int64, createdAt time.Time, meta models.Metadata) models.Transaction {
	tx := mkTx(kind, amount, createdAt)
	tx.Metadata = meta
	return tx
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 12, 0, 0, 0, time.UTC)
}
