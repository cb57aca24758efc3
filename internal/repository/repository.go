package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jasho/finance-service/internal/models"
)

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(user *models.User) error {
	query := `
		INSERT INTO jasho.users (email, username, password_hash, created_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, user.Email, user.Username, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, email, username, password_hash, created_at
		FROM jasho.users
		WHERE email = $1`
	err := r.db.QueryRow(query, email).
		Scan(&user.ID, &user.Email, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// FindUserByID retrieves a user by id
func (r *Repository) FindUserByID(userID string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, email, username, password_hash, created_at
		FROM jasho.users
		WHERE id = $1`
	err := r.db.QueryRow(query, userID).
		Scan(&user.ID, &user.Email, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// ListTransactionsByUser returns the user's ledger transactions ordered by
// creation time. Metadata is decoded from JSONB; a NULL column yields nil.
func (r *Repository) ListTransactionsByUser(userID string) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, kind, amount, currency, metadata, external_ref, created_at
		FROM jasho.transactions
		WHERE user_id = $1
		ORDER BY created_at ASC`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txs []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		var metaRaw []byte
		var externalRef sql.NullString
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.Kind, &tx.Amount, &tx.Currency,
			&metaRaw, &externalRef, &tx.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		if len(metaRaw) > 0 {
			if err := json.Unmarshal(metaRaw, &tx.Metadata); err != nil {
				return nil, fmt.Errorf("failed to decode transaction metadata: %w", err)
			}
		}
		tx.ExternalRef = externalRef.String
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return txs, nil
}

// OutstandingLoanTotal returns the sum of the user's open loan balances in
// minor units, 0 when the user has no open loans.
func (r *Repository) OutstandingLoanTotal(userID string) (int64, error) {
	var total int64
	query := `
		SELECT COALESCE(SUM(outstanding), 0)
		FROM jasho.loans
		WHERE user_id = $1 AND status = 'open'`
	if err := r.db.QueryRow(query, userID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum outstanding loans: %w", err)
	}
	return total, nil
}

// SaveScoreSnapshot persists a computed credit score for history
func (r *Repository) SaveScoreSnapshot(snapshot *models.ScoreSnapshot) error {
	query := `
		INSERT INTO jasho.score_history (user_id, score, computed_at)
		VALUES ($1, $2, $3)
		RETURNING id`
	err := r.db.QueryRow(query, snapshot.UserID, snapshot.Score, snapshot.ComputedAt).
		Scan(&snapshot.ID)
	if err != nil {
		return fmt.Errorf("failed to save score snapshot: %w", err)
	}
	return nil
}

// ListScoreSnapshots returns the user's most recent score snapshots,
// newest first
func (r *Repository) ListScoreSnapshots(userID string, limit int) ([]models.ScoreSnapshot, error) {
	query := `
		SELECT id, user_id, score, computed_at
		FROM jasho.score_history
		WHERE user_id = $1
		ORDER BY computed_at DESC
		LIMIT $2`
	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list score snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []models.ScoreSnapshot
	for rows.Next() {
		var s models.ScoreSnapshot
		if err := rows.Scan(&s.ID, &s.UserID, &s.Score, &s.ComputedAt); err != nil {
			return nil, fmt.Errorf("failed to scan score snapshot: %w", err)
		}
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate score snapshots: %w", err)
	}
	return snapshots, nil
}

// ListActiveUserIDs returns ids of users with ledger activity since the
// given time, for the scheduled score refresh.
func (r *Repository) ListActiveUserIDs(since time.Time) ([]string, error) {
	query := `
		SELECT DISTINCT user_id
		FROM jasho.transactions
		WHERE created_at >= $1`
	rows, err := r.db.Query(query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list active users: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate active users: %w", err)
	}
	return ids, nil
}
