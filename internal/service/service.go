package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jasho/finance-service/internal/config"
	"github.com/jasho/finance-service/internal/models"
	"github.com/jasho/finance-service/internal/scoring"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Store is the persistence surface the service depends on, implemented by
// repository.Repository.
type Store interface {
	CreateUser(user *models.User) error
	FindUserByEmail(email string) (*models.User, error)
	FindUserByID(userID string) (*models.User, error)
	ListTransactionsByUser(userID string) ([]models.Transaction, error)
	OutstandingLoanTotal(userID string) (int64, error)
	SaveScoreSnapshot(snapshot *models.ScoreSnapshot) error
	ListScoreSnapshots(userID string, limit int) ([]models.ScoreSnapshot, error)
	ListActiveUserIDs(since time.Time) ([]string, error)
}

// DigestSender delivers periodic insight digests, implemented by the
// email sender. A nil sender disables digests.
type DigestSender interface {
	SendInsightDigest(to, username string, insights models.FinancialInsightResult, score int) error
}

// Service handles business logic
type Service struct {
	store  Store
	log    *logrus.Logger
	config *config.Config
	digest DigestSender
	now    func() time.Time
}

// NewService initializes a new service. The clock is injected so scoring
// runs are deterministic under test; production passes time.Now.
func NewService(store Store, log *logrus.Logger, cfg *config.Config, digest DigestSender, now func() time.Time) *Service {
	return &Service{store: store, log: log, config: cfg, digest: digest, now: now}
}

// Register creates a new user with hashed password
func (s *Service) Register(username, email, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.store.CreateUser(user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(email, password string) (string, error) {
	user, err := s.store.FindUserByEmail(email)
	if err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   user.ID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// GetCreditScore computes the authenticated user's credit score from their
// ledger snapshot and open loan total, and records a history snapshot.
func (s *Service) GetCreditScore(ctx context.Context) (models.CreditScoreResult, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return models.CreditScoreResult{}, err
	}

	txs, err := s.store.ListTransactionsByUser(userID)
	if err != nil {
		return models.CreditScoreResult{}, err
	}
	loans, err := s.store.OutstandingLoanTotal(userID)
	if err != nil {
		return models.CreditScoreResult{}, err
	}

	result := scoring.ComputeCreditScore(userID, txs, loans, s.now())

	// History is best-effort: a failed snapshot write must not withhold
	// a successfully computed score.
	snapshot := &models.ScoreSnapshot{UserID: userID, Score: result.Score, ComputedAt: result.ComputedAt}
	if err := s.store.SaveScoreSnapshot(snapshot); err != nil {
		s.log.Warnf("Failed to save score snapshot for user %s: %v", userID, err)
	}

	s.log.Infof("Credit score computed for user %s: %d", userID, result.Score)
	return result, nil
}

// GetScoreHistory returns the authenticated user's recent score snapshots
func (s *Service) GetScoreHistory(ctx context.Context, limit int) ([]models.ScoreSnapshot, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.store.ListScoreSnapshots(userID, limit)
}

// GetInsights computes the authenticated user's financial insights from
// their ledger snapshot.
func (s *Service) GetInsights(ctx context.Context) (models.FinancialInsightResult, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return models.FinancialInsightResult{}, err
	}

	txs, err := s.store.ListTransactionsByUser(userID)
	if err != nil {
		return models.FinancialInsightResult{}, err
	}

	result := scoring.ComputeFinancialInsights(userID, txs, s.now())
	s.log.Infof("Insights computed for user %s", userID)
	return result, nil
}

// RefreshScores recomputes and persists scores for users active in the
// last 30 days, and emails each an insight digest when a sender is
// configured. Per-user failures are logged and skipped so one bad row
// cannot stall the whole run.
func (s *Service) RefreshScores() error {
	now := s.now()
	userIDs, err := s.store.ListActiveUserIDs(now.AddDate(0, 0, -30))
	if err != nil {
		return fmt.Errorf("failed to list active users: %w", err)
	}

	var refreshed int
	for _, userID := range userIDs {
		txs, err := s.store.ListTransactionsByUser(userID)
		if err != nil {
			s.log.Warnf("Refresh skipped for user %s: %v", userID, err)
			continue
		}
		loans, err := s.store.OutstandingLoanTotal(userID)
		if err != nil {
			s.log.Warnf("Refresh skipped for user %s: %v", userID, err)
			continue
		}

		result := scoring.ComputeCreditScore(userID, txs, loans, now)
		snapshot := &models.ScoreSnapshot{UserID: userID, Score: result.Score, ComputedAt: result.ComputedAt}
		if err := s.store.SaveScoreSnapshot(snapshot); err != nil {
			s.log.Warnf("Failed to save refreshed score for user %s: %v", userID, err)
			continue
		}
		refreshed++

		if s.digest == nil {
			continue
		}
		user, err := s.store.FindUserByID(userID)
		if err != nil || user.Email == "" {
			continue
		}
		insights := scoring.ComputeFinancialInsights(userID, txs, now)
		if err := s.digest.SendInsightDigest(user.Email, user.Username, insights, result.Score); err != nil {
			s.log.Warnf("Failed to send digest to %s: %v", user.Email, err)
		}
	}

	s.log.Infof("Score refresh complete: %d of %d users updated", refreshed, len(userIDs))
	return nil
}

func userIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value("userID").(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user ID not found in context")
	}
	return userID, nil
}
