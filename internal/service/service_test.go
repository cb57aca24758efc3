package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/jasho/finance-service/internal/config"
	"github.com/jasho/finance-service/internal/models"
	"github.com/sirupsen/logrus"
)

type fakeStore struct {
	users       map[string]*models.User
	txs         map[string][]models.Transaction
	loans       map[string]int64
	snapshots   []models.ScoreSnapshot
	activeUsers []string

	snapshotErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users: map[string]*models.User{},
		txs:   map[string][]models.Transaction{},
		loans: map[string]int64{},
	}
}

func (f *fakeStore) CreateUser(user *models.User) error {
	user.ID = "user-" + user.Username
	user.CreatedAt = time.Now()
	f.users[user.ID] = user
	return nil
}

func (f *fakeStore) FindUserByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errors.New("user not found")
}

func (f *fakeStore) FindUserByID(userID string) (*models.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, errors.New("user not found")
	}
	return u, nil
}

func (f *fakeStore) ListTransactionsByUser(userID string) ([]models.Transaction, error) {
	return f.txs[userID], nil
}

func (f *fakeStore) OutstandingLoanTotal(userID string) (int64, error) {
	return f.loans[userID], nil
}

func (f *fakeStore) SaveScoreSnapshot(snapshot *models.ScoreSnapshot) error {
	if f.snapshotErr != nil {
		return f.snapshotErr
	}
	snapshot.ID = int64(len(f.snapshots) + 1)
	f.snapshots = append(f.snapshots, *snapshot)
	return nil
}

func (f *fakeStore) ListScoreSnapshots(userID string, limit int) ([]models.ScoreSnapshot, error) {
	var out []models.ScoreSnapshot
	for i := len(f.snapshots) - 1; i >= 0 && len(out) < limit; i-- {
		if f.snapshots[i].UserID == userID {
			out = append(out, f.snapshots[i])
		}
	}
	return out, nil
}

func (f *fakeStore) ListActiveUserIDs(since time.Time) ([]string, error) {
	return f.activeUsers, nil
}

type fakeDigest struct {
	sent []string
}

func (f *fakeDigest) SendInsightDigest(to, username string, insights models.FinancialInsightResult, score int) error {
	f.sent = append(f.sent, to)
	return nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testService(store Store, digest DigestSender, now time.Time) *Service {
	cfg := &config.Config{JWTSecret: "test-secret"}
	return NewService(store, testLogger(), cfg, digest, func() time.Time { return now })
}

func authedContext(userID string) context.Context {
	return context.WithValue(context.Background(), "userID", userID)
}

func TestGetCreditScorePersistsSnapshot(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	store := newFakeStore()
	store.txs["user-a"] = []models.Transaction{
		{Kind: models.KindDeposit, Amount: 200_000, CreatedAt: now.AddDate(0, -1, 0)},
	}
	store.loans["user-a"] = 50_000

	svc := testService(store, nil, now)
	result, err := svc.GetCreditScore(authedContext("user-a"))
	if err != nil {
		t.Fatalf("GetCreditScore returned error: %v", err)
	}
	if result.UserID != "user-a" {
		t.Fatalf("expected result for user-a, got %q", result.UserID)
	}
	if !result.ComputedAt.Equal(now) {
		t.Fatalf("expected computed-at from injected clock, got %v", result.ComputedAt)
	}
	if len(store.snapshots) != 1 || store.snapshots[0].Score != result.Score {
		t.Fatalf("expected one persisted snapshot matching score %d, got %+v", result.Score, store.snapshots)
	}
}

func TestGetCreditScoreSurvivesSnapshotFailure(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	store := newFakeStore()
	store.snapshotErr = errors.New("disk full")

	svc := testService(store, nil, now)
	result, err := svc.GetCreditScore(authedContext("user-a"))
	if err != nil {
		t.Fatalf("expected score despite snapshot failure, got error: %v", err)
	}
	if result.Score < 300 || result.Score > 850 {
		t.Fatalf("score %d outside bounds", result.Score)
	}
}

func TestGetCreditScoreRequiresAuthenticatedUser(t *testing.T) {
	svc := testService(newFakeStore(), nil, time.Now())
	if _, err := svc.GetCreditScore(context.Background()); err == nil {
		t.Fatalf("expected error without userID in context")
	}
}

func TestGetInsightsUsesInjectedClock(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	store := newFakeStore()
	store.txs["user-a"] = []models.Transaction{
		{Kind: models.KindWithdrawal, Amount: 60_000, CreatedAt: now.AddDate(0, 0, -10)},
	}

	svc := testService(store, nil, now)
	result, err := svc.GetInsights(authedContext("user-a"))
	if err != nil {
		t.Fatalf("GetInsights returned error: %v", err)
	}
	if !result.ComputedAt.Equal(now) {
		t.Fatalf("expected computed-at from injected clock, got %v", result.ComputedAt)
	}
	// 60000 over the window / 6 months * 1.05 = 10500.
	if result.Predicted[0].Amount != 10_500 {
		t.Fatalf("expected predicted need 10500, got %d", result.Predicted[0].Amount)
	}
}

func TestGetScoreHistoryClampsLimit(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	store := newFakeStore()
	for i := 0; i < 30; i++ {
		store.snapshots = append(store.snapshots, models.ScoreSnapshot{
			UserID: "user-a", Score: 600 + i, ComputedAt: now.AddDate(0, 0, -i),
		})
	}

	svc := testService(store, nil, now)
	history, err := svc.GetScoreHistory(authedContext("user-a"), -1)
	if err != nil {
		t.Fatalf("GetScoreHistory returned error: %v", err)
	}
	if len(history) != 20 {
		t.Fatalf("expected default limit of 20 snapshots, got %d", len(history))
	}
}

func TestRefreshScores(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	store := newFakeStore()
	store.users["user-a"] = &models.User{ID: "user-a", Username: "amina", Email: "amina@example.com"}
	store.users["user-b"] = &models.User{ID: "user-b", Username: "brian"} // no email
	store.activeUsers = []string{"user-a", "user-b"}
	store.txs["user-a"] = []models.Transaction{
		{Kind: models.KindDeposit, Amount: 100_000, CreatedAt: now.AddDate(0, 0, -5)},
	}

	digest := &fakeDigest{}
	svc := testService(store, digest, now)
	if err := svc.RefreshScores(); err != nil {
		t.Fatalf("RefreshScores returned error: %v", err)
	}

	if len(store.snapshots) != 2 {
		t.Fatalf("expected snapshots for both active users, got %d", len(store.snapshots))
	}
	if len(digest.sent) != 1 || digest.sent[0] != "amina@example.com" {
		t.Fatalf("expected a digest only for the user with an email, got %v", digest.sent)
	}
}

func TestRegisterAndLogin(t *testing.T) {
	store := newFakeStore()
	svc := testService(store, nil, time.Now())

	user, err := svc.Register("amina", "amina@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.PasswordHash == "hunter22" {
		t.Fatalf("password stored unhashed")
	}

	token, err := svc.Login("amina@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a signed token")
	}

	if _, err := svc.Login("amina@example.com", "wrong"); err == nil {
		t.Fatalf("expected login failure with wrong password")
	}
}
