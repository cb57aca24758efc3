package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/jasho/finance-service/internal/models"
)

// ScoringService is the business-logic surface the HTTP layer depends on,
// implemented by service.Service.
type ScoringService interface {
	Register(username, email, password string) (*models.User, error)
	Login(email, password string) (string, error)
	GetCreditScore(ctx context.Context) (models.CreditScoreResult, error)
	GetScoreHistory(ctx context.Context, limit int) ([]models.ScoreSnapshot, error)
	GetInsights(ctx context.Context) (models.FinancialInsightResult, error)
}

type Handler struct {
	svc ScoringService
}

func NewHandler(svc ScoringService) *Handler {
	return &Handler{svc: svc}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "username, email and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.svc.Register(req.Username, req.Email, req.Password)
	if err != nil {
		http.Error(w, "Failed to register user", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// GetCreditScore returns the authenticated user's credit score with its
// factor breakdown
func (h *Handler) GetCreditScore(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetCreditScore(r.Context())
	if err != nil {
		http.Error(w, "Failed to compute credit score", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetCreditHistory returns the authenticated user's recent score snapshots
func (h *Handler) GetCreditHistory(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	history, err := h.svc.GetScoreHistory(r.Context(), limit)
	if err != nil {
		http.Error(w, "Failed to load score history", http.StatusInternalServerError)
		return
	}
	if history == nil {
		history = []models.ScoreSnapshot{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": history})
}

// GetInsights returns the authenticated user's financial insights
func (h *Handler) GetInsights(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetInsights(r.Context())
	if err != nil {
		http.Error(w, "Failed to compute insights", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
