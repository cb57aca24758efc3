package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	"github.com/jasho/finance-service/internal/config"
	"github.com/jasho/finance-service/internal/handler"
	"github.com/jasho/finance-service/internal/integrations/cbk"
	"github.com/jasho/finance-service/internal/middleware"
	"github.com/jasho/finance-service/internal/repository"
	"github.com/jasho/finance-service/internal/service"
	"github.com/jasho/finance-service/internal/utils/email"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	var digest service.DigestSender
	if cfg.SMTPHost != "" {
		digest = email.NewSender(cfg, logger)
	}
	svc := service.NewService(repo, logger, cfg, digest, time.Now)
	h := handler.NewHandler(svc)
	cbkClient := cbk.NewCBKClient(cfg, logger)

	// Scheduled score refresh
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.RefreshCron, func() {
		if err := svc.RefreshScores(); err != nil {
			logger.Errorf("Scheduled score refresh failed: %v", err)
		}
	}); err != nil {
		logger.Fatalf("Invalid refresh schedule %q: %v", cfg.RefreshCron, err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/credit/score", h.GetCreditScore).Methods("GET")
	authRouter.HandleFunc("/credit/history", h.GetCreditHistory).Methods("GET")
	authRouter.HandleFunc("/insights", h.GetInsights).Methods("GET")
	// CBK exchange rate endpoint
	r.HandleFunc("/exchange-rate", func(w http.ResponseWriter, r *http.Request) {
		rate, err := cbkClient.GetUSDRate()
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to get exchange rate: %v", err), http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]float64{"kes_per_usd": rate})
	}).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
