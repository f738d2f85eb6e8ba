package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	httpapi "behaviorbank-backend/internal/api/http"
	"behaviorbank-backend/internal/cache"
	"behaviorbank-backend/internal/config"
	"behaviorbank-backend/internal/jobs"
	"behaviorbank-backend/internal/logger"
	"behaviorbank-backend/internal/repository/postgres"
	"behaviorbank-backend/internal/scheduler"
	"behaviorbank-backend/internal/security"
	"behaviorbank-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Behavior Bank backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("SMTP configuration", "host", cfg.SMTP.Host, "port", cfg.SMTP.Port)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize Balance Cache. The cache is an optimization; a missing
	// Redis keeps the server usable.
	var balanceCache cache.BalanceCache
	balanceCache, err = cache.NewBalanceCache(cfg.Redis.Addr, time.Duration(cfg.Redis.BalanceTTLSeconds)*time.Second)
	if err != nil {
		logger.Warn("Balance cache unavailable, serving from the ledger", "addr", cfg.Redis.Addr, "error", err)
		balanceCache = nil
	} else {
		defer balanceCache.Close()
	}

	// Initialize Email Service
	emailSvc := service.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.User,
		cfg.SMTP.Password,
		cfg.SMTP.From,
		cfg.SMTP.AdminTo,
	)

	// Initialize Services
	auditSvc := service.NewAuditService(store.AuditRepository)
	authSvc := service.NewAuthService(store.UserRepository, tokenManager, auditSvc)
	userSvc := service.NewUserService(store.UserRepository, auditSvc)
	ledgerSvc := service.NewLedgerService(store.LedgerRepository, balanceCache, auditSvc, cfg.Points.DefaultPageLimit, cfg.Points.MaxPageLimit)
	accountSvc := service.NewAccountService(store.AccountRepository, store.DepositRepository, store.UserRepository, auditSvc)
	withdrawalSvc := service.NewWithdrawalService(
		store.WithdrawalRepository,
		store.AccountRepository,
		store.DepositRepository,
		store.UserRepository,
		auditSvc,
		emailSvc,
	)
	dashboardSvc := service.NewDashboardService(store.AccountRepository, store.LedgerRepository, store.UserRepository, ledgerSvc)

	// Initialize Scheduled Jobs
	jobRunner := jobs.NewJobRunner(db, store, &jobs.Services{
		Email: emailSvc,
		Audit: auditSvc,
	}, cfg)
	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	// Set up HTTP server
	router := httpapi.NewRouter(httpapi.Services{
		Auth:       authSvc,
		User:       userSvc,
		Ledger:     ledgerSvc,
		Account:    accountSvc,
		Withdrawal: withdrawalSvc,
		Dashboard:  dashboardSvc,
		Audit:      auditSvc,
	}, tokenManager)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
