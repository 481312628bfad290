package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/finflow/finflow/internal/auth"
	"github.com/finflow/finflow/internal/config"
	database "github.com/finflow/finflow/internal/db"
	emailService "github.com/finflow/finflow/internal/email"
	"github.com/finflow/finflow/internal/finance/application"
	"github.com/finflow/finflow/internal/finance/infrastructure"
	"github.com/finflow/finflow/internal/finance/interfaces"
	"github.com/finflow/finflow/internal/user"
)

type Response struct {
	Message string `json:"message"`
}

func loggingMiddleware(logger *logrus.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start).String(),
		}).Info("request completed")
	})
}

type Server struct {
	router             *http.ServeMux
	db                 *database.DBService
	authHandler        *auth.Handler
	userHandler        *user.Handler
	authService        auth.Service
	categoryHandler    *interfaces.CategoryHandler
	transactionHandler *interfaces.TransactionHandler
	budgetHandler      *interfaces.BudgetHandler
	savingsHandler     *interfaces.SavingsHandler
	settingsHandler    *interfaces.SettingsHandler
	dataHandler        *interfaces.DataHandler
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(Response{Message: "Path not found"})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	health := s.db.Health()
	status := http.StatusOK
	if health["status"] != "up" {
		status = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(health)
}

func (s *Server) RegisterRoutes() {
	protect := s.authService.JWTAccessTokenMiddleware()

	// Public routes
	publicRoutes := http.NewServeMux()
	publicRoutes.Handle("POST /api/register", http.HandlerFunc(s.userHandler.HandleRegister))
	publicRoutes.Handle("POST /api/email/verify", http.HandlerFunc(s.userHandler.HandleVerifyEmail))
	publicRoutes.Handle("POST /api/auth/login", http.HandlerFunc(s.authHandler.HandleLogin))
	publicRoutes.Handle("POST /api/auth/logout", http.HandlerFunc(s.authHandler.HandleLogout))
	publicRoutes.Handle("POST /api/password-reset/request", http.HandlerFunc(s.authHandler.RequestPasswordResetHandler))
	publicRoutes.Handle("POST /api/password-reset/confirm", http.HandlerFunc(s.authHandler.ResetPasswordHandler))
	publicRoutes.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))

	// Protected routes (using JWT Access Token Middleware)
	protectedRoutes := http.NewServeMux()
	protectedRoutes.Handle("GET /api/protected/session", protect(http.HandlerFunc(s.authHandler.HandleSession)))
	protectedRoutes.Handle("GET /api/protected/profile", protect(http.HandlerFunc(s.userHandler.HandleGetUserProfile)))
	protectedRoutes.Handle("POST /api/protected/change-password", protect(http.HandlerFunc(s.userHandler.HandleChangePassword)))

	protectedRoutes.Handle("GET /api/protected/categories", protect(http.HandlerFunc(s.categoryHandler.GetCategories)))

	protectedRoutes.Handle("POST /api/protected/transactions", protect(http.HandlerFunc(s.transactionHandler.CreateTransaction)))
	protectedRoutes.Handle("GET /api/protected/transactions", protect(http.HandlerFunc(s.transactionHandler.GetTransactions)))
	protectedRoutes.Handle("GET /api/protected/transactions/summary", protect(http.HandlerFunc(s.transactionHandler.GetTransactionSummary)))
	protectedRoutes.Handle("DELETE /api/protected/transactions/{transactionID}", protect(http.HandlerFunc(s.transactionHandler.DeleteTransaction)))

	protectedRoutes.Handle("GET /api/protected/budgets", protect(http.HandlerFunc(s.budgetHandler.GetBudgets)))
	protectedRoutes.Handle("POST /api/protected/budgets", protect(http.HandlerFunc(s.budgetHandler.SetBudget)))
	protectedRoutes.Handle("PUT /api/protected/budgets/{budgetID}", protect(http.HandlerFunc(s.budgetHandler.UpdateBudget)))
	protectedRoutes.Handle("DELETE /api/protected/budgets/{budgetID}", protect(http.HandlerFunc(s.budgetHandler.DeleteBudget)))

	protectedRoutes.Handle("GET /api/protected/savings-goals", protect(http.HandlerFunc(s.savingsHandler.ListGoals)))
	protectedRoutes.Handle("POST /api/protected/savings-goals", protect(http.HandlerFunc(s.savingsHandler.CreateGoal)))
	protectedRoutes.Handle("PATCH /api/protected/savings-goals/{goalID}", protect(http.HandlerFunc(s.savingsHandler.UpdateGoal)))
	protectedRoutes.Handle("DELETE /api/protected/savings-goals/{goalID}", protect(http.HandlerFunc(s.savingsHandler.DeleteGoal)))

	protectedRoutes.Handle("GET /api/protected/settings", protect(http.HandlerFunc(s.settingsHandler.GetSettings)))
	protectedRoutes.Handle("PUT /api/protected/settings", protect(http.HandlerFunc(s.settingsHandler.SaveSettings)))

	protectedRoutes.Handle("DELETE /api/protected/data", protect(http.HandlerFunc(s.dataHandler.ClearAllData)))

	// Refresh token routes
	refreshTokenRoutes := http.NewServeMux()
	refreshTokenRoutes.Handle("PUT /api/refresh/token", s.authService.JWTRefreshTokenMiddleware()(http.HandlerFunc(s.authHandler.RefreshAccessToken)))

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/api/", publicRoutes)
	mainRouter.Handle("/api/protected/", protectedRoutes)
	mainRouter.Handle("/api/refresh/", refreshTokenRoutes)
	mainRouter.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = mainRouter
}

func startCodeCleanupScheduler(userService user.Service, logger *logrus.Logger) error {
	c := cron.New()
	_, err := c.AddFunc("@every 1h", func() {
		purged, err := userService.PurgeExpiredVerificationCodes()
		if err != nil {
			logger.WithError(err).Error("expired verification code purge failed")
			return
		}
		if purged > 0 {
			logger.WithField("purged", purged).Info("expired verification codes removed")
		}
	})
	if err != nil {
		return err
	}
	c.Start()
	return nil
}

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("missing configuration, update to start server")
	}

	if err := database.RunMigrations(cfg.DBConnString); err != nil {
		logger.WithError(err).Fatal("could not run database migrations")
	}

	dbService, err := database.NewDBService(cfg.DBConnString, logger)
	if err != nil {
		logger.WithError(err).Fatal("could not initialize database")
	}
	defer dbService.Close()

	newEmailService := emailService.NewEmailService(cfg.Email, logger)

	userRepo := user.NewUserRepository(dbService.DB)
	userService := user.NewUserService(userRepo, newEmailService, logger)
	userHandler := user.NewHandler(userService)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret)
	authService := auth.NewAuthService(userService, jwtManager, newEmailService, logger)
	authHandler := auth.NewHandler(authService)

	categoryRepo := infrastructure.NewCategoryRepository(dbService.DB)
	categoryService := application.NewCategoryService(categoryRepo)
	categoryHandler := interfaces.NewCategoryHandler(categoryService, interfaces.RespondJSON, interfaces.RespondError)

	transactionRepo := infrastructure.NewTransactionRepository(dbService.DB)
	transactionService := application.NewTransactionService(transactionRepo, categoryService)
	transactionHandler := interfaces.NewTransactionHandler(transactionService, interfaces.RespondJSON, interfaces.RespondError)

	budgetRepo := infrastructure.NewBudgetRepository(dbService.DB)
	budgetService := application.NewBudgetService(budgetRepo, categoryService)
	budgetHandler := interfaces.NewBudgetHandler(budgetService, interfaces.RespondJSON, interfaces.RespondError)

	savingsRepo := infrastructure.NewSavingsGoalRepository(dbService.DB)
	savingsService := application.NewSavingsService(savingsRepo)
	savingsHandler := interfaces.NewSavingsHandler(savingsService, interfaces.RespondJSON, interfaces.RespondError)

	settingsRepo := infrastructure.NewSettingsRepository(dbService.DB)
	settingsService := application.NewSettingsService(settingsRepo)
	settingsHandler := interfaces.NewSettingsHandler(settingsService, interfaces.RespondJSON, interfaces.RespondError)

	userDataRepo := infrastructure.NewUserDataRepository(dbService.DB)
	erasureService := application.NewErasureService(userDataRepo, logger)
	dataHandler := interfaces.NewDataHandler(erasureService, interfaces.RespondJSON, interfaces.RespondError)

	server := &Server{
		db:                 dbService,
		authHandler:        authHandler,
		userHandler:        userHandler,
		authService:        authService,
		categoryHandler:    categoryHandler,
		transactionHandler: transactionHandler,
		budgetHandler:      budgetHandler,
		savingsHandler:     savingsHandler,
		settingsHandler:    settingsHandler,
		dataHandler:        dataHandler,
	}
	server.RegisterRoutes()

	if err := startCodeCleanupScheduler(userService, logger); err != nil {
		logger.WithError(err).Fatal("scheduler didn't start, stopping the app")
	}

	handler := loggingMiddleware(logger, server.router)
	logger.WithField("port", cfg.HTTPPort).Info("server starting")
	if err := http.ListenAndServe(":"+cfg.HTTPPort, handler); err != nil {
		logger.WithError(err).Fatal("server failed to start")
	}
}
