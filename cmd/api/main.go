package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/restopos/internal/application/service"
	"github.com/sangkips/restopos/internal/config"
	"github.com/sangkips/restopos/internal/infrastructure/ai"
	"github.com/sangkips/restopos/internal/infrastructure/database"
	"github.com/sangkips/restopos/internal/infrastructure/repository"
	"github.com/sangkips/restopos/internal/presentation/http/handler"
	"github.com/sangkips/restopos/internal/presentation/http/routes"
	"github.com/sangkips/restopos/pkg/logger"
	"github.com/sangkips/restopos/pkg/printer"
	"github.com/sangkips/restopos/pkg/retry"
	"github.com/sangkips/restopos/pkg/utils"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := logger.Must(logger.Config{
		IsDevelopment: cfg.IsDevelopment(),
		Encoding:      cfg.Log.Encoding,
		Level:         cfg.Log.Level,
	})
	defer log.Sync() //nolint:errcheck

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// Connect to database
	db, err := database.Open(&cfg.Database, cfg.App.Debug, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Seed default data
	if err := database.SeedProfiles(db, cfg.App.AdminPin, log); err != nil {
		log.Warn("failed to seed profiles", zap.Error(err))
	}
	if cfg.App.SeedDemo {
		if err := database.SeedDemo(db, log); err != nil {
			log.Warn("failed to seed demo data", zap.Error(err))
		}
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.App.Name, cfg.JWT.Expiry)
	store := service.NewStoreSettings(cfg)

	// Initialize repositories
	tx := repository.NewTransactor(db)
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	cartRepo := repository.NewCartRepository(db)
	sessionRepo := repository.NewCashSessionRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	reportRepo := repository.NewReportRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	preferenceRepo := repository.NewPreferenceRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	notificationService := service.NewNotificationService(notificationRepo, log)

	ledger := service.NewCartLedger(tx, cartRepo, productRepo, notificationService, log)
	if err := ledger.Load(ctx); err != nil {
		log.Fatal("failed to restore carts", zap.Error(err))
	}

	payrollRules, err := service.NewPayrollRules(cfg.Payroll)
	if err != nil {
		log.Fatal("invalid payroll configuration", zap.Error(err))
	}

	saleService := service.NewSaleService(tx, saleRepo, productRepo, cartRepo, sessionRepo, ledger, notificationService, store, log)
	sessionService := service.NewSessionService(tx, sessionRepo, saleRepo, ledger, notificationService, store, cfg.Cash.Denominations, log)
	attendanceService := service.NewAttendanceService(tx, employeeRepo, attendanceRepo, store, log)
	payrollService := service.NewPayrollService(tx, employeeRepo, attendanceRepo, expenseRepo, payrollRules, notificationService, store, log)
	expenseService := service.NewExpenseService(expenseRepo, store, log)
	reportService := service.NewReportService(reportRepo, productRepo, store)
	purchaseService := service.NewPurchaseService(tx, purchaseRepo, productRepo, expenseRepo, store, log)
	productService := service.NewProductService(productRepo)
	preferenceService := service.NewPreferenceService(preferenceRepo, store, log)
	profileService := service.NewProfileService(profileRepo, preferenceService, jwtManager)
	documentService := service.NewDocumentService(saleService, payrollService, attendanceService, reportService, saleRepo, store)

	// Initialize thermal printer
	thermalPrinter, err := printer.New(cfg.Printer.Type, cfg.Printer.USBPath, cfg.Printer.Address)
	if err != nil {
		log.Warn("failed to initialize printer, receipts will be kept in memory", zap.Error(err))
		thermalPrinter = printer.NewMemoryPrinter(0)
	}
	printerService := service.NewPrinterService(thermalPrinter, saleService, sessionService, store, log)

	// The assistant stays disabled without an API key
	var model service.TextModel
	if cfg.Assistant.APIKey != "" {
		client, err := ai.NewGeminiClient(ctx, cfg.Assistant.APIKey, cfg.Assistant.Model)
		if err != nil {
			log.Warn("failed to initialize assistant", zap.Error(err))
		} else {
			defer client.Close()
			model = client
		}
	}
	policy := retry.DefaultPolicy(ai.IsRetryable)
	if cfg.Assistant.MaxRetries > 0 {
		policy.MaxRetries = cfg.Assistant.MaxRetries
	}
	if cfg.Assistant.BaseDelay > 0 {
		policy.BaseDelay = cfg.Assistant.BaseDelay
	}
	if cfg.Assistant.MaxDelay > 0 {
		policy.MaxDelay = cfg.Assistant.MaxDelay
	}
	assistantService := service.NewAssistantService(model, policy, cfg.Assistant.Timeout, productRepo, reportService, sessionService, log)

	// Initialize handlers
	handlers := &routes.Handlers{
		Profile:    handler.NewProfileHandler(profileService),
		Product:    handler.NewProductHandler(productService, reportService),
		Cart:       handler.NewCartHandler(ledger, saleService),
		Sale:       handler.NewSaleHandler(saleService, documentService),
		Session:    handler.NewSessionHandler(sessionService),
		Staff:      handler.NewStaffHandler(attendanceService, payrollService, documentService),
		Report:     handler.NewReportHandler(reportService, documentService),
		Purchase:   handler.NewPurchaseHandler(purchaseService),
		Expense:    handler.NewExpenseHandler(expenseService),
		Preference: handler.NewPreferenceHandler(preferenceService, notificationService),
		Assistant:  handler.NewAssistantHandler(assistantService),
		Printer:    handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Permissions:     preferenceService,
		Log:             log,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("starting server",
			zap.String("name", cfg.App.Name),
			zap.String("port", port),
			zap.String("env", cfg.App.Env),
			zap.String("terminal", cfg.App.TerminalID),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
