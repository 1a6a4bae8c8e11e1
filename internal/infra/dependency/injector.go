// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/ledgerly/backend/config"
	"github.com/ledgerly/backend/internal/application/adapter"
	"github.com/ledgerly/backend/internal/application/usecase/cashflow"
	"github.com/ledgerly/backend/internal/application/usecase/integrity"
	"github.com/ledgerly/backend/internal/application/usecase/invoicing"
	"github.com/ledgerly/backend/internal/application/usecase/ledger"
	"github.com/ledgerly/backend/internal/application/usecase/receivable"
	"github.com/ledgerly/backend/internal/infra/server/router"
	"github.com/ledgerly/backend/internal/integration/adapters"
	"github.com/ledgerly/backend/internal/integration/cache"
	"github.com/ledgerly/backend/internal/integration/email"
	"github.com/ledgerly/backend/internal/integration/email/templates"
	"github.com/ledgerly/backend/internal/integration/entrypoint/controller"
	"github.com/ledgerly/backend/internal/integration/entrypoint/middleware"
	"github.com/ledgerly/backend/internal/integration/events"
	"github.com/ledgerly/backend/internal/integration/persistence"
	"github.com/ledgerly/backend/internal/integration/scheduler"
)

// Injector holds all application dependencies.
type Injector struct {
	Config         *config.Config
	DB             *gorm.DB
	Router         *router.Router
	TokenService   adapter.TokenService
	EmailWorker    *email.Worker
	OverdueSweeper *scheduler.OverdueSweeper

	kafka *events.KafkaPublisher
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil, which disables the cash position cache.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, clock adapter.Clock) (*Injector, error) {
	// Create repositories
	incomeRepo := persistence.NewIncomeRepository(db)
	expenseRepo := persistence.NewExpenseRepository(db)
	accountRepo := persistence.NewCashAccountRepository(db)
	snapshotRepo := persistence.NewSnapshotRepository(db)
	payrollRepo := persistence.NewPayrollRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	// Cache and event delivery
	var positionCache adapter.CashPositionCache
	var handlers []adapter.LedgerEventHandler
	if redisClient != nil {
		c := cache.NewCashPositionCache(redisClient)
		positionCache = c
		handlers = append(handlers, cashflow.NewCacheInvalidationHandler(c))
	}

	var kafka *events.KafkaPublisher
	var forward adapter.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafka = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.WriteTimeout)
		forward = kafka
		slog.Info("Ledger events forwarded to Kafka", "brokers", cfg.Kafka.Brokers)
	}
	publisher := events.NewDispatcher(forward, handlers...)

	// Email
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	var sender adapter.EmailSender = email.LogSender{}
	if cfg.Email.ResendAPIKey != "" {
		sender = email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	}
	emailWorker := email.NewWorker(emailQueueRepo, sender, renderer, clock, email.WorkerConfig{
		PollInterval: cfg.Email.PollInterval,
		BatchSize:    cfg.Email.BatchSize,
	})
	var emailService adapter.EmailService
	if cfg.Ledger.AlertEmail != "" {
		emailService = email.NewService(emailQueueRepo, clock, email.Recipient{
			Email: cfg.Ledger.AlertEmail,
			Name:  cfg.Ledger.AlertName,
		}, cfg.Email.AppBaseURL)
	}

	// Adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret)
	engine := ledger.NewEngine(clock)

	// Ledger use cases
	recordIncomeUseCase := ledger.NewRecordIncomeUseCase(engine, incomeRepo)
	verifyIncomeUseCase := ledger.NewVerifyIncomeUseCase(engine, incomeRepo, accountRepo, publisher, clock)
	listIncomeUseCase := ledger.NewListIncomeUseCase(incomeRepo)
	recordExpenseUseCase := ledger.NewRecordExpenseUseCase(engine, expenseRepo)
	requestPaymentUseCase := ledger.NewRequestExpensePaymentUseCase(engine, expenseRepo)
	payExpenseUseCase := ledger.NewPayExpenseUseCase(engine, expenseRepo, publisher, clock)
	listExpensesUseCase := ledger.NewListExpensesUseCase(expenseRepo)

	// Receivable use cases
	grace := cfg.Ledger.GracePeriodDays
	settleUseCase := receivable.NewSettleUseCase(engine, incomeRepo, accountRepo, publisher, clock)
	sweepUseCase := receivable.NewSweepOverdueUseCase(engine, incomeRepo, publisher, emailService, clock, grace)
	receivableUseCases := controller.ReceivableUseCases{
		ListOverdue: receivable.NewListOverdueUseCase(incomeRepo, clock, grace),
		ListOnHold:  receivable.NewListOnHoldUseCase(incomeRepo),
		Sweep:       sweepUseCase,
		Snooze:      receivable.NewSnoozeUseCase(incomeRepo, clock),
		Hold:        receivable.NewHoldUseCase(incomeRepo, clock),
		Resolve:     receivable.NewResolveHoldUseCase(engine, incomeRepo, settleUseCase),
		Settle:      settleUseCase,
		Backfill:    receivable.NewBackfillClientNamesUseCase(incomeRepo, clock),
	}

	// Cashflow use cases
	reader := cashflow.NewLedgerReader(incomeRepo, expenseRepo, accountRepo)
	positionUseCase := cashflow.NewGetCashPositionUseCase(reader, positionCache, clock, cfg.Ledger.CashCacheTTL)
	forecastUseCase := cashflow.NewGetForecastUseCase(reader, clock, cfg.Ledger.ForecastHorizonDays)
	closeMonthUseCase := cashflow.NewCloseMonthUseCase(reader, snapshotRepo, payrollRepo, clock)
	listSnapshotsUseCase := cashflow.NewListSnapshotsUseCase(snapshotRepo)

	ingestUseCase := invoicing.NewIngestInvoiceEventUseCase(adapters.NewQuoteForgeAdapter(), engine, incomeRepo, publisher, clock)
	integrityUseCase := integrity.NewVerifyIntegrityUseCase(incomeRepo, expenseRepo)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, redisHealthChecker(redisClient))

	controllers := router.Controllers{
		Health: healthController,
		Income: controller.NewIncomeController(recordIncomeUseCase, verifyIncomeUseCase, listIncomeUseCase),
		Expense: controller.NewExpenseController(
			recordExpenseUseCase,
			requestPaymentUseCase,
			payExpenseUseCase,
			listExpensesUseCase,
		),
		Receivable: controller.NewReceivableController(receivableUseCases),
		Cashflow: controller.NewCashflowController(
			positionUseCase,
			forecastUseCase,
			closeMonthUseCase,
			listSnapshotsUseCase,
		),
		Integration: controller.NewIntegrationController(ingestUseCase),
		Integrity:   controller.NewIntegrityController(integrityUseCase),
	}

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var webhookRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		webhookRateLimiter = middleware.NewRateLimiter(1000, time.Minute)
	} else {
		webhookRateLimiter = middleware.NewRateLimiter(cfg.Server.WebhookRateLimit, cfg.Server.WebhookRateWindow)
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(controllers, webhookRateLimiter, authMiddleware)

	return &Injector{
		Config:         cfg,
		DB:             db,
		Router:         r,
		TokenService:   tokenService,
		EmailWorker:    emailWorker,
		OverdueSweeper: scheduler.NewOverdueSweeper(sweepUseCase, cfg.Ledger.SweepInterval),
		kafka:          kafka,
	}, nil
}

// Close releases the resources owned by the injector.
func (i *Injector) Close() error {
	if i.kafka == nil {
		return nil
	}
	return i.kafka.Close()
}

func redisHealthChecker(client *redis.Client) func() bool {
	if client == nil {
		return nil
	}
	return func() bool {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return client.Ping(ctx).Err() == nil
	}
}
