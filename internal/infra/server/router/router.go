// Package router sets up the HTTP routing for the application.
package router

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/ledgerly/backend/internal/application/adapter"
	"github.com/ledgerly/backend/internal/integration/entrypoint/controller"
	"github.com/ledgerly/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	incomeController      *controller.IncomeController
	expenseController     *controller.ExpenseController
	receivableController  *controller.ReceivableController
	cashflowController    *controller.CashflowController
	integrationController *controller.IntegrationController
	integrityController   *controller.IntegrityController
	webhookRateLimiter    *middleware.RateLimiter
	authMiddleware        *middleware.AuthMiddleware
}

// Controllers groups the HTTP handlers mounted by the router.
type Controllers struct {
	Health      *controller.HealthController
	Income      *controller.IncomeController
	Expense     *controller.ExpenseController
	Receivable  *controller.ReceivableController
	Cashflow    *controller.CashflowController
	Integration *controller.IntegrationController
	Integrity   *controller.IntegrityController
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	controllers Controllers,
	webhookRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:      controllers.Health,
		incomeController:      controllers.Income,
		expenseController:     controllers.Expense,
		receivableController:  controllers.Receivable,
		cashflowController:    controllers.Cashflow,
		integrationController: controllers.Integration,
		integrityController:   controllers.Integrity,
		webhookRateLimiter:    webhookRateLimiter,
		authMiddleware:        authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	registerJSONFieldNames()

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// registerJSONFieldNames makes validation errors report JSON field names.
func registerJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")

	read := r.authMiddleware.Authenticate(adapter.ScopeLedgerRead)
	write := r.authMiddleware.Authenticate(adapter.ScopeLedgerWrite)

	income := v1.Group("/income")
	{
		income.GET("", read, r.incomeController.List)
		income.POST("", write, r.incomeController.Create)
		income.POST("/:id/verify", write, r.incomeController.Verify)
	}

	expenses := v1.Group("/expenses")
	{
		expenses.GET("", read, r.expenseController.List)
		expenses.POST("", write, r.expenseController.Create)
		expenses.POST("/:id/request-payment", write, r.expenseController.RequestPayment)
		expenses.POST("/:id/pay", write, r.expenseController.Pay)
	}

	receivables := v1.Group("/receivables")
	{
		receivables.GET("/overdue", read, r.receivableController.ListOverdue)
		receivables.GET("/on-hold", read, r.receivableController.ListOnHold)
		receivables.POST("/sweep", write, r.receivableController.Sweep)
		receivables.POST("/backfill-clients", write, r.receivableController.Backfill)
		receivables.POST("/:id/snooze", write, r.receivableController.Snooze)
		receivables.POST("/:id/hold", write, r.receivableController.Hold)
		receivables.POST("/:id/resolve", write, r.receivableController.Resolve)
		receivables.POST("/:id/settle", write, r.receivableController.Settle)
	}

	cashflow := v1.Group("/cashflow")
	{
		cashflow.GET("/position", read, r.cashflowController.Position)
		cashflow.GET("/forecast", read, r.cashflowController.Forecast)
		cashflow.GET("/snapshots", read, r.cashflowController.Snapshots)
		cashflow.POST("/close-month", write, r.cashflowController.CloseMonth)
	}

	v1.GET("/integrity", read, r.integrityController.Verify)

	// Webhooks authenticate with a dedicated scope and are rate limited per client.
	integrations := v1.Group("/integrations")
	integrations.Use(r.authMiddleware.Authenticate(adapter.ScopeWebhook))
	if r.webhookRateLimiter != nil {
		integrations.Use(r.webhookRateLimiter.Middleware())
	}
	integrations.POST("/quoteforge/events", r.integrationController.QuoteForgeEvent)
}
