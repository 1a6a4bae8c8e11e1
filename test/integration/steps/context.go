// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/ledgerly/backend/config"
	"github.com/ledgerly/backend/internal/application/adapter"
	"github.com/ledgerly/backend/internal/domain/entity"
	"github.com/ledgerly/backend/internal/domain/valueobject"
	"github.com/ledgerly/backend/internal/infra/dependency"
	"github.com/ledgerly/backend/internal/integration/persistence"
	"github.com/ledgerly/backend/internal/integration/persistence/model"
	"github.com/ledgerly/backend/test/integration/mock"
)

const (
	testJWTSecret   = "test-jwt-secret-key-for-testing-purposes"
	cashPositionKey = "ledgerly:cash_position"
)

// TestContext holds the test state for each scenario.
type TestContext struct {
	// HTTP
	server       *httptest.Server
	response     *http.Response
	responseBody []byte

	// Request building
	requestHeaders map[string]string

	// Auth
	accessToken string

	// Ledger
	injector *dependency.Injector
	db       *mock.Db
	clock    *mock.Time
	stored   map[string]string
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		// Set Gin to test mode
		gin.SetMode(gin.TestMode)
	})
}

func testConfig() *config.Config {
	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.JWT.Secret = testJWTSecret
	cfg.Kafka.Brokers = nil
	cfg.Email.ResendAPIKey = ""
	cfg.Ledger.GracePeriodDays = 7
	cfg.Ledger.AlertEmail = "finance@ledgerly.test"
	cfg.Ledger.CashCacheTTL = time.Hour
	return cfg
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		database := mock.NewDb(
			&model.CashAccountModel{},
			&model.IncomeModel{},
			&model.ExpenseModel{},
			&model.MonthlySnapshotModel{},
			&model.PayrollRecordModel{},
			&model.EmailQueueModel{},
		)
		if err := database.ClearDB(); err != nil {
			return ctx, err
		}
		redisClient := mock.NewRedis()
		if err := mock.ClearRedis(redisClient); err != nil {
			return ctx, err
		}

		clock := mock.NewTime()
		injector, err := dependency.NewInjector(testConfig(), database.DbConn, redisClient, clock)
		if err != nil {
			return ctx, err
		}

		tc := &TestContext{
			requestHeaders: make(map[string]string),
			injector:       injector,
			db:             database,
			clock:          clock,
			stored:         make(map[string]string),
		}
		tc.server = httptest.NewServer(injector.Router.Setup("test"))

		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc := GetTestContext(ctx)
		if tc != nil && tc.server != nil {
			tc.server.Close()
		}
		return ctx, nil
	})

	registerLedgerSteps(ctx)
	registerAPISteps(ctx)
	registerResponseSteps(ctx)
}

// registerLedgerSteps registers clock, seed and auth steps.
func registerLedgerSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^today is "([^"]*)"$`, todayIs)
	ctx.Step(`^(\d+) days? pass(?:es)?$`, daysPass)
	ctx.Step(`^a cash account "([^"]*)" with an opening balance of (\d+)$`, aCashAccountWithOpeningBalance)
	ctx.Step(`^I am authenticated$`, iAmAuthenticated)
	ctx.Step(`^I am authenticated with scopes "([^"]*)"$`, iAmAuthenticatedWithScopes)
	ctx.Step(`^the cash position is cached$`, theCashPositionIsCached)
	ctx.Step(`^the cash position is not cached$`, theCashPositionIsNotCached)
	ctx.Step(`^(\d+) overdue digests? (?:is|are) queued$`, overdueDigestsAreQueued)
}

// registerAPISteps registers HTTP request steps.
func registerAPISteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the API server is running$`, theAPIServerIsRunning)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
	ctx.Step(`^I set header "([^"]*)" to "([^"]*)"$`, iSetHeaderTo)
	ctx.Step(`^I store the response field "([^"]*)" as "([^"]*)"$`, iStoreTheResponseFieldAs)
}

// registerResponseSteps registers response validation steps.
func registerResponseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Step(`^the response should be JSON$`, theResponseShouldBeJSON)
	ctx.Step(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, theResponseFieldShouldExist)
	ctx.Step(`^the response field "([^"]*)" should have (\d+) items?$`, theResponseFieldShouldHaveItems)
}

// Ledger steps

func todayIs(ctx context.Context, date string) error {
	tc := GetTestContext(ctx)
	day, err := time.Parse(valueobject.DateLayout, date)
	if err != nil {
		return err
	}
	tc.clock.SetCurrentTime(day.Add(9 * time.Hour))
	return nil
}

func daysPass(ctx context.Context, days int) error {
	GetTestContext(ctx).clock.Advance(time.Duration(days) * 24 * time.Hour)
	return nil
}

func aCashAccountWithOpeningBalance(ctx context.Context, name string, balance int) error {
	tc := GetTestContext(ctx)
	account := entity.NewCashAccount(name, entity.CashAccountBank, decimal.NewFromInt(int64(balance)), tc.clock.Now())
	if err := persistence.NewCashAccountRepository(tc.db.DbConn).Create(ctx, account); err != nil {
		return fmt.Errorf("failed to seed cash account: %w", err)
	}
	tc.stored[name] = account.ID.String()
	return nil
}

func iAmAuthenticated(ctx context.Context) error {
	return iAmAuthenticatedWithScopes(ctx, adapter.ScopeLedgerRead+","+adapter.ScopeLedgerWrite+","+adapter.ScopeWebhook)
}

func iAmAuthenticatedWithScopes(ctx context.Context, scopes string) error {
	tc := GetTestContext(ctx)
	token, err := tc.injector.TokenService.IssueAccessToken(ctx, "bdd-operator", strings.Split(scopes, ","), time.Hour)
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}
	tc.accessToken = token
	return nil
}

func theCashPositionIsCached(ctx context.Context) error {
	if !mock.RedisKeyExists(cashPositionKey) {
		return fmt.Errorf("expected cash position to be cached")
	}
	return nil
}

func theCashPositionIsNotCached(ctx context.Context) error {
	if mock.RedisKeyExists(cashPositionKey) {
		return fmt.Errorf("expected cash position cache to be invalidated")
	}
	return nil
}

func overdueDigestsAreQueued(ctx context.Context, expected int) error {
	tc := GetTestContext(ctx)
	var count int64
	err := tc.db.DbConn.Model(&model.EmailQueueModel{}).
		Where("template_type = ?", string(entity.TemplateOverdueDigest)).
		Count(&count).Error
	if err != nil {
		return err
	}
	if int(count) != expected {
		return fmt.Errorf("expected %d queued digests, got %d", expected, count)
	}
	return nil
}

// API steps

func theAPIServerIsRunning(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.server == nil {
		return fmt.Errorf("test server is not running")
	}
	return nil
}

func iSendARequestTo(ctx context.Context, method, endpoint string) (context.Context, error) {
	return sendRequest(ctx, method, endpoint, nil)
}

func iSendARequestToWithBody(ctx context.Context, method, endpoint string, body *godog.DocString) (context.Context, error) {
	return sendRequest(ctx, method, endpoint, &body.Content)
}

func sendRequest(ctx context.Context, method, endpoint string, body *string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewBufferString(tc.expand(*body))
	}

	req, err := http.NewRequest(method, tc.server.URL+tc.expand(endpoint), reader)
	if err != nil {
		return ctx, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// Add headers
	for key, value := range tc.requestHeaders {
		req.Header.Set(key, value)
	}

	// Add auth token if present
	if tc.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.accessToken)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return ctx, fmt.Errorf("failed to send request: %w", err)
	}

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return ctx, fmt.Errorf("failed to read response body: %w", err)
	}

	return SetTestContext(ctx, tc), nil
}

// expand replaces {name} placeholders with stored values.
func (tc *TestContext) expand(s string) string {
	for name, value := range tc.stored {
		s = strings.ReplaceAll(s, "{"+name+"}", value)
	}
	return s
}

func iSetHeaderTo(ctx context.Context, header, value string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	tc.requestHeaders[header] = value
	return SetTestContext(ctx, tc), nil
}

func iStoreTheResponseFieldAs(ctx context.Context, field, name string) error {
	tc := GetTestContext(ctx)
	value, err := tc.responseField(field)
	if err != nil {
		return err
	}
	tc.stored[name] = fmt.Sprintf("%v", value)
	return nil
}

// Response steps

func theResponseStatusShouldBe(ctx context.Context, expectedStatus int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if tc.response == nil {
		return fmt.Errorf("no response received")
	}
	if tc.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expectedStatus, tc.response.StatusCode, string(tc.responseBody))
	}
	return nil
}

func theResponseShouldBeJSON(ctx context.Context) error {
	var js json.RawMessage
	if err := json.Unmarshal(GetTestContext(ctx).responseBody, &js); err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	return nil
}

func theResponseShouldContain(ctx context.Context, expected string) error {
	tc := GetTestContext(ctx)
	if !strings.Contains(string(tc.responseBody), tc.expand(expected)) {
		return fmt.Errorf("response does not contain '%s'. Body: %s", expected, string(tc.responseBody))
	}
	return nil
}

func theResponseFieldShouldBe(ctx context.Context, field, expected string) error {
	tc := GetTestContext(ctx)
	value, err := tc.responseField(field)
	if err != nil {
		return err
	}

	actual := fmt.Sprintf("%v", value)
	if value == nil {
		actual = "null"
	}
	if want := tc.expand(expected); actual != want {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, want, actual)
	}
	return nil
}

func theResponseFieldShouldExist(ctx context.Context, field string) error {
	_, err := GetTestContext(ctx).responseField(field)
	return err
}

func theResponseFieldShouldHaveItems(ctx context.Context, field string, expected int) error {
	value, err := GetTestContext(ctx).responseField(field)
	if err != nil {
		return err
	}
	items, ok := value.([]interface{})
	if !ok {
		return fmt.Errorf("field '%s' is not a list", field)
	}
	if len(items) != expected {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, expected, len(items))
	}
	return nil
}

// responseField resolves a dotted path such as "settlement.original.status"
// or "receivables.0.days_overdue" in the last JSON response.
func (tc *TestContext) responseField(path string) (interface{}, error) {
	var data interface{}
	if err := json.Unmarshal(tc.responseBody, &data); err != nil {
		return nil, fmt.Errorf("failed to parse response JSON: %w", err)
	}

	current := data
	for _, part := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]interface{}:
			value, ok := node[part]
			if !ok {
				return nil, fmt.Errorf("field '%s' not found in response: %s", path, string(tc.responseBody))
			}
			current = value
		case []interface{}:
			idx, err := strconv.Atoi(part)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, fmt.Errorf("index '%s' out of range in '%s'", part, path)
			}
			current = node[idx]
		default:
			return nil, fmt.Errorf("field '%s' not found in response", path)
		}
	}
	return current, nil
}
