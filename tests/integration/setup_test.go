package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"folio/internal/handlers"
	"folio/internal/logger"
	"folio/internal/services"
	"folio/internal/storage"
	"folio/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	Store  storage.Store
	Router *gin.Engine
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupApp wires the full stack over an in-memory key-value store.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	store := storage.NewMemoryStore()
	return setupAppWithStore(t, store)
}

// setupAppWithStore wires the stack over an existing store, so tests can
// simulate a restart against persisted state.
func setupAppWithStore(t *testing.T, store storage.Store) *testApp {
	t.Helper()

	registryService, err := services.NewRegistryService(store)
	if err != nil {
		t.Fatalf("failed to create registry service: %v", err)
	}
	valuationService := services.NewValuationService()
	ledgerService, err := services.NewLedgerService(store, valuationService)
	if err != nil {
		t.Fatalf("failed to create ledger service: %v", err)
	}

	symbolHandler := handlers.NewSymbolHandler(registryService)
	transactionHandler := handlers.NewTransactionHandler(ledgerService)
	portfolioHandler := handlers.NewPortfolioHandler(registryService, ledgerService, valuationService)

	router := gin.New()

	v1 := router.Group("/api/v1")

	symbols := v1.Group("/symbols")
	symbols.POST("", symbolHandler.CreateSymbol)
	symbols.GET("", symbolHandler.ListSymbols)
	symbols.GET("/:id", symbolHandler.GetSymbol)
	symbols.PUT("/:id", symbolHandler.UpdateSymbol)
	symbols.DELETE("/:id", symbolHandler.DeleteSymbol)

	transactions := v1.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.GET("/available", transactionHandler.GetAvailableAmount)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	v1.GET("/portfolio", portfolioHandler.GetPortfolio)

	return &testApp{Store: store, Router: router}
}

// request performs one JSON request against the app.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response %q: %v", rec.Body.String(), err)
	}
	return result
}

// createSymbol registers a symbol and returns its id.
func (app *testApp) createSymbol(t *testing.T, body string) string {
	t.Helper()

	rec := app.request("POST", "/api/v1/symbols", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating symbol, got %d: %s", rec.Code, rec.Body.String())
	}
	symbol := parseJSON(t, rec)["symbol"].(map[string]interface{})
	return symbol["id"].(string)
}

// trade records a transaction and returns its id.
func (app *testApp) trade(t *testing.T, body string) string {
	t.Helper()

	rec := app.request("POST", "/api/v1/transactions", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 recording trade, got %d: %s", rec.Code, rec.Body.String())
	}
	tx := parseJSON(t, rec)["transaction"].(map[string]interface{})
	return tx["id"].(string)
}

// portfolio fetches the portfolio map.
func (app *testApp) portfolio(t *testing.T) map[string]interface{} {
	t.Helper()

	rec := app.request("GET", "/api/v1/portfolio", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 fetching portfolio, got %d: %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["portfolio"].(map[string]interface{})
}
