package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"folio/internal/models"
	"folio/internal/services"
)

// PortfolioHandler serves the derived portfolio summary.
type PortfolioHandler struct {
	registry  services.RegistryServicer
	ledger    services.LedgerServicer
	valuation services.ValuationServicer
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(registry services.RegistryServicer, ledger services.LedgerServicer, valuation services.ValuationServicer) *PortfolioHandler {
	return &PortfolioHandler{registry: registry, ledger: ledger, valuation: valuation}
}

// PortfolioEntry decorates a position with display-only aggregates: the
// realized profit total from the ledger's sell records, and a mark-to-market
// value when the registry has a current price for the symbol.
type PortfolioEntry struct {
	models.Position
	RealizedProfit float64  `json:"realizedProfit"`
	MarketValue    *float64 `json:"marketValue,omitempty"`
}

// GetPortfolio recomputes the position snapshot from the current ledger.
// Derived state is never cached: a mutation the caller just performed is
// always reflected here.
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	transactions := h.ledger.GetAllTransactions()
	positions := h.valuation.Compute(transactions)
	realized := h.valuation.RealizedProfit(transactions)

	portfolio := make(map[string]PortfolioEntry, len(positions))
	for symbol, position := range positions {
		entry := PortfolioEntry{
			Position:       position,
			RealizedProfit: realized[symbol],
		}
		if price := h.registry.GetCurrentPrice(symbol); price != nil {
			marketValue := *price * position.Amount
			entry.MarketValue = &marketValue
		}
		portfolio[symbol] = entry
	}

	c.JSON(http.StatusOK, gin.H{"portfolio": portfolio})
}
