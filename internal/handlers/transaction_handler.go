package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "folio/internal/errors"
	"folio/internal/models"
	"folio/internal/pagination"
	"folio/internal/services"
)

// TransactionHandler handles ledger requests.
type TransactionHandler struct {
	ledger services.LedgerServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(ledger services.LedgerServicer) *TransactionHandler {
	return &TransactionHandler{ledger: ledger}
}

// CreateTransactionRequest is the payload for recording a trade. Price is
// the total consideration of the trade, not a per-unit quote.
type CreateTransactionRequest struct {
	Type   string  `json:"type" binding:"required,trade_type"`
	Symbol string  `json:"symbol" binding:"required"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Price  float64 `json:"price" binding:"required,gt=0"`
}

// UpdateTransactionRequest is the payload for editing a trade. The record's
// type and date are not editable.
type UpdateTransactionRequest struct {
	Symbol string  `json:"symbol" binding:"required"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Price  float64 `json:"price" binding:"required,gt=0"`
}

// CreateTransaction records a new buy or sell.
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	transaction, err := h.ledger.AddTransaction(models.TradeType(req.Type), req.Symbol, req.Amount, req.Price)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// ListTransactions returns the ledger in insertion order, paginated.
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	transactions := h.ledger.GetAllTransactions()
	c.JSON(http.StatusOK, pagination.Paginate(transactions, page))
}

// GetTransaction returns one ledger record by id.
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	transaction, err := h.ledger.GetTransaction(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// UpdateTransaction edits a ledger record in place.
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	transaction, err := h.ledger.UpdateTransaction(c.Param("id"), req.Symbol, req.Amount, req.Price)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction removes a ledger record.
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	if err := h.ledger.DeleteTransaction(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
}

// GetAvailableAmount returns the quantity of a symbol available for sale.
func (h *TransactionHandler) GetAvailableAmount(c *gin.Context) {
	symbol := strings.TrimSpace(c.Query("symbol"))
	if symbol == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, "Query parameter 'symbol' is required"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"symbol":    symbol,
		"available": h.ledger.GetAvailableAmount(symbol),
	})
}
