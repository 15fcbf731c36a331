package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "folio/internal/errors"
	"folio/internal/pagination"
	"folio/internal/services"
)

// SymbolHandler handles symbol registry requests.
type SymbolHandler struct {
	registry services.RegistryServicer
}

// NewSymbolHandler creates a new SymbolHandler.
func NewSymbolHandler(registry services.RegistryServicer) *SymbolHandler {
	return &SymbolHandler{registry: registry}
}

// SymbolRequest is the payload for creating or updating a symbol.
type SymbolRequest struct {
	Name         string   `json:"name" binding:"required,min=1,max=100"`
	CurrentPrice *float64 `json:"currentPrice" binding:"omitempty,gte=0"`
}

// CreateSymbol registers a new symbol.
func (h *SymbolHandler) CreateSymbol(c *gin.Context) {
	var req SymbolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	symbol, err := h.registry.Add(req.Name, req.CurrentPrice)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"symbol": symbol})
}

// ListSymbols returns the registry as a paginated list.
func (h *SymbolHandler) ListSymbols(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	symbols := h.registry.GetAll()
	c.JSON(http.StatusOK, pagination.Paginate(symbols, page))
}

// GetSymbol returns one symbol by id.
func (h *SymbolHandler) GetSymbol(c *gin.Context) {
	symbol, err := h.registry.Get(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"symbol": symbol})
}

// UpdateSymbol replaces a symbol's name and price.
func (h *SymbolHandler) UpdateSymbol(c *gin.Context) {
	var req SymbolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	symbol, err := h.registry.Update(c.Param("id"), req.Name, req.CurrentPrice)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"symbol": symbol})
}

// DeleteSymbol removes a symbol. Transactions referencing it are kept.
func (h *SymbolHandler) DeleteSymbol(c *gin.Context) {
	if err := h.registry.Delete(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Symbol deleted"})
}
