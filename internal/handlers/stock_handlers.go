package handlers

import (
	"net/http"

	"github.com/epeers/stockalert/internal/models"
	"github.com/epeers/stockalert/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// StockHandler is the quote proxy endpoint
type StockHandler struct {
	quotes *services.QuoteService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(quotes *services.QuoteService) *StockHandler {
	return &StockHandler{quotes: quotes}
}

// GetStock handles GET /api/stock/:symbol
// @Summary Get a normalized daily series
// @Description Fetch daily closes for a symbol from the quote provider. Unknown timeframes fall back to 3M.
// @Tags stocks
// @Produce json
// @Param symbol path string true "Ticker symbol, case-insensitive"
// @Param timeframe query string false "1M, 3M, 6M or 1Y" default(3M)
// @Success 200 {object} models.QuoteSeries
// @Failure 500 {object} models.ErrorResponse
// @Router /api/stock/{symbol} [get]
func (h *StockHandler) GetStock(c *gin.Context) {
	symbol := models.NormalizeSymbol(c.Param("symbol"))
	tf := models.TimeframeOrDefault(c.Query("timeframe"))

	qs, err := h.quotes.GetSeries(c.Request.Context(), symbol, tf)
	if err != nil {
		log.Errorf("Error fetching data for %s: %v", symbol, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, qs)
}
