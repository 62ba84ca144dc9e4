package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/epeers/stockalert/internal/models"
	"github.com/epeers/stockalert/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// DashboardHandler serves the session endpoints used by the dashboard:
// settings, watch-list, refresh, alerts and chart data.
type DashboardHandler struct {
	session   *services.Session
	chartSvc  *services.ChartService
	refresher *services.Refresher
	now       func() time.Time
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(session *services.Session, chartSvc *services.ChartService, refresher *services.Refresher) *DashboardHandler {
	return &DashboardHandler{
		session:   session,
		chartSvc:  chartSvc,
		refresher: refresher,
		now:       time.Now,
	}
}

// GetSettings handles GET /api/settings
// @Summary Get settings
// @Tags settings
// @Produce json
// @Success 200 {object} models.Settings
// @Router /api/settings [get]
func (h *DashboardHandler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.session.Settings())
}

// UpdateSettings handles PUT /api/settings
// @Summary Replace settings
// @Description Overwrites the stored settings. Enabling volume switches the chart to price mode.
// @Tags settings
// @Accept json
// @Produce json
// @Param settings body models.Settings true "Settings"
// @Success 200 {object} models.Settings
// @Failure 400 {object} models.ErrorResponse
// @Router /api/settings [put]
func (h *DashboardHandler) UpdateSettings(c *gin.Context) {
	var req models.Settings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	settings, err := h.session.UpdateSettings(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// GetWatchlist handles GET /api/watchlist
// @Summary Get the watch-list
// @Tags watchlist
// @Produce json
// @Success 200 {object} models.WatchlistResponse
// @Router /api/watchlist [get]
func (h *DashboardHandler) GetWatchlist(c *gin.Context) {
	_, triggered := h.session.Alerts()
	c.JSON(http.StatusOK, h.chartSvc.Watchlist(h.session.Snapshot(), triggered))
}

// AddSymbol handles POST /api/watchlist
// @Summary Add a symbol
// @Description Fetches the symbol first and adds it only if data came back.
// @Tags watchlist
// @Accept json
// @Produce json
// @Param request body models.AddSymbolRequest true "Symbol to add"
// @Success 201 {object} models.QuoteSeries
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /api/watchlist [post]
func (h *DashboardHandler) AddSymbol(c *gin.Context) {
	var req models.AddSymbolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	qs, err := h.session.AddSymbol(c.Request.Context(), req.Symbol)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidSymbol),
			errors.Is(err, services.ErrDuplicateSymbol),
			errors.Is(err, services.ErrWatchlistFull):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "bad_request",
				Message: err.Error(),
			})
		default:
			log.Warnf("AddSymbol: %v", err)
			c.JSON(http.StatusBadGateway, models.ErrorResponse{
				Error:   "upstream_error",
				Message: "Failed to add stock. Please check the symbol and try again: " + err.Error(),
			})
		}
		return
	}
	c.JSON(http.StatusCreated, qs)
}

// RemoveSymbol handles DELETE /api/watchlist/:symbol
// @Summary Remove a symbol
// @Tags watchlist
// @Produce json
// @Param symbol path string true "Ticker symbol"
// @Success 200 {object} models.WatchlistResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/watchlist/{symbol} [delete]
func (h *DashboardHandler) RemoveSymbol(c *gin.Context) {
	if err := h.session.RemoveSymbol(c.Request.Context(), c.Param("symbol")); err != nil {
		if errors.Is(err, services.ErrSymbolNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:   "not_found",
				Message: err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}
	h.GetWatchlist(c)
}

// Refresh handles POST /api/refresh
// @Summary Refresh all watched symbols
// @Description Refetches every symbol. A total outage returns 503 and keeps the previous data.
// @Tags watchlist
// @Produce json
// @Success 200 {object} models.RefreshResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 503 {object} models.RefreshResponse
// @Router /api/refresh [post]
func (h *DashboardHandler) Refresh(c *gin.Context) {
	ctx, wc := services.NewWarningContext(c.Request.Context())

	batch, err := h.refresher.RunNow(ctx)
	if err != nil {
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:   "conflict",
			Message: err.Error(),
		})
		return
	}

	resp := models.RefreshResponse{
		Status:    string(batch.Status()),
		Requested: len(batch.Requested),
		Succeeded: batch.Succeeded(),
		Failed:    batch.FailedSymbols(),
		Warnings:  wc.GetWarnings(),
	}
	if batch.Status() == services.BatchOutage {
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ConfirmAlerts handles POST /api/alerts/confirm
// @Summary Set the alert rule and evaluate it
// @Tags alerts
// @Accept json
// @Produce json
// @Param request body models.ConfirmAlertsRequest true "Threshold (percent) and period"
// @Success 200 {object} models.AlertsResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/alerts/confirm [post]
func (h *DashboardHandler) ConfirmAlerts(c *gin.Context) {
	var req models.ConfirmAlertsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	period, err := models.ParseTimeframe(req.Period)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	ctx, wc := services.NewWarningContext(c.Request.Context())
	rule := models.AlertRule{Threshold: *req.Threshold, Window: period}
	triggered, err := h.session.ConfirmRule(ctx, rule)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.AlertsResponse{
		Rule:     rule,
		Alerts:   triggered,
		Warnings: wc.GetWarnings(),
	})
}

// GetAlerts handles GET /api/alerts
// @Summary Get the last computed alerts
// @Tags alerts
// @Produce json
// @Success 200 {object} models.AlertsResponse
// @Router /api/alerts [get]
func (h *DashboardHandler) GetAlerts(c *gin.Context) {
	rule, triggered := h.session.Alerts()
	c.JSON(http.StatusOK, models.AlertsResponse{Rule: rule, Alerts: triggered})
}

// GetChart handles GET /api/chart
// @Summary Chart datasets for the loaded watch-list
// @Tags chart
// @Produce json
// @Param timeframe query string false "1M, 3M, 6M or 1Y" default(3M)
// @Success 200 {object} models.ChartResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/chart [get]
func (h *DashboardHandler) GetChart(c *gin.Context) {
	tf := models.TimeframeOrDefault(c.Query("timeframe"))
	settings := h.session.Settings()

	ctx, wc := services.NewWarningContext(c.Request.Context())
	resp, err := h.chartSvc.Build(ctx, h.session.Snapshot(), settings.ChartSettings, tf, h.now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}
	resp.Warnings = wc.GetWarnings()
	c.JSON(http.StatusOK, resp)
}
