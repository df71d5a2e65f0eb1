package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finacct/general_ledger_app/internal/core/ports/services"
	"github.com/finacct/general_ledger_app/internal/dto"
	"github.com/finacct/general_ledger_app/internal/middleware"
)

// fiscalHandler handles HTTP requests for the fiscal calendar.
type fiscalHandler struct {
	fiscalService portssvc.FiscalSvcFacade
}

func newFiscalHandler(fiscalService portssvc.FiscalSvcFacade) *fiscalHandler {
	return &fiscalHandler{fiscalService: fiscalService}
}

func registerFiscalRoutes(rg *gin.RouterGroup, fiscalService portssvc.FiscalSvcFacade) {
	h := newFiscalHandler(fiscalService)

	years := rg.Group("/fiscal-years")
	years.POST("", h.createYear)
	years.GET("", h.listYears)
	years.GET("/current", h.getCurrentYear)
	years.GET("/:yearID", h.getYear)
	years.GET("/:yearID/periods", h.listPeriods)
	years.POST("/:yearID/open", h.openYear)
	years.POST("/:yearID/close", h.closeYear)

	periods := rg.Group("/fiscal-periods")
	periods.POST("", h.createPeriod)
	periods.GET("/:periodID", h.getPeriod)
	periods.POST("/:periodID/close", h.closePeriod)
}

func (h *fiscalHandler) createYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateFiscalYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createYear", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	year, err := h.fiscalService.CreateYear(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create fiscal year")
		return
	}

	logger.Info("Fiscal year created", slog.String("fiscal_year_id", year.FiscalYearID))
	c.JSON(http.StatusCreated, dto.ToFiscalYearResponse(year))
}

func (h *fiscalHandler) listYears(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	years, err := h.fiscalService.ListYears(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list fiscal years")
		return
	}

	out := make([]dto.FiscalYearResponse, len(years))
	for i := range years {
		out[i] = dto.ToFiscalYearResponse(&years[i])
	}
	c.JSON(http.StatusOK, gin.H{"fiscalYears": out})
}

func (h *fiscalHandler) getCurrentYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	year, err := h.fiscalService.GetCurrentYear(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to get current fiscal year")
		return
	}
	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(year))
}

func (h *fiscalHandler) getYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	year, err := h.fiscalService.GetYearByID(c.Request.Context(), c.Param("yearID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to get fiscal year")
		return
	}
	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(year))
}

func (h *fiscalHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	periods, err := h.fiscalService.ListPeriods(c.Request.Context(), c.Param("yearID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list fiscal periods")
		return
	}

	out := make([]dto.FiscalPeriodResponse, len(periods))
	for i := range periods {
		out[i] = dto.ToFiscalPeriodResponse(&periods[i])
	}
	c.JSON(http.StatusOK, gin.H{"fiscalPeriods": out})
}

func (h *fiscalHandler) openYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	year, err := h.fiscalService.OpenYear(c.Request.Context(), c.Param("yearID"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to open fiscal year")
		return
	}

	logger.Info("Fiscal year opened", slog.String("fiscal_year_id", year.FiscalYearID))
	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(year))
}

func (h *fiscalHandler) closeYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	year, err := h.fiscalService.CloseYear(c.Request.Context(), c.Param("yearID"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to close fiscal year")
		return
	}

	logger.Info("Fiscal year closed", slog.String("fiscal_year_id", year.FiscalYearID))
	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(year))
}

func (h *fiscalHandler) createPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateFiscalPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createPeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	period, err := h.fiscalService.CreatePeriod(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create fiscal period")
		return
	}

	logger.Info("Fiscal period created", slog.String("fiscal_period_id", period.FiscalPeriodID))
	c.JSON(http.StatusCreated, dto.ToFiscalPeriodResponse(period))
}

func (h *fiscalHandler) getPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	period, err := h.fiscalService.GetPeriodByID(c.Request.Context(), c.Param("periodID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to get fiscal period")
		return
	}
	c.JSON(http.StatusOK, dto.ToFiscalPeriodResponse(period))
}

func (h *fiscalHandler) closePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	period, err := h.fiscalService.ClosePeriod(c.Request.Context(), c.Param("periodID"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to close fiscal period")
		return
	}

	logger.Info("Fiscal period closed", slog.String("fiscal_period_id", period.FiscalPeriodID))
	c.JSON(http.StatusOK, dto.ToFiscalPeriodResponse(period))
}
