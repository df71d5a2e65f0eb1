package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finacct/general_ledger_app/internal/core/ports/services"
	"github.com/finacct/general_ledger_app/internal/dto"
	"github.com/finacct/general_ledger_app/internal/middleware"
	"github.com/finacct/general_ledger_app/internal/utils/accounting"
)

// balanceHandler handles HTTP requests for balances, the chart of accounts
// and the trial balance report.
type balanceHandler struct {
	balanceService portssvc.BalanceSvcFacade
	chartService   portssvc.ChartOfAccountsSvcFacade
}

func newBalanceHandler(balanceService portssvc.BalanceSvcFacade, chartService portssvc.ChartOfAccountsSvcFacade) *balanceHandler {
	return &balanceHandler{balanceService: balanceService, chartService: chartService}
}

func registerBalanceRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvcFacade, chartService portssvc.ChartOfAccountsSvcFacade) {
	h := newBalanceHandler(balanceService, chartService)

	rg.GET("/balances", h.getBalance)
	rg.GET("/fiscal-periods/:periodID/balances", h.listBalancesByPeriod)
	rg.GET("/reports/trial-balance/:periodID", h.trialBalance)
	rg.GET("/accounts", h.listAccounts)
}

// balanceWithNormalized augments the raw balance row with the account type's
// conventional presentation.
type balanceWithNormalized struct {
	dto.BalanceResponse
	NormalizedBalance string `json:"normalizedBalance,omitempty"`
}

func (h *balanceHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accountID := c.Query("accountID")
	fiscalYearID := c.Query("fiscalYearID")
	fiscalPeriodID := c.Query("fiscalPeriodID")
	if accountID == "" || fiscalYearID == "" || fiscalPeriodID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "accountID, fiscalYearID and fiscalPeriodID are required"})
		return
	}

	balance, err := h.balanceService.GetBalance(c.Request.Context(), accountID, fiscalYearID, fiscalPeriodID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to get balance")
		return
	}

	resp := balanceWithNormalized{BalanceResponse: dto.ToBalanceResponse(balance)}
	if accountType, err := h.chartService.GetAccountType(c.Request.Context(), accountID); err == nil {
		if normalized, err := accounting.NormalizedBalance(balance.CurrentBalance, accountType); err == nil {
			resp.NormalizedBalance = normalized.String()
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *balanceHandler) listBalancesByPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	balances, err := h.balanceService.ListBalancesByPeriod(c.Request.Context(), c.Param("periodID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list balances")
		return
	}

	out := make([]dto.BalanceResponse, len(balances))
	for i := range balances {
		out[i] = dto.ToBalanceResponse(&balances[i])
	}
	c.JSON(http.StatusOK, gin.H{"balances": out})
}

func (h *balanceHandler) trialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	report, err := h.balanceService.TrialBalance(c.Request.Context(), c.Param("periodID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build trial balance")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *balanceHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accounts, err := h.chartService.ListAccounts(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": accounts})
}
