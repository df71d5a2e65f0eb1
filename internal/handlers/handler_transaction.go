package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finacct/general_ledger_app/internal/core/domain"
	portssvc "github.com/finacct/general_ledger_app/internal/core/ports/services"
	"github.com/finacct/general_ledger_app/internal/dto"
	"github.com/finacct/general_ledger_app/internal/middleware"
)

// transactionHandler handles HTTP requests for ledger transactions and their
// lifecycle transitions.
type transactionHandler struct {
	ledgerService  portssvc.LedgerSvcFacade
	postingService portssvc.PostingSvcFacade
}

func newTransactionHandler(ledgerService portssvc.LedgerSvcFacade, postingService portssvc.PostingSvcFacade) *transactionHandler {
	return &transactionHandler{
		ledgerService:  ledgerService,
		postingService: postingService,
	}
}

func registerTransactionRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, postingService portssvc.PostingSvcFacade) {
	h := newTransactionHandler(ledgerService, postingService)

	txns := rg.Group("/transactions")
	txns.POST("", h.createTransaction)
	txns.GET("", h.listTransactions)
	txns.GET("/:transactionID", h.getTransaction)
	txns.POST("/:transactionID/submit", h.submitTransaction)
	txns.POST("/:transactionID/approve", h.approveTransaction)
	txns.POST("/:transactionID/reject", h.rejectTransaction)
	txns.POST("/:transactionID/post", h.postTransaction)
	txns.POST("/:transactionID/void", h.voidTransaction)
}

func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.ledgerService.CreateTransaction(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create transaction")
		return
	}

	logger.Info("Transaction created", slog.String("transaction_id", txn.TransactionID), slog.String("status", string(txn.Status)))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// listTransactions dispatches on whichever filter query parameter is present.
// Exactly one of fiscalYearID, fiscalPeriodID, accountID, type or status is
// expected.
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ctx := c.Request.Context()

	var (
		txns []domain.Transaction
		err  error
	)
	switch {
	case c.Query("fiscalYearID") != "":
		txns, err = h.ledgerService.ListByFiscalYear(ctx, c.Query("fiscalYearID"))
	case c.Query("fiscalPeriodID") != "":
		txns, err = h.ledgerService.ListByFiscalPeriod(ctx, c.Query("fiscalPeriodID"))
	case c.Query("accountID") != "":
		txns, err = h.ledgerService.ListByAccount(ctx, c.Query("accountID"))
	case c.Query("type") != "":
		txns, err = h.ledgerService.ListByType(ctx, domain.TransactionType(c.Query("type")))
	case c.Query("status") != "":
		txns, err = h.ledgerService.ListByStatus(ctx, domain.TransactionStatus(c.Query("status")))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "One of fiscalYearID, fiscalPeriodID, accountID, type or status is required"})
		return
	}
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": dto.ToTransactionResponses(txns)})
}

func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	txn, err := h.ledgerService.GetTransactionByID(c.Request.Context(), c.Param("transactionID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) submitTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.ledgerService.SubmitTransaction(c.Request.Context(), c.Param("transactionID"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to submit transaction")
		return
	}

	logger.Info("Transaction submitted", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) approveTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.ledgerService.ApproveTransaction(c.Request.Context(), c.Param("transactionID"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to approve transaction")
		return
	}

	logger.Info("Transaction approved", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) rejectTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RejectTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for rejectTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.ledgerService.RejectTransaction(c.Request.Context(), c.Param("transactionID"), userID, req.Reason)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to reject transaction")
		return
	}

	logger.Info("Transaction rejected", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) postTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.postingService.PostTransaction(c.Request.Context(), c.Param("transactionID"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to post transaction")
		return
	}

	middleware.CountTransactionPosted()
	logger.Info("Transaction posted", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) voidTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.VoidTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for voidTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.postingService.VoidTransaction(c.Request.Context(), c.Param("transactionID"), userID, req.Reason)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to void transaction")
		return
	}

	middleware.CountTransactionVoided()
	logger.Info("Transaction voided", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}
