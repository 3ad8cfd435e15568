package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	portssvc "github.com/fiterunited/fineract-template/internal/core/ports/services"
	"github.com/fiterunited/fineract-template/internal/dto"
	"github.com/fiterunited/fineract-template/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transferHandler handles HTTP requests against the account transfer ledger.
type transferHandler struct {
	transferService portssvc.TransferSvcFacade
}

func newTransferHandler(ts portssvc.TransferSvcFacade) *transferHandler {
	return &transferHandler{
		transferService: ts,
	}
}

// RegisterTransferRoutes registers the transfer ledger routes.
func RegisterTransferRoutes(rg *gin.RouterGroup, transferService portssvc.TransferSvcFacade) {
	h := newTransferHandler(transferService)

	transfers := rg.Group("/transfers")
	{
		transfers.POST("", h.recordTransfer)
		transfers.POST("/vendor-disbursements", h.recordVendorDisbursement)
		transfers.GET("/vendor-disbursement", h.findVendorDisbursement)
		transfers.GET("/by-source-loan-transactions", h.listBySourceLoanTransactions)
		transfers.GET("/:transferId", h.getTransfer)
		transfers.POST("/:transferId/reverse", h.reverseTransfer)
	}

	loans := rg.Group("/loans/:loanId/transfers")
	{
		loans.GET("", h.listForLoan)
		loans.GET("/outgoing", h.listFromLoan)
	}

	rg.GET("/loantransactions/:loanTransactionId/transfer", h.getByDestinationLoanTransaction)
}

// recordTransfer godoc
// @Summary Record an account transfer
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   transfer body dto.CreateTransferRequest true "Transfer details"
// @Success 201 {object} dto.TransferResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 409 {object} dto.ErrorResponse "Duplicate transfer"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to record transfer"
// @Security BearerAuth
// @Router /transfers [post]
func (h *transferHandler) recordTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordTransfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("creator_user_id", userID))
	logger.Info("Received request to record transfer",
		slog.String("from", req.From.ToDomain().String()), slog.String("to", req.To.ToDomain().String()))

	transfer, err := h.transferService.RecordTransfer(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to record transfer")
		return
	}

	logger.Info("Transfer recorded", slog.Int64("transfer_id", transfer.ID))
	c.JSON(http.StatusCreated, dto.ToTransferResponse(transfer))
}

// recordVendorDisbursement godoc
// @Summary Record a vendor disbursement
// @Description Creates the savings to vendor savings transfer unless an active one already exists for the same accounts, date and description. Repeated calls return the existing transfer with 200.
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   disbursement body dto.VendorDisbursementRequest true "Disbursement details"
// @Success 201 {object} dto.VendorDisbursementResponse "Transfer created"
// @Success 200 {object} dto.VendorDisbursementResponse "Existing transfer returned"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to record disbursement"
// @Security BearerAuth
// @Router /transfers/vendor-disbursements [post]
func (h *transferHandler) recordVendorDisbursement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.VendorDisbursementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordVendorDisbursement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(
		slog.String("creator_user_id", userID),
		slog.Int64("savings_account_id", req.SavingsAccountID),
		slog.Int64("vendor_savings_account_id", req.VendorSavingsAccountID),
	)

	transfer, created, err := h.transferService.RecordVendorDisbursement(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to record disbursement")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	logger.Info("Vendor disbursement handled", slog.Int64("transfer_id", transfer.ID), slog.Bool("created", created))
	c.JSON(status, dto.VendorDisbursementResponse{Transfer: dto.ToTransferResponse(transfer), Created: created})
}

// findVendorDisbursement godoc
// @Summary Find the active vendor disbursement transfer
// @Tags transfers
// @Produce  json
// @Param   savingsAccountId query int true "Source savings account ID"
// @Param   vendorSavingsAccountId query int true "Vendor savings account ID"
// @Param   date query string true "Transaction date (YYYY-MM-DD)"
// @Param   description query string false "Transfer description"
// @Success 200 {object} dto.TransferResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "No active transfer for the key"
// @Security BearerAuth
// @Router /transfers/vendor-disbursement [get]
func (h *transferHandler) findVendorDisbursement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var q dto.VendorDisbursementQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		logger.Warn("Failed to bind query params for FindVendorDisbursement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	date, err := time.Parse(dto.DateLayout, q.Date)
	if err != nil {
		logger.Warn("Invalid date for FindVendorDisbursement", slog.String("date", q.Date))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid date: " + q.Date})
		return
	}

	transfer, err := h.transferService.FindActiveVendorDisbursementTransfer(c.Request.Context(),
		q.SavingsAccountID, q.VendorSavingsAccountID, date, q.Description)
	if err != nil {
		respondWithError(c, logger, err, "Failed to find disbursement")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransferResponse(transfer))
}

// listBySourceLoanTransactions godoc
// @Summary List active transfers debited by loan transactions
// @Tags transfers
// @Produce  json
// @Param   ids query string true "Comma separated loan transaction IDs"
// @Success 200 {array} dto.TransferResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ids"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /transfers/by-source-loan-transactions [get]
func (h *transferHandler) listBySourceLoanTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var ids []int64
	for _, part := range strings.Split(c.Query("ids"), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			logger.Warn("Invalid loan transaction id", slog.String("value", part))
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid loan transaction id: " + part})
			return
		}
		ids = append(ids, id)
	}

	transfers, err := h.transferService.FindActiveTransfersBySourceLoanTransactions(c.Request.Context(), ids)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list transfers")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransferResponse(transfers))
}

// getTransfer godoc
// @Summary Get a transfer
// @Description Returns the transfer whether or not it has been reversed
// @Tags transfers
// @Produce  json
// @Param   transferId path int true "Transfer ID"
// @Success 200 {object} dto.TransferResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid transfer ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Transfer not found"
// @Security BearerAuth
// @Router /transfers/{transferId} [get]
func (h *transferHandler) getTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transferID, ok := parseIDParam(c, logger, "transferId")
	if !ok {
		return
	}

	transfer, err := h.transferService.GetTransfer(c.Request.Context(), transferID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve transfer")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransferResponse(transfer))
}

// reverseTransfer godoc
// @Summary Reverse a transfer
// @Description Marks the transfer reversed so it drops out of every active lookup. Reversing twice is a no-op.
// @Tags transfers
// @Produce  json
// @Param   transferId path int true "Transfer ID"
// @Success 200 {object} dto.TransferResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid transfer ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Transfer not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to reverse transfer"
// @Security BearerAuth
// @Router /transfers/{transferId}/reverse [post]
func (h *transferHandler) reverseTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transferID, ok := parseIDParam(c, logger, "transferId")
	if !ok {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.Int64("transfer_id", transferID), slog.String("user_id", userID))

	transfer, err := h.transferService.ReverseTransfer(c.Request.Context(), transferID, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to reverse transfer")
		return
	}

	logger.Info("Transfer reversed")
	c.JSON(http.StatusOK, dto.ToTransferResponse(transfer))
}

// listForLoan godoc
// @Summary List active transfers touching a loan
// @Description Transfers where the loan is either endpoint, most recent first
// @Tags transfers
// @Produce  json
// @Param   loanId path int true "Loan account ID"
// @Success 200 {array} dto.TransferResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid loan ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /loans/{loanId}/transfers [get]
func (h *transferHandler) listForLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID, ok := parseIDParam(c, logger, "loanId")
	if !ok {
		return
	}

	transfers, err := h.transferService.FindActiveTransfersForLoan(c.Request.Context(), loanID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list transfers")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransferResponse(transfers))
}

// listFromLoan godoc
// @Summary List active transfers debiting a loan
// @Tags transfers
// @Produce  json
// @Param   loanId path int true "Loan account ID"
// @Success 200 {array} dto.TransferResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid loan ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /loans/{loanId}/transfers/outgoing [get]
func (h *transferHandler) listFromLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID, ok := parseIDParam(c, logger, "loanId")
	if !ok {
		return
	}

	transfers, err := h.transferService.FindActiveTransfersFromLoan(c.Request.Context(), loanID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list transfers")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransferResponse(transfers))
}

// getByDestinationLoanTransaction godoc
// @Summary Get the transfer credited by a loan transaction
// @Tags transfers
// @Produce  json
// @Param   loanTransactionId path int true "Loan transaction ID"
// @Success 200 {object} dto.TransferResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid loan transaction ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "No active transfer"
// @Security BearerAuth
// @Router /loantransactions/{loanTransactionId}/transfer [get]
func (h *transferHandler) getByDestinationLoanTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanTransactionID, ok := parseIDParam(c, logger, "loanTransactionId")
	if !ok {
		return
	}

	transfer, err := h.transferService.FindActiveTransferByDestinationLoanTransaction(c.Request.Context(), loanTransactionID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve transfer")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransferResponse(transfer))
}
