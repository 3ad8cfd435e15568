package dto

import (
	"time"

	"github.com/fiterunited/fineract-template/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountRefRequest names one transfer endpoint.
type AccountRefRequest struct {
	Kind domain.AccountKind `json:"kind" binding:"required,oneof=LOAN SAVINGS"`
	ID   int64              `json:"id" binding:"required,gt=0"`
}

// ToDomain converts the request into a domain.AccountRef.
func (r AccountRefRequest) ToDomain() domain.AccountRef {
	return domain.AccountRef{Kind: r.Kind, ID: r.ID}
}

// CreateTransferRequest defines the data needed to record a transfer.
type CreateTransferRequest struct {
	From                     AccountRefRequest `json:"from" binding:"required"`
	To                       AccountRefRequest `json:"to" binding:"required"`
	Date                     time.Time         `json:"date" binding:"required"`
	Description              string            `json:"description"`
	Amount                   decimal.Decimal   `json:"amount"`
	CurrencyCode             string            `json:"currencyCode" binding:"required,len=3"`
	FromLoanTransactionID    *int64            `json:"fromLoanTransactionId"`
	ToLoanTransactionID      *int64            `json:"toLoanTransactionId"`
	FromSavingsTransactionID *int64            `json:"fromSavingsTransactionId"`
	ToSavingsTransactionID   *int64            `json:"toSavingsTransactionId"`
}

// VendorDisbursementRequest moves funds from a savings account to a vendor's savings account.
// (savingsAccountId, vendorSavingsAccountId, date, description) is the idempotency key.
type VendorDisbursementRequest struct {
	SavingsAccountID       int64           `json:"savingsAccountId" binding:"required,gt=0"`
	VendorSavingsAccountID int64           `json:"vendorSavingsAccountId" binding:"required,gt=0"`
	Date                   time.Time       `json:"date" binding:"required"`
	Description            string          `json:"description" binding:"required"`
	Amount                 decimal.Decimal `json:"amount"`
	CurrencyCode           string          `json:"currencyCode" binding:"required,len=3"`
}

// VendorDisbursementQuery holds the lookup parameters of the vendor disbursement query.
type VendorDisbursementQuery struct {
	SavingsAccountID       int64  `form:"savingsAccountId" binding:"required,gt=0"`
	VendorSavingsAccountID int64  `form:"vendorSavingsAccountId" binding:"required,gt=0"`
	Date                   string `form:"date" binding:"required"`
	Description            string `form:"description"`
}

// TransferResponse defines the data returned for a transfer.
type TransferResponse struct {
	ID                       int64             `json:"id"`
	From                     domain.AccountRef `json:"from"`
	To                       domain.AccountRef `json:"to"`
	VendorDisbursement       bool              `json:"vendorDisbursement"`
	Date                     string            `json:"date"`
	Description              string            `json:"description"`
	Amount                   decimal.Decimal   `json:"amount"`
	CurrencyCode             string            `json:"currencyCode"`
	Reversed                 bool              `json:"reversed"`
	FromLoanTransactionID    *int64            `json:"fromLoanTransactionId,omitempty"`
	ToLoanTransactionID      *int64            `json:"toLoanTransactionId,omitempty"`
	FromSavingsTransactionID *int64            `json:"fromSavingsTransactionId,omitempty"`
	ToSavingsTransactionID   *int64            `json:"toSavingsTransactionId,omitempty"`
	CreatedAt                time.Time         `json:"createdAt"`
	CreatedBy                string            `json:"createdBy"`
}

// VendorDisbursementResponse reports whether a new transfer was written.
type VendorDisbursementResponse struct {
	Transfer TransferResponse `json:"transfer"`
	Created  bool             `json:"created"`
}

// DateLayout is the calendar-day format used by transfer dates on the wire.
const DateLayout = "2006-01-02"

// ToTransferResponse converts a domain transfer to its response DTO.
func ToTransferResponse(t *domain.AccountTransferTransaction) TransferResponse {
	return TransferResponse{
		ID:                       t.ID,
		From:                     t.From,
		To:                       t.To,
		VendorDisbursement:       t.IsVendorDisbursement(),
		Date:                     t.Date.Format(DateLayout),
		Description:              t.Description,
		Amount:                   t.Amount,
		CurrencyCode:             t.CurrencyCode,
		Reversed:                 t.Reversed,
		FromLoanTransactionID:    t.FromLoanTransactionID,
		ToLoanTransactionID:      t.ToLoanTransactionID,
		FromSavingsTransactionID: t.FromSavingsTransactionID,
		ToSavingsTransactionID:   t.ToSavingsTransactionID,
		CreatedAt:                t.CreatedAt,
		CreatedBy:                t.CreatedBy,
	}
}

// ToListTransferResponse converts a slice of transfers.
func ToListTransferResponse(transfers []domain.AccountTransferTransaction) []TransferResponse {
	res := make([]TransferResponse, len(transfers))
	for i := range transfers {
		res[i] = ToTransferResponse(&transfers[i])
	}
	return res
}
