package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountTransfer is a row of m_account_transfer. Each side sets exactly one
// of its loan or savings account columns.
type AccountTransfer struct {
	ID                       int64           `db:"id"`
	FromLoanAccountID        *int64          `db:"from_loan_account_id"`
	FromSavingsAccountID     *int64          `db:"from_savings_account_id"`
	ToLoanAccountID          *int64          `db:"to_loan_account_id"`
	ToSavingsAccountID       *int64          `db:"to_savings_account_id"`
	TransferType             int             `db:"transfer_type"`
	TransactionDate          time.Time       `db:"transaction_date"`
	Description              string          `db:"description"`
	Amount                   decimal.Decimal `db:"amount"`
	CurrencyCode             string          `db:"currency_code"`
	IsReversed               bool            `db:"is_reversed"`
	FromLoanTransactionID    *int64          `db:"from_loan_transaction_id"`
	ToLoanTransactionID      *int64          `db:"to_loan_transaction_id"`
	FromSavingsTransactionID *int64          `db:"from_savings_transaction_id"`
	ToSavingsTransactionID   *int64          `db:"to_savings_transaction_id"`
	AuditFields
}
