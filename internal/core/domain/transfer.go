package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// AccountKind identifies which portfolio an account belongs to.
type AccountKind string

const (
	LoanAccountKind    AccountKind = "LOAN"
	SavingsAccountKind AccountKind = "SAVINGS"
)

// AccountRef points at exactly one loan or savings account.
type AccountRef struct {
	Kind AccountKind `json:"kind"`
	ID   int64       `json:"id"`
}

// LoanAccount returns a reference to a loan account.
func LoanAccount(id int64) AccountRef { return AccountRef{Kind: LoanAccountKind, ID: id} }

// SavingsAccount returns a reference to a savings account.
func SavingsAccount(id int64) AccountRef { return AccountRef{Kind: SavingsAccountKind, ID: id} }

func (r AccountRef) IsLoan() bool    { return r.Kind == LoanAccountKind }
func (r AccountRef) IsSavings() bool { return r.Kind == SavingsAccountKind }

// Valid reports whether the reference names a known kind and a positive id.
func (r AccountRef) Valid() bool {
	return (r.Kind == LoanAccountKind || r.Kind == SavingsAccountKind) && r.ID > 0
}

func (r AccountRef) String() string {
	return fmt.Sprintf("%s:%d", r.Kind, r.ID)
}

// TransferType tells ordinary transfers apart from the flows that carry an
// idempotency key.
type TransferType int

const (
	AccountTransferType    TransferType = 1
	VendorDisbursementType TransferType = 2
)

// AccountTransferTransaction records a movement of funds between two accounts.
// Reversal is logical: Reversed transfers stay in storage but are hidden from
// every active lookup.
type AccountTransferTransaction struct {
	ID                       int64           `json:"id"`
	From                     AccountRef      `json:"from"`
	To                       AccountRef      `json:"to"`
	Type                     TransferType    `json:"type"`
	Date                     time.Time       `json:"date"`
	Description              string          `json:"description"`
	Amount                   decimal.Decimal `json:"amount"`
	CurrencyCode             string          `json:"currencyCode"`
	Reversed                 bool            `json:"reversed"`
	FromLoanTransactionID    *int64          `json:"fromLoanTransactionId,omitempty"`
	ToLoanTransactionID      *int64          `json:"toLoanTransactionId,omitempty"`
	FromSavingsTransactionID *int64          `json:"fromSavingsTransactionId,omitempty"`
	ToSavingsTransactionID   *int64          `json:"toSavingsTransactionId,omitempty"`
	AuditFields
}

// IsActive reports whether the transfer takes part in current-state queries.
func (t AccountTransferTransaction) IsActive() bool { return !t.Reversed }

// IsVendorDisbursement reports whether the transfer pays a vendor and is
// keyed by (source, destination, date, description).
func (t AccountTransferTransaction) IsVendorDisbursement() bool {
	return t.Type == VendorDisbursementType
}

// InvolvesLoan reports whether the loan account is either endpoint.
func (t AccountTransferTransaction) InvolvesLoan(loanID int64) bool {
	return t.From == LoanAccount(loanID) || t.To == LoanAccount(loanID)
}

// CalendarDay truncates t to midnight UTC of its own calendar date.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameCalendarDay compares two instants by calendar date only.
func SameCalendarDay(a, b time.Time) bool {
	return CalendarDay(a).Equal(CalendarDay(b))
}
