package repositories

import (
	"context"
	"time"

	"github.com/fiterunited/fineract-template/internal/core/domain"
)

// TransferReader defines the active-state lookups over the transfer ledger.
// Every method ignores reversed transfers.
type TransferReader interface {
	// FindTransferByID retrieves a transfer regardless of its reversal state.
	FindTransferByID(ctx context.Context, transferID int64) (*domain.AccountTransferTransaction, error)

	// FindActiveTransfersFromLoan returns transfers whose source is the loan account.
	FindActiveTransfersFromLoan(ctx context.Context, loanID int64) ([]domain.AccountTransferTransaction, error)

	// FindActiveTransfersForLoan returns transfers where the loan account is either
	// endpoint, most recent (highest id) first.
	FindActiveTransfersForLoan(ctx context.Context, loanID int64) ([]domain.AccountTransferTransaction, error)

	// FindActiveVendorDisbursementTransfer returns the transfer matching the
	// disbursement idempotency key, or ErrNotFound.
	FindActiveVendorDisbursementTransfer(ctx context.Context, savingsID, vendorSavingsID int64, date time.Time, description string) (*domain.AccountTransferTransaction, error)

	// FindActiveTransferByDestinationLoanTransaction returns the transfer credited by
	// the loan transaction, or ErrNotFound.
	FindActiveTransferByDestinationLoanTransaction(ctx context.Context, loanTransactionID int64) (*domain.AccountTransferTransaction, error)

	// FindActiveTransfersBySourceLoanTransactions returns transfers debited by any of the loan transactions.
	FindActiveTransfersBySourceLoanTransactions(ctx context.Context, loanTransactionIDs []int64) ([]domain.AccountTransferTransaction, error)
}

// TransferWriter defines write operations on the transfer ledger.
type TransferWriter interface {
	// SaveTransfer inserts a transfer and sets its generated ID.
	SaveTransfer(ctx context.Context, transfer *domain.AccountTransferTransaction) error

	// MarkTransferReversed flags a transfer as reversed.
	MarkTransferReversed(ctx context.Context, transferID int64, userID string, now time.Time) error
}

// TransferRepositoryFacade combines all transfer repository interfaces.
type TransferRepositoryFacade interface {
	TransferReader
	TransferWriter
}

// VendorDisbursementConstraint is the partial unique index that allows one active
// transfer per vendor disbursement key.
const VendorDisbursementConstraint = "m_account_transfer_vendor_disbursement_uq"
