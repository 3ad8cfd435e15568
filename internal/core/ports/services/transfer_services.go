package services

import (
	"context"
	"time"

	"github.com/fiterunited/fineract-template/internal/core/domain"
	"github.com/fiterunited/fineract-template/internal/dto"
)

// TransferReaderSvc defines the active-state lookups of the transfer ledger.
type TransferReaderSvc interface {
	// GetTransfer retrieves a transfer by id, reversed or not.
	GetTransfer(ctx context.Context, transferID int64) (*domain.AccountTransferTransaction, error)

	// FindActiveTransfersFromLoan returns active transfers debiting the loan account.
	FindActiveTransfersFromLoan(ctx context.Context, loanID int64) ([]domain.AccountTransferTransaction, error)

	// FindActiveTransfersForLoan returns active transfers touching the loan account, latest first.
	FindActiveTransfersForLoan(ctx context.Context, loanID int64) ([]domain.AccountTransferTransaction, error)

	// FindActiveVendorDisbursementTransfer looks up the transfer for a vendor disbursement.
	FindActiveVendorDisbursementTransfer(ctx context.Context, savingsID, vendorSavingsID int64, date time.Time, description string) (*domain.AccountTransferTransaction, error)

	// FindActiveTransferByDestinationLoanTransaction returns the transfer credited by a loan transaction.
	FindActiveTransferByDestinationLoanTransaction(ctx context.Context, loanTransactionID int64) (*domain.AccountTransferTransaction, error)

	// FindActiveTransfersBySourceLoanTransactions returns transfers debited by the loan transactions.
	FindActiveTransfersBySourceLoanTransactions(ctx context.Context, loanTransactionIDs []int64) ([]domain.AccountTransferTransaction, error)
}

// TransferWriterSvc defines the transfer workflows.
type TransferWriterSvc interface {
	// RecordTransfer persists a new transfer.
	RecordTransfer(ctx context.Context, req dto.CreateTransferRequest, userID string) (*domain.AccountTransferTransaction, error)

	// RecordVendorDisbursement creates the disbursement transfer unless an active one
	// already exists for the same key. created is false when the existing transfer is returned.
	RecordVendorDisbursement(ctx context.Context, req dto.VendorDisbursementRequest, userID string) (transfer *domain.AccountTransferTransaction, created bool, err error)

	// ReverseTransfer marks a transfer as reversed.
	ReverseTransfer(ctx context.Context, transferID int64, userID string) (*domain.AccountTransferTransaction, error)
}

// TransferSvcFacade combines all transfer service interfaces.
type TransferSvcFacade interface {
	TransferReaderSvc
	TransferWriterSvc
}
