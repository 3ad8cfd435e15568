package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fiterunited/fineract-template/internal/apperrors"
	"github.com/fiterunited/fineract-template/internal/core/domain"
	portsrepo "github.com/fiterunited/fineract-template/internal/core/ports/repositories"
	"github.com/fiterunited/fineract-template/internal/models"
	"github.com/fiterunited/fineract-template/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transferColumns = `
	id, from_loan_account_id, from_savings_account_id, to_loan_account_id, to_savings_account_id,
	transfer_type, transaction_date, description, amount, currency_code, is_reversed,
	from_loan_transaction_id, to_loan_transaction_id, from_savings_transaction_id, to_savings_transaction_id,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxTransferRepository struct {
	BaseRepository
}

// newPgxTransferRepository creates a new repository for the account transfer ledger.
func newPgxTransferRepository(pool *pgxpool.Pool) portsrepo.TransferRepositoryFacade {
	return &PgxTransferRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.TransferRepositoryFacade = (*PgxTransferRepository)(nil)

// FindTransferByID retrieves a transfer regardless of its reversal state.
func (r *PgxTransferRepository) FindTransferByID(ctx context.Context, transferID int64) (*domain.AccountTransferTransaction, error) {
	query := `SELECT ` + transferColumns + ` FROM m_account_transfer WHERE id = $1;`
	return r.findOne(ctx, query, transferID)
}

// FindActiveTransfersFromLoan lists active transfers debiting the loan account.
func (r *PgxTransferRepository) FindActiveTransfersFromLoan(ctx context.Context, loanID int64) ([]domain.AccountTransferTransaction, error) {
	query := `SELECT ` + transferColumns + `
		FROM m_account_transfer
		WHERE is_reversed = false AND from_loan_account_id = $1
		ORDER BY id;`
	return r.findMany(ctx, query, loanID)
}

// FindActiveTransfersForLoan lists active transfers touching the loan account, newest first.
func (r *PgxTransferRepository) FindActiveTransfersForLoan(ctx context.Context, loanID int64) ([]domain.AccountTransferTransaction, error) {
	query := `SELECT ` + transferColumns + `
		FROM m_account_transfer
		WHERE is_reversed = false AND (from_loan_account_id = $1 OR to_loan_account_id = $1)
		ORDER BY id DESC;`
	return r.findMany(ctx, query, loanID)
}

// FindActiveVendorDisbursementTransfer returns the active vendor disbursement for the key.
func (r *PgxTransferRepository) FindActiveVendorDisbursementTransfer(ctx context.Context, savingsID, vendorSavingsID int64, date time.Time, description string) (*domain.AccountTransferTransaction, error) {
	query := `SELECT ` + transferColumns + `
		FROM m_account_transfer
		WHERE is_reversed = false
		  AND transfer_type = $5
		  AND from_savings_account_id = $1
		  AND to_savings_account_id = $2
		  AND transaction_date = $3
		  AND description = $4
		ORDER BY id DESC
		LIMIT 1;`
	return r.findOne(ctx, query, savingsID, vendorSavingsID, domain.CalendarDay(date), description, int(domain.VendorDisbursementType))
}

// FindActiveTransferByDestinationLoanTransaction returns the transfer credited by the loan transaction.
func (r *PgxTransferRepository) FindActiveTransferByDestinationLoanTransaction(ctx context.Context, loanTransactionID int64) (*domain.AccountTransferTransaction, error) {
	query := `SELECT ` + transferColumns + `
		FROM m_account_transfer
		WHERE is_reversed = false AND to_loan_transaction_id = $1
		ORDER BY id DESC
		LIMIT 1;`
	return r.findOne(ctx, query, loanTransactionID)
}

// FindActiveTransfersBySourceLoanTransactions lists active transfers debited by any of the loan transactions.
func (r *PgxTransferRepository) FindActiveTransfersBySourceLoanTransactions(ctx context.Context, loanTransactionIDs []int64) ([]domain.AccountTransferTransaction, error) {
	if len(loanTransactionIDs) == 0 {
		return []domain.AccountTransferTransaction{}, nil
	}
	query := `SELECT ` + transferColumns + `
		FROM m_account_transfer
		WHERE is_reversed = false AND from_loan_transaction_id = ANY($1)
		ORDER BY id;`
	return r.findMany(ctx, query, loanTransactionIDs)
}

// SaveTransfer inserts a transfer and sets its generated ID.
func (r *PgxTransferRepository) SaveTransfer(ctx context.Context, transfer *domain.AccountTransferTransaction) error {
	m := mapping.ToModelAccountTransfer(*transfer)
	query := `
		INSERT INTO m_account_transfer (
			from_loan_account_id, from_savings_account_id, to_loan_account_id, to_savings_account_id,
			transfer_type, transaction_date, description, amount, currency_code, is_reversed,
			from_loan_transaction_id, to_loan_transaction_id, from_savings_transaction_id, to_savings_transaction_id,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id;
	`
	err := r.Pool.QueryRow(ctx, query,
		m.FromLoanAccountID, m.FromSavingsAccountID, m.ToLoanAccountID, m.ToSavingsAccountID,
		m.TransferType, m.TransactionDate, m.Description, m.Amount, m.CurrencyCode, m.IsReversed,
		m.FromLoanTransactionID, m.ToLoanTransactionID, m.FromSavingsTransactionID, m.ToSavingsTransactionID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	).Scan(&transfer.ID)
	if err != nil {
		return fmt.Errorf("failed to insert account transfer: %w", err)
	}
	return nil
}

// MarkTransferReversed flags a transfer as reversed.
func (r *PgxTransferRepository) MarkTransferReversed(ctx context.Context, transferID int64, userID string, now time.Time) error {
	query := `
		UPDATE m_account_transfer
		SET is_reversed = true, last_updated_at = $2, last_updated_by = $3
		WHERE id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, transferID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to reverse account transfer %d: %w", transferID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTransferRepository) findOne(ctx context.Context, query string, args ...any) (*domain.AccountTransferTransaction, error) {
	var m models.AccountTransfer
	if err := scanTransfer(r.Pool.QueryRow(ctx, query, args...), &m); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query account transfer: %w", err)
	}
	t := mapping.ToDomainAccountTransfer(m)
	return &t, nil
}

func (r *PgxTransferRepository) findMany(ctx context.Context, query string, args ...any) ([]domain.AccountTransferTransaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query account transfers: %w", err)
	}
	defer rows.Close()

	modelTransfers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.AccountTransfer, error) {
		var m models.AccountTransfer
		err := scanTransfer(row, &m)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan account transfers: %w", err)
	}
	return mapping.ToDomainAccountTransferSlice(modelTransfers), nil
}

func scanTransfer(row pgx.Row, m *models.AccountTransfer) error {
	return row.Scan(
		&m.ID, &m.FromLoanAccountID, &m.FromSavingsAccountID, &m.ToLoanAccountID, &m.ToSavingsAccountID,
		&m.TransferType, &m.TransactionDate, &m.Description, &m.Amount, &m.CurrencyCode, &m.IsReversed,
		&m.FromLoanTransactionID, &m.ToLoanTransactionID, &m.FromSavingsTransactionID, &m.ToSavingsTransactionID,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
}
