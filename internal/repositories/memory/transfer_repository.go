package memory

import (
	"context"
	"sort"
	"time"

	"github.com/fiterunited/fineract-template/internal/apperrors"
	"github.com/fiterunited/fineract-template/internal/core/domain"
	portsrepo "github.com/fiterunited/fineract-template/internal/core/ports/repositories"
)

// TransferRepository stores account transfers in memory.
type TransferRepository struct {
	store *Store
}

var _ portsrepo.TransferRepositoryFacade = (*TransferRepository)(nil)

func (r *TransferRepository) FindTransferByID(ctx context.Context, transferID int64) (*domain.AccountTransferTransaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	t, ok := r.store.transfers[transferID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	t = cloneTransfer(t)
	return &t, nil
}

func (r *TransferRepository) FindActiveTransfersFromLoan(ctx context.Context, loanID int64) ([]domain.AccountTransferTransaction, error) {
	return r.active(false, func(t domain.AccountTransferTransaction) bool {
		return t.From == domain.LoanAccount(loanID)
	}), nil
}

func (r *TransferRepository) FindActiveTransfersForLoan(ctx context.Context, loanID int64) ([]domain.AccountTransferTransaction, error) {
	return r.active(true, func(t domain.AccountTransferTransaction) bool {
		return t.InvolvesLoan(loanID)
	}), nil
}

func (r *TransferRepository) FindActiveVendorDisbursementTransfer(ctx context.Context, savingsID, vendorSavingsID int64, date time.Time, description string) (*domain.AccountTransferTransaction, error) {
	matches := r.active(true, func(t domain.AccountTransferTransaction) bool {
		return t.IsVendorDisbursement() &&
			t.From == domain.SavingsAccount(savingsID) &&
			t.To == domain.SavingsAccount(vendorSavingsID) &&
			domain.SameCalendarDay(t.Date, date) &&
			t.Description == description
	})
	if len(matches) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &matches[0], nil
}

func (r *TransferRepository) FindActiveTransferByDestinationLoanTransaction(ctx context.Context, loanTransactionID int64) (*domain.AccountTransferTransaction, error) {
	matches := r.active(true, func(t domain.AccountTransferTransaction) bool {
		return t.ToLoanTransactionID != nil && *t.ToLoanTransactionID == loanTransactionID
	})
	if len(matches) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &matches[0], nil
}

func (r *TransferRepository) FindActiveTransfersBySourceLoanTransactions(ctx context.Context, loanTransactionIDs []int64) ([]domain.AccountTransferTransaction, error) {
	wanted := make(map[int64]struct{}, len(loanTransactionIDs))
	for _, id := range loanTransactionIDs {
		wanted[id] = struct{}{}
	}
	return r.active(false, func(t domain.AccountTransferTransaction) bool {
		if t.FromLoanTransactionID == nil {
			return false
		}
		_, ok := wanted[*t.FromLoanTransactionID]
		return ok
	}), nil
}

func (r *TransferRepository) SaveTransfer(ctx context.Context, transfer *domain.AccountTransferTransaction) error {
	return r.store.write(nil, func() (func(), error) {
		if transfer.IsActive() && transfer.IsVendorDisbursement() {
			for _, t := range r.store.transfers {
				if t.IsActive() && t.IsVendorDisbursement() && t.From == transfer.From && t.To == transfer.To &&
					domain.SameCalendarDay(t.Date, transfer.Date) && t.Description == transfer.Description {
					return nil, uniqueViolation(portsrepo.VendorDisbursementConstraint, "m_account_transfer")
				}
			}
		}
		r.store.nextTransferID++
		transfer.ID = r.store.nextTransferID
		r.store.transfers[transfer.ID] = cloneTransfer(*transfer)
		return nil, nil
	})
}

func (r *TransferRepository) MarkTransferReversed(ctx context.Context, transferID int64, userID string, now time.Time) error {
	return r.store.write(nil, func() (func(), error) {
		t, ok := r.store.transfers[transferID]
		if !ok {
			return nil, apperrors.ErrNotFound
		}
		t.Reversed = true
		t.LastUpdatedAt = now
		t.LastUpdatedBy = userID
		r.store.transfers[transferID] = t
		return nil, nil
	})
}

// active returns the non-reversed transfers accepted by match, ordered by id.
func (r *TransferRepository) active(newestFirst bool, match func(domain.AccountTransferTransaction) bool) []domain.AccountTransferTransaction {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	res := []domain.AccountTransferTransaction{}
	for _, t := range r.store.transfers {
		if t.IsActive() && match(t) {
			res = append(res, cloneTransfer(t))
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if newestFirst {
			return res[i].ID > res[j].ID
		}
		return res[i].ID < res[j].ID
	})
	return res
}

func cloneTransfer(t domain.AccountTransferTransaction) domain.AccountTransferTransaction {
	t.FromLoanTransactionID = cloneInt64(t.FromLoanTransactionID)
	t.ToLoanTransactionID = cloneInt64(t.ToLoanTransactionID)
	t.FromSavingsTransactionID = cloneInt64(t.FromSavingsTransactionID)
	t.ToSavingsTransactionID = cloneInt64(t.ToSavingsTransactionID)
	return t
}

func cloneInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
