package mapping

import (
	"github.com/fiterunited/fineract-template/internal/core/domain"
	"github.com/fiterunited/fineract-template/internal/models"
)

// ToModelAccountTransfer converts a domain transfer to its row, splitting each
// endpoint into the loan or savings column.
func ToModelAccountTransfer(d domain.AccountTransferTransaction) models.AccountTransfer {
	m := models.AccountTransfer{
		ID:                       d.ID,
		TransferType:             int(d.Type),
		TransactionDate:          domain.CalendarDay(d.Date),
		Description:              d.Description,
		Amount:                   d.Amount,
		CurrencyCode:             d.CurrencyCode,
		IsReversed:               d.Reversed,
		FromLoanTransactionID:    d.FromLoanTransactionID,
		ToLoanTransactionID:      d.ToLoanTransactionID,
		FromSavingsTransactionID: d.FromSavingsTransactionID,
		ToSavingsTransactionID:   d.ToSavingsTransactionID,
		AuditFields:              ToModelAuditFields(d.AuditFields),
	}
	m.FromLoanAccountID, m.FromSavingsAccountID = splitAccountRef(d.From)
	m.ToLoanAccountID, m.ToSavingsAccountID = splitAccountRef(d.To)
	return m
}

// ToDomainAccountTransfer converts a row to a domain transfer.
func ToDomainAccountTransfer(m models.AccountTransfer) domain.AccountTransferTransaction {
	return domain.AccountTransferTransaction{
		ID:                       m.ID,
		From:                     joinAccountRef(m.FromLoanAccountID, m.FromSavingsAccountID),
		To:                       joinAccountRef(m.ToLoanAccountID, m.ToSavingsAccountID),
		Type:                     domain.TransferType(m.TransferType),
		Date:                     domain.CalendarDay(m.TransactionDate),
		Description:              m.Description,
		Amount:                   m.Amount,
		CurrencyCode:             m.CurrencyCode,
		Reversed:                 m.IsReversed,
		FromLoanTransactionID:    m.FromLoanTransactionID,
		ToLoanTransactionID:      m.ToLoanTransactionID,
		FromSavingsTransactionID: m.FromSavingsTransactionID,
		ToSavingsTransactionID:   m.ToSavingsTransactionID,
		AuditFields:              ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountTransferSlice converts a slice of rows.
func ToDomainAccountTransferSlice(ms []models.AccountTransfer) []domain.AccountTransferTransaction {
	ds := make([]domain.AccountTransferTransaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccountTransfer(m)
	}
	return ds
}

func splitAccountRef(ref domain.AccountRef) (loanID, savingsID *int64) {
	id := ref.ID
	switch ref.Kind {
	case domain.LoanAccountKind:
		return &id, nil
	case domain.SavingsAccountKind:
		return nil, &id
	}
	return nil, nil
}

func joinAccountRef(loanID, savingsID *int64) domain.AccountRef {
	if loanID != nil {
		return domain.LoanAccount(*loanID)
	}
	if savingsID != nil {
		return domain.SavingsAccount(*savingsID)
	}
	return domain.AccountRef{}
}
