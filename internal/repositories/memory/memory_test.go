package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fiterunited/fineract-template/internal/apperrors"
	"github.com/fiterunited/fineract-template/internal/core/domain"
	portsrepo "github.com/fiterunited/fineract-template/internal/core/ports/repositories"
	"github.com/fiterunited/fineract-template/internal/repositories/memory"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func newTransfer(from, to domain.AccountRef, day time.Time, description string) *domain.AccountTransferTransaction {
	return &domain.AccountTransferTransaction{
		From:         from,
		To:           to,
		Type:         domain.AccountTransferType,
		Date:         day,
		Description:  description,
		Amount:       decimal.NewFromInt(100),
		CurrencyCode: "USD",
	}
}

func TestTransferRepository_ActiveQueriesHideReversed(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositoryProvider(memory.NewStore())
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	first := newTransfer(domain.LoanAccount(7), domain.SavingsAccount(1), day, "refund")
	second := newTransfer(domain.SavingsAccount(2), domain.LoanAccount(7), day, "repayment")
	third := newTransfer(domain.LoanAccount(7), domain.SavingsAccount(3), day, "overpayment")
	for _, tr := range []*domain.AccountTransferTransaction{first, second, third} {
		require.NoError(t, repos.TransferRepo.SaveTransfer(ctx, tr))
	}
	require.NoError(t, repos.TransferRepo.MarkTransferReversed(ctx, third.ID, "user", time.Now()))

	forLoan, err := repos.TransferRepo.FindActiveTransfersForLoan(ctx, 7)
	require.NoError(t, err)
	require.Len(t, forLoan, 2)
	assert.Equal(t, second.ID, forLoan[0].ID, "most recent first")
	assert.Equal(t, first.ID, forLoan[1].ID)

	fromLoan, err := repos.TransferRepo.FindActiveTransfersFromLoan(ctx, 7)
	require.NoError(t, err)
	require.Len(t, fromLoan, 1)
	assert.Equal(t, first.ID, fromLoan[0].ID)

	reversed, err := repos.TransferRepo.FindTransferByID(ctx, third.ID)
	require.NoError(t, err)
	assert.True(t, reversed.Reversed)
}

func TestTransferRepository_VendorDisbursementUniqueness(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositoryProvider(memory.NewStore())
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	plain := newTransfer(domain.SavingsAccount(1), domain.SavingsAccount(9), day, "invoice 42")
	require.NoError(t, repos.TransferRepo.SaveTransfer(ctx, plain))
	_, err := repos.TransferRepo.FindActiveVendorDisbursementTransfer(ctx, 1, 9, day, "invoice 42")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	original := newTransfer(domain.SavingsAccount(1), domain.SavingsAccount(9), day, "invoice 42")
	original.Type = domain.VendorDisbursementType
	require.NoError(t, repos.TransferRepo.SaveTransfer(ctx, original))

	// ordinary transfers may repeat the tuple
	require.NoError(t, repos.TransferRepo.SaveTransfer(ctx, newTransfer(domain.SavingsAccount(1), domain.SavingsAccount(9), day, "invoice 42")))

	dup := newTransfer(domain.SavingsAccount(1), domain.SavingsAccount(9), day.Add(5*time.Hour), "invoice 42")
	dup.Type = domain.VendorDisbursementType
	err = repos.TransferRepo.SaveTransfer(ctx, dup)
	var pgErr *pgconn.PgError
	require.True(t, errors.As(err, &pgErr))
	assert.Equal(t, "23505", pgErr.Code)
	assert.Equal(t, portsrepo.VendorDisbursementConstraint, pgErr.ConstraintName)

	found, err := repos.TransferRepo.FindActiveVendorDisbursementTransfer(ctx, 1, 9, day.Add(23*time.Hour), "invoice 42")
	require.NoError(t, err)
	assert.Equal(t, original.ID, found.ID)

	_, err = repos.TransferRepo.FindActiveVendorDisbursementTransfer(ctx, 1, 9, day, "Invoice 42")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// once reversed, the key is free again
	require.NoError(t, repos.TransferRepo.MarkTransferReversed(ctx, original.ID, "user", time.Now()))
	_, err = repos.TransferRepo.FindActiveVendorDisbursementTransfer(ctx, 1, 9, day, "invoice 42")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	require.NoError(t, repos.TransferRepo.SaveTransfer(ctx, dup))
}

func TestTransferRepository_LoanTransactionLookups(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositoryProvider(memory.NewStore())
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	in := newTransfer(domain.SavingsAccount(1), domain.LoanAccount(5), day, "repayment")
	in.ToLoanTransactionID = int64Ptr(500)
	out := newTransfer(domain.LoanAccount(5), domain.SavingsAccount(1), day, "refund")
	out.FromLoanTransactionID = int64Ptr(600)
	require.NoError(t, repos.TransferRepo.SaveTransfer(ctx, in))
	require.NoError(t, repos.TransferRepo.SaveTransfer(ctx, out))

	got, err := repos.TransferRepo.FindActiveTransferByDestinationLoanTransaction(ctx, 500)
	require.NoError(t, err)
	assert.Equal(t, in.ID, got.ID)

	_, err = repos.TransferRepo.FindActiveTransferByDestinationLoanTransaction(ctx, 600)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	bySource, err := repos.TransferRepo.FindActiveTransfersBySourceLoanTransactions(ctx, []int64{600, 700})
	require.NoError(t, err)
	require.Len(t, bySource, 1)
	assert.Equal(t, out.ID, bySource[0].ID)
}

func TestProductRepository_UniqueNamesAndRollback(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositoryProvider(memory.NewStore())

	p := &domain.Product{Name: "Target Saver", ShortName: "TS01"}
	require.NoError(t, repos.ProductRepo.SaveProduct(ctx, nil, p))

	err := repos.ProductRepo.SaveProduct(ctx, nil, &domain.Product{Name: "Target Saver", ShortName: "TS02"})
	var pgErr *pgconn.PgError
	require.True(t, errors.As(err, &pgErr))
	assert.Equal(t, portsrepo.ProductNameConstraint, pgErr.ConstraintName)

	err = repos.ProductRepo.SaveProduct(ctx, nil, &domain.Product{Name: "Other", ShortName: "TS01"})
	require.True(t, errors.As(err, &pgErr))
	assert.Equal(t, portsrepo.ProductShortNameConstraint, pgErr.ConstraintName)

	tx, err := repos.ProductRepo.Begin(ctx)
	require.NoError(t, err)
	rolledBack := &domain.Product{Name: "Scratch", ShortName: "SC01"}
	require.NoError(t, repos.ProductRepo.SaveProduct(ctx, tx, rolledBack))
	require.NoError(t, repos.AccountingMappingRepo.SaveMapping(ctx, tx, domain.ProductGLMapping{
		ProductID: rolledBack.ID, ProductType: domain.RecurringDeposit, Activity: domain.SavingsControlActivity, GLAccountID: 2,
	}))
	require.NoError(t, repos.ProductRepo.Rollback(ctx, tx))
	assert.ErrorIs(t, repos.ProductRepo.Rollback(ctx, tx), pgx.ErrTxClosed)

	_, err = repos.ProductRepo.FindProductByID(ctx, rolledBack.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	mappings, err := repos.AccountingMappingRepo.FindMappings(ctx, rolledBack.ID, domain.RecurringDeposit)
	require.NoError(t, err)
	assert.Empty(t, mappings)
}

func TestProductRepository_DeleteCascadesMappings(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositoryProvider(memory.NewStore())

	p := &domain.Product{Name: "Cascade", ShortName: "CS01"}
	require.NoError(t, repos.ProductRepo.SaveProduct(ctx, nil, p))
	require.NoError(t, repos.AccountingMappingRepo.SaveMapping(ctx, nil, domain.ProductGLMapping{
		ProductID: p.ID, ProductType: domain.RecurringDeposit, Activity: domain.SavingsReferenceActivity, GLAccountID: 1,
	}))

	require.NoError(t, repos.ProductRepo.DeleteProduct(ctx, nil, p.ID))
	mappings, err := repos.AccountingMappingRepo.FindMappings(ctx, p.ID, domain.RecurringDeposit)
	require.NoError(t, err)
	assert.Empty(t, mappings)

	assert.ErrorIs(t, repos.ProductRepo.DeleteProduct(ctx, nil, p.ID), apperrors.ErrNotFound)
}

func TestReferenceRepository_CodeValueMustMatchCodeName(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	memory.SeedReferenceData(store)
	repos := memory.NewRepositoryProvider(store)

	cv, err := repos.CodeValueRepo.FindCodeValueByCodeNameAndID(ctx, domain.SavingsProductCategoryCode, 1)
	require.NoError(t, err)
	assert.Equal(t, "Retail", cv.Label)

	_, err = repos.CodeValueRepo.FindCodeValueByCodeNameAndID(ctx, domain.SavingsProductTypeCode, 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
