package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/fiterunited/fineract-template/internal/apperrors"
	"github.com/fiterunited/fineract-template/internal/core/domain"
	portsrepo "github.com/fiterunited/fineract-template/internal/core/ports/repositories"
	portssvc "github.com/fiterunited/fineract-template/internal/core/ports/services"
	"github.com/fiterunited/fineract-template/internal/core/services"
	"github.com/fiterunited/fineract-template/internal/dto"
	"github.com/fiterunited/fineract-template/internal/repositories/memory"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// --- Mock Transfer Repository ---
type MockTransferRepository struct {
	mock.Mock
}

func (m *MockTransferRepository) FindTransferByID(ctx context.Context, transferID int64) (*domain.AccountTransferTransaction, error) {
	args := m.Called(ctx, transferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountTransferTransaction), args.Error(1)
}

func (m *MockTransferRepository) FindActiveTransfersFromLoan(ctx context.Context, loanID int64) ([]domain.AccountTransferTransaction, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountTransferTransaction), args.Error(1)
}

func (m *MockTransferRepository) FindActiveTransfersForLoan(ctx context.Context, loanID int64) ([]domain.AccountTransferTransaction, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountTransferTransaction), args.Error(1)
}

func (m *MockTransferRepository) FindActiveVendorDisbursementTransfer(ctx context.Context, savingsID, vendorSavingsID int64, date time.Time, description string) (*domain.AccountTransferTransaction, error) {
	args := m.Called(ctx, savingsID, vendorSavingsID, date, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountTransferTransaction), args.Error(1)
}

func (m *MockTransferRepository) FindActiveTransferByDestinationLoanTransaction(ctx context.Context, loanTransactionID int64) (*domain.AccountTransferTransaction, error) {
	args := m.Called(ctx, loanTransactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountTransferTransaction), args.Error(1)
}

func (m *MockTransferRepository) FindActiveTransfersBySourceLoanTransactions(ctx context.Context, loanTransactionIDs []int64) ([]domain.AccountTransferTransaction, error) {
	args := m.Called(ctx, loanTransactionIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountTransferTransaction), args.Error(1)
}

func (m *MockTransferRepository) SaveTransfer(ctx context.Context, transfer *domain.AccountTransferTransaction) error {
	args := m.Called(ctx, transfer)
	return args.Error(0)
}

func (m *MockTransferRepository) MarkTransferReversed(ctx context.Context, transferID int64, userID string, now time.Time) error {
	args := m.Called(ctx, transferID, userID, now)
	return args.Error(0)
}

var _ portsrepo.TransferRepositoryFacade = (*MockTransferRepository)(nil)

// --- Test Suite ---
type TransferServiceTestSuite struct {
	suite.Suite
	mockRepo *MockTransferRepository
	service  portssvc.TransferSvcFacade
	ctx      context.Context
	now      time.Time
}

func (suite *TransferServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockTransferRepository)
	suite.now = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	suite.service = services.NewTransferService(suite.mockRepo, services.WithTransferClock(func() time.Time { return suite.now }))
	suite.ctx = context.Background()
}

func (suite *TransferServiceTestSuite) vendorRequest() dto.VendorDisbursementRequest {
	return dto.VendorDisbursementRequest{
		SavingsAccountID:       10,
		VendorSavingsAccountID: 20,
		Date:                   time.Date(2025, 3, 14, 17, 45, 0, 0, time.UTC),
		Description:            "Invoice 7781",
		Amount:                 decimal.NewFromInt(250),
		CurrencyCode:           "USD",
	}
}

// --- Test Cases ---

func (suite *TransferServiceTestSuite) TestGetTransfer_NotFound() {
	suite.mockRepo.On("FindTransferByID", suite.ctx, int64(5)).Return(nil, apperrors.ErrNotFound).Once()

	t, err := suite.service.GetTransfer(suite.ctx, 5)

	suite.Nil(t)
	var nfErr *apperrors.NotFoundError
	suite.Require().ErrorAs(err, &nfErr)
	suite.Equal(int64(5), nfErr.ID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransferServiceTestSuite) TestGetTransfer_RepoError() {
	suite.mockRepo.On("FindTransferByID", suite.ctx, int64(5)).Return(nil, assert.AnError).Once()

	_, err := suite.service.GetTransfer(suite.ctx, 5)

	suite.ErrorIs(err, assert.AnError)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransferServiceTestSuite) TestFindActiveTransfersForLoan_EmptyIsNotNil() {
	suite.mockRepo.On("FindActiveTransfersForLoan", suite.ctx, int64(3)).Return(nil, nil).Once()

	transfers, err := suite.service.FindActiveTransfersForLoan(suite.ctx, 3)

	suite.Require().NoError(err)
	suite.NotNil(transfers)
	suite.Empty(transfers)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransferServiceTestSuite) TestFindActiveTransfersBySourceLoanTransactions_EmptyIDs() {
	transfers, err := suite.service.FindActiveTransfersBySourceLoanTransactions(suite.ctx, nil)

	suite.Require().NoError(err)
	suite.NotNil(transfers)
	suite.Empty(transfers)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindActiveTransfersBySourceLoanTransactions", mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestFindActiveVendorDisbursementTransfer_TruncatesDate() {
	expected := &domain.AccountTransferTransaction{ID: 9}
	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	suite.mockRepo.On("FindActiveVendorDisbursementTransfer", suite.ctx, int64(10), int64(20), day, "Invoice 7781").
		Return(expected, nil).Once()

	t, err := suite.service.FindActiveVendorDisbursementTransfer(suite.ctx, 10, 20, day.Add(15*time.Hour), "Invoice 7781")

	suite.Require().NoError(err)
	suite.Equal(expected, t)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransferServiceTestSuite) TestRecordTransfer_Success() {
	loanTxnID := int64(77)
	req := dto.CreateTransferRequest{
		From:                dto.AccountRefRequest{Kind: domain.SavingsAccountKind, ID: 1},
		To:                  dto.AccountRefRequest{Kind: domain.LoanAccountKind, ID: 2},
		Date:                time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC),
		Amount:              decimal.NewFromInt(40),
		CurrencyCode:        "USD",
		ToLoanTransactionID: &loanTxnID,
	}
	suite.mockRepo.On("SaveTransfer", suite.ctx, mock.MatchedBy(func(t *domain.AccountTransferTransaction) bool {
		return t.From == domain.SavingsAccount(1) && t.To == domain.LoanAccount(2) &&
			t.Type == domain.AccountTransferType &&
			t.Date.Equal(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)) && t.CreatedBy == "user-1"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.AccountTransferTransaction).ID = 100
	}).Return(nil).Once()

	t, err := suite.service.RecordTransfer(suite.ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Equal(int64(100), t.ID)
	suite.Equal(suite.now, t.CreatedAt)
	suite.False(t.Reversed)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransferServiceTestSuite) TestRecordTransfer_UniqueViolationIsDuplicate() {
	req := dto.CreateTransferRequest{
		From:         dto.AccountRefRequest{Kind: domain.SavingsAccountKind, ID: 1},
		To:           dto.AccountRefRequest{Kind: domain.SavingsAccountKind, ID: 2},
		Date:         time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC),
		Amount:       decimal.NewFromInt(40),
		CurrencyCode: "USD",
	}
	suite.mockRepo.On("SaveTransfer", suite.ctx, mock.Anything).
		Return(&pgconn.PgError{Code: "23505", ConstraintName: "m_account_transfer_pkey"}).Once()

	t, err := suite.service.RecordTransfer(suite.ctx, req, "user-1")

	suite.Nil(t)
	var dupErr *apperrors.DuplicateKeyError
	suite.Require().ErrorAs(err, &dupErr)
	suite.Equal("error.msg.accounttransfer.duplicate", dupErr.Code)
	suite.Equal(apperrors.KindDuplicateKey, apperrors.KindOf(err))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransferServiceTestSuite) TestRecordTransfer_ValidationErrors() {
	loanTxnID := int64(77)
	req := dto.CreateTransferRequest{
		From:                  dto.AccountRefRequest{Kind: domain.SavingsAccountKind, ID: 1},
		To:                    dto.AccountRefRequest{Kind: domain.SavingsAccountKind, ID: 1},
		Date:                  time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC),
		Amount:                decimal.Zero,
		CurrencyCode:          "USD",
		FromLoanTransactionID: &loanTxnID,
	}

	_, err := suite.service.RecordTransfer(suite.ctx, req, "user-1")

	var verr *apperrors.ValidationError
	suite.Require().ErrorAs(err, &verr)
	suite.True(verr.HasParameter("to"))
	suite.True(verr.HasParameter("amount"))
	suite.True(verr.HasParameter("fromLoanTransactionId"))
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransfer", mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestRecordVendorDisbursement_Creates() {
	req := suite.vendorRequest()
	day := domain.CalendarDay(req.Date)
	suite.mockRepo.On("FindActiveVendorDisbursementTransfer", suite.ctx, int64(10), int64(20), day, "Invoice 7781").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveTransfer", suite.ctx, mock.MatchedBy(func(t *domain.AccountTransferTransaction) bool {
		return t.IsVendorDisbursement()
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.AccountTransferTransaction).ID = 31
	}).Return(nil).Once()

	t, created, err := suite.service.RecordVendorDisbursement(suite.ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.True(created)
	suite.Equal(int64(31), t.ID)
	suite.Equal(domain.SavingsAccount(20), t.To)
	suite.Equal(day, t.Date)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransferServiceTestSuite) TestRecordVendorDisbursement_ReturnsExisting() {
	req := suite.vendorRequest()
	existing := &domain.AccountTransferTransaction{ID: 12, Description: req.Description}
	suite.mockRepo.On("FindActiveVendorDisbursementTransfer", suite.ctx, int64(10), int64(20), domain.CalendarDay(req.Date), "Invoice 7781").
		Return(existing, nil).Once()

	t, created, err := suite.service.RecordVendorDisbursement(suite.ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.False(created)
	suite.Equal(existing, t)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransfer", mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestRecordVendorDisbursement_LosesRace() {
	req := suite.vendorRequest()
	day := domain.CalendarDay(req.Date)
	winner := &domain.AccountTransferTransaction{ID: 13}
	suite.mockRepo.On("FindActiveVendorDisbursementTransfer", suite.ctx, int64(10), int64(20), day, "Invoice 7781").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveTransfer", suite.ctx, mock.Anything).
		Return(&pgconn.PgError{Code: "23505", ConstraintName: portsrepo.VendorDisbursementConstraint}).Once()
	suite.mockRepo.On("FindActiveVendorDisbursementTransfer", suite.ctx, int64(10), int64(20), day, "Invoice 7781").
		Return(winner, nil).Once()

	t, created, err := suite.service.RecordVendorDisbursement(suite.ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.False(created)
	suite.Equal(winner, t)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransferServiceTestSuite) TestRecordVendorDisbursement_OtherSaveError() {
	req := suite.vendorRequest()
	suite.mockRepo.On("FindActiveVendorDisbursementTransfer", suite.ctx, int64(10), int64(20), domain.CalendarDay(req.Date), "Invoice 7781").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveTransfer", suite.ctx, mock.Anything).Return(assert.AnError).Once()

	t, created, err := suite.service.RecordVendorDisbursement(suite.ctx, req, "user-1")

	suite.Nil(t)
	suite.False(created)
	suite.ErrorIs(err, assert.AnError)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransferServiceTestSuite) TestRecordVendorDisbursement_SameAccount() {
	req := suite.vendorRequest()
	req.VendorSavingsAccountID = req.SavingsAccountID
	suite.mockRepo.On("FindActiveVendorDisbursementTransfer", suite.ctx, int64(10), int64(10), domain.CalendarDay(req.Date), "Invoice 7781").
		Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := suite.service.RecordVendorDisbursement(suite.ctx, req, "user-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransfer", mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestReverseTransfer() {
	t := &domain.AccountTransferTransaction{ID: 8}
	suite.mockRepo.On("FindTransferByID", suite.ctx, int64(8)).Return(t, nil).Once()
	suite.mockRepo.On("MarkTransferReversed", suite.ctx, int64(8), "user-2", suite.now).Return(nil).Once()

	reversed, err := suite.service.ReverseTransfer(suite.ctx, 8, "user-2")

	suite.Require().NoError(err)
	suite.True(reversed.Reversed)
	suite.Equal("user-2", reversed.LastUpdatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransferServiceTestSuite) TestReverseTransfer_AlreadyReversed() {
	t := &domain.AccountTransferTransaction{ID: 8, Reversed: true}
	suite.mockRepo.On("FindTransferByID", suite.ctx, int64(8)).Return(t, nil).Once()

	reversed, err := suite.service.ReverseTransfer(suite.ctx, 8, "user-2")

	suite.Require().NoError(err)
	suite.Same(t, reversed)
	suite.mockRepo.AssertNotCalled(suite.T(), "MarkTransferReversed", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestTransferService_RepeatedPlainSavingsTransfers(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositoryProvider(memory.NewStore())
	svc := services.NewTransferService(repos.TransferRepo)
	req := dto.CreateTransferRequest{
		From:         dto.AccountRefRequest{Kind: domain.SavingsAccountKind, ID: 1},
		To:           dto.AccountRefRequest{Kind: domain.SavingsAccountKind, ID: 2},
		Date:         time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC),
		Amount:       decimal.NewFromInt(15),
		CurrencyCode: "USD",
	}

	first, err := svc.RecordTransfer(ctx, req, "user-1")
	require.NoError(t, err)
	req.Date = req.Date.Add(6 * time.Hour)
	second, err := svc.RecordTransfer(ctx, req, "user-1")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	// plain transfers never answer the disbursement lookup
	_, err = svc.FindActiveVendorDisbursementTransfer(ctx, 1, 2, req.Date, "")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	disbursed, created, err := svc.RecordVendorDisbursement(ctx, dto.VendorDisbursementRequest{
		SavingsAccountID:       1,
		VendorSavingsAccountID: 2,
		Date:                   req.Date,
		Amount:                 decimal.NewFromInt(15),
		CurrencyCode:           "USD",
	}, "user-1")
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, disbursed.IsVendorDisbursement())
}

func TestTransferService(t *testing.T) {
	suite.Run(t, new(TransferServiceTestSuite))
}
