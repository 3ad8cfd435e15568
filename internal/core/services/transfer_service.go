package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fiterunited/fineract-template/internal/apperrors"
	"github.com/fiterunited/fineract-template/internal/core/domain"
	portsrepo "github.com/fiterunited/fineract-template/internal/core/ports/repositories"
	portssvc "github.com/fiterunited/fineract-template/internal/core/ports/services"
	"github.com/fiterunited/fineract-template/internal/dto"
)

const (
	transferResource      = "accounttransfer"
	transferResourceName  = "Account Transfer"
	duplicateTransferCode = "error.msg.accounttransfer.duplicate"
)

type transferService struct {
	BaseService
	transferRepo portsrepo.TransferRepositoryFacade
	now          func() time.Time
}

// TransferServiceOption is a functional option for configuring the transfer service
type TransferServiceOption func(*transferService)

// WithTransferClock overrides the time source used for audit fields.
func WithTransferClock(now func() time.Time) TransferServiceOption {
	return func(s *transferService) {
		s.now = now
	}
}

// NewTransferService creates the transfer ledger service.
func NewTransferService(repo portsrepo.TransferRepositoryFacade, options ...TransferServiceOption) portssvc.TransferSvcFacade {
	svc := &transferService{transferRepo: repo, now: time.Now}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

func (s *transferService) GetTransfer(ctx context.Context, transferID int64) (*domain.AccountTransferTransaction, error) {
	t, err := s.transferRepo.FindTransferByID(ctx, transferID)
	if err != nil {
		return nil, s.lookupError(ctx, err, transferID, "Failed to load transfer")
	}
	return t, nil
}

func (s *transferService) FindActiveTransfersFromLoan(ctx context.Context, loanID int64) ([]domain.AccountTransferTransaction, error) {
	transfers, err := s.transferRepo.FindActiveTransfersFromLoan(ctx, loanID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find transfers from loan", slog.Int64("loan_id", loanID))
		return nil, err
	}
	return nonNil(transfers), nil
}

func (s *transferService) FindActiveTransfersForLoan(ctx context.Context, loanID int64) ([]domain.AccountTransferTransaction, error) {
	transfers, err := s.transferRepo.FindActiveTransfersForLoan(ctx, loanID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find transfers for loan", slog.Int64("loan_id", loanID))
		return nil, err
	}
	return nonNil(transfers), nil
}

func (s *transferService) FindActiveVendorDisbursementTransfer(ctx context.Context, savingsID, vendorSavingsID int64, date time.Time, description string) (*domain.AccountTransferTransaction, error) {
	t, err := s.transferRepo.FindActiveVendorDisbursementTransfer(ctx, savingsID, vendorSavingsID, domain.CalendarDay(date), description)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, &apperrors.NotFoundError{Resource: transferResourceName, ID: description}
		}
		s.LogError(ctx, err, "Failed to find vendor disbursement transfer",
			slog.Int64("savings_id", savingsID),
			slog.Int64("vendor_savings_id", vendorSavingsID))
		return nil, err
	}
	return t, nil
}

func (s *transferService) FindActiveTransferByDestinationLoanTransaction(ctx context.Context, loanTransactionID int64) (*domain.AccountTransferTransaction, error) {
	t, err := s.transferRepo.FindActiveTransferByDestinationLoanTransaction(ctx, loanTransactionID)
	if err != nil {
		return nil, s.lookupError(ctx, err, loanTransactionID, "Failed to find transfer by destination loan transaction")
	}
	return t, nil
}

func (s *transferService) FindActiveTransfersBySourceLoanTransactions(ctx context.Context, loanTransactionIDs []int64) ([]domain.AccountTransferTransaction, error) {
	if len(loanTransactionIDs) == 0 {
		return []domain.AccountTransferTransaction{}, nil
	}
	transfers, err := s.transferRepo.FindActiveTransfersBySourceLoanTransactions(ctx, loanTransactionIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to find transfers by source loan transactions", slog.Int("count", len(loanTransactionIDs)))
		return nil, err
	}
	return nonNil(transfers), nil
}

func (s *transferService) RecordTransfer(ctx context.Context, req dto.CreateTransferRequest, userID string) (*domain.AccountTransferTransaction, error) {
	t := domain.AccountTransferTransaction{
		From:                     req.From.ToDomain(),
		To:                       req.To.ToDomain(),
		Type:                     domain.AccountTransferType,
		Date:                     domain.CalendarDay(req.Date),
		Description:              req.Description,
		Amount:                   req.Amount,
		CurrencyCode:             req.CurrencyCode,
		FromLoanTransactionID:    req.FromLoanTransactionID,
		ToLoanTransactionID:      req.ToLoanTransactionID,
		FromSavingsTransactionID: req.FromSavingsTransactionID,
		ToSavingsTransactionID:   req.ToSavingsTransactionID,
	}
	if err := validateTransfer(t); err != nil {
		return nil, err
	}
	if err := s.save(ctx, &t, userID); err != nil {
		return nil, duplicateTransferError(err, t)
	}
	s.LogInfo(ctx, "Transfer recorded",
		slog.Int64("transfer_id", t.ID),
		slog.String("from", t.From.String()),
		slog.String("to", t.To.String()))
	return &t, nil
}

func (s *transferService) RecordVendorDisbursement(ctx context.Context, req dto.VendorDisbursementRequest, userID string) (*domain.AccountTransferTransaction, bool, error) {
	date := domain.CalendarDay(req.Date)

	existing, err := s.transferRepo.FindActiveVendorDisbursementTransfer(ctx, req.SavingsAccountID, req.VendorSavingsAccountID, date, req.Description)
	switch {
	case err == nil:
		s.LogDebug(ctx, "Vendor disbursement already recorded", slog.Int64("transfer_id", existing.ID))
		return existing, false, nil
	case !errors.Is(err, apperrors.ErrNotFound):
		s.LogError(ctx, err, "Failed to check for an existing vendor disbursement")
		return nil, false, err
	}

	t := domain.AccountTransferTransaction{
		From:         domain.SavingsAccount(req.SavingsAccountID),
		To:           domain.SavingsAccount(req.VendorSavingsAccountID),
		Type:         domain.VendorDisbursementType,
		Date:         date,
		Description:  req.Description,
		Amount:       req.Amount,
		CurrencyCode: req.CurrencyCode,
	}
	if err := validateTransfer(t); err != nil {
		return nil, false, err
	}

	if err := s.save(ctx, &t, userID); err != nil {
		// a concurrent request won the race for the same key
		if isUniqueViolation(err, portsrepo.VendorDisbursementConstraint) {
			existing, findErr := s.transferRepo.FindActiveVendorDisbursementTransfer(ctx, req.SavingsAccountID, req.VendorSavingsAccountID, date, req.Description)
			if findErr == nil {
				return existing, false, nil
			}
		}
		return nil, false, duplicateTransferError(err, t)
	}

	s.LogInfo(ctx, "Vendor disbursement recorded", slog.Int64("transfer_id", t.ID))
	return &t, true, nil
}

func (s *transferService) ReverseTransfer(ctx context.Context, transferID int64, userID string) (*domain.AccountTransferTransaction, error) {
	t, err := s.GetTransfer(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if t.Reversed {
		return t, nil
	}

	now := s.now()
	if err := s.transferRepo.MarkTransferReversed(ctx, transferID, userID, now); err != nil {
		return nil, s.lookupError(ctx, err, transferID, "Failed to reverse transfer")
	}
	t.Reversed = true
	t.LastUpdatedAt = now
	t.LastUpdatedBy = userID

	s.LogInfo(ctx, "Transfer reversed", slog.Int64("transfer_id", transferID))
	return t, nil
}

func (s *transferService) save(ctx context.Context, t *domain.AccountTransferTransaction, userID string) error {
	now := s.now()
	t.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
	if err := s.transferRepo.SaveTransfer(ctx, t); err != nil {
		s.LogError(ctx, err, "Failed to save transfer")
		return err
	}
	return nil
}

func (s *transferService) lookupError(ctx context.Context, err error, id any, msg string) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return &apperrors.NotFoundError{Resource: transferResourceName, ID: id}
	}
	s.LogError(ctx, err, msg, slog.Any("id", id))
	return err
}

// validateTransfer checks the endpoint references and the side links against them.
func validateTransfer(t domain.AccountTransferTransaction) error {
	verr := &apperrors.ValidationError{Resource: transferResource}
	add := func(param, code, msg string, value any) {
		verr.Errors = append(verr.Errors, apperrors.NewValidationError(transferResource, param, code, msg, value).Errors...)
	}

	if !t.From.Valid() {
		add("from", "invalid", "The source account must be a loan or savings account with a positive id.", t.From.String())
	}
	if !t.To.Valid() {
		add("to", "invalid", "The destination account must be a loan or savings account with a positive id.", t.To.String())
	}
	if t.From.Valid() && t.From == t.To {
		add("to", "same.as.from", "The source and destination accounts must differ.", t.To.String())
	}
	if !t.Amount.IsPositive() {
		add("amount", "not.greater.than.zero", "The parameter `amount` must be greater than 0.", t.Amount.String())
	}
	if len(t.CurrencyCode) != 3 {
		add("currencyCode", "invalid", "The parameter `currencyCode` must be a 3 letter code.", t.CurrencyCode)
	}
	if t.Date.IsZero() {
		add("date", "cannot.be.blank", "The parameter `date` is mandatory.", nil)
	}
	if t.FromLoanTransactionID != nil && !t.From.IsLoan() {
		add("fromLoanTransactionId", "not.applicable", "A loan transaction can only be linked to a loan source account.", *t.FromLoanTransactionID)
	}
	if t.FromSavingsTransactionID != nil && !t.From.IsSavings() {
		add("fromSavingsTransactionId", "not.applicable", "A savings transaction can only be linked to a savings source account.", *t.FromSavingsTransactionID)
	}
	if t.ToLoanTransactionID != nil && !t.To.IsLoan() {
		add("toLoanTransactionId", "not.applicable", "A loan transaction can only be linked to a loan destination account.", *t.ToLoanTransactionID)
	}
	if t.ToSavingsTransactionID != nil && !t.To.IsSavings() {
		add("toSavingsTransactionId", "not.applicable", "A savings transaction can only be linked to a savings destination account.", *t.ToSavingsTransactionID)
	}

	if len(verr.Errors) > 0 {
		return verr
	}
	return nil
}

// duplicateTransferError turns a unique violation into a typed duplicate error
// and passes any other failure through.
func duplicateTransferError(err error, t domain.AccountTransferTransaction) error {
	if _, ok := uniqueConstraint(err); !ok {
		return err
	}
	return &apperrors.DuplicateKeyError{
		Code:    duplicateTransferCode,
		Message: "Account transfer from " + t.From.String() + " to " + t.To.String() + " on " + t.Date.Format(dto.DateLayout) + " already exists",
		Field:   "description",
		Value:   t.Description,
	}
}

func nonNil(transfers []domain.AccountTransferTransaction) []domain.AccountTransferTransaction {
	if transfers == nil {
		return []domain.AccountTransferTransaction{}
	}
	return transfers
}
