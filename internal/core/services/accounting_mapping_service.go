package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fiterunited/fineract-template/internal/apperrors"
	"github.com/fiterunited/fineract-template/internal/core/domain"
	portsrepo "github.com/fiterunited/fineract-template/internal/core/ports/repositories"
	portssvc "github.com/fiterunited/fineract-template/internal/core/ports/services"
	"github.com/jackc/pgx/v5"
)

type accountingMappingService struct {
	BaseService
	mappingRepo   portsrepo.AccountingMappingRepository
	glAccountRepo portsrepo.GLAccountReader
}

// NewAccountingMappingService creates the synchronizer for product GL mappings.
func NewAccountingMappingService(mappingRepo portsrepo.AccountingMappingRepository, glAccountRepo portsrepo.GLAccountReader) portssvc.AccountingMappingSynchronizer {
	return &accountingMappingService{mappingRepo: mappingRepo, glAccountRepo: glAccountRepo}
}

var _ portssvc.AccountingMappingSynchronizer = (*accountingMappingService)(nil)

// CreateMapping stores one mapping per cash accounting activity. Products
// without cash accounting get no mappings.
func (s *accountingMappingService) CreateMapping(ctx context.Context, tx pgx.Tx, productID int64, cmd domain.ProductCommand, productType domain.DepositAccountType) error {
	rule := domain.AccountingRuleType(derefInt(cmd.Int(domain.AccountingRuleParam)))
	if !rule.IsCashBased() {
		return nil
	}
	for _, activity := range domain.CashBasedSavingsActivities {
		glAccountID, err := s.requiredGLAccount(ctx, cmd, activity)
		if err != nil {
			return err
		}
		if err := s.mappingRepo.SaveMapping(ctx, tx, domain.ProductGLMapping{
			ProductID:   productID,
			ProductType: productType,
			Activity:    activity.Activity,
			GLAccountID: glAccountID,
		}); err != nil {
			return err
		}
	}
	s.LogDebug(ctx, "Created accounting mappings", slog.Int64("product_id", productID), slog.String("product_type", productType.String()))
	return nil
}

// UpdateMapping recreates the mappings when the accounting rule changed and
// otherwise updates the mapped accounts the command names.
func (s *accountingMappingService) UpdateMapping(ctx context.Context, tx pgx.Tx, productID int64, cmd domain.ProductCommand, accountingTypeChanged bool, rule domain.AccountingRuleType, productType domain.DepositAccountType) (domain.ChangeSet, error) {
	changes := domain.ChangeSet{}

	if accountingTypeChanged {
		if err := s.mappingRepo.DeleteMappings(ctx, tx, productID, productType); err != nil {
			return nil, err
		}
		if !rule.IsCashBased() {
			return changes, nil
		}
		for _, activity := range domain.CashBasedSavingsActivities {
			glAccountID, err := s.requiredGLAccount(ctx, cmd, activity)
			if err != nil {
				return nil, err
			}
			if err := s.mappingRepo.SaveMapping(ctx, tx, domain.ProductGLMapping{
				ProductID: productID, ProductType: productType, Activity: activity.Activity, GLAccountID: glAccountID,
			}); err != nil {
				return nil, err
			}
		}
		return changes, nil
	}

	if !rule.IsCashBased() {
		return changes, nil
	}

	existing, err := s.mappingRepo.FindMappings(ctx, productID, productType)
	if err != nil {
		return nil, err
	}
	for _, activity := range domain.CashBasedSavingsActivities {
		if !cmd.Has(activity.Param) {
			continue
		}
		glAccountID, err := s.requiredGLAccount(ctx, cmd, activity)
		if err != nil {
			return nil, err
		}
		current, ok := existing[activity.Activity]
		if ok && current.GLAccountID == glAccountID {
			continue
		}
		current.ProductID = productID
		current.ProductType = productType
		current.Activity = activity.Activity
		current.GLAccountID = glAccountID
		if err := s.mappingRepo.SaveMapping(ctx, tx, current); err != nil {
			return nil, err
		}
		changes[activity.Param] = glAccountID
	}
	return changes, nil
}

// requiredGLAccount reads the activity's GL account id from the command and
// checks the account exists with the expected type.
func (s *accountingMappingService) requiredGLAccount(ctx context.Context, cmd domain.ProductCommand, activity domain.CashAccountingActivity) (int64, error) {
	id := cmd.Int64(activity.Param)
	if id == nil {
		return 0, apperrors.NewValidationError(domain.RecurringDepositProductResource, activity.Param, "cannot.be.blank",
			fmt.Sprintf("The parameter `%s` is mandatory.", activity.Param), nil)
	}
	account, err := s.glAccountRepo.FindGLAccountByID(ctx, *id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return 0, &apperrors.NotFoundError{Resource: "GL Account", ID: *id}
		}
		return 0, err
	}
	if account.AccountType != activity.AccountType {
		return 0, &apperrors.DomainRuleError{
			Code: "error.msg.productToAccountMapping.invalid.account.type",
			Message: fmt.Sprintf("GL account %d mapped to %s must be of type %s, found %s",
				*id, activity.Param, activity.AccountType, account.AccountType),
		}
	}
	if account.Disabled {
		return 0, &apperrors.DomainRuleError{
			Code:    "error.msg.productToAccountMapping.account.disabled",
			Message: fmt.Sprintf("GL account %d mapped to %s is disabled", *id, activity.Param),
		}
	}
	return *id, nil
}
