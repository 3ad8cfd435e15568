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
	"github.com/jackc/pgx/v5"
)

const productResourceName = "Recurring Deposit Product"

// productService runs the recurring deposit product create, update and delete workflows.
type productService struct {
	BaseService
	productRepo    portsrepo.ProductRepositoryWithTx
	validator      portssvc.ProductValidator
	assembler      portssvc.ProductAssembler
	classification portssvc.ClassificationLookup
	accounting     portssvc.AccountingMappingSynchronizer
	now            func() time.Time
}

// ProductServiceOption is a functional option for configuring the product service
type ProductServiceOption func(*productService)

// WithProductValidator replaces the default command validator.
func WithProductValidator(v portssvc.ProductValidator) ProductServiceOption {
	return func(s *productService) {
		s.validator = v
	}
}

// WithProductAssembler adds the assembler dependency
func WithProductAssembler(a portssvc.ProductAssembler) ProductServiceOption {
	return func(s *productService) {
		s.assembler = a
	}
}

// WithClassificationLookup adds the category and type lookup dependency
func WithClassificationLookup(l portssvc.ClassificationLookup) ProductServiceOption {
	return func(s *productService) {
		s.classification = l
	}
}

// WithAccountingMappingSynchronizer adds the GL mapping dependency
func WithAccountingMappingSynchronizer(a portssvc.AccountingMappingSynchronizer) ProductServiceOption {
	return func(s *productService) {
		s.accounting = a
	}
}

// WithProductClock overrides the time source used for audit fields.
func WithProductClock(now func() time.Time) ProductServiceOption {
	return func(s *productService) {
		s.now = now
	}
}

// NewProductService creates a new product service with the provided options
func NewProductService(repo portsrepo.ProductRepositoryWithTx, options ...ProductServiceOption) portssvc.ProductSvcFacade {
	svc := &productService{
		productRepo: repo,
		validator:   NewProductValidator(),
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ProductSvcFacade = (*productService)(nil)

func (s *productService) GetProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, &apperrors.NotFoundError{Resource: productResourceName, ID: productID}
		}
		s.LogError(ctx, err, "Failed to load product", slog.Int64("product_id", productID))
		return nil, err
	}
	return product, nil
}

func (s *productService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.productRepo.ListProducts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list products")
		return nil, err
	}
	if products == nil {
		return []domain.Product{}, nil
	}
	return products, nil
}

func (s *productService) CreateProduct(ctx context.Context, cmd domain.ProductCommand, userID string) (int64, error) {
	if err := s.validator.ValidateForCreate(cmd); err != nil {
		return 0, err
	}

	product, err := s.assembler.AssembleProduct(ctx, cmd)
	if err != nil {
		return 0, err
	}

	if _, err := s.applyClassifications(ctx, product, cmd); err != nil {
		return 0, err
	}

	if err := domain.CheckPenaltyCharges(product.AddPenaltyOnMissedTargetSavings, product.Charges); err != nil {
		return 0, err
	}
	if err := domain.CheckTaxGroup(product.WithHoldTax, product.TaxGroup); err != nil {
		return 0, err
	}

	now := s.now()
	product.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	err = s.WithTransaction(ctx, s.productRepo, func(tx pgx.Tx) error {
		if err := s.productRepo.SaveProduct(ctx, tx, product); err != nil {
			return err
		}
		return s.accounting.CreateMapping(ctx, tx, product.ID, cmd, domain.RecurringDeposit)
	})
	if err != nil {
		return 0, s.storageFailure(ctx, err, product.Name, product.ShortName)
	}

	s.LogInfo(ctx, "Recurring deposit product created",
		slog.Int64("product_id", product.ID),
		slog.String("name", product.Name))
	return product.ID, nil
}

func (s *productService) UpdateProduct(ctx context.Context, productID int64, cmd domain.ProductCommand, userID string) (int64, domain.ChangeSet, error) {
	if err := s.validator.ValidateForUpdate(cmd); err != nil {
		return 0, nil, err
	}

	product, err := s.GetProduct(ctx, productID)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return 0, nil, err
		}
		return 0, nil, s.storageFailure(ctx, err, cmd.String(domain.NameParam), cmd.String(domain.ShortNameParam))
	}

	classificationChanges, err := s.applyClassifications(ctx, product, cmd)
	if err != nil {
		return 0, nil, err
	}
	// Classification changes are flushed on their own before anything else runs,
	// so they survive a later rejection of the update.
	if !classificationChanges.IsEmpty() {
		s.stamp(product, userID)
		if err := s.productRepo.UpdateProduct(ctx, nil, *product); err != nil {
			return 0, nil, s.storageFailure(ctx, err, product.Name, product.ShortName)
		}
	}

	changes := product.Update(cmd)
	changes.Merge(classificationChanges)

	if cmd.Has(domain.ChartsParam) && !cmd.IsNull(domain.ChartsParam) {
		charts, err := s.assembler.AssembleCharts(cmd)
		if err != nil {
			return 0, nil, err
		}
		if !sameCharts(product.Charts, charts) {
			product.Charts = charts
			changes[domain.ChartsParam] = charts
		}
	}

	if changes.Has(domain.ChargesParam) {
		charges, err := s.assembler.AssembleCharges(ctx, cmd, product.Currency.Code)
		if err != nil {
			return 0, nil, err
		}
		if err := domain.CheckPenaltyCharges(product.AddPenaltyOnMissedTargetSavings, charges); err != nil {
			return 0, nil, err
		}
		if !product.UpdateCharges(charges) {
			changes.Remove(domain.ChargesParam)
		}
	} else if changes.Has(domain.AddPenaltyOnMissedTargetSavingsParam) {
		if err := domain.CheckPenaltyCharges(product.AddPenaltyOnMissedTargetSavings, product.Charges); err != nil {
			return 0, nil, err
		}
	}

	if changes.Has(domain.TaxGroupIDParam) {
		taxGroup, err := s.assembler.AssembleTaxGroup(ctx, cmd)
		if err != nil {
			return 0, nil, err
		}
		product.SetTaxGroup(taxGroup)
	}
	if changes.Has(domain.TaxGroupIDParam) || changes.Has(domain.WithHoldTaxParam) {
		if err := domain.CheckTaxGroup(product.WithHoldTax, product.TaxGroup); err != nil {
			return 0, nil, err
		}
	}

	err = s.WithTransaction(ctx, s.productRepo, func(tx pgx.Tx) error {
		accountingChanges, err := s.accounting.UpdateMapping(ctx, tx, product.ID, cmd,
			changes.Has(domain.AccountingRuleParam), product.AccountingRule, domain.RecurringDeposit)
		if err != nil {
			return err
		}
		changes.Merge(accountingChanges)

		if changes.IsEmpty() {
			return nil
		}
		s.stamp(product, userID)
		return s.productRepo.UpdateProduct(ctx, tx, *product)
	})
	if err != nil {
		return 0, nil, s.storageFailure(ctx, err, product.Name, product.ShortName)
	}

	s.LogInfo(ctx, "Recurring deposit product updated",
		slog.Int64("product_id", product.ID),
		slog.Any("changes", changes.Keys()))
	return product.ID, changes, nil
}

func (s *productService) DeleteProduct(ctx context.Context, productID int64) (int64, error) {
	product, err := s.GetProduct(ctx, productID)
	if err != nil {
		return 0, err
	}

	err = s.WithTransaction(ctx, s.productRepo, func(tx pgx.Tx) error {
		return s.productRepo.DeleteProduct(ctx, tx, productID)
	})
	if err != nil {
		return 0, s.storageFailure(ctx, err, product.Name, product.ShortName)
	}

	s.LogInfo(ctx, "Recurring deposit product deleted", slog.Int64("product_id", productID))
	return productID, nil
}

// applyClassifications resolves and attaches the category and type named in
// the command. An absent id leaves the current value untouched.
func (s *productService) applyClassifications(ctx context.Context, product *domain.Product, cmd domain.ProductCommand) (domain.ChangeSet, error) {
	changes := domain.ChangeSet{}

	if id := cmd.Int64(domain.ProductCategoryIDParam); id != nil {
		category, err := s.classification.FindByCodeNameAndID(ctx, domain.SavingsProductCategoryCode, *id)
		if err != nil {
			return nil, err
		}
		if product.Category == nil || product.Category.ID != category.ID {
			changes[domain.ProductCategoryIDParam] = category.ID
		}
		product.SetCategory(category)
	}

	if id := cmd.Int64(domain.ProductTypeIDParam); id != nil {
		productType, err := s.classification.FindByCodeNameAndID(ctx, domain.SavingsProductTypeCode, *id)
		if err != nil {
			return nil, err
		}
		if product.Type == nil || product.Type.ID != productType.ID {
			changes[domain.ProductTypeIDParam] = productType.ID
		}
		product.SetType(productType)
	}

	return changes, nil
}

// storageFailure passes typed errors through and routes anything else through
// the integrity classifier.
func (s *productService) storageFailure(ctx context.Context, err error, name, shortName string) error {
	if kind := apperrors.KindOf(err); kind != apperrors.KindInternal {
		return err
	}
	return ClassifyProductIntegrityViolation(s.GetLogger(ctx), err, name, shortName)
}

func (s *productService) stamp(product *domain.Product, userID string) {
	product.LastUpdatedAt = s.now()
	product.LastUpdatedBy = userID
}

func sameCharts(a, b []domain.InterestRateChart) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		x, y := a[i], b[i]
		if x.Name != y.Name || x.Description != y.Description || !sameDay(&x.FromDate, &y.FromDate) ||
			!sameDay(x.EndDate, y.EndDate) || len(x.Slabs) != len(y.Slabs) {
			return false
		}
		for j := range x.Slabs {
			xs, ys := x.Slabs[j], y.Slabs[j]
			if xs.Description != ys.Description || xs.PeriodType != ys.PeriodType || xs.FromPeriod != ys.FromPeriod ||
				!sameOptInt(xs.ToPeriod, ys.ToPeriod) || !xs.AnnualInterestRate.Equal(ys.AnnualInterestRate) {
				return false
			}
		}
	}
	return true
}

func sameDay(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return domain.SameCalendarDay(*a, *b)
}

func sameOptInt(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
