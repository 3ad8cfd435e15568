package services_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/fiterunited/fineract-template/internal/apperrors"
	"github.com/fiterunited/fineract-template/internal/core/domain"
	portsrepo "github.com/fiterunited/fineract-template/internal/core/ports/repositories"
	portssvc "github.com/fiterunited/fineract-template/internal/core/ports/services"
	"github.com/fiterunited/fineract-template/internal/core/services"
	"github.com/fiterunited/fineract-template/internal/repositories/memory"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/suite"
)

// countingProductRepo records how many product rows were rewritten.
type countingProductRepo struct {
	portsrepo.ProductRepositoryWithTx
	updates atomic.Int32
}

func (r *countingProductRepo) UpdateProduct(ctx context.Context, tx pgx.Tx, product domain.Product) error {
	r.updates.Add(1)
	return r.ProductRepositoryWithTx.UpdateProduct(ctx, tx, product)
}

func validProductParams() map[string]any {
	return map[string]any{
		domain.NameParam:                              "Target Saver",
		domain.ShortNameParam:                         "TS01",
		domain.DescriptionParam:                       "Monthly target savings",
		domain.CurrencyCodeParam:                      "USD",
		domain.DigitsAfterDecimalParam:                2,
		domain.NominalAnnualInterestRateParam:         5.5,
		domain.InterestCompoundingPeriodTypeParam:     1,
		domain.InterestPostingPeriodTypeParam:         4,
		domain.InterestCalculationTypeParam:           1,
		domain.InterestCalculationDaysInYearTypeParam: 365,
		domain.MinDepositTermParam:                    6,
		domain.DepositAmountParam:                     100,
		domain.AccountingRuleParam:                    int(domain.AccountingNone),
	}
}

func cashAccountingParams(params map[string]any) map[string]any {
	params[domain.AccountingRuleParam] = int(domain.AccountingCashBased)
	params[domain.SavingsReferenceAccountIDParam] = 1
	params[domain.SavingsControlAccountIDParam] = 2
	params[domain.InterestOnSavingsAccountIDParam] = 3
	params[domain.IncomeFromFeeAccountIDParam] = 4
	params[domain.IncomeFromPenaltyAccountIDParam] = 5
	params[domain.TransfersInSuspenseAccountIDParam] = 6
	return params
}

// --- Test Suite ---
type ProductServiceTestSuite struct {
	suite.Suite
	store       *memory.Store
	repos       portsrepo.RepositoryProvider
	productRepo *countingProductRepo
	service     portssvc.ProductSvcFacade
}

func (suite *ProductServiceTestSuite) SetupTest() {
	suite.store = memory.NewStore()
	memory.SeedReferenceData(suite.store)
	suite.repos = memory.NewRepositoryProvider(suite.store)
	suite.productRepo = &countingProductRepo{ProductRepositoryWithTx: suite.repos.ProductRepo}
	suite.service = services.NewProductService(
		suite.productRepo,
		services.WithProductAssembler(services.NewProductAssembler(suite.repos.ChargeRepo, suite.repos.TaxGroupRepo)),
		services.WithClassificationLookup(services.NewClassificationLookup(suite.repos.CodeValueRepo)),
		services.WithAccountingMappingSynchronizer(services.NewAccountingMappingService(suite.repos.AccountingMappingRepo, suite.repos.GLAccountRepo)),
	)
}

func (suite *ProductServiceTestSuite) create(params map[string]any) int64 {
	id, err := suite.service.CreateProduct(context.Background(), domain.NewProductCommand(params), "creator")
	suite.Require().NoError(err)
	suite.Require().NotZero(id)
	return id
}

// --- Test Cases ---

func (suite *ProductServiceTestSuite) TestCreateProduct_Success() {
	params := validProductParams()
	params[domain.ProductCategoryIDParam] = 1
	params[domain.ProductTypeIDParam] = 3
	params[domain.ChargesParam] = []map[string]any{{"id": 2}}

	id := suite.create(params)

	product, err := suite.service.GetProduct(context.Background(), id)
	suite.Require().NoError(err)
	suite.Equal("Target Saver", product.Name)
	suite.Equal("USD", product.Currency.Code)
	suite.Equal([]int64{2}, product.ChargeIDs())
	suite.Require().NotNil(product.Category)
	suite.Equal("Retail", product.Category.Label)
	suite.Require().NotNil(product.Type)
	suite.Equal("Target savings", product.Type.Label)
	suite.Equal("creator", product.CreatedBy)
}

func (suite *ProductServiceTestSuite) TestCreateProduct_CashAccountingWritesMappings() {
	id := suite.create(cashAccountingParams(validProductParams()))

	mappings, err := suite.repos.AccountingMappingRepo.FindMappings(context.Background(), id, domain.RecurringDeposit)
	suite.Require().NoError(err)
	suite.Len(mappings, len(domain.CashBasedSavingsActivities))
	suite.Equal(int64(2), mappings[domain.SavingsControlActivity].GLAccountID)
}

func (suite *ProductServiceTestSuite) TestCreateProduct_MappingFailureRollsBackProduct() {
	params := cashAccountingParams(validProductParams())
	params[domain.SavingsReferenceAccountIDParam] = 2 // liability where an asset is required

	_, err := suite.service.CreateProduct(context.Background(), domain.NewProductCommand(params), "creator")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDomainRule)
	products, err := suite.service.ListProducts(context.Background())
	suite.Require().NoError(err)
	suite.Empty(products)
}

func (suite *ProductServiceTestSuite) TestCreateProduct_PenaltyWithoutQualifyingCharge() {
	params := validProductParams()
	params[domain.AddPenaltyOnMissedTargetSavingsParam] = true
	params[domain.ChargesParam] = []map[string]any{{"id": 2}}

	_, err := suite.service.CreateProduct(context.Background(), domain.NewProductCommand(params), "creator")

	var ruleErr *apperrors.DomainRuleError
	suite.Require().ErrorAs(err, &ruleErr)
	suite.Equal(domain.PenaltyChargeNotSuppliedCode, ruleErr.Code)
}

func (suite *ProductServiceTestSuite) TestCreateProduct_LoanChargeRejected() {
	params := validProductParams()
	params[domain.ChargesParam] = []map[string]any{{"id": 3}}

	_, err := suite.service.CreateProduct(context.Background(), domain.NewProductCommand(params), "creator")

	suite.ErrorIs(err, apperrors.ErrDomainRule)
}

func (suite *ProductServiceTestSuite) TestCreateProduct_UnknownCategory() {
	params := validProductParams()
	params[domain.ProductCategoryIDParam] = 3 // a product type, not a category

	_, err := suite.service.CreateProduct(context.Background(), domain.NewProductCommand(params), "creator")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ProductServiceTestSuite) TestCreateProduct_DuplicateShortName() {
	suite.create(validProductParams())
	params := validProductParams()
	params[domain.NameParam] = "Another Saver"

	_, err := suite.service.CreateProduct(context.Background(), domain.NewProductCommand(params), "creator")

	var dupErr *apperrors.DuplicateKeyError
	suite.Require().ErrorAs(err, &dupErr)
	suite.Equal("shortName", dupErr.Field)
	suite.Equal("TS01", dupErr.Value)
}

func (suite *ProductServiceTestSuite) TestCreateProduct_ConcurrentSameName() {
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, shortName := range []string{"CA01", "CB01"} {
		wg.Add(1)
		go func(i int, shortName string) {
			defer wg.Done()
			params := validProductParams()
			params[domain.NameParam] = "Race Saver"
			params[domain.ShortNameParam] = shortName
			_, errs[i] = suite.service.CreateProduct(context.Background(), domain.NewProductCommand(params), "creator")
		}(i, shortName)
	}
	wg.Wait()

	var succeeded int
	var dupErr *apperrors.DuplicateKeyError
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		suite.Require().ErrorAs(err, &dupErr)
	}
	suite.Equal(1, succeeded)
	suite.Require().NotNil(dupErr)
	suite.Equal("name", dupErr.Field)
	suite.Equal("Race Saver", dupErr.Value)
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_EmptyCommandChangesNothing() {
	id := suite.create(validProductParams())

	gotID, changes, err := suite.service.UpdateProduct(context.Background(), id, domain.NewProductCommand(nil), "updater")

	suite.Require().NoError(err)
	suite.Equal(id, gotID)
	suite.Empty(changes)
	suite.Zero(suite.productRepo.updates.Load())
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_SameValuesChangeNothing() {
	id := suite.create(validProductParams())

	_, changes, err := suite.service.UpdateProduct(context.Background(), id, domain.NewProductCommand(map[string]any{
		domain.NameParam:           "Target Saver",
		domain.DepositAmountParam:  100,
		domain.CurrencyCodeParam:   "USD",
		domain.AccountingRuleParam: int(domain.AccountingNone),
	}), "updater")

	suite.Require().NoError(err)
	suite.Empty(changes)
	suite.Zero(suite.productRepo.updates.Load())
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_ReportsChangedFields() {
	id := suite.create(validProductParams())

	_, changes, err := suite.service.UpdateProduct(context.Background(), id, domain.NewProductCommand(map[string]any{
		domain.NameParam:           "Renamed Saver",
		domain.ShortNameParam:      "TS01",
		domain.MaxDepositTermParam: 24,
	}), "updater")

	suite.Require().NoError(err)
	suite.Equal([]string{domain.MaxDepositTermParam, domain.NameParam}, changes.Keys())
	suite.Equal(int32(1), suite.productRepo.updates.Load())

	product, err := suite.service.GetProduct(context.Background(), id)
	suite.Require().NoError(err)
	suite.Equal("Renamed Saver", product.Name)
	suite.Equal("updater", product.LastUpdatedBy)
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_PenaltyRequiresQualifyingCharge() {
	id := suite.create(validProductParams())

	_, _, err := suite.service.UpdateProduct(context.Background(), id, domain.NewProductCommand(map[string]any{
		domain.AddPenaltyOnMissedTargetSavingsParam: true,
		domain.ChargesParam:                         []map[string]any{},
	}), "updater")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDomainRule)

	_, changes, err := suite.service.UpdateProduct(context.Background(), id, domain.NewProductCommand(map[string]any{
		domain.AddPenaltyOnMissedTargetSavingsParam: true,
		domain.ChargesParam:                         []map[string]any{{"id": 1}},
	}), "updater")
	suite.Require().NoError(err)
	suite.True(changes.Has(domain.AddPenaltyOnMissedTargetSavingsParam))
	suite.True(changes.Has(domain.ChargesParam))
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_PenaltyFlagAloneChecksStoredCharges() {
	params := validProductParams()
	params[domain.ChargesParam] = []map[string]any{{"id": 2}}
	id := suite.create(params)

	_, _, err := suite.service.UpdateProduct(context.Background(), id, domain.NewProductCommand(map[string]any{
		domain.AddPenaltyOnMissedTargetSavingsParam: true,
	}), "updater")

	suite.ErrorIs(err, apperrors.ErrDomainRule)
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_UnchangedChargesDropFromChangeSet() {
	params := validProductParams()
	params[domain.ChargesParam] = []map[string]any{{"id": 1}, {"id": 2}}
	id := suite.create(params)

	_, changes, err := suite.service.UpdateProduct(context.Background(), id, domain.NewProductCommand(map[string]any{
		domain.ChargesParam: []map[string]any{{"id": 2}, {"id": 1}},
	}), "updater")

	suite.Require().NoError(err)
	suite.False(changes.Has(domain.ChargesParam))
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_WithHoldTaxNullTaxGroup() {
	id := suite.create(validProductParams())

	_, _, err := suite.service.UpdateProduct(context.Background(), id, domain.NewProductCommand(map[string]any{
		domain.WithHoldTaxParam: true,
		domain.TaxGroupIDParam:  nil,
	}), "updater")

	var verr *apperrors.ValidationError
	suite.Require().ErrorAs(err, &verr)
	suite.True(verr.HasParameter(domain.TaxGroupIDParam))
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_WithHoldTaxNeedsStoredTaxGroup() {
	id := suite.create(validProductParams())

	_, _, err := suite.service.UpdateProduct(context.Background(), id, domain.NewProductCommand(map[string]any{
		domain.WithHoldTaxParam: true,
	}), "updater")

	var verr *apperrors.ValidationError
	suite.Require().ErrorAs(err, &verr)
	suite.True(verr.HasParameter(domain.TaxGroupIDParam))

	_, changes, err := suite.service.UpdateProduct(context.Background(), id, domain.NewProductCommand(map[string]any{
		domain.WithHoldTaxParam: true,
		domain.TaxGroupIDParam:  1,
	}), "updater")
	suite.Require().NoError(err)
	suite.True(changes.Has(domain.WithHoldTaxParam))
	suite.True(changes.Has(domain.TaxGroupIDParam))
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_ClassificationPersistsWhenLaterCheckFails() {
	params := validProductParams()
	params[domain.ProductCategoryIDParam] = 1
	id := suite.create(params)

	_, _, err := suite.service.UpdateProduct(context.Background(), id, domain.NewProductCommand(map[string]any{
		domain.ProductCategoryIDParam:               2,
		domain.AddPenaltyOnMissedTargetSavingsParam: true,
		domain.ChargesParam:                         []map[string]any{},
	}), "updater")
	suite.Require().ErrorIs(err, apperrors.ErrDomainRule)

	product, err := suite.service.GetProduct(context.Background(), id)
	suite.Require().NoError(err)
	suite.Require().NotNil(product.Category)
	suite.Equal(int64(2), product.Category.ID)
	suite.False(product.AddPenaltyOnMissedTargetSavings)
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_AccountingRuleChangeRecreatesMappings() {
	id := suite.create(cashAccountingParams(validProductParams()))
	ctx := context.Background()

	_, changes, err := suite.service.UpdateProduct(ctx, id, domain.NewProductCommand(map[string]any{
		domain.AccountingRuleParam: int(domain.AccountingNone),
	}), "updater")
	suite.Require().NoError(err)
	suite.True(changes.Has(domain.AccountingRuleParam))

	mappings, err := suite.repos.AccountingMappingRepo.FindMappings(ctx, id, domain.RecurringDeposit)
	suite.Require().NoError(err)
	suite.Empty(mappings)
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_RemapsNamedAccount() {
	id := suite.create(cashAccountingParams(validProductParams()))
	ctx := context.Background()

	_, changes, err := suite.service.UpdateProduct(ctx, id, domain.NewProductCommand(map[string]any{
		domain.SavingsControlAccountIDParam: 6,
	}), "updater")
	suite.Require().NoError(err)
	suite.Equal(int64(6), changes[domain.SavingsControlAccountIDParam])

	mappings, err := suite.repos.AccountingMappingRepo.FindMappings(ctx, id, domain.RecurringDeposit)
	suite.Require().NoError(err)
	suite.Equal(int64(6), mappings[domain.SavingsControlActivity].GLAccountID)
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_DuplicateName() {
	suite.create(validProductParams())
	params := validProductParams()
	params[domain.NameParam] = "Second Saver"
	params[domain.ShortNameParam] = "SS01"
	id := suite.create(params)

	_, _, err := suite.service.UpdateProduct(context.Background(), id, domain.NewProductCommand(map[string]any{
		domain.NameParam: "Target Saver",
	}), "updater")

	var dupErr *apperrors.DuplicateKeyError
	suite.Require().ErrorAs(err, &dupErr)
	suite.Equal("name", dupErr.Field)
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_NotFound() {
	_, _, err := suite.service.UpdateProduct(context.Background(), 404, domain.NewProductCommand(nil), "updater")

	var nfErr *apperrors.NotFoundError
	suite.Require().ErrorAs(err, &nfErr)
	suite.Equal(int64(404), nfErr.ID)
}

func (suite *ProductServiceTestSuite) TestDeleteProduct() {
	ctx := context.Background()
	_, err := suite.service.DeleteProduct(ctx, 99)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	id := suite.create(cashAccountingParams(validProductParams()))
	deleted, err := suite.service.DeleteProduct(ctx, id)
	suite.Require().NoError(err)
	suite.Equal(id, deleted)

	_, err = suite.service.GetProduct(ctx, id)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	mappings, err := suite.repos.AccountingMappingRepo.FindMappings(ctx, id, domain.RecurringDeposit)
	suite.Require().NoError(err)
	suite.Empty(mappings)
}

// --- Run Test Suite ---
func TestProductService(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}
