package dto

import (
	"github.com/fiterunited/fineract-template/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ProductRequest documents the recurring deposit product payload. Handlers read
// the body as a domain.ProductCommand so partial updates keep track of which
// parameters were sent; this type is used for validation tags and API docs.
type ProductRequest struct {
	Name                               *string          `json:"name" validate:"omitempty,max=100"`
	ShortName                          *string          `json:"shortName" validate:"omitempty,max=4"`
	Description                        *string          `json:"description" validate:"omitempty,max=500"`
	CurrencyCode                       *string          `json:"currencyCode" validate:"omitempty,len=3,alpha"`
	DigitsAfterDecimal                 *int             `json:"digitsAfterDecimal" validate:"omitempty,min=0,max=6"`
	InMultiplesOf                      *int             `json:"inMultiplesOf" validate:"omitempty,min=0"`
	NominalAnnualInterestRate          *decimal.Decimal `json:"nominalAnnualInterestRate"`
	InterestCompoundingPeriodType      *int             `json:"interestCompoundingPeriodType" validate:"omitempty,oneof=1 4 5 6 7"`
	InterestPostingPeriodType          *int             `json:"interestPostingPeriodType" validate:"omitempty,oneof=4 5 6 7"`
	InterestCalculationType            *int             `json:"interestCalculationType" validate:"omitempty,oneof=1 2"`
	InterestCalculationDaysInYearType  *int             `json:"interestCalculationDaysInYearType" validate:"omitempty,oneof=360 365"`
	MinDepositTerm                     *int             `json:"minDepositTerm" validate:"omitempty,gt=0"`
	MaxDepositTerm                     *int             `json:"maxDepositTerm" validate:"omitempty,gt=0"`
	MinDepositAmount                   *decimal.Decimal `json:"minDepositAmount"`
	DepositAmount                      *decimal.Decimal `json:"depositAmount"`
	MaxDepositAmount                   *decimal.Decimal `json:"maxDepositAmount"`
	IsMandatoryDeposit                 *bool            `json:"isMandatoryDeposit"`
	AllowWithdrawal                    *bool            `json:"allowWithdrawal"`
	AdjustAdvanceTowardsFuturePayments *bool            `json:"adjustAdvanceTowardsFuturePayments"`
	AddPenaltyOnMissedTargetSavings    *bool            `json:"addPenaltyOnMissedTargetSavings"`
	AccountingRule                     *int             `json:"accountingRule" validate:"omitempty,oneof=1 2"`
	WithHoldTax                        *bool            `json:"withHoldTax"`
	TaxGroupID                         *int64           `json:"taxGroupId" validate:"omitempty,gt=0"`
	ProductCategoryID                  *int64           `json:"productCategoryId" validate:"omitempty,gt=0"`
	ProductTypeID                      *int64           `json:"productTypeId" validate:"omitempty,gt=0"`
	Charges                            []ChargeRef      `json:"charges" validate:"omitempty,dive"`
	Charts                             []ChartRequest   `json:"charts" validate:"omitempty,dive"`
	Locale                             *string          `json:"locale"`
	DateFormat                         *string          `json:"dateFormat"`

	SavingsReferenceAccountID    *int64 `json:"savingsReferenceAccountId" validate:"omitempty,gt=0"`
	SavingsControlAccountID      *int64 `json:"savingsControlAccountId" validate:"omitempty,gt=0"`
	InterestOnSavingsAccountID   *int64 `json:"interestOnSavingsAccountId" validate:"omitempty,gt=0"`
	IncomeFromFeeAccountID       *int64 `json:"incomeFromFeeAccountId" validate:"omitempty,gt=0"`
	IncomeFromPenaltyAccountID   *int64 `json:"incomeFromPenaltyAccountId" validate:"omitempty,gt=0"`
	TransfersInSuspenseAccountID *int64 `json:"transfersInSuspenseAccountId" validate:"omitempty,gt=0"`
}

// ChargeRef references an existing charge by id.
type ChargeRef struct {
	ID int64 `json:"id" validate:"gt=0"`
}

// ChartRequest describes one interest rate chart.
type ChartRequest struct {
	Name        string             `json:"name" validate:"max=100"`
	Description string             `json:"description" validate:"max=200"`
	FromDate    string             `json:"fromDate" validate:"required,datetime=2006-01-02"`
	EndDate     *string            `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Slabs       []ChartSlabRequest `json:"chartSlabs" validate:"required,min=1,dive"`
}

// ChartSlabRequest describes one band of an interest rate chart.
type ChartSlabRequest struct {
	Description        string          `json:"description"`
	PeriodType         int             `json:"periodType" validate:"oneof=0 1 2 3"`
	FromPeriod         int             `json:"fromPeriod" validate:"min=0"`
	ToPeriod           *int            `json:"toPeriod" validate:"omitempty,gtfield=FromPeriod"`
	AnnualInterestRate decimal.Decimal `json:"annualInterestRate"`
}

// ProductResponse is the read model of a recurring deposit product.
type ProductResponse struct {
	domain.Product
}

// ProductIDResponse is returned by create and delete.
type ProductIDResponse struct {
	ResourceID int64 `json:"resourceId"`
}

// ProductUpdateResponse is returned by update.
type ProductUpdateResponse struct {
	ResourceID int64            `json:"resourceId"`
	Changes    domain.ChangeSet `json:"changes"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error  string              `json:"error"`
	Code   string              `json:"code,omitempty"`
	Errors []ErrorResponseItem `json:"errors,omitempty"`
}

// ErrorResponseItem mirrors apperrors.FieldError for API docs.
type ErrorResponseItem struct {
	ParameterName                string `json:"parameterName"`
	UserMessageGlobalisationCode string `json:"userMessageGlobalisationCode"`
	DefaultUserMessage           string `json:"defaultUserMessage"`
}

// ToProductResponse wraps a domain product for output.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{Product: *p}
}

// ToListProductResponse converts a slice of products.
func ToListProductResponse(products []domain.Product) []ProductResponse {
	res := make([]ProductResponse, len(products))
	for i := range products {
		res[i] = ToProductResponse(&products[i])
	}
	return res
}
