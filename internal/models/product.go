package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingsProduct is a row of m_savings_product. Recurring deposit products
// carry deposit_type_enum = 300.
type SavingsProduct struct {
	ID                                 int64            `db:"id"`
	Name                               string           `db:"name"`
	ShortName                          string           `db:"short_name"`
	Description                        string           `db:"description"`
	CurrencyCode                       string           `db:"currency_code"`
	CurrencyDigits                     int              `db:"currency_digits"`
	CurrencyMultiplesOf                *int             `db:"currency_multiplesof"`
	NominalAnnualInterestRate          decimal.Decimal  `db:"nominal_annual_interest_rate"`
	InterestCompoundingPeriodEnum      int              `db:"interest_compounding_period_enum"`
	InterestPostingPeriodEnum          int              `db:"interest_posting_period_enum"`
	InterestCalculationTypeEnum        int              `db:"interest_calculation_type_enum"`
	InterestCalculationDaysInYearEnum  int              `db:"interest_calculation_days_in_year_type_enum"`
	DepositTypeEnum                    int              `db:"deposit_type_enum"`
	MinDepositTerm                     *int             `db:"min_deposit_term"`
	MaxDepositTerm                     *int             `db:"max_deposit_term"`
	MinDepositAmount                   *decimal.Decimal `db:"min_deposit_amount"`
	DepositAmount                      *decimal.Decimal `db:"deposit_amount"`
	MaxDepositAmount                   *decimal.Decimal `db:"max_deposit_amount"`
	IsMandatoryDeposit                 bool             `db:"is_mandatory_deposit"`
	AllowWithdrawal                    bool             `db:"allow_withdrawal"`
	AdjustAdvanceTowardsFuturePayments bool             `db:"adjust_advance_towards_future_payments"`
	AddPenaltyOnMissedTargetSavings    bool             `db:"add_penalty_on_missed_target_savings"`
	AccountingType                     int              `db:"accounting_type"`
	WithholdTax                        bool             `db:"withhold_tax"`
	TaxGroupID                         *int64           `db:"tax_group_id"`
	TaxGroupName                       *string          `db:"tax_group_name"`
	ProductCategoryID                  *int64           `db:"product_category_id"`
	ProductCategoryLabel               *string          `db:"product_category_label"`
	ProductTypeID                      *int64           `db:"product_type_id"`
	ProductTypeLabel                   *string          `db:"product_type_label"`
	AuditFields
}

// InterestRateChart is a row of m_interest_rate_chart.
type InterestRateChart struct {
	ID          int64      `db:"id"`
	ProductID   int64      `db:"savings_product_id"`
	Name        string     `db:"name"`
	Description string     `db:"description"`
	FromDate    time.Time  `db:"from_date"`
	EndDate     *time.Time `db:"end_date"`
}

// InterestRateSlab is a row of m_interest_rate_slab.
type InterestRateSlab struct {
	ID                 int64           `db:"id"`
	ChartID            int64           `db:"interest_rate_chart_id"`
	Description        string          `db:"description"`
	PeriodTypeEnum     int             `db:"period_type_enum"`
	FromPeriod         int             `db:"from_period"`
	ToPeriod           *int            `db:"to_period"`
	AnnualInterestRate decimal.Decimal `db:"annual_interest_rate"`
}
