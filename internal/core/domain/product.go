package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DepositAccountType tells the accounting subsystem which product family a mapping belongs to.
type DepositAccountType int

const (
	SavingsDeposit   DepositAccountType = 100
	FixedDeposit     DepositAccountType = 200
	RecurringDeposit DepositAccountType = 300
)

func (t DepositAccountType) String() string {
	switch t {
	case SavingsDeposit:
		return "SAVINGS_DEPOSIT"
	case FixedDeposit:
		return "FIXED_DEPOSIT"
	case RecurringDeposit:
		return "RECURRING_DEPOSIT"
	default:
		return "INVALID"
	}
}

// AccountingRuleType selects how a product posts to the general ledger.
type AccountingRuleType int

const (
	AccountingNone            AccountingRuleType = 1
	AccountingCashBased       AccountingRuleType = 2
	AccountingAccrualPeriodic AccountingRuleType = 3
	AccountingAccrualUpfront  AccountingRuleType = 4
)

// IsCashBased reports whether GL mappings are required.
func (r AccountingRuleType) IsCashBased() bool { return r == AccountingCashBased }

// SupportedForSavings reports whether deposit products may use the rule.
func (r AccountingRuleType) SupportedForSavings() bool {
	return r == AccountingNone || r == AccountingCashBased
}

// Code value classification names.
const (
	SavingsProductCategoryCode = "SavingsProductCategory"
	SavingsProductTypeCode     = "SavingsProductType"
)

// CodeValue is an externally owned classification entry.
type CodeValue struct {
	ID       int64  `json:"id"`
	CodeName string `json:"codeName"`
	Label    string `json:"label"`
	Position int    `json:"position"`
	Active   bool   `json:"active"`
}

// TaxGroup is a named bundle of withholding taxes.
type TaxGroup struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// InterestRateSlab is one band of an interest rate chart.
type InterestRateSlab struct {
	ID                 int64           `json:"id"`
	Description        string          `json:"description"`
	PeriodType         int             `json:"periodType"`
	FromPeriod         int             `json:"fromPeriod"`
	ToPeriod           *int            `json:"toPeriod,omitempty"`
	AnnualInterestRate decimal.Decimal `json:"annualInterestRate"`
}

// InterestRateChart is a dated set of slabs owned by a product.
type InterestRateChart struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	FromDate    time.Time          `json:"fromDate"`
	EndDate     *time.Time         `json:"endDate,omitempty"`
	Slabs       []InterestRateSlab `json:"chartSlabs"`
}

// Product is a recurring deposit product definition.
type Product struct {
	ID                                 int64               `json:"id"`
	Name                               string              `json:"name"`
	ShortName                          string              `json:"shortName"`
	Description                        string              `json:"description"`
	Currency                           Currency            `json:"currency"`
	NominalAnnualInterestRate          decimal.Decimal     `json:"nominalAnnualInterestRate"`
	InterestCompoundingPeriodType      int                 `json:"interestCompoundingPeriodType"`
	InterestPostingPeriodType          int                 `json:"interestPostingPeriodType"`
	InterestCalculationType            int                 `json:"interestCalculationType"`
	InterestCalculationDaysInYearType  int                 `json:"interestCalculationDaysInYearType"`
	MinDepositTerm                     *int                `json:"minDepositTerm,omitempty"`
	MaxDepositTerm                     *int                `json:"maxDepositTerm,omitempty"`
	MinDepositAmount                   *decimal.Decimal    `json:"minDepositAmount,omitempty"`
	DepositAmount                      *decimal.Decimal    `json:"depositAmount,omitempty"`
	MaxDepositAmount                   *decimal.Decimal    `json:"maxDepositAmount,omitempty"`
	IsMandatoryDeposit                 bool                `json:"isMandatoryDeposit"`
	AllowWithdrawal                    bool                `json:"allowWithdrawal"`
	AdjustAdvanceTowardsFuturePayments bool                `json:"adjustAdvanceTowardsFuturePayments"`
	AddPenaltyOnMissedTargetSavings    bool                `json:"addPenaltyOnMissedTargetSavings"`
	AccountingRule                     AccountingRuleType  `json:"accountingRule"`
	WithHoldTax                        bool                `json:"withHoldTax"`
	TaxGroup                           *TaxGroup           `json:"taxGroup,omitempty"`
	Charges                            []Charge            `json:"charges"`
	Charts                             []InterestRateChart `json:"charts"`
	Category                           *CodeValue          `json:"productCategory,omitempty"`
	Type                               *CodeValue          `json:"productType,omitempty"`
	AuditFields
}

// Update applies every parameter in cmd that differs from the current value
// and returns the changed fields. Charges and tax group are only reported here;
// the caller reassembles and applies them.
func (p *Product) Update(cmd ProductCommand) ChangeSet {
	changes := ChangeSet{}

	updateString := func(param string, field *string) {
		if !cmd.Has(param) {
			return
		}
		if v := cmd.String(param); v != *field {
			*field = v
			changes[param] = v
		}
	}
	updateInt := func(param string, field *int) {
		if v := cmd.Int(param); v != nil && *v != *field {
			*field = *v
			changes[param] = *v
		}
	}
	updateOptInt := func(param string, field **int) {
		if !cmd.Has(param) {
			return
		}
		v := cmd.Int(param)
		if !intPtrEqual(v, *field) {
			*field = v
			changes[param] = v
		}
	}
	updateBool := func(param string, field *bool) {
		if v := cmd.Bool(param); v != nil && *v != *field {
			*field = *v
			changes[param] = *v
		}
	}
	updateOptDecimal := func(param string, field **decimal.Decimal) {
		if !cmd.Has(param) {
			return
		}
		v := cmd.Decimal(param)
		if !decimalPtrEqual(v, *field) {
			*field = v
			changes[param] = v
		}
	}

	updateString(NameParam, &p.Name)
	updateString(ShortNameParam, &p.ShortName)
	updateString(DescriptionParam, &p.Description)

	if cmd.Has(CurrencyCodeParam) || cmd.Has(DigitsAfterDecimalParam) || cmd.Has(InMultiplesOfParam) {
		next := p.Currency
		if cmd.Has(CurrencyCodeParam) {
			next.Code = cmd.String(CurrencyCodeParam)
		}
		if v := cmd.Int(DigitsAfterDecimalParam); v != nil {
			next.DecimalPlaces = *v
		}
		if cmd.Has(InMultiplesOfParam) {
			next.InMultiplesOf = cmd.Int(InMultiplesOfParam)
		}
		if next.Code != p.Currency.Code {
			changes[CurrencyCodeParam] = next.Code
		}
		if next.DecimalPlaces != p.Currency.DecimalPlaces {
			changes[DigitsAfterDecimalParam] = next.DecimalPlaces
		}
		if !intPtrEqual(next.InMultiplesOf, p.Currency.InMultiplesOf) {
			changes[InMultiplesOfParam] = next.InMultiplesOf
		}
		p.Currency = next
	}

	if v := cmd.Decimal(NominalAnnualInterestRateParam); v != nil && !v.Equal(p.NominalAnnualInterestRate) {
		p.NominalAnnualInterestRate = *v
		changes[NominalAnnualInterestRateParam] = *v
	}
	updateInt(InterestCompoundingPeriodTypeParam, &p.InterestCompoundingPeriodType)
	updateInt(InterestPostingPeriodTypeParam, &p.InterestPostingPeriodType)
	updateInt(InterestCalculationTypeParam, &p.InterestCalculationType)
	updateInt(InterestCalculationDaysInYearTypeParam, &p.InterestCalculationDaysInYearType)
	updateOptInt(MinDepositTermParam, &p.MinDepositTerm)
	updateOptInt(MaxDepositTermParam, &p.MaxDepositTerm)
	updateOptDecimal(MinDepositAmountParam, &p.MinDepositAmount)
	updateOptDecimal(DepositAmountParam, &p.DepositAmount)
	updateOptDecimal(MaxDepositAmountParam, &p.MaxDepositAmount)
	updateBool(IsMandatoryDepositParam, &p.IsMandatoryDeposit)
	updateBool(AllowWithdrawalParam, &p.AllowWithdrawal)
	updateBool(AdjustAdvanceTowardsFuturePaymentsParam, &p.AdjustAdvanceTowardsFuturePayments)
	updateBool(AddPenaltyOnMissedTargetSavingsParam, &p.AddPenaltyOnMissedTargetSavings)
	updateBool(WithHoldTaxParam, &p.WithHoldTax)

	if v := cmd.Int(AccountingRuleParam); v != nil && AccountingRuleType(*v) != p.AccountingRule {
		p.AccountingRule = AccountingRuleType(*v)
		changes[AccountingRuleParam] = *v
	}

	// Charges are reported whenever the array is sent; UpdateCharges decides
	// whether the content actually differs.
	if cmd.Has(ChargesParam) && !cmd.IsNull(ChargesParam) {
		changes[ChargesParam] = cmd.IDs(ChargesParam)
	}

	if cmd.Has(TaxGroupIDParam) {
		next := cmd.Int64(TaxGroupIDParam)
		var current *int64
		if p.TaxGroup != nil {
			current = &p.TaxGroup.ID
		}
		if !int64PtrEqual(next, current) {
			changes[TaxGroupIDParam] = next
		}
	}

	return changes
}

// UpdateCharges replaces the charge set and reports whether its content changed.
func (p *Product) UpdateCharges(charges []Charge) bool {
	if sameChargeIDs(p.Charges, charges) {
		return false
	}
	p.Charges = charges
	return true
}

// SetTaxGroup replaces the tax group; nil clears it.
func (p *Product) SetTaxGroup(tg *TaxGroup) { p.TaxGroup = tg }

// SetCategory attaches a product category classification.
func (p *Product) SetCategory(cv *CodeValue) { p.Category = cv }

// SetType attaches a product type classification.
func (p *Product) SetType(cv *CodeValue) { p.Type = cv }

// ChargeIDs returns the ids of the product's charges in ascending order.
func (p *Product) ChargeIDs() []int64 {
	return chargeIDs(p.Charges)
}

// TaxGroupID returns the tax group id or nil.
func (p *Product) TaxGroupID() *int64 {
	if p.TaxGroup == nil {
		return nil
	}
	id := p.TaxGroup.ID
	return &id
}

func chargeIDs(charges []Charge) []int64 {
	ids := make([]int64, 0, len(charges))
	for _, c := range charges {
		ids = append(ids, c.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func sameChargeIDs(a, b []Charge) bool {
	ia, ib := chargeIDs(a), chargeIDs(b)
	if len(ia) != len(ib) {
		return false
	}
	for i := range ia {
		if ia[i] != ib[i] {
			return false
		}
	}
	return true
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func int64PtrEqual(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func decimalPtrEqual(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
