package domain

import "github.com/shopspring/decimal"

// ChargeAppliesTo restricts which portfolio a charge can be attached to.
type ChargeAppliesTo int

const (
	ChargeAppliesToLoan    ChargeAppliesTo = 1
	ChargeAppliesToSavings ChargeAppliesTo = 2
	ChargeAppliesToClient  ChargeAppliesTo = 3
	ChargeAppliesToShares  ChargeAppliesTo = 4
)

// ChargeTimeType says when a charge is levied.
type ChargeTimeType int

const (
	ChargeTimeDisbursement      ChargeTimeType = 1
	ChargeTimeSpecifiedDueDate  ChargeTimeType = 2
	ChargeTimeSavingsActivation ChargeTimeType = 3
	ChargeTimeSavingsClosure    ChargeTimeType = 4
	ChargeTimeWithdrawalFee     ChargeTimeType = 5
	ChargeTimeAnnualFee         ChargeTimeType = 6
	ChargeTimeMonthlyFee        ChargeTimeType = 7
	ChargeTimeOverdraftFee      ChargeTimeType = 10
	ChargeTimeWeeklyFee         ChargeTimeType = 11
)

// ChargeCalculationType says how a charge amount is derived.
type ChargeCalculationType int

const (
	ChargeCalculationFlat            ChargeCalculationType = 1
	ChargeCalculationPercentOfAmount ChargeCalculationType = 2
)

// Charge is a fee or penalty definition that products may reference.
type Charge struct {
	ID              int64                 `json:"id"`
	Name            string                `json:"name"`
	Amount          decimal.Decimal       `json:"amount"`
	CurrencyCode    string                `json:"currencyCode"`
	AppliesTo       ChargeAppliesTo       `json:"chargeAppliesTo"`
	TimeType        ChargeTimeType        `json:"chargeTimeType"`
	CalculationType ChargeCalculationType `json:"chargeCalculationType"`
	Penalty         bool                  `json:"penalty"`
	Active          bool                  `json:"active"`
}

// IsSavingsCharge reports whether the charge may be attached to a deposit product.
func (c Charge) IsSavingsCharge() bool { return c.AppliesTo == ChargeAppliesToSavings }

// IsFlatSpecifiedDueDate reports whether the charge qualifies as the penalty
// charge for missed target savings.
func (c Charge) IsFlatSpecifiedDueDate() bool {
	return c.CalculationType == ChargeCalculationFlat && c.TimeType == ChargeTimeSpecifiedDueDate
}
