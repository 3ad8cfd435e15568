package domain

import (
	"bytes"
	"sort"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// Product command parameter names.
const (
	NameParam                               = "name"
	ShortNameParam                          = "shortName"
	DescriptionParam                        = "description"
	CurrencyCodeParam                       = "currencyCode"
	DigitsAfterDecimalParam                 = "digitsAfterDecimal"
	InMultiplesOfParam                      = "inMultiplesOf"
	NominalAnnualInterestRateParam          = "nominalAnnualInterestRate"
	InterestCompoundingPeriodTypeParam      = "interestCompoundingPeriodType"
	InterestPostingPeriodTypeParam          = "interestPostingPeriodType"
	InterestCalculationTypeParam            = "interestCalculationType"
	InterestCalculationDaysInYearTypeParam  = "interestCalculationDaysInYearType"
	MinDepositTermParam                     = "minDepositTerm"
	MaxDepositTermParam                     = "maxDepositTerm"
	MinDepositAmountParam                   = "minDepositAmount"
	DepositAmountParam                      = "depositAmount"
	MaxDepositAmountParam                   = "maxDepositAmount"
	IsMandatoryDepositParam                 = "isMandatoryDeposit"
	AllowWithdrawalParam                    = "allowWithdrawal"
	AdjustAdvanceTowardsFuturePaymentsParam = "adjustAdvanceTowardsFuturePayments"
	AddPenaltyOnMissedTargetSavingsParam    = "addPenaltyOnMissedTargetSavings"
	AccountingRuleParam                     = "accountingRule"
	ChargesParam                            = "charges"
	ChartsParam                             = "charts"
	WithHoldTaxParam                        = "withHoldTax"
	TaxGroupIDParam                         = "taxGroupId"
	ProductCategoryIDParam                  = "productCategoryId"
	ProductTypeIDParam                      = "productTypeId"
	LocaleParam                             = "locale"
	DateFormatParam                         = "dateFormat"

	SavingsReferenceAccountIDParam    = "savingsReferenceAccountId"
	SavingsControlAccountIDParam      = "savingsControlAccountId"
	InterestOnSavingsAccountIDParam   = "interestOnSavingsAccountId"
	IncomeFromFeeAccountIDParam       = "incomeFromFeeAccountId"
	IncomeFromPenaltyAccountIDParam   = "incomeFromPenaltyAccountId"
	TransfersInSuspenseAccountIDParam = "transfersInSuspenseAccountId"
)

// ProductCommand is a parsed JSON payload that remembers which parameters
// were sent, so partial updates can tell "absent" from "explicitly null".
type ProductCommand struct {
	raw  []byte
	args map[string]json.RawMessage
}

// ParseProductCommand parses a JSON object payload.
func ParseProductCommand(body []byte) (ProductCommand, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}
	args := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &args); err != nil {
		return ProductCommand{}, err
	}
	return ProductCommand{raw: body, args: args}, nil
}

// NewProductCommand builds a command from already-decoded parameters.
func NewProductCommand(params map[string]any) ProductCommand {
	if params == nil {
		params = map[string]any{}
	}
	body, err := json.Marshal(params)
	if err != nil {
		return ProductCommand{raw: []byte("{}"), args: map[string]json.RawMessage{}}
	}
	cmd, _ := ParseProductCommand(body)
	return cmd
}

// JSON returns the original payload.
func (c ProductCommand) JSON() []byte { return c.raw }

// Decode unmarshals the whole payload into v.
func (c ProductCommand) Decode(v any) error {
	if len(c.raw) == 0 {
		return json.Unmarshal([]byte("{}"), v)
	}
	return json.Unmarshal(c.raw, v)
}

// Parameters lists the parameter names present in the payload, sorted.
func (c ProductCommand) Parameters() []string {
	names := make([]string, 0, len(c.args))
	for k := range c.args {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Has reports whether the parameter was sent, even as null.
func (c ProductCommand) Has(name string) bool {
	_, ok := c.args[name]
	return ok
}

// IsNull reports whether the parameter was sent as an explicit null.
func (c ProductCommand) IsNull(name string) bool {
	v, ok := c.args[name]
	return ok && bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

func (c ProductCommand) decode(name string, v any) bool {
	raw, ok := c.args[name]
	if !ok || c.IsNull(name) {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

// String returns the parameter as a string, or "" when absent.
func (c ProductCommand) String(name string) string {
	var s string
	c.decode(name, &s)
	return s
}

// Int64 returns the parameter as an int64, or nil when absent or null.
func (c ProductCommand) Int64(name string) *int64 {
	var n int64
	if !c.decode(name, &n) {
		return nil
	}
	return &n
}

// Int returns the parameter as an int, or nil when absent or null.
func (c ProductCommand) Int(name string) *int {
	var n int
	if !c.decode(name, &n) {
		return nil
	}
	return &n
}

// Bool returns the parameter as a bool, or nil when absent or null.
func (c ProductCommand) Bool(name string) *bool {
	var b bool
	if !c.decode(name, &b) {
		return nil
	}
	return &b
}

// BoolPrimitive returns the parameter value, defaulting to false.
func (c ProductCommand) BoolPrimitive(name string) bool {
	if b := c.Bool(name); b != nil {
		return *b
	}
	return false
}

// Decimal returns the parameter as a decimal, or nil when absent or null.
func (c ProductCommand) Decimal(name string) *decimal.Decimal {
	var d decimal.Decimal
	if !c.decode(name, &d) {
		return nil
	}
	return &d
}

// IDs reads an array of {"id": n} objects, the shape used for charges.
// A nil slice means the parameter was absent; an empty slice means it was sent empty.
func (c ProductCommand) IDs(name string) []int64 {
	if !c.Has(name) {
		return nil
	}
	var items []struct {
		ID int64 `json:"id"`
	}
	c.decode(name, &items)
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	return ids
}

// Into decodes a single parameter into v, returning false when absent or null.
func (c ProductCommand) Into(name string, v any) bool {
	return c.decode(name, v)
}
