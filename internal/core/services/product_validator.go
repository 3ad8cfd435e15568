package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/fiterunited/fineract-template/internal/apperrors"
	"github.com/fiterunited/fineract-template/internal/core/domain"
	portssvc "github.com/fiterunited/fineract-template/internal/core/ports/services"
	"github.com/fiterunited/fineract-template/internal/dto"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var supportedProductParams = map[string]struct{}{}

func init() {
	for _, p := range []string{
		domain.NameParam, domain.ShortNameParam, domain.DescriptionParam, domain.CurrencyCodeParam,
		domain.DigitsAfterDecimalParam, domain.InMultiplesOfParam, domain.NominalAnnualInterestRateParam,
		domain.InterestCompoundingPeriodTypeParam, domain.InterestPostingPeriodTypeParam,
		domain.InterestCalculationTypeParam, domain.InterestCalculationDaysInYearTypeParam,
		domain.MinDepositTermParam, domain.MaxDepositTermParam, domain.MinDepositAmountParam,
		domain.DepositAmountParam, domain.MaxDepositAmountParam, domain.IsMandatoryDepositParam,
		domain.AllowWithdrawalParam, domain.AdjustAdvanceTowardsFuturePaymentsParam,
		domain.AddPenaltyOnMissedTargetSavingsParam, domain.AccountingRuleParam, domain.ChargesParam,
		domain.ChartsParam, domain.WithHoldTaxParam, domain.TaxGroupIDParam, domain.ProductCategoryIDParam,
		domain.ProductTypeIDParam, domain.LocaleParam, domain.DateFormatParam,
	} {
		supportedProductParams[p] = struct{}{}
	}
	for _, a := range domain.CashBasedSavingsActivities {
		supportedProductParams[a.Param] = struct{}{}
	}
}

// Parameters a create command must carry.
var requiredOnCreate = []string{
	domain.NameParam, domain.ShortNameParam, domain.DescriptionParam, domain.CurrencyCodeParam,
	domain.DigitsAfterDecimalParam, domain.NominalAnnualInterestRateParam,
	domain.InterestCompoundingPeriodTypeParam, domain.InterestPostingPeriodTypeParam,
	domain.InterestCalculationTypeParam, domain.InterestCalculationDaysInYearTypeParam,
	domain.MinDepositTermParam, domain.DepositAmountParam, domain.AccountingRuleParam,
}

// Parameters an update may omit but never send as null.
var notNullOnUpdate = []string{
	domain.NameParam, domain.ShortNameParam, domain.DescriptionParam, domain.CurrencyCodeParam,
	domain.DigitsAfterDecimalParam, domain.NominalAnnualInterestRateParam,
	domain.InterestCompoundingPeriodTypeParam, domain.InterestPostingPeriodTypeParam,
	domain.InterestCalculationTypeParam, domain.InterestCalculationDaysInYearTypeParam,
	domain.AccountingRuleParam, domain.ChargesParam,
}

type productValidator struct {
	validate *validator.Validate
}

// NewProductValidator creates the command validator for recurring deposit products.
func NewProductValidator() portssvc.ProductValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &productValidator{validate: v}
}

var _ portssvc.ProductValidator = (*productValidator)(nil)

// fieldErrors accumulates parameter errors for one command.
type fieldErrors struct {
	errs []apperrors.FieldError
}

func (f *fieldErrors) add(param, code, message string, value any) {
	f.errs = append(f.errs, apperrors.FieldError{
		Parameter: param,
		Code:      fmt.Sprintf("validation.msg.%s.%s.%s", domain.RecurringDepositProductResource, param, code),
		Message:   message,
		Value:     value,
	})
}

func (f *fieldErrors) err() error {
	if len(f.errs) == 0 {
		return nil
	}
	return &apperrors.ValidationError{Resource: domain.RecurringDepositProductResource, Errors: f.errs}
}

func (v *productValidator) ValidateForCreate(cmd domain.ProductCommand) error {
	fe := &fieldErrors{}
	req, ok := v.decode(cmd, fe)
	if !ok {
		return fe.err()
	}

	for _, p := range requiredOnCreate {
		if !cmd.Has(p) || cmd.IsNull(p) {
			fe.add(p, "cannot.be.blank", fmt.Sprintf("The parameter `%s` is mandatory.", p), nil)
		}
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		fe.add(domain.NameParam, "cannot.be.blank", "The parameter `name` is mandatory.", nil)
	}
	if req.ShortName != nil && strings.TrimSpace(*req.ShortName) == "" {
		fe.add(domain.ShortNameParam, "cannot.be.blank", "The parameter `shortName` is mandatory.", nil)
	}

	if req.WithHoldTax != nil && *req.WithHoldTax && req.TaxGroupID == nil {
		fe.add(domain.TaxGroupIDParam, "cannot.be.blank", "The parameter `taxGroupId` is mandatory.", nil)
	}

	if req.AccountingRule != nil && domain.AccountingRuleType(*req.AccountingRule).IsCashBased() {
		for _, a := range domain.CashBasedSavingsActivities {
			if cmd.Int64(a.Param) == nil {
				fe.add(a.Param, "cannot.be.blank", fmt.Sprintf("The parameter `%s` is mandatory.", a.Param), nil)
			}
		}
	}

	v.checkRanges(req, fe)
	return fe.err()
}

func (v *productValidator) ValidateForUpdate(cmd domain.ProductCommand) error {
	fe := &fieldErrors{}
	req, ok := v.decode(cmd, fe)
	if !ok {
		return fe.err()
	}

	for _, p := range notNullOnUpdate {
		if cmd.IsNull(p) {
			fe.add(p, "cannot.be.blank", fmt.Sprintf("The parameter `%s` cannot be null.", p), nil)
		}
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		fe.add(domain.NameParam, "cannot.be.blank", "The parameter `name` is mandatory.", nil)
	}
	if req.ShortName != nil && strings.TrimSpace(*req.ShortName) == "" {
		fe.add(domain.ShortNameParam, "cannot.be.blank", "The parameter `shortName` is mandatory.", nil)
	}

	// A missing taxGroupId may still resolve to the stored group; only an explicit null is rejected here.
	if req.WithHoldTax != nil && *req.WithHoldTax && cmd.IsNull(domain.TaxGroupIDParam) {
		fe.add(domain.TaxGroupIDParam, "cannot.be.blank", "The parameter `taxGroupId` is mandatory.", nil)
	}

	v.checkRanges(req, fe)
	return fe.err()
}

// decode checks the parameter names and shapes and runs the struct tags.
func (v *productValidator) decode(cmd domain.ProductCommand, fe *fieldErrors) (*dto.ProductRequest, bool) {
	for _, p := range cmd.Parameters() {
		if _, ok := supportedProductParams[p]; !ok {
			fe.add(p, "is.not.supported", fmt.Sprintf("The parameter `%s` is not supported.", p), nil)
		}
	}
	if len(fe.errs) > 0 {
		return nil, false
	}

	req := &dto.ProductRequest{}
	if err := cmd.Decode(req); err != nil {
		fe.add("body", "invalid.format", "The request body has an invalid format: "+err.Error(), nil)
		return nil, false
	}

	if err := v.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			fe.add("body", "invalid", err.Error(), nil)
			return nil, false
		}
		for _, ve := range verrs {
			param := ve.Field()
			if ns := ve.Namespace(); strings.Count(ns, ".") > 1 {
				// nested field: drop the struct type prefix
				param = ns[strings.Index(ns, ".")+1:]
			}
			fe.add(param, tagCode(ve.Tag()), fmt.Sprintf("The parameter `%s` failed the `%s` check.", param, ve.Tag()), ve.Value())
		}
	}
	return req, true
}

func (v *productValidator) checkRanges(req *dto.ProductRequest, fe *fieldErrors) {
	if req.MinDepositTerm != nil && req.MaxDepositTerm != nil && *req.MaxDepositTerm < *req.MinDepositTerm {
		fe.add(domain.MaxDepositTermParam, "must.be.greater.than.or.equal.to.min.deposit.term",
			"The parameter `maxDepositTerm` must be greater than or equal to `minDepositTerm`.", *req.MaxDepositTerm)
	}
	if req.NominalAnnualInterestRate != nil && req.NominalAnnualInterestRate.IsNegative() {
		fe.add(domain.NominalAnnualInterestRateParam, "not.zero.or.greater",
			"The parameter `nominalAnnualInterestRate` must be zero or greater.", req.NominalAnnualInterestRate.String())
	}
	for _, d := range []struct {
		param string
		value *decimal.Decimal
	}{
		{domain.MinDepositAmountParam, req.MinDepositAmount},
		{domain.DepositAmountParam, req.DepositAmount},
		{domain.MaxDepositAmountParam, req.MaxDepositAmount},
	} {
		if d.value != nil && !d.value.IsPositive() {
			fe.add(d.param, "not.greater.than.zero", fmt.Sprintf("The parameter `%s` must be greater than 0.", d.param), d.value.String())
		}
	}
	if req.MinDepositAmount != nil && req.DepositAmount != nil && req.DepositAmount.LessThan(*req.MinDepositAmount) {
		fe.add(domain.DepositAmountParam, "must.be.greater.than.or.equal.to.min.deposit.amount",
			"The parameter `depositAmount` must not be less than `minDepositAmount`.", req.DepositAmount.String())
	}
	if req.MaxDepositAmount != nil && req.DepositAmount != nil && req.DepositAmount.GreaterThan(*req.MaxDepositAmount) {
		fe.add(domain.DepositAmountParam, "must.be.less.than.or.equal.to.max.deposit.amount",
			"The parameter `depositAmount` must not exceed `maxDepositAmount`.", req.DepositAmount.String())
	}
	for i, chart := range req.Charts {
		for j, slab := range chart.Slabs {
			if slab.AnnualInterestRate.IsNegative() {
				param := fmt.Sprintf("charts[%d].chartSlabs[%d].annualInterestRate", i, j)
				fe.add(param, "not.zero.or.greater", fmt.Sprintf("The parameter `%s` must be zero or greater.", param), slab.AnnualInterestRate.String())
			}
		}
	}
}

func tagCode(tag string) string {
	switch tag {
	case "required":
		return "cannot.be.blank"
	case "max", "len":
		return "exceeds.max.length"
	case "oneof":
		return "is.not.one.of.expected.enumerations"
	case "gt", "min":
		return "not.greater.than.zero"
	default:
		return "invalid." + tag
	}
}
