package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fiterunited/fineract-template/internal/apperrors"
	"github.com/fiterunited/fineract-template/internal/core/domain"
	portsrepo "github.com/fiterunited/fineract-template/internal/core/ports/repositories"
	portssvc "github.com/fiterunited/fineract-template/internal/core/ports/services"
	"github.com/fiterunited/fineract-template/internal/dto"
)

type productAssembler struct {
	BaseService
	chargeRepo   portsrepo.ChargeReader
	taxGroupRepo portsrepo.TaxGroupReader
}

// NewProductAssembler creates the assembler that turns commands into products.
func NewProductAssembler(chargeRepo portsrepo.ChargeReader, taxGroupRepo portsrepo.TaxGroupReader) portssvc.ProductAssembler {
	return &productAssembler{chargeRepo: chargeRepo, taxGroupRepo: taxGroupRepo}
}

var _ portssvc.ProductAssembler = (*productAssembler)(nil)

func (a *productAssembler) AssembleProduct(ctx context.Context, cmd domain.ProductCommand) (*domain.Product, error) {
	product := &domain.Product{
		Name:        cmd.String(domain.NameParam),
		ShortName:   cmd.String(domain.ShortNameParam),
		Description: cmd.String(domain.DescriptionParam),
		Currency: domain.Currency{
			Code:          cmd.String(domain.CurrencyCodeParam),
			DecimalPlaces: derefInt(cmd.Int(domain.DigitsAfterDecimalParam)),
			InMultiplesOf: cmd.Int(domain.InMultiplesOfParam),
		},
		InterestCompoundingPeriodType:      derefInt(cmd.Int(domain.InterestCompoundingPeriodTypeParam)),
		InterestPostingPeriodType:          derefInt(cmd.Int(domain.InterestPostingPeriodTypeParam)),
		InterestCalculationType:            derefInt(cmd.Int(domain.InterestCalculationTypeParam)),
		InterestCalculationDaysInYearType:  derefInt(cmd.Int(domain.InterestCalculationDaysInYearTypeParam)),
		MinDepositTerm:                     cmd.Int(domain.MinDepositTermParam),
		MaxDepositTerm:                     cmd.Int(domain.MaxDepositTermParam),
		MinDepositAmount:                   cmd.Decimal(domain.MinDepositAmountParam),
		DepositAmount:                      cmd.Decimal(domain.DepositAmountParam),
		MaxDepositAmount:                   cmd.Decimal(domain.MaxDepositAmountParam),
		IsMandatoryDeposit:                 cmd.BoolPrimitive(domain.IsMandatoryDepositParam),
		AllowWithdrawal:                    cmd.BoolPrimitive(domain.AllowWithdrawalParam),
		AdjustAdvanceTowardsFuturePayments: cmd.BoolPrimitive(domain.AdjustAdvanceTowardsFuturePaymentsParam),
		AddPenaltyOnMissedTargetSavings:    cmd.BoolPrimitive(domain.AddPenaltyOnMissedTargetSavingsParam),
		AccountingRule:                     domain.AccountingRuleType(derefInt(cmd.Int(domain.AccountingRuleParam))),
		WithHoldTax:                        cmd.BoolPrimitive(domain.WithHoldTaxParam),
	}
	if rate := cmd.Decimal(domain.NominalAnnualInterestRateParam); rate != nil {
		product.NominalAnnualInterestRate = *rate
	}
	if product.AccountingRule == 0 {
		product.AccountingRule = domain.AccountingNone
	}

	charts, err := a.AssembleCharts(cmd)
	if err != nil {
		return nil, err
	}
	product.Charts = charts

	charges, err := a.AssembleCharges(ctx, cmd, product.Currency.Code)
	if err != nil {
		return nil, err
	}
	product.Charges = charges

	taxGroup, err := a.AssembleTaxGroup(ctx, cmd)
	if err != nil {
		return nil, err
	}
	product.SetTaxGroup(taxGroup)

	return product, nil
}

func (a *productAssembler) AssembleCharges(ctx context.Context, cmd domain.ProductCommand, currencyCode string) ([]domain.Charge, error) {
	ids := cmd.IDs(domain.ChargesParam)
	charges := make([]domain.Charge, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		charge, err := a.chargeRepo.FindChargeByID(ctx, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, &apperrors.NotFoundError{Resource: "Charge", ID: id}
			}
			a.LogError(ctx, err, "Failed to load charge", slog.Int64("charge_id", id))
			return nil, err
		}
		if !charge.IsSavingsCharge() {
			return nil, &apperrors.DomainRuleError{
				Code:    "error.msg.charge.not.applicable.to.savings.product",
				Message: fmt.Sprintf("Charge with identifier %d cannot be applied to a savings product", id),
			}
		}
		if !charge.Active {
			return nil, &apperrors.DomainRuleError{
				Code:    "error.msg.charge.inactive",
				Message: fmt.Sprintf("Charge with identifier %d is not active", id),
			}
		}
		if charge.CurrencyCode != currencyCode {
			return nil, &apperrors.DomainRuleError{
				Code:    "error.msg.charge.currency.mismatch",
				Message: fmt.Sprintf("Charge with identifier %d is in %s but the product uses %s", id, charge.CurrencyCode, currencyCode),
			}
		}
		charges = append(charges, *charge)
	}
	return charges, nil
}

func (a *productAssembler) AssembleTaxGroup(ctx context.Context, cmd domain.ProductCommand) (*domain.TaxGroup, error) {
	id := cmd.Int64(domain.TaxGroupIDParam)
	if id == nil {
		return nil, nil
	}
	taxGroup, err := a.taxGroupRepo.FindTaxGroupByID(ctx, *id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "Tax Group", ID: *id}
		}
		a.LogError(ctx, err, "Failed to load tax group", slog.Int64("tax_group_id", *id))
		return nil, err
	}
	return taxGroup, nil
}

func (a *productAssembler) AssembleCharts(cmd domain.ProductCommand) ([]domain.InterestRateChart, error) {
	var reqs []dto.ChartRequest
	if !cmd.Into(domain.ChartsParam, &reqs) {
		return nil, nil
	}
	charts := make([]domain.InterestRateChart, 0, len(reqs))
	for i, r := range reqs {
		from, err := time.Parse(dto.DateLayout, r.FromDate)
		if err != nil {
			return nil, chartDateError(i, "fromDate", r.FromDate)
		}
		chart := domain.InterestRateChart{Name: r.Name, Description: r.Description, FromDate: from}
		if r.EndDate != nil {
			end, err := time.Parse(dto.DateLayout, *r.EndDate)
			if err != nil {
				return nil, chartDateError(i, "endDate", *r.EndDate)
			}
			if end.Before(from) {
				return nil, apperrors.NewValidationError(domain.RecurringDepositProductResource,
					fmt.Sprintf("charts[%d].endDate", i), "before.from.date", "The chart end date must not be before its from date.", *r.EndDate)
			}
			chart.EndDate = &end
		}
		for _, s := range r.Slabs {
			chart.Slabs = append(chart.Slabs, domain.InterestRateSlab{
				Description:        s.Description,
				PeriodType:         s.PeriodType,
				FromPeriod:         s.FromPeriod,
				ToPeriod:           s.ToPeriod,
				AnnualInterestRate: s.AnnualInterestRate.Round(6),
			})
		}
		charts = append(charts, chart)
	}
	return charts, nil
}

func chartDateError(i int, field, value string) error {
	param := fmt.Sprintf("charts[%d].%s", i, field)
	return apperrors.NewValidationError(domain.RecurringDepositProductResource, param, "invalid.date.format",
		fmt.Sprintf("The parameter `%s` must use the format %s.", param, dto.DateLayout), value)
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
