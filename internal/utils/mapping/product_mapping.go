package mapping

import (
	"github.com/fiterunited/fineract-template/internal/core/domain"
	"github.com/fiterunited/fineract-template/internal/models"
)

// ToModelSavingsProduct converts a domain product to its m_savings_product row.
func ToModelSavingsProduct(d domain.Product) models.SavingsProduct {
	return models.SavingsProduct{
		ID:                                 d.ID,
		Name:                               d.Name,
		ShortName:                          d.ShortName,
		Description:                        d.Description,
		CurrencyCode:                       d.Currency.Code,
		CurrencyDigits:                     d.Currency.DecimalPlaces,
		CurrencyMultiplesOf:                d.Currency.InMultiplesOf,
		NominalAnnualInterestRate:          d.NominalAnnualInterestRate,
		InterestCompoundingPeriodEnum:      d.InterestCompoundingPeriodType,
		InterestPostingPeriodEnum:          d.InterestPostingPeriodType,
		InterestCalculationTypeEnum:        d.InterestCalculationType,
		InterestCalculationDaysInYearEnum:  d.InterestCalculationDaysInYearType,
		DepositTypeEnum:                    int(domain.RecurringDeposit),
		MinDepositTerm:                     d.MinDepositTerm,
		MaxDepositTerm:                     d.MaxDepositTerm,
		MinDepositAmount:                   d.MinDepositAmount,
		DepositAmount:                      d.DepositAmount,
		MaxDepositAmount:                   d.MaxDepositAmount,
		IsMandatoryDeposit:                 d.IsMandatoryDeposit,
		AllowWithdrawal:                    d.AllowWithdrawal,
		AdjustAdvanceTowardsFuturePayments: d.AdjustAdvanceTowardsFuturePayments,
		AddPenaltyOnMissedTargetSavings:    d.AddPenaltyOnMissedTargetSavings,
		AccountingType:                     int(d.AccountingRule),
		WithholdTax:                        d.WithHoldTax,
		TaxGroupID:                         d.TaxGroupID(),
		ProductCategoryID:                  codeValueID(d.Category),
		ProductTypeID:                      codeValueID(d.Type),
		AuditFields:                        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProduct converts a product row, with its joined tax group and
// classification labels, to a domain product. Charges and charts are loaded separately.
func ToDomainProduct(m models.SavingsProduct) domain.Product {
	p := domain.Product{
		ID:          m.ID,
		Name:        m.Name,
		ShortName:   m.ShortName,
		Description: m.Description,
		Currency: domain.Currency{
			Code:          m.CurrencyCode,
			DecimalPlaces: m.CurrencyDigits,
			InMultiplesOf: m.CurrencyMultiplesOf,
		},
		NominalAnnualInterestRate:          m.NominalAnnualInterestRate,
		InterestCompoundingPeriodType:      m.InterestCompoundingPeriodEnum,
		InterestPostingPeriodType:          m.InterestPostingPeriodEnum,
		InterestCalculationType:            m.InterestCalculationTypeEnum,
		InterestCalculationDaysInYearType:  m.InterestCalculationDaysInYearEnum,
		MinDepositTerm:                     m.MinDepositTerm,
		MaxDepositTerm:                     m.MaxDepositTerm,
		MinDepositAmount:                   m.MinDepositAmount,
		DepositAmount:                      m.DepositAmount,
		MaxDepositAmount:                   m.MaxDepositAmount,
		IsMandatoryDeposit:                 m.IsMandatoryDeposit,
		AllowWithdrawal:                    m.AllowWithdrawal,
		AdjustAdvanceTowardsFuturePayments: m.AdjustAdvanceTowardsFuturePayments,
		AddPenaltyOnMissedTargetSavings:    m.AddPenaltyOnMissedTargetSavings,
		AccountingRule:                     domain.AccountingRuleType(m.AccountingType),
		WithHoldTax:                        m.WithholdTax,
		AuditFields:                        ToDomainAuditFields(m.AuditFields),
	}
	if m.TaxGroupID != nil {
		p.TaxGroup = &domain.TaxGroup{ID: *m.TaxGroupID, Name: deref(m.TaxGroupName)}
	}
	if m.ProductCategoryID != nil {
		p.Category = &domain.CodeValue{ID: *m.ProductCategoryID, CodeName: domain.SavingsProductCategoryCode, Label: deref(m.ProductCategoryLabel), Active: true}
	}
	if m.ProductTypeID != nil {
		p.Type = &domain.CodeValue{ID: *m.ProductTypeID, CodeName: domain.SavingsProductTypeCode, Label: deref(m.ProductTypeLabel), Active: true}
	}
	return p
}

// ToDomainInterestRateChart converts a chart row and its slab rows.
func ToDomainInterestRateChart(c models.InterestRateChart, slabs []models.InterestRateSlab) domain.InterestRateChart {
	chart := domain.InterestRateChart{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		FromDate:    domain.CalendarDay(c.FromDate),
	}
	if c.EndDate != nil {
		end := domain.CalendarDay(*c.EndDate)
		chart.EndDate = &end
	}
	for _, s := range slabs {
		chart.Slabs = append(chart.Slabs, domain.InterestRateSlab{
			ID:                 s.ID,
			Description:        s.Description,
			PeriodType:         s.PeriodTypeEnum,
			FromPeriod:         s.FromPeriod,
			ToPeriod:           s.ToPeriod,
			AnnualInterestRate: s.AnnualInterestRate,
		})
	}
	return chart
}

// ToDomainCharge converts an m_charge row.
func ToDomainCharge(m models.Charge) domain.Charge {
	return domain.Charge{
		ID:              m.ID,
		Name:            m.Name,
		Amount:          m.Amount,
		CurrencyCode:    m.CurrencyCode,
		AppliesTo:       domain.ChargeAppliesTo(m.ChargeAppliesToEnum),
		TimeType:        domain.ChargeTimeType(m.ChargeTimeEnum),
		CalculationType: domain.ChargeCalculationType(m.ChargeCalculationEnum),
		Penalty:         m.IsPenalty,
		Active:          m.IsActive,
	}
}

// ToDomainCodeValue converts an m_code_value row.
func ToDomainCodeValue(m models.CodeValue) domain.CodeValue {
	return domain.CodeValue{
		ID:       m.ID,
		CodeName: m.CodeName,
		Label:    m.Value,
		Position: m.OrderPosition,
		Active:   m.IsActive,
	}
}

// ToDomainGLAccount converts an acc_gl_account row.
func ToDomainGLAccount(m models.GLAccount) domain.GLAccount {
	return domain.GLAccount{
		ID:          m.ID,
		Name:        m.Name,
		GLCode:      m.GLCode,
		AccountType: domain.GLAccountType(m.AccountType),
		Disabled:    m.Disabled,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelProductMapping converts a domain GL mapping to its row.
func ToModelProductMapping(d domain.ProductGLMapping) models.ProductMapping {
	return models.ProductMapping{
		ID:                   d.ID,
		GLAccountID:          d.GLAccountID,
		ProductID:            d.ProductID,
		ProductType:          int(d.ProductType),
		FinancialAccountType: string(d.Activity),
	}
}

// ToDomainProductMapping converts an acc_product_mapping row.
func ToDomainProductMapping(m models.ProductMapping) domain.ProductGLMapping {
	return domain.ProductGLMapping{
		ID:          m.ID,
		ProductID:   m.ProductID,
		ProductType: domain.DepositAccountType(m.ProductType),
		Activity:    domain.FinancialActivity(m.FinancialAccountType),
		GLAccountID: m.GLAccountID,
	}
}

func codeValueID(cv *domain.CodeValue) *int64 {
	if cv == nil {
		return nil
	}
	id := cv.ID
	return &id
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
