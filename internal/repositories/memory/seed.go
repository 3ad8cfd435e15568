package memory

import (
	"time"

	"github.com/fiterunited/fineract-template/internal/core/domain"
	"github.com/shopspring/decimal"
)

const seedUser = "system"

// SeedReferenceData loads a small set of charges, tax groups, classifications
// and GL accounts so a memory-backed server can create products out of the box.
func SeedReferenceData(s *Store) {
	s.PutCharge(domain.Charge{
		ID: 1, Name: "Missed deposit penalty", Amount: decimal.RequireFromString("10.00"), CurrencyCode: "USD",
		AppliesTo: domain.ChargeAppliesToSavings, TimeType: domain.ChargeTimeSpecifiedDueDate,
		CalculationType: domain.ChargeCalculationFlat, Penalty: true, Active: true,
	})
	s.PutCharge(domain.Charge{
		ID: 2, Name: "Withdrawal fee", Amount: decimal.RequireFromString("1.5"), CurrencyCode: "USD",
		AppliesTo: domain.ChargeAppliesToSavings, TimeType: domain.ChargeTimeWithdrawalFee,
		CalculationType: domain.ChargeCalculationPercentOfAmount, Active: true,
	})
	s.PutCharge(domain.Charge{
		ID: 3, Name: "Loan processing fee", Amount: decimal.RequireFromString("25.00"), CurrencyCode: "USD",
		AppliesTo: domain.ChargeAppliesToLoan, TimeType: domain.ChargeTimeDisbursement,
		CalculationType: domain.ChargeCalculationFlat, Active: true,
	})

	s.PutTaxGroup(domain.TaxGroup{ID: 1, Name: "Withholding tax"})

	s.PutCodeValue(domain.CodeValue{ID: 1, CodeName: domain.SavingsProductCategoryCode, Label: "Retail", Position: 1, Active: true})
	s.PutCodeValue(domain.CodeValue{ID: 2, CodeName: domain.SavingsProductCategoryCode, Label: "Corporate", Position: 2, Active: true})
	s.PutCodeValue(domain.CodeValue{ID: 3, CodeName: domain.SavingsProductTypeCode, Label: "Target savings", Position: 1, Active: true})
	s.PutCodeValue(domain.CodeValue{ID: 4, CodeName: domain.SavingsProductTypeCode, Label: "Fixed plan", Position: 2, Active: true})

	now := time.Now().UTC()
	audit := domain.AuditFields{CreatedAt: now, CreatedBy: seedUser, LastUpdatedAt: now, LastUpdatedBy: seedUser}
	for _, a := range []domain.GLAccount{
		{ID: 1, Name: "Savings reference", GLCode: "10100", AccountType: domain.Asset},
		{ID: 2, Name: "Savings control", GLCode: "20100", AccountType: domain.Liability},
		{ID: 3, Name: "Interest on savings", GLCode: "50100", AccountType: domain.Expense},
		{ID: 4, Name: "Fee income", GLCode: "40100", AccountType: domain.Income},
		{ID: 5, Name: "Penalty income", GLCode: "40200", AccountType: domain.Income},
		{ID: 6, Name: "Transfers in suspense", GLCode: "20200", AccountType: domain.Liability},
	} {
		a.AuditFields = audit
		s.PutGLAccount(a)
	}
}
