package domain

import "github.com/fiterunited/fineract-template/internal/apperrors"

// Rule codes raised when a target savings penalty has no charge to levy.
const (
	PenaltyRequiresChargeCode      = "addPenaltyOnMissedTargetSavings.requires.a.specified.due.charge.of.type.flat.on.this.product"
	PenaltyChargeNotSuppliedCode   = "addPenaltyOnMissedTargetSavings.requires.a.specified.due.charge.of.type.flat.on.this.product.but.it's not.supplied"
	penaltyRequiresChargeMessage   = "addPenaltyOnMissedTargetSavings requires a charge of ChargeTimeType [specified due date] and ChargeCalculationType [flat] on this product"
	penaltyChargeNotSuppliedPrefix = penaltyRequiresChargeMessage + " but it's not supplied"
)

// RecurringDepositProductResource is the resource name used in validation codes.
const RecurringDepositProductResource = "recurringdepositproduct"

// CheckPenaltyCharges enforces that a product adding a penalty on missed target
// savings carries at least one flat, specified-due-date charge.
func CheckPenaltyCharges(addPenalty bool, charges []Charge) error {
	if !addPenalty {
		return nil
	}
	if len(charges) == 0 {
		return &apperrors.DomainRuleError{Code: PenaltyRequiresChargeCode, Message: penaltyRequiresChargeMessage}
	}
	for _, c := range charges {
		if c.IsFlatSpecifiedDueDate() {
			return nil
		}
	}
	return &apperrors.DomainRuleError{Code: PenaltyChargeNotSuppliedCode, Message: penaltyChargeNotSuppliedPrefix}
}

// CheckTaxGroup enforces that withholding tax has a tax group to apply.
func CheckTaxGroup(withHoldTax bool, taxGroup *TaxGroup) error {
	if withHoldTax && taxGroup == nil {
		return apperrors.NewValidationError(RecurringDepositProductResource, TaxGroupIDParam, "cannot.be.blank",
			"The parameter `taxGroupId` is mandatory.", nil)
	}
	return nil
}
