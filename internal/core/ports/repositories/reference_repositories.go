package repositories

import (
	"context"

	"github.com/fiterunited/fineract-template/internal/core/domain"
)

// ChargeReader resolves charge definitions.
type ChargeReader interface {
	// FindChargeByID returns the charge or ErrNotFound.
	FindChargeByID(ctx context.Context, chargeID int64) (*domain.Charge, error)
}

// TaxGroupReader resolves tax groups.
type TaxGroupReader interface {
	// FindTaxGroupByID returns the tax group or ErrNotFound.
	FindTaxGroupByID(ctx context.Context, taxGroupID int64) (*domain.TaxGroup, error)
}

// CodeValueReader resolves classification values.
type CodeValueReader interface {
	// FindCodeValueByCodeNameAndID returns the value only when it belongs to the named code.
	FindCodeValueByCodeNameAndID(ctx context.Context, codeName string, codeValueID int64) (*domain.CodeValue, error)
}

// GLAccountReader resolves general ledger accounts.
type GLAccountReader interface {
	// FindGLAccountByID returns the account or ErrNotFound.
	FindGLAccountByID(ctx context.Context, glAccountID int64) (*domain.GLAccount, error)
}
