package repositories

import (
	"context"

	"github.com/fiterunited/fineract-template/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AccountingMappingRepository stores product to GL account mappings.
type AccountingMappingRepository interface {
	// FindMappings returns the product's mappings keyed by activity.
	FindMappings(ctx context.Context, productID int64, productType domain.DepositAccountType) (map[domain.FinancialActivity]domain.ProductGLMapping, error)

	// SaveMapping inserts or replaces the mapping for one activity.
	SaveMapping(ctx context.Context, tx pgx.Tx, mapping domain.ProductGLMapping) error

	// DeleteMappings removes every mapping of the product.
	DeleteMappings(ctx context.Context, tx pgx.Tx, productID int64, productType domain.DepositAccountType) error
}
