package pgsql

import (
	"context"
	"fmt"

	"github.com/fiterunited/fineract-template/internal/core/domain"
	portsrepo "github.com/fiterunited/fineract-template/internal/core/ports/repositories"
	"github.com/fiterunited/fineract-template/internal/models"
	"github.com/fiterunited/fineract-template/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAccountingMappingRepository struct {
	BaseRepository
}

// newPgxAccountingMappingRepository creates a new repository for product GL mappings.
func newPgxAccountingMappingRepository(pool *pgxpool.Pool) portsrepo.AccountingMappingRepository {
	return &PgxAccountingMappingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.AccountingMappingRepository = (*PgxAccountingMappingRepository)(nil)

// FindMappings returns the product's mappings keyed by financial activity.
func (r *PgxAccountingMappingRepository) FindMappings(ctx context.Context, productID int64, productType domain.DepositAccountType) (map[domain.FinancialActivity]domain.ProductGLMapping, error) {
	query := `
		SELECT id, gl_account_id, product_id, product_type, financial_account_type
		FROM acc_product_mapping
		WHERE product_id = $1 AND product_type = $2;
	`
	rows, err := r.Pool.Query(ctx, query, productID, int(productType))
	if err != nil {
		return nil, fmt.Errorf("failed to query product mappings: %w", err)
	}
	modelMappings, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ProductMapping, error) {
		var m models.ProductMapping
		err := row.Scan(&m.ID, &m.GLAccountID, &m.ProductID, &m.ProductType, &m.FinancialAccountType)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan product mappings: %w", err)
	}

	res := make(map[domain.FinancialActivity]domain.ProductGLMapping, len(modelMappings))
	for _, m := range modelMappings {
		d := mapping.ToDomainProductMapping(m)
		res[d.Activity] = d
	}
	return res, nil
}

// SaveMapping inserts the mapping or repoints the existing one for the activity.
func (r *PgxAccountingMappingRepository) SaveMapping(ctx context.Context, tx pgx.Tx, m domain.ProductGLMapping) error {
	row := mapping.ToModelProductMapping(m)
	query := `
		INSERT INTO acc_product_mapping (gl_account_id, product_id, product_type, financial_account_type)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_id, product_type, financial_account_type) DO UPDATE SET
			gl_account_id = EXCLUDED.gl_account_id;
	`
	if _, err := r.q(tx).Exec(ctx, query, row.GLAccountID, row.ProductID, row.ProductType, row.FinancialAccountType); err != nil {
		return fmt.Errorf("failed to save %s mapping for product %d: %w", row.FinancialAccountType, row.ProductID, err)
	}
	return nil
}

// DeleteMappings removes every mapping of the product.
func (r *PgxAccountingMappingRepository) DeleteMappings(ctx context.Context, tx pgx.Tx, productID int64, productType domain.DepositAccountType) error {
	query := `DELETE FROM acc_product_mapping WHERE product_id = $1 AND product_type = $2;`
	if _, err := r.q(tx).Exec(ctx, query, productID, int(productType)); err != nil {
		return fmt.Errorf("failed to delete mappings for product %d: %w", productID, err)
	}
	return nil
}
