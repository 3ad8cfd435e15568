package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/fiterunited/fineract-template/internal/apperrors"
	"github.com/fiterunited/fineract-template/internal/core/domain"
	portsrepo "github.com/fiterunited/fineract-template/internal/core/ports/repositories"
	"github.com/fiterunited/fineract-template/internal/models"
	"github.com/fiterunited/fineract-template/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const productSelect = `
	SELECT sp.id, sp.name, sp.short_name, sp.description, sp.currency_code, sp.currency_digits, sp.currency_multiplesof,
		sp.nominal_annual_interest_rate, sp.interest_compounding_period_enum, sp.interest_posting_period_enum,
		sp.interest_calculation_type_enum, sp.interest_calculation_days_in_year_type_enum, sp.deposit_type_enum,
		sp.min_deposit_term, sp.max_deposit_term, sp.min_deposit_amount, sp.deposit_amount, sp.max_deposit_amount,
		sp.is_mandatory_deposit, sp.allow_withdrawal, sp.adjust_advance_towards_future_payments,
		sp.add_penalty_on_missed_target_savings, sp.accounting_type, sp.withhold_tax,
		sp.tax_group_id, tg.name, sp.product_category_id, pc.code_value, sp.product_type_id, pt.code_value,
		sp.created_at, sp.created_by, sp.last_updated_at, sp.last_updated_by
	FROM m_savings_product sp
	LEFT JOIN m_tax_group tg ON tg.id = sp.tax_group_id
	LEFT JOIN m_code_value pc ON pc.id = sp.product_category_id
	LEFT JOIN m_code_value pt ON pt.id = sp.product_type_id`

type PgxProductRepository struct {
	BaseRepository
}

// newPgxProductRepository creates a new repository for recurring deposit products.
func newPgxProductRepository(pool *pgxpool.Pool) portsrepo.ProductRepositoryWithTx {
	return &PgxProductRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ProductRepositoryWithTx = (*PgxProductRepository)(nil)

// FindProductByID loads a product with its charges and charts.
func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID int64) (*domain.Product, error) {
	query := productSelect + ` WHERE sp.id = $1 AND sp.deposit_type_enum = $2;`

	var m models.SavingsProduct
	if err := scanProduct(r.Pool.QueryRow(ctx, query, productID, int(domain.RecurringDeposit)), &m); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product %d: %w", productID, err)
	}

	product := mapping.ToDomainProduct(m)
	if err := r.loadOwned(ctx, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// ListProducts returns every recurring deposit product ordered by id.
func (r *PgxProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := productSelect + ` WHERE sp.deposit_type_enum = $1 ORDER BY sp.id;`
	rows, err := r.Pool.Query(ctx, query, int(domain.RecurringDeposit))
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	modelProducts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.SavingsProduct, error) {
		var m models.SavingsProduct
		err := scanProduct(row, &m)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan products: %w", err)
	}

	products := make([]domain.Product, 0, len(modelProducts))
	for _, m := range modelProducts {
		p := mapping.ToDomainProduct(m)
		if err := r.loadOwned(ctx, &p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

// SaveProduct inserts the product with its charge links and charts.
func (r *PgxProductRepository) SaveProduct(ctx context.Context, tx pgx.Tx, product *domain.Product) error {
	m := mapping.ToModelSavingsProduct(*product)
	query := `
		INSERT INTO m_savings_product (
			name, short_name, description, currency_code, currency_digits, currency_multiplesof,
			nominal_annual_interest_rate, interest_compounding_period_enum, interest_posting_period_enum,
			interest_calculation_type_enum, interest_calculation_days_in_year_type_enum, deposit_type_enum,
			min_deposit_term, max_deposit_term, min_deposit_amount, deposit_amount, max_deposit_amount,
			is_mandatory_deposit, allow_withdrawal, adjust_advance_towards_future_payments,
			add_penalty_on_missed_target_savings, accounting_type, withhold_tax,
			tax_group_id, product_category_id, product_type_id,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25, $26, $27, $28, $29, $30)
		RETURNING id;
	`
	return r.inTx(ctx, tx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, query,
			m.Name, m.ShortName, m.Description, m.CurrencyCode, m.CurrencyDigits, m.CurrencyMultiplesOf,
			m.NominalAnnualInterestRate, m.InterestCompoundingPeriodEnum, m.InterestPostingPeriodEnum,
			m.InterestCalculationTypeEnum, m.InterestCalculationDaysInYearEnum, m.DepositTypeEnum,
			m.MinDepositTerm, m.MaxDepositTerm, m.MinDepositAmount, m.DepositAmount, m.MaxDepositAmount,
			m.IsMandatoryDeposit, m.AllowWithdrawal, m.AdjustAdvanceTowardsFuturePayments,
			m.AddPenaltyOnMissedTargetSavings, m.AccountingType, m.WithholdTax,
			m.TaxGroupID, m.ProductCategoryID, m.ProductTypeID,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		).Scan(&product.ID)
		if err != nil {
			return fmt.Errorf("failed to insert product %q: %w", product.Name, err)
		}
		return r.writeOwned(ctx, tx, product)
	})
}

// UpdateProduct rewrites the product row and replaces its charge links and charts.
func (r *PgxProductRepository) UpdateProduct(ctx context.Context, tx pgx.Tx, product domain.Product) error {
	m := mapping.ToModelSavingsProduct(product)
	query := `
		UPDATE m_savings_product SET
			name = $2, short_name = $3, description = $4, currency_code = $5, currency_digits = $6,
			currency_multiplesof = $7, nominal_annual_interest_rate = $8, interest_compounding_period_enum = $9,
			interest_posting_period_enum = $10, interest_calculation_type_enum = $11,
			interest_calculation_days_in_year_type_enum = $12, min_deposit_term = $13, max_deposit_term = $14,
			min_deposit_amount = $15, deposit_amount = $16, max_deposit_amount = $17, is_mandatory_deposit = $18,
			allow_withdrawal = $19, adjust_advance_towards_future_payments = $20,
			add_penalty_on_missed_target_savings = $21, accounting_type = $22, withhold_tax = $23,
			tax_group_id = $24, product_category_id = $25, product_type_id = $26,
			last_updated_at = $27, last_updated_by = $28
		WHERE id = $1;
	`
	return r.inTx(ctx, tx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, query, m.ID,
			m.Name, m.ShortName, m.Description, m.CurrencyCode, m.CurrencyDigits,
			m.CurrencyMultiplesOf, m.NominalAnnualInterestRate, m.InterestCompoundingPeriodEnum,
			m.InterestPostingPeriodEnum, m.InterestCalculationTypeEnum,
			m.InterestCalculationDaysInYearEnum, m.MinDepositTerm, m.MaxDepositTerm,
			m.MinDepositAmount, m.DepositAmount, m.MaxDepositAmount, m.IsMandatoryDeposit,
			m.AllowWithdrawal, m.AdjustAdvanceTowardsFuturePayments,
			m.AddPenaltyOnMissedTargetSavings, m.AccountingType, m.WithholdTax,
			m.TaxGroupID, m.ProductCategoryID, m.ProductTypeID,
			m.LastUpdatedAt, m.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to update product %d: %w", product.ID, err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}

		if _, err := tx.Exec(ctx, `DELETE FROM m_savings_product_charge WHERE savings_product_id = $1;`, product.ID); err != nil {
			return fmt.Errorf("failed to clear product charges: %w", err)
		}
		// slabs follow their charts through ON DELETE CASCADE
		if _, err := tx.Exec(ctx, `DELETE FROM m_interest_rate_chart WHERE savings_product_id = $1;`, product.ID); err != nil {
			return fmt.Errorf("failed to clear product charts: %w", err)
		}
		return r.writeOwned(ctx, tx, &product)
	})
}

// DeleteProduct removes the product; charge links, charts and GL mappings cascade.
func (r *PgxProductRepository) DeleteProduct(ctx context.Context, tx pgx.Tx, productID int64) error {
	tag, err := r.q(tx).Exec(ctx, `DELETE FROM m_savings_product WHERE id = $1;`, productID)
	if err != nil {
		return fmt.Errorf("failed to delete product %d: %w", productID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxProductRepository) writeOwned(ctx context.Context, tx pgx.Tx, product *domain.Product) error {
	for _, id := range product.ChargeIDs() {
		if _, err := tx.Exec(ctx,
			`INSERT INTO m_savings_product_charge (savings_product_id, charge_id) VALUES ($1, $2);`,
			product.ID, id); err != nil {
			return fmt.Errorf("failed to link charge %d: %w", id, err)
		}
	}

	for i := range product.Charts {
		chart := &product.Charts[i]
		err := tx.QueryRow(ctx, `
			INSERT INTO m_interest_rate_chart (savings_product_id, name, description, from_date, end_date)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id;`,
			product.ID, chart.Name, chart.Description, chart.FromDate, chart.EndDate,
		).Scan(&chart.ID)
		if err != nil {
			return fmt.Errorf("failed to insert interest rate chart: %w", err)
		}
		for j := range chart.Slabs {
			slab := &chart.Slabs[j]
			err := tx.QueryRow(ctx, `
				INSERT INTO m_interest_rate_slab (interest_rate_chart_id, description, period_type_enum, from_period, to_period, annual_interest_rate)
				VALUES ($1, $2, $3, $4, $5, $6)
				RETURNING id;`,
				chart.ID, slab.Description, slab.PeriodType, slab.FromPeriod, slab.ToPeriod, slab.AnnualInterestRate,
			).Scan(&slab.ID)
			if err != nil {
				return fmt.Errorf("failed to insert interest rate slab: %w", err)
			}
		}
	}
	return nil
}

// loadOwned fills the product's charges and charts.
func (r *PgxProductRepository) loadOwned(ctx context.Context, product *domain.Product) error {
	rows, err := r.Pool.Query(ctx, `
		SELECT c.id, c.name, c.amount, c.currency_code, c.charge_applies_to_enum, c.charge_time_enum,
			c.charge_calculation_enum, c.is_penalty, c.is_active
		FROM m_charge c
		JOIN m_savings_product_charge spc ON spc.charge_id = c.id
		WHERE spc.savings_product_id = $1
		ORDER BY c.id;`, product.ID)
	if err != nil {
		return fmt.Errorf("failed to query product charges: %w", err)
	}
	charges, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Charge, error) {
		var c models.Charge
		err := scanCharge(row, &c)
		return c, err
	})
	if err != nil {
		return fmt.Errorf("failed to scan product charges: %w", err)
	}
	product.Charges = make([]domain.Charge, 0, len(charges))
	for _, c := range charges {
		product.Charges = append(product.Charges, mapping.ToDomainCharge(c))
	}

	rows, err = r.Pool.Query(ctx, `
		SELECT id, savings_product_id, name, description, from_date, end_date
		FROM m_interest_rate_chart
		WHERE savings_product_id = $1
		ORDER BY id;`, product.ID)
	if err != nil {
		return fmt.Errorf("failed to query interest rate charts: %w", err)
	}
	charts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.InterestRateChart, error) {
		var c models.InterestRateChart
		err := row.Scan(&c.ID, &c.ProductID, &c.Name, &c.Description, &c.FromDate, &c.EndDate)
		return c, err
	})
	if err != nil {
		return fmt.Errorf("failed to scan interest rate charts: %w", err)
	}

	product.Charts = nil
	for _, c := range charts {
		rows, err := r.Pool.Query(ctx, `
			SELECT id, interest_rate_chart_id, description, period_type_enum, from_period, to_period, annual_interest_rate
			FROM m_interest_rate_slab
			WHERE interest_rate_chart_id = $1
			ORDER BY id;`, c.ID)
		if err != nil {
			return fmt.Errorf("failed to query interest rate slabs: %w", err)
		}
		slabs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.InterestRateSlab, error) {
			var s models.InterestRateSlab
			err := row.Scan(&s.ID, &s.ChartID, &s.Description, &s.PeriodTypeEnum, &s.FromPeriod, &s.ToPeriod, &s.AnnualInterestRate)
			return s, err
		})
		if err != nil {
			return fmt.Errorf("failed to scan interest rate slabs: %w", err)
		}
		product.Charts = append(product.Charts, mapping.ToDomainInterestRateChart(c, slabs))
	}
	return nil
}

func scanProduct(row pgx.Row, m *models.SavingsProduct) error {
	return row.Scan(
		&m.ID, &m.Name, &m.ShortName, &m.Description, &m.CurrencyCode, &m.CurrencyDigits, &m.CurrencyMultiplesOf,
		&m.NominalAnnualInterestRate, &m.InterestCompoundingPeriodEnum, &m.InterestPostingPeriodEnum,
		&m.InterestCalculationTypeEnum, &m.InterestCalculationDaysInYearEnum, &m.DepositTypeEnum,
		&m.MinDepositTerm, &m.MaxDepositTerm, &m.MinDepositAmount, &m.DepositAmount, &m.MaxDepositAmount,
		&m.IsMandatoryDeposit, &m.AllowWithdrawal, &m.AdjustAdvanceTowardsFuturePayments,
		&m.AddPenaltyOnMissedTargetSavings, &m.AccountingType, &m.WithholdTax,
		&m.TaxGroupID, &m.TaxGroupName, &m.ProductCategoryID, &m.ProductCategoryLabel, &m.ProductTypeID, &m.ProductTypeLabel,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
}
