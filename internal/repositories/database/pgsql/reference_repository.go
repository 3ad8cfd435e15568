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

// PgxReferenceRepository reads the charge, tax group, code value and GL account
// tables. Those tables are owned by other modules; this service never writes them.
type PgxReferenceRepository struct {
	BaseRepository
}

func newPgxReferenceRepository(pool *pgxpool.Pool) *PgxReferenceRepository {
	return &PgxReferenceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var (
	_ portsrepo.ChargeReader    = (*PgxReferenceRepository)(nil)
	_ portsrepo.TaxGroupReader  = (*PgxReferenceRepository)(nil)
	_ portsrepo.CodeValueReader = (*PgxReferenceRepository)(nil)
	_ portsrepo.GLAccountReader = (*PgxReferenceRepository)(nil)
)

// FindChargeByID retrieves a charge definition.
func (r *PgxReferenceRepository) FindChargeByID(ctx context.Context, chargeID int64) (*domain.Charge, error) {
	query := `
		SELECT id, name, amount, currency_code, charge_applies_to_enum, charge_time_enum,
			charge_calculation_enum, is_penalty, is_active
		FROM m_charge
		WHERE id = $1;
	`
	var m models.Charge
	if err := scanCharge(r.Pool.QueryRow(ctx, query, chargeID), &m); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find charge %d: %w", chargeID, err)
	}
	c := mapping.ToDomainCharge(m)
	return &c, nil
}

// FindTaxGroupByID retrieves a tax group.
func (r *PgxReferenceRepository) FindTaxGroupByID(ctx context.Context, taxGroupID int64) (*domain.TaxGroup, error) {
	var tg domain.TaxGroup
	err := r.Pool.QueryRow(ctx, `SELECT id, name FROM m_tax_group WHERE id = $1;`, taxGroupID).Scan(&tg.ID, &tg.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find tax group %d: %w", taxGroupID, err)
	}
	return &tg, nil
}

// FindCodeValueByCodeNameAndID retrieves a code value that belongs to the named code.
func (r *PgxReferenceRepository) FindCodeValueByCodeNameAndID(ctx context.Context, codeName string, codeValueID int64) (*domain.CodeValue, error) {
	query := `
		SELECT cv.id, c.code_name, cv.code_value, cv.order_position, cv.is_active
		FROM m_code_value cv
		JOIN m_code c ON c.id = cv.code_id
		WHERE cv.id = $1 AND c.code_name = $2;
	`
	var m models.CodeValue
	err := r.Pool.QueryRow(ctx, query, codeValueID, codeName).Scan(&m.ID, &m.CodeName, &m.Value, &m.OrderPosition, &m.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find code value %d of %s: %w", codeValueID, codeName, err)
	}
	cv := mapping.ToDomainCodeValue(m)
	return &cv, nil
}

// FindGLAccountByID retrieves a general ledger account.
func (r *PgxReferenceRepository) FindGLAccountByID(ctx context.Context, glAccountID int64) (*domain.GLAccount, error) {
	query := `
		SELECT id, name, gl_code, account_type, disabled, created_at, created_by, last_updated_at, last_updated_by
		FROM acc_gl_account
		WHERE id = $1;
	`
	var m models.GLAccount
	err := r.Pool.QueryRow(ctx, query, glAccountID).Scan(
		&m.ID, &m.Name, &m.GLCode, &m.AccountType, &m.Disabled,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find GL account %d: %w", glAccountID, err)
	}
	a := mapping.ToDomainGLAccount(m)
	return &a, nil
}

func scanCharge(row pgx.Row, m *models.Charge) error {
	return row.Scan(
		&m.ID, &m.Name, &m.Amount, &m.CurrencyCode, &m.ChargeAppliesToEnum, &m.ChargeTimeEnum,
		&m.ChargeCalculationEnum, &m.IsPenalty, &m.IsActive,
	)
}
