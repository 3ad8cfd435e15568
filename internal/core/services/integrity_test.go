package services_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fiterunited/fineract-template/internal/apperrors"
	portsrepo "github.com/fiterunited/fineract-template/internal/core/ports/repositories"
	"github.com/fiterunited/fineract-template/internal/core/services"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyProductIntegrityViolation(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantField string
		wantValue string
	}{
		{
			name:      "pgx name constraint",
			err:       &pgconn.PgError{Code: "23505", ConstraintName: portsrepo.ProductNameConstraint},
			wantField: "name",
			wantValue: "Target Saver",
		},
		{
			name:      "pgx short name constraint wrapped",
			err:       fmt.Errorf("failed to save product: %w", &pgconn.PgError{Code: "23505", ConstraintName: portsrepo.ProductShortNameConstraint}),
			wantField: "shortName",
			wantValue: "TS01",
		},
		{
			name:      "lib/pq constraint",
			err:       &pq.Error{Code: "23505", Constraint: portsrepo.ProductNameConstraint},
			wantField: "name",
			wantValue: "Target Saver",
		},
		{
			name:      "constraint only in message",
			err:       errors.New(`duplicate key value violates unique constraint "` + portsrepo.ProductShortNameConstraint + `"`),
			wantField: "shortName",
			wantValue: "TS01",
		},
		{
			name: "unrelated constraint",
			err:  &pgconn.PgError{Code: "23503", ConstraintName: "fk_savings_product_tax_group"},
		},
		{
			name: "plain error",
			err:  errors.New("connection reset by peer"),
		},
		{
			name: "nil error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := services.ClassifyProductIntegrityViolation(nil, tt.err, "Target Saver", "TS01")
			require.Error(t, err)

			if tt.wantField == "" {
				var integrityErr *apperrors.IntegrityError
				require.ErrorAs(t, err, &integrityErr)
				assert.Equal(t, "error.msg.savingsproduct.unknown.data.integrity.issue", integrityErr.Code)
				assert.Equal(t, apperrors.KindUnknownIntegrity, apperrors.KindOf(err))
				return
			}

			var dupErr *apperrors.DuplicateKeyError
			require.ErrorAs(t, err, &dupErr)
			assert.Equal(t, tt.wantField, dupErr.Field)
			assert.Equal(t, tt.wantValue, dupErr.Value)
			assert.Contains(t, dupErr.Message, tt.wantValue)
			assert.Equal(t, apperrors.KindDuplicateKey, apperrors.KindOf(err))
		})
	}
}
