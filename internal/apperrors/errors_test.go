package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fiterunited/fineract-template/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperrors.Kind
	}{
		{name: "nil", err: nil, want: apperrors.KindNone},
		{name: "validation", err: apperrors.NewValidationError("product", "taxGroupId", "cannot.be.blank", "required", nil), want: apperrors.KindValidation},
		{name: "not found", err: &apperrors.NotFoundError{Resource: "product", ID: int64(4)}, want: apperrors.KindNotFound},
		{name: "wrapped not found", err: fmt.Errorf("loading: %w", &apperrors.NotFoundError{Resource: "product", ID: 1}), want: apperrors.KindNotFound},
		{name: "sentinel not found", err: apperrors.NewNotFoundError("transfer missing"), want: apperrors.KindNotFound},
		{name: "domain rule", err: &apperrors.DomainRuleError{Code: "x", Message: "y"}, want: apperrors.KindDomainRule},
		{name: "duplicate", err: &apperrors.DuplicateKeyError{Field: "name", Value: "RD"}, want: apperrors.KindDuplicateKey},
		{name: "integrity", err: &apperrors.IntegrityError{Message: "Unknown data integrity issue with resource."}, want: apperrors.KindUnknownIntegrity},
		{name: "other", err: errors.New("boom"), want: apperrors.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperrors.KindOf(tt.err))
		})
	}
}

func TestValidationError_HasParameter(t *testing.T) {
	err := apperrors.NewValidationError("recurringdepositproduct", "taxGroupId", "cannot.be.blank", "The parameter `taxGroupId` is mandatory.", nil)

	assert.True(t, err.HasParameter("taxGroupId"))
	assert.False(t, err.HasParameter("name"))
	assert.Equal(t, "validation.msg.recurringdepositproduct.taxGroupId.cannot.be.blank", err.Errors[0].Code)
	assert.Contains(t, err.Error(), "taxGroupId")
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := apperrors.NewAppError(500, "failed to begin transaction", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to begin transaction: connection reset", err.Error())
}
