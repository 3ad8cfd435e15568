package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fiterunited/fineract-template/internal/apperrors"
	"github.com/fiterunited/fineract-template/internal/core/domain"
	portsrepo "github.com/fiterunited/fineract-template/internal/core/ports/repositories"
	portssvc "github.com/fiterunited/fineract-template/internal/core/ports/services"
)

type classificationLookup struct {
	BaseService
	codeValueRepo portsrepo.CodeValueReader
}

// NewClassificationLookup resolves product categories and types from code values.
func NewClassificationLookup(codeValueRepo portsrepo.CodeValueReader) portssvc.ClassificationLookup {
	return &classificationLookup{codeValueRepo: codeValueRepo}
}

var _ portssvc.ClassificationLookup = (*classificationLookup)(nil)

func (s *classificationLookup) FindByCodeNameAndID(ctx context.Context, codeName string, codeValueID int64) (*domain.CodeValue, error) {
	cv, err := s.codeValueRepo.FindCodeValueByCodeNameAndID(ctx, codeName, codeValueID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "Code value of " + codeName, ID: codeValueID}
		}
		s.LogError(ctx, err, "Failed to load code value",
			slog.String("code_name", codeName),
			slog.Int64("code_value_id", codeValueID))
		return nil, err
	}
	return cv, nil
}
