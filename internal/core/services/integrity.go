package services

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/fiterunited/fineract-template/internal/apperrors"
	portsrepo "github.com/fiterunited/fineract-template/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const (
	duplicateNameCode      = "error.msg.product.savings.duplicate.name"
	duplicateShortNameCode = "error.msg.product.savings.duplicate.short.name"
	unknownIntegrityCode   = "error.msg.savingsproduct.unknown.data.integrity.issue"
	unknownIntegrityMsg    = "Unknown data integrity issue with resource."
	uniqueViolationCode    = "23505"
)

// ClassifyProductIntegrityViolation turns a failed product write into a typed
// error. It never returns nil: callers only reach it after storage refused a write.
func ClassifyProductIntegrityViolation(logger *slog.Logger, err error, name, shortName string) error {
	switch constraintName(err) {
	case portsrepo.ProductNameConstraint:
		return &apperrors.DuplicateKeyError{
			Code:    duplicateNameCode,
			Message: "Recurring Deposit product with name `" + name + "` already exists",
			Field:   "name",
			Value:   name,
		}
	case portsrepo.ProductShortNameConstraint:
		return &apperrors.DuplicateKeyError{
			Code:    duplicateShortNameCode,
			Message: "Recurring Deposit product with short name `" + shortName + "` already exists",
			Field:   "shortName",
			Value:   shortName,
		}
	}

	if logger == nil {
		logger = slog.Default()
	}
	cause := "<nil>"
	if err != nil {
		cause = err.Error()
	}
	logger.Error("Unknown data integrity issue with recurring deposit product", slog.String("error", cause))
	return &apperrors.IntegrityError{Code: unknownIntegrityCode, Message: unknownIntegrityMsg}
}

// constraintName extracts the violated constraint from driver errors and falls
// back to scanning the message text.
func constraintName(err error) string {
	if err == nil {
		return ""
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.ConstraintName != "" {
		return pgErr.ConstraintName
	}
	// lib/pq surfaces *pq.Error when the database/sql driver is used instead of pgx.
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Constraint != "" {
		return pqErr.Constraint
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, portsrepo.ProductShortNameConstraint):
		return portsrepo.ProductShortNameConstraint
	case strings.Contains(msg, portsrepo.ProductNameConstraint):
		return portsrepo.ProductNameConstraint
	}
	return ""
}

// uniqueConstraint returns the constraint named by a unique violation (SQLSTATE 23505).
func uniqueConstraint(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName, pgErr.Code == uniqueViolationCode
	}
	// *pq.Error comes from deployments on the lib/pq driver.
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint, pqErr.Code == uniqueViolationCode
	}
	return "", false
}

// isUniqueViolation reports whether err is a unique constraint violation on constraint.
func isUniqueViolation(err error, constraint string) bool {
	name, ok := uniqueConstraint(err)
	return ok && name == constraint
}
