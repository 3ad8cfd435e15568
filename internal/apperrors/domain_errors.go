package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an error returned by the product and transfer services.
type Kind string

const (
	KindNone             Kind = ""
	KindValidation       Kind = "VALIDATION"
	KindNotFound         Kind = "NOT_FOUND"
	KindDomainRule       Kind = "DOMAIN_RULE"
	KindDuplicateKey     Kind = "DUPLICATE_KEY"
	KindUnknownIntegrity Kind = "UNKNOWN_INTEGRITY"
	KindInternal         Kind = "INTERNAL"
)

// FieldError is a single parameter-level validation failure.
type FieldError struct {
	Parameter string `json:"parameterName"`
	Code      string `json:"userMessageGlobalisationCode"`
	Message   string `json:"defaultUserMessage"`
	Value     any    `json:"value,omitempty"`
}

// ValidationError carries one or more field errors for a resource.
type ValidationError struct {
	Resource string
	Errors   []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Parameter+": "+fe.Message)
	}
	return fmt.Sprintf("validation failed for %s: %s", e.Resource, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// HasParameter reports whether any field error refers to the given parameter.
func (e *ValidationError) HasParameter(name string) bool {
	for _, fe := range e.Errors {
		if fe.Parameter == name {
			return true
		}
	}
	return false
}

// NewValidationError builds a ValidationError with a single field error.
func NewValidationError(resource, parameter, code, message string, value any) *ValidationError {
	return &ValidationError{
		Resource: resource,
		Errors: []FieldError{{
			Parameter: parameter,
			Code:      fmt.Sprintf("validation.msg.%s.%s.%s", resource, parameter, code),
			Message:   message,
			Value:     value,
		}},
	}
}

// NotFoundError reports a missing entity.
type NotFoundError struct {
	Resource string
	ID       any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with identifier %v does not exist", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// DomainRuleError reports a violated business invariant.
type DomainRuleError struct {
	Code    string
	Message string
}

func (e *DomainRuleError) Error() string { return e.Message }

func (e *DomainRuleError) Is(target error) bool { return target == ErrDomainRule }

// DuplicateKeyError reports a unique constraint violation on a field.
type DuplicateKeyError struct {
	Code    string
	Message string
	Field   string
	Value   string
}

func (e *DuplicateKeyError) Error() string { return e.Message }

func (e *DuplicateKeyError) Is(target error) bool { return target == ErrDuplicate }

// IntegrityError is the generic storage failure surfaced to callers.
// The underlying cause is logged, not exposed.
type IntegrityError struct {
	Code    string
	Message string
}

func (e *IntegrityError) Error() string { return e.Message }

func (e *IntegrityError) Is(target error) bool { return target == ErrIntegrity }

// KindOf returns the taxonomy kind of err.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrDomainRule):
		return KindDomainRule
	case errors.Is(err, ErrDuplicate):
		return KindDuplicateKey
	case errors.Is(err, ErrIntegrity):
		return KindUnknownIntegrity
	default:
		return KindInternal
	}
}
