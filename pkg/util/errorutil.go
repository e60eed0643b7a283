package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// Failure kinds recorded in logs and metrics. External responses never
// distinguish between them; they all collapse into the generic envelope.
const (
	KindNoToken          = "NO_TOKEN"
	KindMalformedToken   = "MALFORMED_TOKEN"
	KindExpiredToken     = "EXPIRED_TOKEN"
	KindMissingClaims    = "MISSING_CLAIMS"
	KindUserNotFound     = "USER_NOT_FOUND"
	KindUnauthenticated  = "UNAUTHENTICATED"
	KindBadCredentials   = "INVALID_CREDENTIALS"
	KindInsufficientRole = "INSUFFICIENT_ROLE"
	KindValidation       = "VALIDATION_FAILED"
	KindNotFound         = "NOT_FOUND"
	KindConflict         = "CONFLICT"
	KindInternal         = "INTERNAL_ERROR"
)

// DomainError standardizes application errors. Kind is internal detail for
// logs and metrics; Message is what the caller sees.
type DomainError struct {
	Kind       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(kind, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Kind: kind, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(KindValidation, message, http.StatusBadRequest, details)
}

func NewNotFound(resource string) error {
	return NewDomainError(KindNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound, nil)
}

// NewUnauthorized builds the uniform 401 returned for every authentication
// failure. kind carries the internal reason.
func NewUnauthorized(kind string) error {
	return &DomainError{Kind: kind, Message: "authentication required", HTTPStatus: http.StatusUnauthorized}
}

// NewForbidden builds a 403 authorization denial.
func NewForbidden(kind, message string) error {
	return &DomainError{Kind: kind, Message: message, HTTPStatus: http.StatusForbidden}
}

// NewInvalidCredentials builds the 401 returned by login and password flows.
func NewInvalidCredentials() error {
	return &DomainError{Kind: KindBadCredentials, Message: "invalid credentials", HTTPStatus: http.StatusUnauthorized}
}

func NewConflict(message string) error {
	return NewDomainError(KindConflict, message, http.StatusConflict, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Kind:       KindInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return NewNotFound("resource").(*DomainError)
	}
	return NewInternalError(err).(*DomainError)
}
