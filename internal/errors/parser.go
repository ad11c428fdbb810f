package errors

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ErrorInfo carries a stable code plus a human-readable message.
type ErrorInfo struct {
	Code    string
	Message string
}

// Postgres error codes we care about.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
)

// ParseError maps database and driver errors to a client-safe code/message
// pair. Sensitive detail stays out of the message; the raw error is expected
// to be logged by the caller.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "an unexpected error occurred"}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{Code: ResourceNotFound, Message: notFoundMessage(context)}
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgUniqueViolation:
			return parseUniqueViolation(pqErr)
		case pgForeignKeyViolation:
			return ErrorInfo{Code: ResourceNotFound, Message: "referenced record does not exist"}
		case pgNotNullViolation:
			return ErrorInfo{Code: ValidationRequired, Message: "a required field is missing"}
		case pgCheckViolation:
			return ErrorInfo{Code: ValidationInvalidInput, Message: "a field value is out of range"}
		}
	}

	errStr := strings.ToLower(err.Error())
	// Fallback for drivers that do not surface typed errors (sqlite in tests)
	if strings.Contains(errStr, "duplicate key") || strings.Contains(errStr, "unique constraint") {
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "record already exists"}
	}
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "timeout") {
		return ErrorInfo{Code: InternalDatabaseError, Message: "database is unavailable, try again later"}
	}

	return ErrorInfo{Code: InternalServerError, Message: "an unexpected error occurred"}
}

func parseUniqueViolation(pqErr *pq.Error) ErrorInfo {
	constraint := strings.ToLower(pqErr.Constraint)

	switch {
	case strings.Contains(constraint, "handle") && strings.Contains(constraint, "products"):
		return ErrorInfo{Code: ProductHandleExists, Message: "product handle is already in use"}
	case strings.Contains(constraint, "sku") || strings.Contains(constraint, "barcode"):
		return ErrorInfo{Code: ProductSKUExists, Message: "variant SKU or barcode is already in use"}
	case strings.Contains(constraint, "email"):
		return ErrorInfo{Code: AuthEmailAlreadyExists, Message: "email is already registered"}
	}

	return ErrorInfo{Code: ResourceAlreadyExists, Message: "record already exists"}
}

func notFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "product"):
		return "product not found"
	case strings.Contains(contextLower, "collection"):
		return "collection not found"
	case strings.Contains(contextLower, "address"):
		return "address not found"
	case strings.Contains(contextLower, "user"):
		return "user not found"
	}
	return "requested record not found"
}
