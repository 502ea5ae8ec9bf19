// Package errors provides the standardized error taxonomy for the comparator.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Comparison errors
const (
	ErrCodeValidationFailed     ErrorCode = "VALIDATION_FAILED"
	ErrCodeProductNotFound      ErrorCode = "PRODUCT_NOT_FOUND"
	ErrCodeComparisonInProgress ErrorCode = "COMPARISON_IN_PROGRESS"
	ErrCodeExportFormatInvalid  ErrorCode = "EXPORT_FORMAT_INVALID"
	ErrCodeImportParseFailed    ErrorCode = "IMPORT_PARSE_FAILED"
)

// Catalog / infrastructure errors
const (
	ErrCodeCatalogLoadFailed    ErrorCode = "CATALOG_LOAD_FAILED"
	ErrCodeCatalogSchemaInvalid ErrorCode = "CATALOG_SCHEMA_INVALID"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeCacheReadFailed          ErrorCode = "CACHE_READ_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// WithMetadata attaches contextual key/value pairs to the error.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = map[string]interface{}{}
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. Error Constructors
// ==========================

// NewValidationError reports a malformed shopping list or request. The
// comparison must not proceed when this is returned.
func NewValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Shopping list validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewProductNotFoundError is a soft error: the query matched no catalog entry.
func NewProductNotFoundError(query string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProductNotFound,
		Message:   "Product not found in any catalog",
		Details:   fmt.Sprintf("query: %s", query),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewComparisonInProgressError marks a rejected concurrent invocation.
func NewComparisonInProgressError() *StandardError {
	return &StandardError{
		Code:      ErrCodeComparisonInProgress,
		Message:   "A comparison is already running",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewExportFormatInvalidError creates a non-retryable export error.
func NewExportFormatInvalidError(format string) *StandardError {
	return &StandardError{
		Code:      ErrCodeExportFormatInvalid,
		Message:   "Unsupported export format",
		Details:   fmt.Sprintf("format: %s", format),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewImportParseFailedError creates a non-retryable list import error.
func NewImportParseFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeImportParseFailed,
		Message:   "Could not parse imported shopping list",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogLoadFailedError creates a retryable catalog ingestion error.
func NewCatalogLoadFailedError(source string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogLoadFailed,
		Message:   "Failed to load store catalogs",
		Details:   fmt.Sprintf("source %s: %v", source, err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogSchemaInvalidError creates a non-retryable schema error.
func NewCatalogSchemaInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogSchemaInvalid,
		Message:   "Catalog document failed schema validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable query error.
func NewQueryExecutionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Query execution failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheReadFailedError creates a retryable cache error.
func NewCacheReadFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheReadFailed,
		Message:   "Cache read failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Helpers
// ==========================

// Normalize converts any error into a StandardError.
func Normalize(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// IsCode reports whether err is a StandardError carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	stdErr, ok := err.(*StandardError)
	return ok && stdErr.Code == code
}

// IsRetryable reports whether the error is worth retrying.
func IsRetryable(err error) bool {
	stdErr, ok := err.(*StandardError)
	return ok && stdErr.Retryable
}

// GetErrorCategory groups codes into coarse buckets for metrics labels.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeValidationFailed, ErrCodeImportParseFailed, ErrCodeExportFormatInvalid:
		return "validation"
	case ErrCodeProductNotFound:
		return "not_found"
	case ErrCodeComparisonInProgress:
		return "concurrency"
	case ErrCodeCatalogLoadFailed, ErrCodeCatalogSchemaInvalid:
		return "catalog"
	case ErrCodeDatabaseConnectionFailed, ErrCodeQueryExecutionFailed, ErrCodeCacheReadFailed:
		return "infrastructure"
	default:
		return "internal"
	}
}
