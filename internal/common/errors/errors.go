// internal/common/errors/errors.go
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

type ErrorCode string

const (
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	ErrCodeParseError      ErrorCode = "PARSE_ERROR"

	ErrCodeMissingPrimaryMatch ErrorCode = "MISSING_PRIMARY_MATCH"
	ErrCodeReportBuildFailed   ErrorCode = "REPORT_BUILD_FAILED"

	ErrCodeCatalogValidationFailed ErrorCode = "CATALOG_VALIDATION_FAILED"
	ErrCodePackageNotFound         ErrorCode = "PACKAGE_NOT_FOUND"
	ErrCodeDuplicatePackage        ErrorCode = "DUPLICATE_PACKAGE"
	ErrCodeCatalogLoadFailed       ErrorCode = "CATALOG_LOAD_FAILED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeSearchQueryFailed        ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeSearchTimeout            ErrorCode = "SEARCH_TIMEOUT"

	ErrCodeMatchCacheFailed     ErrorCode = "MATCH_CACHE_FAILED"
	ErrCodeRoutingPublishFailed ErrorCode = "ROUTING_PUBLISH_FAILED"
	ErrCodeEvaluationTimeout    ErrorCode = "EVALUATION_TIMEOUT"
	ErrCodeWorkflowEngineFailed ErrorCode = "WORKFLOW_ENGINE_FAILED"
	ErrCodeInternalError        ErrorCode = "INTERNAL_ERROR"
)

type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

func newError(code ErrorCode, message, details string, retryable bool, cause error) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

func NewInvalidArgumentError(details string, cause error) *StandardError {
	return newError(ErrCodeInvalidArgument, "Invalid input shape", details, false, cause)
}

func NewParseError(err error) *StandardError {
	return newError(ErrCodeParseError, "Failed to parse job variables", err.Error(), false, err)
}

func NewMissingPrimaryMatchError(details string, cause error) *StandardError {
	return newError(ErrCodeMissingPrimaryMatch, "Report requires a primary service match", details, false, cause)
}

func NewReportBuildFailedError(err error) *StandardError {
	return newError(ErrCodeReportBuildFailed, "Failed to assemble consultation report", err.Error(), false, err)
}

func NewCatalogValidationFailedError(details string, cause error) *StandardError {
	return newError(ErrCodeCatalogValidationFailed, "Service package failed catalog validation", details, false, cause)
}

func NewPackageNotFoundError(id string, cause error) *StandardError {
	return newError(ErrCodePackageNotFound, "Service package not found", fmt.Sprintf("id: %s", id), false, cause)
}

func NewDuplicatePackageError(id string, cause error) *StandardError {
	return newError(ErrCodeDuplicatePackage, "Service package already exists", fmt.Sprintf("id: %s", id), false, cause)
}

func NewCatalogLoadFailedError(source string, err error) *StandardError {
	return newError(ErrCodeCatalogLoadFailed, "Failed to load service catalog",
		fmt.Sprintf("source: %s, error: %s", source, err.Error()), true, err)
}

func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseConnectionFailed, "Database connection error", err.Error(), true, err)
}

func NewQueryExecutionFailedError(query string, err error) *StandardError {
	return newError(ErrCodeQueryExecutionFailed, "Database query execution error",
		fmt.Sprintf("query: %s, error: %s", query, err.Error()), true, err)
}

func NewSearchQueryFailedError(index string, err error) *StandardError {
	return newError(ErrCodeSearchQueryFailed, "Search query error",
		fmt.Sprintf("index: %s, error: %s", index, err.Error()), true, err)
}

func NewSearchTimeoutError(index string) *StandardError {
	return newError(ErrCodeSearchTimeout, "Search query timeout", fmt.Sprintf("index: %s", index), true, nil)
}

func NewMatchCacheFailedError(key string, err error) *StandardError {
	return newError(ErrCodeMatchCacheFailed, "Match result cache unavailable",
		fmt.Sprintf("key: %s, error: %s", key, err.Error()), false, err)
}

func NewRoutingPublishFailedError(topic string, err error) *StandardError {
	return newError(ErrCodeRoutingPublishFailed, "Failed to publish routing outcome",
		fmt.Sprintf("topic: %s, error: %s", topic, err.Error()), false, err)
}

func NewEvaluationTimeoutError(err error) *StandardError {
	return newError(ErrCodeEvaluationTimeout, "Evaluation did not finish before the job deadline", err.Error(), true, err)
}

func NewWorkflowEngineError(operation string, retryable bool, err error) *StandardError {
	return newError(ErrCodeWorkflowEngineFailed, "Zeebe operation failed",
		fmt.Sprintf("operation: %s, error: %s", operation, err.Error()), retryable, err)
}

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternalError, "Unexpected error", err.Error(), false, err)
}

var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInvalidArgument:          "INVALID_ARGUMENT",
	ErrCodeParseError:               "PARSE_ERROR",
	ErrCodeMissingPrimaryMatch:      "MISSING_PRIMARY_MATCH",
	ErrCodeReportBuildFailed:        "REPORT_BUILD_FAILED",
	ErrCodeCatalogValidationFailed:  "CATALOG_VALIDATION_FAILED",
	ErrCodePackageNotFound:          "PACKAGE_NOT_FOUND",
	ErrCodeDuplicatePackage:         "DUPLICATE_PACKAGE",
	ErrCodeCatalogLoadFailed:        "CATALOG_LOAD_FAILED",
	ErrCodeDatabaseConnectionFailed: "DATABASE_CONNECTION_FAILED",
	ErrCodeQueryExecutionFailed:     "QUERY_EXECUTION_FAILED",
	ErrCodeSearchQueryFailed:        "SEARCH_QUERY_FAILED",
	ErrCodeSearchTimeout:            "SEARCH_TIMEOUT",
	ErrCodeEvaluationTimeout:        "EVALUATION_TIMEOUT",
}

func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeCatalogLoadFailed,
		ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeSearchQueryFailed:
		return 3

	case ErrCodeSearchTimeout,
		ErrCodeEvaluationTimeout:
		return 2

	default:
		// business and input errors are never retried
		return 0
	}
}

func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// CodeOf returns the code of the first StandardError in err's chain, or INTERNAL_ERROR.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ErrCodeInternalError
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "PRIMARY") || strings.Contains(codeStr, "REPORT"):
		return "REPORT"
	case strings.Contains(codeStr, "CATALOG") || strings.Contains(codeStr, "PACKAGE"):
		return "CATALOG"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY_EXECUTION"):
		return "DATABASE"
	case strings.Contains(codeStr, "CACHE") || strings.Contains(codeStr, "PUBLISH"):
		return "DEGRADED"
	case strings.Contains(codeStr, "SEARCH"):
		return "SEARCH"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "PARSE"):
		return "VALIDATION"
	case strings.Contains(codeStr, "WORKFLOW"):
		return "WORKFLOW"
	case strings.Contains(codeStr, "TIMEOUT"):
		return "TIMEOUT"
	default:
		return "OTHER"
	}
}
