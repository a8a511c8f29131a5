package errors

import "net/http"

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes shared by every module.
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeUnauthorized       ErrorCode = "COMMON_003"
	ErrCodeForbidden          ErrorCode = "COMMON_004"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeConflict           ErrorCode = "COMMON_006"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_007"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeSerialization      ErrorCode = "COMMON_011"
	ErrCodeDatabaseError      ErrorCode = "COMMON_012"
	ErrCodeCacheError         ErrorCode = "COMMON_013"
	ErrCodeExternalService    ErrorCode = "COMMON_014"
	ErrCodeFeatureDisabled    ErrorCode = "COMMON_015"
	ErrCodeNotImplemented     ErrorCode = "COMMON_016"
)

// Short aliases used throughout the codebase.
const (
	CodeInternal       = ErrCodeInternal
	CodeInvalidParam   = ErrCodeBadRequest
	CodeUnauthorized   = ErrCodeUnauthorized
	CodeForbidden      = ErrCodeForbidden
	CodeNotFound       = ErrCodeNotFound
	CodeConflict       = ErrCodeConflict
	CodeRateLimit      = ErrCodeTooManyRequests
	CodeNotImplemented = ErrCodeNotImplemented
	CodeOK             = ErrorCode("OK")
	CodeUnknown        = ErrorCode("UNKNOWN")

	// Domain specific aliases
	CodeProfileNotFound  = ErrCodeProfileNotFound
	CodeProfileInvalid   = ErrCodeProfileInvalid
	CodeMultipleDefaults = ErrCodeProfileMultipleDefaults
)

// Risk profile module error codes.
const (
	ErrCodeProfileNotFound         ErrorCode = "PROFILE_001"
	ErrCodeProfileAlreadyExists    ErrorCode = "PROFILE_002"
	ErrCodeProfileInvalid          ErrorCode = "PROFILE_003"
	ErrCodeProfileMultipleDefaults ErrorCode = "PROFILE_004"
	ErrCodeProfileParseFailed      ErrorCode = "PROFILE_005"
)

// Screening / assessment module error codes.
const (
	ErrCodeAssessmentFailed        ErrorCode = "SCREEN_001"
	ErrCodeAssessmentInputInvalid  ErrorCode = "SCREEN_002"
	ErrCodeAssessmentPublishFailed ErrorCode = "SCREEN_003"
)

// Factor classification module error codes. Classification itself is total
// and never fails; these cover the surfaces around it (batch endpoints, CLI).
const (
	ErrCodeFactorRequestInvalid ErrorCode = "FACTOR_001"
)

// Infrastructure error code aliases.
const (
	CodeDBConnectionError = ErrCodeDatabaseError
	CodeDatabaseError     = ErrCodeDatabaseError
	CodeDBQueryError      = ErrCodeDatabaseError
	CodeCacheError        = ErrCodeCacheError
	CodeMessageQueueError = ErrCodeAssessmentPublishFailed
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeDatabaseError:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeExternalService:    http.StatusInternalServerError,
	ErrCodeFeatureDisabled:    http.StatusForbidden,
	ErrCodeNotImplemented:     http.StatusNotImplemented,

	ErrCodeProfileNotFound:         http.StatusNotFound,
	ErrCodeProfileAlreadyExists:    http.StatusConflict,
	ErrCodeProfileInvalid:          http.StatusUnprocessableEntity,
	ErrCodeProfileMultipleDefaults: http.StatusConflict,
	ErrCodeProfileParseFailed:      http.StatusBadRequest,

	ErrCodeAssessmentFailed:        http.StatusInternalServerError,
	ErrCodeAssessmentInputInvalid:  http.StatusBadRequest,
	ErrCodeAssessmentPublishFailed: http.StatusInternalServerError,

	ErrCodeFactorRequestInvalid: http.StatusBadRequest,
}

// HTTPStatus returns the HTTP status code for an ErrorCode, defaulting to 500
// for codes with no explicit mapping.
func (c ErrorCode) HTTPStatus() int {
	if status, ok := ErrorCodeHTTPStatus[c]; ok {
		return status
	}
	return http.StatusInternalServerError
}
