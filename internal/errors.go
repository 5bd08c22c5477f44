package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation ErrorType = "VALIDATION_ERROR"
	ErrorTypeCrypto     ErrorType = "CRYPTO_ERROR"
	ErrorTypeNotFound   ErrorType = "NOT_FOUND"
	ErrorTypeInternal   ErrorType = "INTERNAL_ERROR"
	ErrorTypeExternal   ErrorType = "EXTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeMissingField     ErrorCode = "MISSING_FIELD"
	ErrCodeMalformedField   ErrorCode = "MALFORMED_FIELD"
	ErrCodeInvalidAmount    ErrorCode = "INVALID_AMOUNT"
	ErrCodeInvalidChannel   ErrorCode = "INVALID_CHANNEL"
	ErrCodeInvalidURL       ErrorCode = "INVALID_URL"

	ErrCodeInvalidKey          ErrorCode = "INVALID_KEY"
	ErrCodeMalformedCiphertext ErrorCode = "MALFORMED_CIPHERTEXT"
	ErrCodeMalformedPadding    ErrorCode = "MALFORMED_PADDING"

	ErrCodeOrderNotFound      ErrorCode = "ORDER_NOT_FOUND"
	ErrCodeGatewayUnavailable ErrorCode = "GATEWAY_UNAVAILABLE"
	ErrCodeGatewayRejected    ErrorCode = "GATEWAY_REJECTED"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
	}
}

// NewCryptoError covers bad key material, unaligned ciphertext and broken
// padding. These are always fatal to the current operation.
func NewCryptoError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeCrypto,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
	}
}

// NewTransportError wraps a non-2xx gateway response or a network failure,
// keeping the remote status and raw body when available.
func NewTransportError(message string, statusCode int, body string) *AppError {
	details := map[string]interface{}{"gateway_status": statusCode}
	if body != "" {
		details["gateway_body"] = body
	}
	return &AppError{
		Type:       ErrorTypeExternal,
		Code:       ErrCodeGatewayRejected,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Details:    details,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var ErrOrderNotFound = NewNotFoundError("payment order not found", ErrCodeOrderNotFound)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
