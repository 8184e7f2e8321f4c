// Package errors defines the structured application error taxonomy and the
// helpers that map each error type to a caller-visible HTTP status.
package errors

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/naiveform/naiveform-backend/logger"
)

type ErrorType string

const (
	ValidationError       ErrorType = "VALIDATION_ERROR"
	NotFoundError         ErrorType = "NOT_FOUND"
	DatabaseError         ErrorType = "DATABASE_ERROR"
	ServerError           ErrorType = "SERVER_ERROR"
	ForbiddenError        ErrorType = "FORBIDDEN"
	ConflictError         ErrorType = "CONFLICT"
	BodyParseError        ErrorType = "BODY_PARSE_ERROR"
	SchemaValidationError ErrorType = "SCHEMA_VALIDATION_ERROR"
	FormNotFoundError     ErrorType = "FORM_NOT_FOUND"
	FormClosedError       ErrorType = "FORM_CLOSED"
	FormExpiredError      ErrorType = "FORM_EXPIRED"
	FormArchivedError     ErrorType = "FORM_ARCHIVED"
	UnknownFieldsError    ErrorType = "UNKNOWN_FIELDS"
)

// AppError represents a structured application error. Type doubles as the
// stable machine-readable reason code exposed to integrators; Message keeps
// the human-readable text the legacy surface branched on.
type AppError struct {
	Type       ErrorType `json:"type"`
	Code       string    `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	Fields     []string  `json:"-"`
	HTTPStatus int       `json:"-"`
	Raw        error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// GetHTTPStatus returns the HTTP status the error maps to.
func (e *AppError) GetHTTPStatus() int {
	if e.HTTPStatus != 0 {
		return e.HTTPStatus
	}
	return http.StatusInternalServerError
}

// Unwrap exposes the underlying error for errors.Is/As chains.
func (e *AppError) Unwrap() error {
	return e.Raw
}

// New creates a new AppError with the status implied by its type.
func New(errType ErrorType, message string, detail string) *AppError {
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     detail,
		HTTPStatus: getHTTPStatus(errType),
	}
}

// Wrap wraps a raw error with AppError context.
func Wrap(err error, errType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     err.Error(),
		HTTPStatus: getHTTPStatus(errType),
		Raw:        err,
	}
}

// EmptyBody reports a urlencoded submission whose body decoded to zero bytes.
func EmptyBody() *AppError {
	return &AppError{
		Type:       BodyParseError,
		Message:    "Request body is empty",
		HTTPStatus: http.StatusBadRequest,
	}
}

// MalformedBody reports a structural parse failure in the submitted body.
func MalformedBody(err error) *AppError {
	return &AppError{
		Type:       BodyParseError,
		Message:    "Invalid form body",
		Detail:     errDetail(err),
		HTTPStatus: http.StatusBadRequest,
		Raw:        err,
	}
}

// SchemaValidation reports every wrong-shaped field of a programmatic JSON
// submission in a single error.
func SchemaValidation(fields []string) *AppError {
	return &AppError{
		Type:       SchemaValidationError,
		Message:    "Request body does not match the expected schema",
		Detail:     strings.Join(fields, "; "),
		Fields:     fields,
		HTTPStatus: http.StatusBadRequest,
	}
}

// FormNotFound reports that an id or slug resolved to no form.
func FormNotFound(ref string) *AppError {
	return &AppError{
		Type:       FormNotFoundError,
		Message:    "Form not found",
		Detail:     fmt.Sprintf("form: %s", ref),
		HTTPStatus: http.StatusNotFound,
	}
}

// FormClosed reports a submission against a form whose owner closed it.
func FormClosed() *AppError {
	return &AppError{
		Type:       FormClosedError,
		Message:    "Form is closed",
		HTTPStatus: http.StatusGone,
	}
}

// FormExpired reports a submission received after the form's closeAt deadline.
func FormExpired() *AppError {
	return &AppError{
		Type:       FormExpiredError,
		Message:    "Form has expired",
		HTTPStatus: http.StatusGone,
	}
}

// FormArchived reports a submission against an archived form.
func FormArchived() *AppError {
	return &AppError{
		Type:       FormArchivedError,
		Message:    "Form is archived",
		HTTPStatus: http.StatusGone,
	}
}

// UnknownFields reports every unrecognized submitted field name in one error.
func UnknownFields(names []string) *AppError {
	return &AppError{
		Type:       UnknownFieldsError,
		Message:    fmt.Sprintf("Invalid or unknown field(s): %s", strings.Join(names, ", ")),
		Fields:     names,
		HTTPStatus: http.StatusBadRequest,
	}
}

// ValidationFailed reports a generic request validation failure.
func ValidationFailed(message string, details string) *AppError {
	return &AppError{
		Type:       ValidationError,
		Message:    message,
		Detail:     details,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NotFound reports a missing entity outside the form-lifecycle taxonomy.
func NotFound(entity string, id interface{}) *AppError {
	return &AppError{
		Type:       NotFoundError,
		Message:    fmt.Sprintf("%s not found", entity),
		Detail:     fmt.Sprintf("ID: %v", id),
		HTTPStatus: http.StatusNotFound,
	}
}

// NewDatabaseError wraps a store failure. The original error is logged but a
// sanitized message is returned to the caller.
func NewDatabaseError(err error) *AppError {
	logger.GetLogger().Errorw("Database error", "error", err)
	return &AppError{
		Type:       DatabaseError,
		Message:    "Database operation failed",
		Detail:     "Please try again later",
		HTTPStatus: http.StatusInternalServerError,
		Raw:        err,
	}
}

// InternalServerError reports an unexpected server-side failure.
func InternalServerError(message string) *AppError {
	return &AppError{
		Type:       ServerError,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// Forbidden reports an ownership or permission failure.
func Forbidden(message string, details string) *AppError {
	return &AppError{
		Type:       ForbiddenError,
		Message:    message,
		Detail:     details,
		HTTPStatus: http.StatusForbidden,
	}
}

// NewConflictError reports a uniqueness conflict such as a slug already in use.
func NewConflictError(message string, detail string) *AppError {
	return &AppError{
		Type:       ConflictError,
		Message:    message,
		Detail:     detail,
		HTTPStatus: http.StatusConflict,
	}
}

func errDetail(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func getHTTPStatus(errType ErrorType) int {
	switch errType {
	case ValidationError, BodyParseError, SchemaValidationError, UnknownFieldsError:
		return http.StatusBadRequest
	case NotFoundError, FormNotFoundError:
		return http.StatusNotFound
	case FormClosedError, FormExpiredError, FormArchivedError:
		return http.StatusGone
	case ForbiddenError:
		return http.StatusForbidden
	case ConflictError:
		return http.StatusConflict
	case DatabaseError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
