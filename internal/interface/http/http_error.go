package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/yanqian/astro-prediction/pkg/errors"
)

const (
	codeInvalidRequest = "invalid_request"
	codeNotFound       = "not_found"
	codeRateLimited    = "rate_limit_exceeded"
	codeInternal       = "internal_error"
)

// HTTPError is what errorHandlingMiddleware serializes as
// {"error":{"code","message"}}.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewHTTPError builds an HTTPError.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

// statusByCode maps domain error codes to response statuses.
var statusByCode = map[string]int{
	apperrors.CodeInvalidInput: http.StatusUnprocessableEntity,
	apperrors.CodeUpstream:     http.StatusInternalServerError,
	apperrors.CodeGeneration:   http.StatusInternalServerError,
}

// asHTTPError resolves any error to a response. Domain errors keep their code;
// validation failures expose only their localized message, upstream and
// generation failures their full chain. Anything else is an opaque 500.
func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if status, ok := statusByCode[appErr.Code]; ok {
			message := err.Error()
			if appErr.Code == apperrors.CodeInvalidInput {
				message = apperrors.MessageOf(err)
			}
			return NewHTTPError(status, appErr.Code, message, err)
		}
	}
	return NewHTTPError(http.StatusInternalServerError, codeInternal, "something went wrong", err)
}

// bindError separates field validation failures (422) from malformed bodies
// (400). localize, when set, supplies the message for a failed field.
func bindError(err error, localize func(error) (string, bool)) *HTTPError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return NewHTTPError(http.StatusBadRequest, codeInvalidRequest, err.Error(), err)
	}
	message := err.Error()
	if localize != nil {
		if msg, ok := localize(err); ok {
			message = msg
		}
	}
	return NewHTTPError(http.StatusUnprocessableEntity, apperrors.CodeInvalidInput, message, err)
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
