package handler

import (
	"errors"
	"fmt"
	"net/http"

	"events-api/internal/dto"
	"events-api/internal/pagination"
	"events-api/internal/service"
	"events-api/internal/store"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// domainError 的 message 為空時直接使用 err.Error()，保留錯誤中的使用者名稱
type domainError struct {
	target  error
	status  int
	message string
}

// 順序有意義：較具體的錯誤放前面
var domainErrors = []domainError{
	{service.ErrPastEvent, http.StatusConflict, "You can not apply changes to past event"},
	{service.ErrAlreadyRegistered, http.StatusConflict, ""},
	{service.ErrNotRegistered, http.StatusNotFound, "User is not registered for this event"},
	{service.ErrUnknownUser, http.StatusNotFound, ""},
	{service.ErrRemoteUserExists, http.StatusConflict, "User already exists in remote service"},
	{service.ErrUserExists, http.StatusConflict, "User already exists"},
	{service.ErrUserNotFound, http.StatusNotFound, ""},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid password"},
	{service.ErrTokenRevoked, http.StatusUnauthorized, "Token has been revoked"},
	{service.ErrInvalidToken, http.StatusUnauthorized, "Invalid token"},
	{store.ErrPasswordAlreadySet, http.StatusConflict, "Password is already set"},
	{store.ErrDuplicate, http.StatusConflict, "Resource already exists"},
	{store.ErrConstraint, http.StatusBadRequest, "Constraint violation"},
	{store.ErrNotFound, http.StatusNotFound, "Not found"},
	{pagination.ErrInvalidPage, http.StatusNotFound, "Invalid page number"},
	{pagination.ErrInvalidParam, http.StatusBadRequest, "Page and limit must be positive integers"},
}

// NewHTTPErrorHandler 統一錯誤回應格式，body 的 status 與實際狀態碼一致
func NewHTTPErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		body := classify(err)
		if body.Status >= http.StatusInternalServerError {
			l := zerolog.Ctx(c.Request().Context())
			if l.GetLevel() == zerolog.Disabled {
				l = &logger
			}
			l.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(body.Status)
		} else {
			werr = c.JSON(body.Status, body)
		}
		if werr != nil {
			logger.Error().Err(werr).Msg("write error response")
		}
	}
}

func classify(err error) dto.HTTPError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return dto.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "validation failed",
			Errors:  fieldErrors(verrs),
		}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg, ok := he.Message.(string)
		if !ok {
			msg = fmt.Sprint(he.Message)
		}
		return dto.HTTPError{Status: he.Code, Message: msg}
	}

	for _, d := range domainErrors {
		if !errors.Is(err, d.target) {
			continue
		}
		msg := d.message
		if msg == "" {
			msg = err.Error()
		}
		return dto.HTTPError{Status: d.status, Message: msg}
	}

	return dto.HTTPError{Status: http.StatusInternalServerError, Message: http.StatusText(http.StatusInternalServerError)}
}

func fieldErrors(verrs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "min":
		return "must be at least " + fe.Param() + " long"
	case "max":
		return "must be at most " + fe.Param() + " long"
	case "email":
		return "must be a valid email address"
	default:
		return "failed on " + fe.Tag() + " validation"
	}
}
