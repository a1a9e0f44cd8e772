package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rachef/sitecms/internal/domain/document"
	"github.com/rachef/sitecms/internal/domain/entities"
	"github.com/rachef/sitecms/internal/infrastructure/logger"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Message string `json:"message"`
}

// statusFor maps a domain error to its HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, entities.ErrFormationNotFound),
		errors.Is(err, entities.ErrEventNotFound),
		errors.Is(err, entities.ErrRevisionNotFound),
		errors.Is(err, entities.ErrBackupNotFound):
		return http.StatusNotFound
	case errors.Is(err, entities.ErrDuplicateFormation):
		return http.StatusConflict
	case errors.Is(err, document.ErrShapeMismatch),
		errors.Is(err, document.ErrInvalidPath),
		errors.Is(err, entities.ErrIndexOutOfRange):
		return http.StatusUnprocessableEntity
	case errors.Is(err, entities.ErrInvalidFile),
		errors.Is(err, entities.ErrInvalidImport),
		errors.Is(err, entities.ErrUnsupportedUpload):
		return http.StatusBadRequest
	case errors.Is(err, entities.ErrUploadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, entities.ErrGateway):
		return http.StatusBadGateway
	case errors.Is(err, entities.ErrRedoNotImplemented):
		return http.StatusNotImplemented
	case errors.Is(err, entities.ErrArchiveDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// fail logs err and converts it into an HTTP error. Unknown errors are
// reported without their message.
func fail(log *logger.Logger, action string, err error) error {
	code := statusFor(err)
	if code >= http.StatusInternalServerError && code != http.StatusNotImplemented {
		log.Errorw(action+" failed", "error", err, "status", code)
	} else {
		log.Warnw(action+" rejected", "error", err, "status", code)
	}

	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = http.StatusText(code)
	}
	return echo.NewHTTPError(code, msg).SetInternal(err)
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func fileParam(c echo.Context) (entities.File, error) {
	file, err := entities.ParseFile(c.Param("file"))
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return file, nil
}
