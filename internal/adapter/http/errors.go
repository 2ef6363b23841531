package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"p2p-lending-ledger/internal/domain/errs"
)

// statusOf maps an error kind to its HTTP status. Unclassified errors are 500.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail writes the error payload for a use case failure. Internal errors are
// not echoed to the client.
func fail(c echo.Context, err error) error {
	code := statusOf(err)
	if code == http.StatusInternalServerError {
		c.Logger().Error(err)
		return c.JSON(code, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(code, ErrorResponse{Error: err.Error()})
}
