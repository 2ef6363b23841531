package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

// bindAndValidate binds the JSON body and runs struct validation.
// It writes the response itself and returns false when the request is rejected.
func bindAndValidate(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, badRequest(c, "invalid body")
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	return true, nil
}

// pathID reads a 32-hex path parameter.
func pathID(c echo.Context, name string) (string, bool) {
	v := c.Param(name)
	return v, reHex32.MatchString(v)
}
