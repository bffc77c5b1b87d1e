package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"cameo/pkg/character"
)

// httpError maps a character.Error onto a status code. Anything else is a
// server-side failure.
func httpError(err error) *echo.HTTPError {
	var ce *character.Error
	if !errors.As(err, &ce) {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	switch ce.Code {
	case character.ErrorInvalidInput:
		return echo.NewHTTPError(http.StatusBadRequest, ce.Reason)
	case character.ErrorUpstream:
		return echo.NewHTTPError(http.StatusBadGateway, "upstream model error")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, ce.Reason)
	}
}
