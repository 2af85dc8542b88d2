package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sbworks/marketplace/internal/api/middleware"
	"github.com/sbworks/marketplace/internal/core/domain"
)

// sessionFrom extracts the session injected by the Auth middleware. A missing
// session means the route was registered without Auth; reject with 401.
func sessionFrom(c echo.Context) (domain.Session, error) {
	s, ok := c.Get(middleware.SessionKey).(domain.Session)
	if !ok || s.UserID == "" {
		return domain.Session{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return s, nil
}

// bindAndValidate decodes the request body into req and runs the echo validator.
// Validation failures carry domain.ErrValidation so they render as 400.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return validationError(err)
	}
	return nil
}
