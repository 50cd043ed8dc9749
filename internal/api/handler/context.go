package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studytrack/tracker/internal/api/middleware"
)

// actorID returns the authenticated user injected by the Auth middleware. An
// empty actor means the route was mounted without Auth; reject with 401.
func actorID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.ActorIDKey).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}

// bindAndValidate decodes the request into req and runs its struct tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
