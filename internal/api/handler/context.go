package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gracechapel/content-api/internal/core/domain"
)

// ctxIdentity extracts the admin identity injected by the Auth middleware.
// Its presence proves the middleware ran; a handler reached without it is a
// wiring bug and is rejected rather than served anonymously.
func ctxIdentity(c echo.Context) (*domain.AdminIdentity, error) {
	identity, ok := c.Get("identity").(*domain.AdminIdentity)
	if !ok || identity == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return identity, nil
}

// ctxToken extracts the raw bearer token stored by the Auth middleware.
func ctxToken(c echo.Context) string {
	token, _ := c.Get("token").(string)
	return token
}
