package handler

import (
	"github.com/labstack/echo/v4"

	"blendhouse/internal/auth"
	"blendhouse/internal/errors"
)

// callerIdentity extracts the verified identity stashed by the JWT middleware.
// Nil means the caller is anonymous (or presented claims with a bad role,
// which counts for nothing).
func callerIdentity(c echo.Context) *auth.Identity {
	claims, ok := c.Get("user").(*auth.Claims)
	if !ok {
		return nil
	}
	ident, err := claims.Identity()
	if err != nil {
		return nil
	}
	return ident
}

// httpError converts a domain error to an echo HTTP error with the standard
// response body.
func httpError(err error) *echo.HTTPError {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
