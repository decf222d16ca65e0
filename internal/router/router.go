package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"blendhouse/internal/auth"
	"blendhouse/internal/errors"
	"blendhouse/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	blendHandler *handler.BlendHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	// Mobile client calls from a different origin.
	e.Use(middleware.CORS())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/blends", blendHandler.ListBlends)
	api.GET("/blends/:id", blendHandler.GetBlend)

	// Secured routes: token verification goes through the JWT service so the
	// leeway and role-claim checks apply here too. Tier decisions happen in
	// the handlers.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.Verify(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			// No credentials at all is a different outcome than a bad token.
			cause := errors.ErrTokenInvalid
			if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
				cause = errors.ErrUnauthenticated
			}
			httpErr := errors.MapErrorToHTTP(cause)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		},
	}))

	// User routes
	secured.GET("/users/me", userHandler.GetMe)
	secured.PUT("/users/me", userHandler.UpdateMe)
	secured.GET("/users", userHandler.ListUsers)
	secured.POST("/users", userHandler.CreateUser)
	secured.GET("/users/:id", userHandler.GetUser)
	secured.PUT("/users/:id", userHandler.UpdateUser)
	secured.DELETE("/users/:id", userHandler.DeleteUser)

	// Catalog write routes
	secured.POST("/blends", blendHandler.CreateBlend)
	secured.PUT("/blends/:id", blendHandler.UpdateBlend)
	secured.DELETE("/blends/:id", blendHandler.DeleteBlend)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
