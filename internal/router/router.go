package router

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"taskbox/internal/auth"
	"taskbox/internal/config"
	"taskbox/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	verifyHandler *handler.VerifyHandler,
	taskHandler *handler.TaskHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Fallback: anything a handler did not map becomes a generic 500.
	e.HTTPErrorHandler = errorHandler

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/login", authHandler.Login)
	e.POST("/register", authHandler.Register)
	e.POST("/forget", authHandler.Forget)
	e.POST("/verify-email", verifyHandler.VerifyIdentity)
	e.GET("/verify-email", verifyHandler.VerifyReset)
	e.GET("/verify-mfa", verifyHandler.VerifyMFA)

	// Secured routes (require a verified bearer token)
	secured := e.Group("", echojwt.WithConfig(auth.GateConfig(cfg.JWTSecret)))
	secured.POST("/reset", authHandler.Reset)
	secured.POST("/task", taskHandler.CreateTask)
	secured.GET("/tasks", taskHandler.ListTasks)
}

func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if err := c.JSON(he.Code, echo.Map{"message": he.Message}); err != nil {
			c.Logger().Error(err)
		}
		return
	}
	c.Logger().Error(err)
	if err := c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal server error"}); err != nil {
		c.Logger().Error(err)
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
