package router

import (
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"microblog/internal/auth"
	"microblog/internal/config"
	apperrors "microblog/internal/errors"
	"microblog/internal/handler"
	"microblog/internal/service"
)

// Register wires routes and middleware. The request pipeline order is fixed:
// body validation happens in handlers after the jwt group has authenticated
// the caller and requireUser has authorized the account.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	postHandler *handler.PostHandler,
	commentHandler *handler.CommentHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	e.Validator = NewCustomValidator()

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.GET("/posts", postHandler.List)
	api.GET("/posts/:id", postHandler.Get)
	api.GET("/comments/posts/:post_id", commentHandler.ListByPost)
	api.GET("/comments/:id", commentHandler.Get)

	// Secured routes: a valid access token, then a present-and-active account.
	secured := api.Group("",
		echojwt.WithConfig(echojwt.Config{
			ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
				return jwtService.ValidateToken(tokenString, auth.TokenTypeAccess)
			},
			ErrorHandler: func(c echo.Context, err error) error {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Error: apperrors.ErrInvalidToken.Error(),
				})
			},
		}),
		requireUser(authService),
	)

	secured.GET("/auth/me", authHandler.Me)
	secured.PUT("/auth/me", authHandler.UpdateMe)
	secured.POST("/posts", postHandler.Create)
	secured.PUT("/posts/:id", postHandler.Update)
	secured.DELETE("/posts/:id", postHandler.Delete)
	secured.POST("/comments", commentHandler.Create)
	secured.PUT("/comments/:id", commentHandler.Update)
	secured.DELETE("/comments/:id", commentHandler.Delete)
}

// requireUser resolves the authenticated account behind validated token
// claims and rejects missing or deactivated accounts.
func requireUser(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get("user").(*auth.Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Error: apperrors.ErrInvalidToken.Error(),
				})
			}

			user, err := authService.GetActiveUser(c.Request().Context(), claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Error: "User not found or inactive",
				})
			}

			handler.SetCurrentUser(c, user)
			return next(c)
		}
	}
}

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// CustomValidator wraps validator for Echo with the domain's field rules.
type CustomValidator struct {
	validator *validator.Validate
}

// NewCustomValidator builds the request validator with the custom rules used
// by the request DTOs.
func NewCustomValidator() *CustomValidator {
	v := validator.New()

	// Report JSON field names, not Go struct names, in validation details.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("password", passwordRule)

	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// passwordRule requires at least one lowercase letter, one uppercase letter
// and one digit.
func passwordRule(fl validator.FieldLevel) bool {
	var hasLower, hasUpper, hasDigit bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLower && hasUpper && hasDigit
}
