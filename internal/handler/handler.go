package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "microblog/internal/errors"
	"microblog/internal/model"
)

// contextUserKey is where the auth middleware stores the resolved caller.
const contextUserKey = "currentUser"

// CurrentUser returns the authenticated caller set by the auth middleware.
func CurrentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(contextUserKey).(*model.User)
	return user, ok
}

// SetCurrentUser stores the authenticated caller on the request context.
func SetCurrentUser(c echo.Context, user *model.User) {
	c.Set(contextUserKey, user)
}

// bindBody decodes a JSON request body. Absent bodies are rejected rather
// than silently binding zero values.
func bindBody(c echo.Context, i interface{}) error {
	if c.Request().ContentLength == 0 {
		return echo.ErrBadRequest
	}
	return c.Bind(i)
}

// writeError converts a domain error into the shared JSON error body.
func writeError(c echo.Context, err error) error {
	he := apperrors.MapToHTTP(err)
	return c.JSON(he.StatusCode, he.ToErrorResponse())
}

// writeBadJSON is the response for missing or malformed request bodies.
func writeBadJSON(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "Request must be JSON"})
}

// writeValidationError renders schema violations as a field->message map.
func writeValidationError(c echo.Context, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "Validation failed"})
	}
	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fe.Field()] = validationMessage(fe)
	}
	return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{
		Error:   "Validation failed",
		Details: details,
	})
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "notblank":
		return "Cannot be empty or just whitespace"
	case "email":
		return "Not a valid email address"
	case "username":
		return "Can only contain letters, numbers, and underscores"
	case "password":
		return "Must contain at least one lowercase letter, one uppercase letter, and one digit"
	case "eqfield":
		return "Passwords do not match"
	case "min":
		return fmt.Sprintf("Must be at least %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters long", fe.Param())
	default:
		return fmt.Sprintf("Failed on the '%s' rule", fe.Tag())
	}
}

// parseID parses a numeric path parameter. Non-numeric IDs read as absent
// resources, matching integer-typed route converters.
func parseID(c echo.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.ErrNotFound
	}
	return uint(id), nil
}
