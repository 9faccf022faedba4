package utils

import (
	"mural/internal/utils/apierror"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

func GetStaffEmail(c echo.Context) (string, apierror.ErrorResponse) {
	val := c.Get("staff_email")
	if val == nil {
		log.Warnf("route %s attempted to read nil staff email from context", c.Request().URL)
		return "", apierror.UnauthorizedError
	}

	email, ok := val.(string)
	if !ok || email == "" {
		log.Warnf("expected string at 'staff_email' context key, got %v", val)
		return "", apierror.InternalServerError
	}
	return email, nil
}
