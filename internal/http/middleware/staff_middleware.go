package middleware

import (
	"net/http"

	"mural/internal/domain/policy"
	"mural/internal/utils"
	"mural/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type StaffMiddlewareConfig struct {
	Visibility *policy.VisibilityPolicy
}

// NewStaffMiddleware guards the staff-facing authority path (status,
// pin, private listings). The token comes from an external identity
// provider; we only verify it and require an internal-domain email.
func NewStaffMiddleware(cfg *StaffMiddlewareConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenData, err := utils.ParseTokenDataCtx(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
			}

			if tokenData.Email == "" || !cfg.Visibility.IsInternal(tokenData.Email) {
				return c.JSON(http.StatusForbidden, apierror.StaffOnlyError)
			}

			c.Set("staff_email", tokenData.Email)
			return next(c)
		}
	}
}
