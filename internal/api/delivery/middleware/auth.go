package middleware

import (
	"net/http"

	"finis-oculus/internal/auth"
	"finis-oculus/pkg/common"
	"finis-oculus/pkg/logger"

	"github.com/labstack/echo/v4"
)

// JWTAuth rejects requests without a valid bearer token and stores the
// user id and raw token on the context.
func JWTAuth(verifier auth.Verifier, log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := auth.BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				log.DebugContext(c.Request().Context(), "Token validation failed", logger.ErrorField(err))
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid or expired token"})
			}

			c.Set(common.ContextKeyUserID, userID)
			c.Set(common.ContextKeyToken, token)
			return next(c)
		}
	}
}

// UserID returns the authenticated user id set by JWTAuth.
func UserID(c echo.Context) string {
	userID, _ := c.Get(common.ContextKeyUserID).(string)
	return userID
}
