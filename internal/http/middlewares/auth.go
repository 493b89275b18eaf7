package middleware

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	apperrors "task-assign-system.com/task-assign-system/internal/errors"
)

const userIDKey = "user_id"

// Claims is the token payload issued by the authentication service.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Identity verifies the HS256 bearer token and stores the requester id on
// the echo context. The subject claim is used when user_id is absent.
func Identity(secret []byte) echo.MiddlewareFunc {
	keyFunc := func(*jwt.Token) (interface{}, error) {
		return secret, nil
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				return apperrors.ErrUnauthorized
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(
				strings.TrimSpace(raw),
				claims,
				keyFunc,
				jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			)
			if err != nil || !token.Valid {
				return apperrors.ErrUnauthorized
			}

			userID := claims.UserID
			if userID == "" {
				userID = claims.Subject
			}
			if userID == "" {
				return apperrors.ErrUnauthorized
			}

			c.Set(userIDKey, userID)
			return next(c)
		}
	}
}

// UserID returns the authenticated requester, or "" before Identity ran.
func UserID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}
