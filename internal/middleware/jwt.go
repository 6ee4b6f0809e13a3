// Package middleware provides shared request processing: JWT
// authentication for mutation endpoints, role enforcement, and the
// Redis-backed response cache and rate limiter on the read views.
package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// JWTAuth returns an Echo middleware that validates a Bearer access
// token and injects the token's subject and role claims into the
// request context under "clerk_id" and "role". The secret must match
// the one used when issuing tokens.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}
			c.Set("clerk_id", claims["sub"])
			c.Set("role", claims["role"])
			return next(c)
		}
	}
}

// currentClerkID extracts a clerk identifier from the request context
// for cache and rate-limit keying. It returns "anon" for
// unauthenticated requests.
func currentClerkID(c echo.Context) string {
	switch v := c.Get("clerk_id").(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		// MapClaims decodes numeric subjects as float64.
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return "anon"
}
