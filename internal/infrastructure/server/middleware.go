package server

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// authMiddleware accepts HMAC-signed bearer tokens issued by the site's auth
// service and stores the subject as "user".
func (s *Server) authMiddleware(secret []byte, issuer string) echo.MiddlewareFunc {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg(), jwt.SigningMethodHS384.Alg(), jwt.SigningMethodHS512.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	parser := jwt.NewParser(opts...)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization header")
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization header format")
			}

			claims := &jwt.RegisteredClaims{}
			_, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
				return secret, nil
			})
			if err != nil {
				s.logger.LogSecurityEvent("invalid_token", c.RealIP(), map[string]interface{}{
					"error":    err.Error(),
					"endpoint": c.Request().URL.Path,
				})
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			c.Set("user", claims.Subject)
			return next(c)
		}
	}
}
