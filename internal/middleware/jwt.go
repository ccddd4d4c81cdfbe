package middleware

import (
	"fmt"
	"time"

	"ecsbilling/internal/common"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// SessionClaims are the claims read from the auth provider's access token.
type SessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// NewJWKSKeyfunc fetches the provider's signing keys and refreshes them in
// the background. The returned stop function ends the refresh goroutine.
func NewJWKSKeyfunc(jwksURL string, log *logrus.Entry) (jwt.Keyfunc, func(), error) {
	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  5 * time.Minute,
		RefreshTimeout:    10 * time.Second,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			log.WithError(err).Warn("JWKS refresh failed")
		},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load JWKS: %w", err)
	}
	return jwks.Keyfunc, jwks.EndBackground, nil
}

// JWTConfig verifies bearer tokens with keyFunc when set, otherwise with the
// shared HMAC secret.
func JWTConfig(keyFunc jwt.Keyfunc, secret string) echojwt.Config {
	cfg := echojwt.Config{
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(SessionClaims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return common.SendUnauthorizedError(c)
		},
	}
	if keyFunc != nil {
		cfg.KeyFunc = keyFunc
	} else {
		cfg.SigningKey = []byte(secret)
	}
	return cfg
}

// SessionContext copies the verified token's subject and email into the
// request context. It must run after the echo-jwt middleware.
func SessionContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return common.SendUnauthorizedError(c)
			}
			claims, ok := token.Claims.(*SessionClaims)
			if !ok {
				return common.SendUnauthorizedError(c)
			}
			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				return common.SendUnauthorizedError(c)
			}

			ctx := common.WithUser(c.Request().Context(), userID, claims.Email)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
