package middleware

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ecsbilling/internal/common"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-signing-secret-with-enough-length"

func signToken(t *testing.T, secret, kid, subject string, expiresAt time.Time) string {
	t.Helper()
	claims := SessionClaims{
		Email: "accounts@excelcare.us",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	if kid != "" {
		token.Header["kid"] = kid
	}
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func protectedServer(keyFunc jwt.Keyfunc, secret string) *echo.Echo {
	e := echo.New()
	g := e.Group("/v1", echojwt.WithConfig(JWTConfig(keyFunc, secret)), SessionContext())
	g.GET("/whoami", func(c echo.Context) error {
		userID, ok := common.GetUserIDFromContext(c.Request().Context())
		if !ok {
			return c.NoContent(http.StatusInternalServerError)
		}
		return c.String(http.StatusOK, userID.String()+" "+common.GetUserEmailFromContext(c.Request().Context()))
	})
	return e
}

func call(e *echo.Echo, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/v1/whoami", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSessionFromHMACToken(t *testing.T) {
	e := protectedServer(nil, testSecret)
	userID := uuid.New()

	rec := call(e, signToken(t, testSecret, "", userID.String(), time.Now().Add(time.Hour)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID.String()+" accounts@excelcare.us", rec.Body.String())
}

func TestRejectedTokens(t *testing.T) {
	e := protectedServer(nil, testSecret)
	userID := uuid.New().String()

	tests := []struct {
		name  string
		token string
	}{
		{"missing", ""},
		{"wrong secret", signToken(t, "another-secret-entirely-different", "", userID, time.Now().Add(time.Hour))},
		{"expired", signToken(t, testSecret, "", userID, time.Now().Add(-time.Minute))},
		{"subject not a uuid", signToken(t, testSecret, "", "user_2abc", time.Now().Add(time.Hour))},
		{"garbage", "not.a.token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(e, tt.token)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")
		})
	}
}

func TestSessionFromJWKS(t *testing.T) {
	secret := []byte(testSecret)
	jwks := fmt.Sprintf(`{"keys":[{"kty":"oct","kid":"ecs-test","alg":"HS256","k":%q}]}`,
		base64.RawURLEncoding.EncodeToString(secret))
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(jwks))
	}))
	defer server.Close()

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	keyFunc, stop, err := NewJWKSKeyfunc(server.URL, logrus.NewEntry(logger))
	require.NoError(t, err)
	defer stop()

	e := protectedServer(keyFunc, "")
	userID := uuid.New()
	rec := call(e, signToken(t, testSecret, "ecs-test", userID.String(), time.Now().Add(time.Hour)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), userID.String())
}

func TestNewJWKSKeyfuncUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	server.Close()

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	_, _, err := NewJWKSKeyfunc(server.URL, logrus.NewEntry(logger))
	assert.ErrorContains(t, err, "failed to load JWKS")
}
