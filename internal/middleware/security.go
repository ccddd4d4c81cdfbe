package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"ecsbilling/internal/common"

	"github.com/go-chi/httprate"
	"github.com/labstack/echo/v4"
	"github.com/unrolled/secure"
)

// SecureHeaders sets the standard security response headers.
func SecureHeaders(production bool, allowedHosts []string) echo.MiddlewareFunc {
	secureMiddleware := secure.New(secure.Options{
		AllowedHosts:          allowedHosts,
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		SSLRedirect:           production,
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
		STSSeconds:            31536000,
		IsDevelopment:         !production,
	})
	return echo.WrapMiddleware(secureMiddleware.Handler)
}

// RateLimitByIP limits each client address to requests per minute.
func RateLimitByIP(requests int) echo.MiddlewareFunc {
	limiter := httprate.Limit(requests, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(common.CreateErrorResponse("RATE_LIMITED", "Too many requests", nil))
		}),
	)
	return echo.WrapMiddleware(limiter)
}
