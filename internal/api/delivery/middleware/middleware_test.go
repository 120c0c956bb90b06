package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finis-oculus/internal/auth"
	"finis-oculus/pkg/logger"
	"finis-oculus/pkg/ratelimit"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func newAuthEcho() *echo.Echo {
	e := echo.New()
	e.GET("/me", func(c echo.Context) error {
		return c.String(http.StatusOK, UserID(c))
	}, JWTAuth(auth.NewVerifier("secret", ""), logger.NewNop()))
	return e
}

func TestJWTAuth(t *testing.T) {
	e := newAuthEcho()

	token, err := auth.Sign("secret", "", "user-7", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := serve(e, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-7", rec.Body.String())
}

func TestJWTAuthRejects(t *testing.T) {
	e := newAuthEcho()
	forged, err := auth.Sign("other", "", "user-7", time.Hour)
	require.NoError(t, err)

	for name, header := range map[string]string{
		"missing": "",
		"scheme":  "Token abc",
		"forged":  "Bearer " + forged,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if header != "" {
				req.Header.Set(echo.HeaderAuthorization, header)
			}
			rec := serve(e, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

// countingLimiter allows perKey requests for each key. A non-nil err
// fails every check.
type countingLimiter struct {
	perKey int
	hits   map[string]int
	keys   []string
	err    error
}

func newCountingLimiter(perKey int) *countingLimiter {
	return &countingLimiter{perKey: perKey, hits: map[string]int{}}
}

func (l *countingLimiter) Allow(ctx context.Context, key string) (ratelimit.Result, error) {
	l.keys = append(l.keys, key)
	if l.err != nil {
		return ratelimit.Result{}, l.err
	}
	l.hits[key]++
	remaining := l.perKey - l.hits[key]
	if remaining < 0 {
		remaining = 0
	}
	return ratelimit.Result{
		Allowed:   l.hits[key] <= l.perKey,
		Limit:     l.perKey,
		Remaining: remaining,
		ResetAt:   time.Now().Add(30 * time.Second),
	}, nil
}

func newRateLimitEcho(t *testing.T, limiter ratelimit.Limiter, trustedProxies ...string) *echo.Echo {
	t.Helper()
	e := echo.New()
	extractor, err := ClientIPExtractor(trustedProxies)
	require.NoError(t, err)
	e.IPExtractor = extractor
	e.Use(RateLimit(limiter, logger.NewNop()))
	e.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	})
	return e
}

func pingFrom(remoteAddr string, headers map[string]string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = remoteAddr
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return req
}

func TestRateLimitAllows(t *testing.T) {
	limiter := newCountingLimiter(100)
	e := newRateLimitEcho(t, limiter)

	rec := serve(e, pingFrom("203.0.113.9:5123", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "100", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "99", rec.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, []string{"203.0.113.9"}, limiter.keys)
}

func TestRateLimitRejects(t *testing.T) {
	e := newRateLimitEcho(t, newCountingLimiter(1))

	require.Equal(t, http.StatusOK, serve(e, pingFrom("203.0.113.9:5123", nil)).Code)
	rec := serve(e, pingFrom("203.0.113.9:5124", nil))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"error":"Rate limit exceeded. Try again later."}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimitIgnoresForwardingHeadersFromClients(t *testing.T) {
	limiter := newCountingLimiter(1)
	e := newRateLimitEcho(t, limiter)

	codes := make([]int, 0, 5)
	for i := 0; i < 5; i++ {
		rec := serve(e, pingFrom("198.51.100.7:40000", map[string]string{
			echo.HeaderXRealIP:       fmt.Sprintf("10.0.0.%d", i),
			echo.HeaderXForwardedFor: fmt.Sprintf("192.0.2.%d", i),
		}))
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{200, 429, 429, 429, 429}, codes)
	for _, key := range limiter.keys {
		assert.Equal(t, "198.51.100.7", key)
	}
}

func TestRateLimitTrustsConfiguredProxy(t *testing.T) {
	limiter := newCountingLimiter(10)
	e := newRateLimitEcho(t, limiter, "10.1.0.0/16")

	serve(e, pingFrom("10.1.2.3:8080", map[string]string{echo.HeaderXRealIP: "203.0.113.50"}))
	serve(e, pingFrom("10.2.0.1:8080", map[string]string{echo.HeaderXRealIP: "203.0.113.51"}))
	serve(e, pingFrom("127.0.0.1:8080", map[string]string{echo.HeaderXRealIP: "203.0.113.52"}))

	assert.Equal(t, []string{"203.0.113.50", "10.2.0.1", "127.0.0.1"}, limiter.keys)
}

func TestClientIPExtractorRejectsBadCIDR(t *testing.T) {
	_, err := ClientIPExtractor([]string{"not-a-cidr"})
	assert.Error(t, err)
}

func TestRateLimitFailsOpen(t *testing.T) {
	limiter := newCountingLimiter(1)
	limiter.err = errors.New("redis down")
	e := newRateLimitEcho(t, limiter)

	rec := serve(e, pingFrom("203.0.113.9:5123", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
}

func TestValidatorTickerTag(t *testing.T) {
	v := NewValidator()
	type body struct {
		Ticker string `validate:"required,ticker"`
	}

	assert.NoError(t, v.Validate(&body{Ticker: "brk.b"}))

	err := v.Validate(&body{Ticker: "NOT A TICKER"})
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestErrorHandlerEnvelope(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler(logger.NewNop())
	e.GET("/boom", func(c echo.Context) error {
		return errors.New("database exploded")
	})

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not Found"}`, rec.Body.String())
}
