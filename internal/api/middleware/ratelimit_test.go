package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cars-g/reporting-api/internal/core/ports"
)

type stubLimiter struct {
	limit int
	seen  map[string]int
	err   error
}

func (l *stubLimiter) Allow(_ context.Context, key string) (ports.RateDecision, error) {
	if l.err != nil {
		return ports.RateDecision{}, l.err
	}
	l.seen[key]++
	n := l.seen[key]
	remaining := l.limit - n
	if remaining < 0 {
		remaining = 0
	}
	return ports.RateDecision{
		Allowed:   n <= l.limit,
		Limit:     l.limit,
		Remaining: remaining,
		ResetIn:   time.Minute,
	}, nil
}

func serve(mw echo.MiddlewareFunc, ip string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	req.RemoteAddr = ip + ":1234"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestRateLimit_RejectsOverQuota(t *testing.T) {
	limiter := &stubLimiter{limit: 2, seen: map[string]int{}}
	mw := RateLimit(limiter, zerolog.Nop())

	assert.Equal(t, http.StatusOK, serve(mw, "10.0.0.1").Code)
	rec := serve(mw, "10.0.0.1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	rec = serve(mw, "10.0.0.1")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), rateLimitMessage)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))

	// other clients have their own window
	assert.Equal(t, http.StatusOK, serve(mw, "10.0.0.2").Code)
}

func TestRateLimit_FailsOpen(t *testing.T) {
	limiter := &stubLimiter{err: errors.New("connection refused")}
	mw := RateLimit(limiter, zerolog.Nop())

	rec := serve(mw, "10.0.0.1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
}
