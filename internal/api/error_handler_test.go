package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cars-g/reporting-api/internal/core/domain"
)

func render(t *testing.T, method string, err error) (int, errorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/api/reports/r1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if method != http.MethodHead {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec.Code, body
}

func TestErrorHandler_MapsDomainErrors(t *testing.T) {
	tests := []struct {
		err  error
		code int
		msg  string
	}{
		{fmt.Errorf("%w: missing required fields", domain.ErrInvalidInput), http.StatusBadRequest, "invalid input: missing required fields"},
		{fmt.Errorf("%w: %w", domain.ErrInvalidInput, domain.ErrInvalidTransition), http.StatusBadRequest, "invalid input: invalid status transition"},
		{domain.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{domain.ErrBanned, http.StatusForbidden, "account is banned"},
		{domain.ErrForbidden, http.StatusForbidden, "access denied"},
		{domain.ErrProfileNotFound, http.StatusNotFound, "user profile not found"},
		{domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{domain.ErrReportNotFound, http.StatusNotFound, "report not found"},
		{domain.ErrEmailTaken, http.StatusConflict, "email already registered"},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			code, body := render(t, http.MethodGet, tt.err)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.code, body.Error.Status)
			assert.Equal(t, tt.msg, body.Error.Message)
		})
	}
}

func TestErrorHandler_HidesUnexpectedErrors(t *testing.T) {
	code, body := render(t, http.MethodGet, errors.New("mongo: connection reset by peer"))

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Internal Server Error", body.Error.Message)
}

func TestErrorHandler_EchoErrors(t *testing.T) {
	code, body := render(t, http.MethodGet, echo.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Route not found", body.Error.Message)

	code, body = render(t, http.MethodGet, echo.NewHTTPError(http.StatusTooManyRequests, "slow down"))
	assert.Equal(t, http.StatusTooManyRequests, code)
	assert.Equal(t, "slow down", body.Error.Message)
}

func TestErrorHandler_HeadHasNoBody(t *testing.T) {
	code, _ := render(t, http.MethodHead, domain.ErrForbidden)
	assert.Equal(t, http.StatusForbidden, code)
}
