package handler

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/cars-g/reporting-api/internal/api/middleware"
	"github.com/cars-g/reporting-api/internal/core/domain"
)

var (
	reporter = domain.Caller{ID: "u1", DisplayName: "Rita", Role: domain.RoleUser}
	patrol   = domain.Caller{ID: "p1", DisplayName: "Pat", Role: domain.RolePatrol}
	admin    = domain.Caller{ID: "a1", DisplayName: "Ada", Role: domain.RoleAdmin}
)

// newCtx builds an echo context with the validator registered and, when
// caller is non-nil, the caller the Auth middleware would have set.
func newCtx(method, target, body string, caller *domain.Caller) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if caller != nil {
		middleware.SetCaller(c, *caller)
	}
	return c, rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}
