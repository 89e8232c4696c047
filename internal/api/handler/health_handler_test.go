package handler

import (
	"net/http"
	"testing"
	"time"
)

func TestHealthHandler_Liveness(t *testing.T) {
	h := NewHealthHandler("Cars-G API Server")
	h.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }

	c, rec := newCtx(http.MethodGet, "/health", "", nil)
	if err := h.Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	resp := decode(t, rec)
	if resp["status"] != "OK" || resp["service"] != "Cars-G API Server" || resp["timestamp"] != "2024-03-01T12:00:00Z" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}
