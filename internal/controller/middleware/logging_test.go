package middleware

import (
	"bytes"
	"encoding/json"
	"itemplane/internal/logger"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logger.RequestIDFromContext(r.Context())
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/items/", nil))

	if _, err := uuid.Parse(seen); err != nil {
		t.Errorf("expected generated uuid in context, got %q", seen)
	}
	if got := rr.Header().Get(RequestIDHeader); got != seen {
		t.Errorf("response header %q does not match context id %q", got, seen)
	}
}

func TestRequestID_ReusesCallerID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logger.RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/items/", nil)
	req.Header.Set(RequestIDHeader, "caller-123")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if seen != "caller-123" {
		t.Errorf("got %q, want caller-123", seen)
	}
	if got := rr.Header().Get(RequestIDHeader); got != "caller-123" {
		t.Errorf("got header %q, want caller-123", got)
	}
}

func TestRequestID_RejectsOversizedID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logger.RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/items/", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("x", maxRequestIDLen+1))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if len(seen) > maxRequestIDLen {
		t.Errorf("oversized id should be replaced, got %d chars", len(seen))
	}
}

func TestAccessLog_WritesRouteAndStatus(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, slog.LevelInfo)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /items/{id}/{$}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	handler := Chain(Routed(mux), RequestID, AccessLog(log))

	req := httptest.NewRequest(http.MethodGet, "/items/42/", nil)
	req.Header.Set(RequestIDHeader, "log-test")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not JSON: %v (%s)", err, buf.String())
	}
	if line["route"] != "GET /items/{id}/{$}" {
		t.Errorf("got route %v", line["route"])
	}
	if line["path"] != "/items/42/" {
		t.Errorf("got path %v", line["path"])
	}
	if line["status"] != float64(http.StatusNotFound) {
		t.Errorf("got status %v", line["status"])
	}
	if line["request_id"] != "log-test" {
		t.Errorf("got request_id %v", line["request_id"])
	}
}

func TestAccessLog_ErrorLevelOnServerError(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, slog.LevelInfo)

	handler := AccessLog(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/", nil))

	if !strings.Contains(buf.String(), `"level":"ERROR"`) {
		t.Errorf("expected error level, got %s", buf.String())
	}
	if !strings.Contains(buf.String(), `"route":"unmatched"`) {
		t.Errorf("expected unmatched route without router, got %s", buf.String())
	}
}

func TestChain_Order(t *testing.T) {
	var order []string
	mw := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	handler := Chain(okHandler(), mw("outer"), mw("inner"))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if strings.Join(order, ",") != "outer,inner" {
		t.Errorf("got order %v", order)
	}
}
