package handlers

import (
	"crypto/tls"
	"encoding/json"
	"errors"
	"itemplane/pkg/api"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestProbes(t *testing.T) {
	tests := []struct {
		name           string
		endpoint       string
		mockSetup      func(*mockStore)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Healthz Always OK",
			endpoint:       "/healthz",
			expectedStatus: http.StatusOK,
			expectedBody:   "healthy",
		},
		{
			name:           "Readyz Success",
			endpoint:       "/readyz",
			mockSetup:      func(m *mockStore) { m.pingErr = nil },
			expectedStatus: http.StatusOK,
			expectedBody:   "ready",
		},
		{
			name:           "Readyz Database Fail",
			endpoint:       "/readyz",
			mockSetup:      func(m *mockStore) { m.pingErr = errors.New("db down") },
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   "Database unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockStore{}
			if tt.mockSetup != nil {
				tt.mockSetup(mock)
			}
			h := newTestHandlers(mock)

			req := httptest.NewRequest(http.MethodGet, tt.endpoint, nil)
			rr := httptest.NewRecorder()

			// Route manually since we are testing specific handler functions
			if tt.endpoint == "/healthz" {
				h.Healthz(rr, req)
			} else {
				h.Readyz(rr, req)
			}

			if rr.Code != tt.expectedStatus {
				t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, tt.expectedStatus)
			}
			if !strings.Contains(rr.Body.String(), tt.expectedBody) {
				t.Errorf("handler returned unexpected body: got %v want substring %v", rr.Body.String(), tt.expectedBody)
			}
		})
	}
}

func TestRoot(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(*http.Request)
		wantURL string
	}{
		{
			name:    "Plain HTTP",
			wantURL: "http://api.example.com/items/",
		},
		{
			name:    "TLS",
			setup:   func(r *http.Request) { r.TLS = &tls.ConnectionState{} },
			wantURL: "https://api.example.com/items/",
		},
		{
			name:    "Forwarded Proto",
			setup:   func(r *http.Request) { r.Header.Set("X-Forwarded-Proto", "https") },
			wantURL: "https://api.example.com/items/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandlers(&mockStore{})

			req := httptest.NewRequest(http.MethodGet, "http://api.example.com/", nil)
			if tt.setup != nil {
				tt.setup(req)
			}
			rr := httptest.NewRecorder()
			h.Root(rr, req)

			var resp api.RootResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Items != tt.wantURL {
				t.Errorf("got %q, want %q", resp.Items, tt.wantURL)
			}
		})
	}
}
