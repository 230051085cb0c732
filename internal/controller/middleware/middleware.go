// Package middleware contains HTTP middleware for the controller.
package middleware

import (
	"context"
	"encoding/json"
	"itemplane/pkg/api"
	"net/http"
)

// Chain wraps h so that the first middleware listed is the outermost.
func Chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// requestInfoKey is the context key for per-request bookkeeping.
type requestInfoKey struct{}

// requestInfo is filled in by the router and read back by outer middleware
// once the inner handler returns.
type requestInfo struct {
	route string
}

func withRequestInfo(ctx context.Context) context.Context {
	if _, ok := ctx.Value(requestInfoKey{}).(*requestInfo); ok {
		return ctx
	}
	return context.WithValue(ctx, requestInfoKey{}, &requestInfo{})
}

// Routed records the pattern matched by mux so logs, spans and metrics can
// be labelled with the route rather than the raw path.
func Routed(mux http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mux.ServeHTTP(w, r)
		if info, ok := r.Context().Value(requestInfoKey{}).(*requestInfo); ok {
			info.route = r.Pattern
		}
	})
}

// Route returns the matched pattern, or "unmatched".
func Route(ctx context.Context) string {
	if info, ok := ctx.Value(requestInfoKey{}).(*requestInfo); ok && info.route != "" {
		return info.route
	}
	return "unmatched"
}

// statusRecorder captures the status code and body size written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

func writeError(w http.ResponseWriter, detail string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(api.ErrorResponse{Detail: detail})
}
