// Package handlers contains HTTP handlers for the item API.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"itemplane/internal/logger"
	"itemplane/internal/serializer"
	"itemplane/internal/store"
	"itemplane/pkg/api"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

// maxBodyBytes caps request payloads.
const maxBodyBytes = 1 << 20

// StoreFactory combines the interfaces needed for the controller to function.
type StoreFactory interface {
	BeginTx(ctx context.Context) (store.Tx, error)
	Ping(ctx context.Context) error
	store.ItemStore
}

// Handlers holds all HTTP handlers and their dependencies.
type Handlers struct {
	store      StoreFactory
	serializer *serializer.ItemSerializer
	log        *slog.Logger
}

// New creates a new Handlers instance with the given store dependency.
func New(s StoreFactory, log *slog.Logger) *Handlers {
	return &Handlers{
		store:      s,
		serializer: serializer.New(),
		log:        log,
	}
}

// A helper function to write standard JSON responses.
func (h *Handlers) respondJson(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// A helper function to return consistent error messages.
func (h *Handlers) httpError(w http.ResponseWriter, detail string, code int) {
	h.respondJson(w, code, api.ErrorResponse{Detail: detail})
}

// serverError logs err against the request and answers 500.
func (h *Handlers) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	logger.FromContext(r.Context(), h.log).Error(msg,
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	h.httpError(w, api.DetailServerError, http.StatusInternalServerError)
}

// rejectPayload answers 400 for a serializer error, falling back to 500.
func (h *Handlers) rejectPayload(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *serializer.ValidationError
	var pErr *serializer.ParseError
	switch {
	case errors.As(err, &vErr):
		h.respondJson(w, http.StatusBadRequest, vErr.Fields)
	case errors.As(err, &pErr):
		h.httpError(w, pErr.Error(), http.StatusBadRequest)
	default:
		h.serverError(w, r, "Failed to validate item", err)
	}
}

// readBody reads at most maxBodyBytes of the request body.
// An oversized or unreadable body is reported as a parse error.
func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return nil, &serializer.ParseError{Err: err}
	}
	if len(body) > maxBodyBytes {
		return nil, &serializer.ParseError{Err: fmt.Errorf("request body exceeds %d bytes", maxBodyBytes)}
	}
	return body, nil
}

// itemID parses the {id} path value. Anything that is not a positive integer
// cannot address an item, so callers answer 404.
func itemID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// MethodNotAllowed returns a handler answering 405 for any method outside allowed.
// It is mounted as the method-less fallback of each route.
func (h *Handlers) MethodNotAllowed(allowed ...string) http.HandlerFunc {
	allow := strings.Join(allowed, ", ")
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allow)
		h.httpError(w, fmt.Sprintf("Method %q not allowed.", r.Method), http.StatusMethodNotAllowed)
	}
}

// NotFound answers 404 for unrouted paths.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.httpError(w, api.DetailNotFound, http.StatusNotFound)
}
