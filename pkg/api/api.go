// Package api contains shared JSON request/response structs.
// This package is shared between the CLI and Controller.
package api

// Item is the wire representation of a stored item.
type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
}

// ItemRequest is the request body for creating or updating an item.
// Nil fields are omitted, which turns a PATCH into a partial update.
type ItemRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Quantity    *int    `json:"quantity,omitempty"`
}

// ValidationErrors maps a field name to its error messages.
// Errors that do not belong to a single field use NonFieldErrorsKey.
type ValidationErrors map[string][]string

// NonFieldErrorsKey collects errors about the payload as a whole.
const NonFieldErrorsKey = "non_field_errors"

// Add appends a message for field.
func (v ValidationErrors) Add(field, message string) {
	v[field] = append(v[field], message)
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// RootResponse lists the resource collections served by the API.
type RootResponse struct {
	Items string `json:"items"`
}

// Standard error details.
const (
	DetailNotFound    = "Not found."
	DetailServerError = "A server error occurred."
	DetailThrottled   = "Request was throttled."
)
