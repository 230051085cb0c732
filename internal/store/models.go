// Package store contains the database layer for itemplane.
package store

import "errors"

// ErrNotFound is returned when no item matches the requested identifier.
var ErrNotFound = errors.New("item not found")

// Item is the single managed entity.
// ID is assigned by the database on insert and never changes afterwards.
type Item struct {
	ID          int64
	Name        string
	Description string
	Quantity    int
}
