package store

import (
	"context"
	"database/sql"
)

// DBTransaction defines the methods shared by *sql.DB and *sql.Tx
// This allows us to pass either a connection pool or an active transaction to the repository methods.
type DBTransaction interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type Tx interface {
	DBTransaction
	Commit() error
	Rollback() error
}

// ItemStore handles the persistence of items.
type ItemStore interface {
	// ListItems returns every item ordered by id.
	ListItems(ctx context.Context) ([]Item, error)

	// GetItemByID returns an item by its ID, or ErrNotFound.
	GetItemByID(ctx context.Context, id int64) (*Item, error)

	// GetItemForUpdate returns an item by its ID and locks the row until tx ends.
	GetItemForUpdate(ctx context.Context, tx DBTransaction, id int64) (*Item, error)

	// CreateItem inserts a new item and sets item.ID to the assigned identifier.
	CreateItem(ctx context.Context, tx DBTransaction, item *Item) error

	// UpdateItem overwrites the mutable fields of an existing item.
	UpdateItem(ctx context.Context, tx DBTransaction, item *Item) error

	// DeleteItem removes an item. Returns ErrNotFound if nothing was deleted.
	DeleteItem(ctx context.Context, tx DBTransaction, id int64) error

	// CountItems returns the number of stored items.
	CountItems(ctx context.Context) (int64, error)
}
