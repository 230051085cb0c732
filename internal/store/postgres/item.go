package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"itemplane/internal/store"
)

// ListItems returns all items ordered by id.
func (s *Store) ListItems(ctx context.Context) ([]store.Item, error) {
	query := "SELECT id, name, description, quantity FROM items ORDER BY id ASC"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	items := []store.Item{}
	for rows.Next() {
		var item store.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	return items, nil
}

func (s *Store) GetItemByID(ctx context.Context, id int64) (*store.Item, error) {
	query := "SELECT id, name, description, quantity FROM items WHERE id = $1"
	return scanItem(s.db.QueryRowContext(ctx, query, id))
}

// GetItemForUpdate locks the row so a concurrent update waits for tx to finish.
func (s *Store) GetItemForUpdate(ctx context.Context, tx store.DBTransaction, id int64) (*store.Item, error) {
	query := "SELECT id, name, description, quantity FROM items WHERE id = $1 FOR UPDATE"
	return scanItem(tx.QueryRowContext(ctx, query, id))
}

// CreateItem inserts a new item row and fills in the generated id.
func (s *Store) CreateItem(ctx context.Context, tx store.DBTransaction, item *store.Item) error {
	query := `
		INSERT INTO items (name, description, quantity)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	if err := tx.QueryRowContext(ctx, query, item.Name, item.Description, item.Quantity).Scan(&item.ID); err != nil {
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

func (s *Store) UpdateItem(ctx context.Context, tx store.DBTransaction, item *store.Item) error {
	query := `
		UPDATE items
		SET name = $2, description = $3, quantity = $4
		WHERE id = $1
	`

	res, err := tx.ExecContext(ctx, query, item.ID, item.Name, item.Description, item.Quantity)
	if err != nil {
		return fmt.Errorf("update item %d: %w", item.ID, err)
	}
	return requireAffected(res)
}

func (s *Store) DeleteItem(ctx context.Context, tx store.DBTransaction, id int64) error {
	res, err := tx.ExecContext(ctx, "DELETE FROM items WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete item %d: %w", id, err)
	}
	return requireAffected(res)
}

// CountItems backs the items.count gauge.
func (s *Store) CountItems(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM items").Scan(&count); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return count, nil
}

func scanItem(row *sql.Row) (*store.Item, error) {
	var item store.Item
	if err := row.Scan(&item.ID, &item.Name, &item.Description, &item.Quantity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &item, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
