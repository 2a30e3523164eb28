package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/smallbiz/backoffice/internal/application/port"
	"github.com/smallbiz/backoffice/internal/domain/entity"
)

// ItemRepository implements port.ItemRepository
type ItemRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *sql.DB, logger *zap.Logger) port.ItemRepository {
	return &ItemRepository{
		db:     db,
		logger: logger,
	}
}

const itemColumns = `id, name, description, unit_price, unit, is_active, created_at`

// Create inserts a new item row
func (r *ItemRepository) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (id, name, description, unit_price, unit, is_active)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		item.ID,
		item.Name,
		item.Description,
		item.UnitPrice,
		item.Unit,
		item.IsActive,
	)
	if err != nil {
		r.logger.Error("Failed to create item", zap.String("id", item.ID), zap.Error(err))
		return fmt.Errorf("failed to create item: %w", err)
	}

	return nil
}

// GetByID retrieves an item by ID
func (r *ItemRepository) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = ?`

	item, err := scanItem(getExecutor(ctx, r.db).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get item by ID", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return item, nil
}

// Update updates an item's mutable fields
func (r *ItemRepository) Update(ctx context.Context, item *entity.Item) error {
	query := `
		UPDATE items
		SET name = ?, description = ?, unit_price = ?, unit = ?
		WHERE id = ?
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		item.Name,
		item.Description,
		item.UnitPrice,
		item.Unit,
		item.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update item", zap.String("id", item.ID), zap.Error(err))
		return fmt.Errorf("failed to update item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return entity.ErrNotFound
	}

	return nil
}

// List retrieves items matching the query, newest first
func (r *ItemRepository) List(ctx context.Context, q port.ListQuery) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE 1=1`
	var args []interface{}

	if !q.IncludeArchived {
		query += ` AND is_active = 1`
	}
	if q.Search != "" {
		query += ` AND (name LIKE ? OR description LIKE ?)`
		pattern := "%" + q.Search + "%"
		args = append(args, pattern, pattern)
	}

	query += ` ORDER BY created_at DESC, id LIMIT ? OFFSET ?`
	args = append(args, q.Limit, q.Offset)

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list items", zap.Error(err))
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []*entity.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func scanItem(row rowScanner) (*entity.Item, error) {
	var item entity.Item

	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.UnitPrice,
		&item.Unit,
		&item.IsActive,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &item, nil
}

// Verify interface compliance
var _ port.ItemRepository = (*ItemRepository)(nil)
