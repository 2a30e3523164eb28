package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/smallbiz/backoffice/internal/application/port"
	"github.com/smallbiz/backoffice/internal/domain/entity"
)

// ArchiveRepository implements port.ArchiveRepository with one statically
// known query per entity. Table names never come from calling code.
type ArchiveRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewArchiveRepository creates a new archive repository
func NewArchiveRepository(db *sql.DB, logger *zap.Logger) port.ArchiveRepository {
	return &ArchiveRepository{
		db:     db,
		logger: logger,
	}
}

var setActiveQueries = map[port.ArchiveEntity]string{
	port.ArchiveContact: `UPDATE contacts SET is_active = ? WHERE id = ?`,
	port.ArchiveItem:    `UPDATE items SET is_active = ? WHERE id = ?`,
	port.ArchiveInvoice: `UPDATE invoices SET is_active = ? WHERE id = ?`,
	port.ArchivePayment: `UPDATE payments SET is_active = ? WHERE id = ?`,
}

// Permanent deletes only touch rows already archived, so an accidental call
// against a live row is a no-op that reports ErrNotArchived.
var permanentDeleteQueries = map[port.ArchiveEntity]string{
	port.ArchiveContact: `DELETE FROM contacts WHERE id = ? AND is_active = 0`,
	port.ArchiveItem:    `DELETE FROM items WHERE id = ? AND is_active = 0`,
	port.ArchiveInvoice: `DELETE FROM invoices WHERE id = ? AND is_active = 0`,
	port.ArchivePayment: `DELETE FROM payments WHERE id = ? AND is_active = 0`,
}

// SetActive toggles the soft-delete flag on one row
func (r *ArchiveRepository) SetActive(ctx context.Context, e port.ArchiveEntity, id string, active bool) error {
	query, ok := setActiveQueries[e]
	if !ok {
		return fmt.Errorf("unknown archive entity: %d", e)
	}

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query, active, id)
	if err != nil {
		r.logger.Error("Failed to toggle archive flag", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to toggle archive flag: %w", err)
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

// PermanentDelete removes an archived row for good
func (r *ArchiveRepository) PermanentDelete(ctx context.Context, e port.ArchiveEntity, id string) error {
	query, ok := permanentDeleteQueries[e]
	if !ok {
		return fmt.Errorf("unknown archive entity: %d", e)
	}

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to permanently delete", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to permanently delete: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		// Either the row does not exist or it is still active; tell the
		// caller which so the API can answer precisely.
		return r.classifyDeleteMiss(ctx, e, id)
	}

	return nil
}

func (r *ArchiveRepository) classifyDeleteMiss(ctx context.Context, e port.ArchiveEntity, id string) error {
	existsQueries := map[port.ArchiveEntity]string{
		port.ArchiveContact: `SELECT COUNT(1) FROM contacts WHERE id = ?`,
		port.ArchiveItem:    `SELECT COUNT(1) FROM items WHERE id = ?`,
		port.ArchiveInvoice: `SELECT COUNT(1) FROM invoices WHERE id = ?`,
		port.ArchivePayment: `SELECT COUNT(1) FROM payments WHERE id = ?`,
	}

	var count int
	if err := getExecutor(ctx, r.db).QueryRowContext(ctx, existsQueries[e], id).Scan(&count); err != nil {
		return fmt.Errorf("failed to check row existence: %w", err)
	}
	if count == 0 {
		return entity.ErrNotFound
	}
	return entity.ErrNotArchived
}

// Verify interface compliance
var _ port.ArchiveRepository = (*ArchiveRepository)(nil)
