package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/smallbiz/backoffice/internal/application/port"
	"github.com/smallbiz/backoffice/internal/domain/entity"
)

// AddressRepository implements port.AddressRepository
type AddressRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAddressRepository creates a new address repository
func NewAddressRepository(db *sql.DB, logger *zap.Logger) port.AddressRepository {
	return &AddressRepository{
		db:     db,
		logger: logger,
	}
}

const addressColumns = `id, contact_id, label, line1, line2, city, state, postal_code, country,
	is_default_billing, is_default_shipping, created_at`

// Create inserts a new address row
func (r *AddressRepository) Create(ctx context.Context, addr *entity.ContactAddress) error {
	query := `
		INSERT INTO contact_addresses (
			id, contact_id, label, line1, line2, city, state, postal_code, country,
			is_default_billing, is_default_shipping
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		addr.ID,
		addr.ContactID,
		addr.Label,
		addr.Line1,
		addr.Line2,
		addr.City,
		addr.State,
		addr.PostalCode,
		addr.Country,
		addr.IsDefaultBilling,
		addr.IsDefaultShipping,
	)
	if err != nil {
		r.logger.Error("Failed to create address", zap.String("id", addr.ID), zap.Error(err))
		return fmt.Errorf("failed to create address: %w", err)
	}

	return nil
}

// GetByID retrieves an address by ID
func (r *AddressRepository) GetByID(ctx context.Context, id string) (*entity.ContactAddress, error) {
	query := `SELECT ` + addressColumns + ` FROM contact_addresses WHERE id = ?`

	addr, err := scanAddress(getExecutor(ctx, r.db).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get address by ID", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get address: %w", err)
	}

	return addr, nil
}

// GetByContactID retrieves all addresses of a contact, oldest first
func (r *AddressRepository) GetByContactID(ctx context.Context, contactID string) ([]*entity.ContactAddress, error) {
	query := `SELECT ` + addressColumns + ` FROM contact_addresses WHERE contact_id = ? ORDER BY created_at, id`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, contactID)
	if err != nil {
		r.logger.Error("Failed to get addresses", zap.String("contact_id", contactID), zap.Error(err))
		return nil, fmt.Errorf("failed to get addresses: %w", err)
	}
	defer rows.Close()

	var addrs []*entity.ContactAddress
	for rows.Next() {
		addr, err := scanAddress(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan address: %w", err)
		}
		addrs = append(addrs, addr)
	}

	return addrs, rows.Err()
}

// Update updates an address
func (r *AddressRepository) Update(ctx context.Context, addr *entity.ContactAddress) error {
	query := `
		UPDATE contact_addresses
		SET label = ?, line1 = ?, line2 = ?, city = ?, state = ?, postal_code = ?, country = ?,
			is_default_billing = ?, is_default_shipping = ?
		WHERE id = ?
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		addr.Label,
		addr.Line1,
		addr.Line2,
		addr.City,
		addr.State,
		addr.PostalCode,
		addr.Country,
		addr.IsDefaultBilling,
		addr.IsDefaultShipping,
		addr.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update address", zap.String("id", addr.ID), zap.Error(err))
		return fmt.Errorf("failed to update address: %w", err)
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

// Delete removes an address row
func (r *AddressRepository) Delete(ctx context.Context, id string) error {
	result, err := getExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM contact_addresses WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("Failed to delete address", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete address: %w", err)
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

// ClearDefaultBilling drops the default-billing flag on every other address
// of the contact
func (r *AddressRepository) ClearDefaultBilling(ctx context.Context, contactID, exceptID string) error {
	query := `UPDATE contact_addresses SET is_default_billing = 0 WHERE contact_id = ? AND id != ?`

	if _, err := getExecutor(ctx, r.db).ExecContext(ctx, query, contactID, exceptID); err != nil {
		r.logger.Error("Failed to clear default billing", zap.String("contact_id", contactID), zap.Error(err))
		return fmt.Errorf("failed to clear default billing: %w", err)
	}
	return nil
}

// ClearDefaultShipping drops the default-shipping flag on every other address
// of the contact
func (r *AddressRepository) ClearDefaultShipping(ctx context.Context, contactID, exceptID string) error {
	query := `UPDATE contact_addresses SET is_default_shipping = 0 WHERE contact_id = ? AND id != ?`

	if _, err := getExecutor(ctx, r.db).ExecContext(ctx, query, contactID, exceptID); err != nil {
		r.logger.Error("Failed to clear default shipping", zap.String("contact_id", contactID), zap.Error(err))
		return fmt.Errorf("failed to clear default shipping: %w", err)
	}
	return nil
}

func scanAddress(row rowScanner) (*entity.ContactAddress, error) {
	var addr entity.ContactAddress

	err := row.Scan(
		&addr.ID,
		&addr.ContactID,
		&addr.Label,
		&addr.Line1,
		&addr.Line2,
		&addr.City,
		&addr.State,
		&addr.PostalCode,
		&addr.Country,
		&addr.IsDefaultBilling,
		&addr.IsDefaultShipping,
		&addr.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &addr, nil
}

// Verify interface compliance
var _ port.AddressRepository = (*AddressRepository)(nil)
