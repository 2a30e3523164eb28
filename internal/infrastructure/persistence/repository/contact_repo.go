package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/smallbiz/backoffice/internal/application/port"
	"github.com/smallbiz/backoffice/internal/domain/entity"
)

// ContactRepository implements port.ContactRepository
type ContactRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *sql.DB, logger *zap.Logger) port.ContactRepository {
	return &ContactRepository{
		db:     db,
		logger: logger,
	}
}

const contactColumns = `id, company_name, person_incharge, primary_phone, email, is_supplier, is_active, created_at`

// Create inserts a new contact row
func (r *ContactRepository) Create(ctx context.Context, contact *entity.Contact) error {
	query := `
		INSERT INTO contacts (
			id, company_name, person_incharge, primary_phone, email, is_supplier, is_active
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		contact.ID,
		contact.CompanyName,
		contact.PersonIncharge,
		contact.PrimaryPhone,
		contact.Email,
		contact.IsSupplier,
		contact.IsActive,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return entity.ErrDuplicateCompanyName
		}
		r.logger.Error("Failed to create contact", zap.String("id", contact.ID), zap.Error(err))
		return fmt.Errorf("failed to create contact: %w", err)
	}

	return nil
}

// GetByID retrieves a contact by ID
func (r *ContactRepository) GetByID(ctx context.Context, id string) (*entity.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = ?`

	contact, err := scanContact(getExecutor(ctx, r.db).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get contact by ID", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	return contact, nil
}

// Update updates a contact's mutable fields
func (r *ContactRepository) Update(ctx context.Context, contact *entity.Contact) error {
	query := `
		UPDATE contacts
		SET company_name = ?, person_incharge = ?, primary_phone = ?, email = ?, is_supplier = ?
		WHERE id = ?
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		contact.CompanyName,
		contact.PersonIncharge,
		contact.PrimaryPhone,
		contact.Email,
		contact.IsSupplier,
		contact.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return entity.ErrDuplicateCompanyName
		}
		r.logger.Error("Failed to update contact", zap.String("id", contact.ID), zap.Error(err))
		return fmt.Errorf("failed to update contact: %w", err)
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

// List retrieves contacts matching the query, newest first
func (r *ContactRepository) List(ctx context.Context, q port.ContactListQuery) ([]*entity.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE 1=1`
	var args []interface{}

	if !q.IncludeArchived {
		query += ` AND is_active = 1`
	}
	if q.SupplierOnly {
		query += ` AND is_supplier = 1`
	}
	if q.Search != "" {
		query += ` AND (company_name LIKE ? OR person_incharge LIKE ?)`
		pattern := "%" + q.Search + "%"
		args = append(args, pattern, pattern)
	}

	query += ` ORDER BY created_at DESC, id LIMIT ? OFFSET ?`
	args = append(args, q.Limit, q.Offset)

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list contacts", zap.Error(err))
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []*entity.Contact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, contact)
	}

	return contacts, rows.Err()
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanContact(row rowScanner) (*entity.Contact, error) {
	var contact entity.Contact

	err := row.Scan(
		&contact.ID,
		&contact.CompanyName,
		&contact.PersonIncharge,
		&contact.PrimaryPhone,
		&contact.Email,
		&contact.IsSupplier,
		&contact.IsActive,
		&contact.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &contact, nil
}

// Verify interface compliance
var _ port.ContactRepository = (*ContactRepository)(nil)
