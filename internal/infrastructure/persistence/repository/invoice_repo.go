package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/smallbiz/backoffice/internal/application/port"
	"github.com/smallbiz/backoffice/internal/domain/entity"
)

// InvoiceRepository implements port.InvoiceRepository
type InvoiceRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *sql.DB, logger *zap.Logger) port.InvoiceRepository {
	return &InvoiceRepository{
		db:     db,
		logger: logger,
	}
}

const invoiceColumns = `id, contact_id, invoice_number, share_token, invoice_date, due_date, notes, is_active, created_at`

// Create inserts the invoice header and its line items. Run it inside a
// transaction so a failed line item insert never leaves a bare header.
// A lost invoice-number uniqueness race comes back as
// entity.ErrDuplicateInvoiceNumber so the caller can re-read the sequence
// and retry.
func (r *InvoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (
			id, contact_id, invoice_number, share_token, invoice_date, due_date, notes, is_active
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		invoice.ID,
		invoice.ContactID,
		invoice.InvoiceNumber,
		invoice.ShareToken,
		invoice.InvoiceDate,
		invoice.DueDate,
		invoice.Notes,
		invoice.IsActive,
	)
	if err != nil {
		if isUniqueViolation(err) && strings.Contains(err.Error(), "invoice_number") {
			return entity.ErrDuplicateInvoiceNumber
		}
		r.logger.Error("Failed to create invoice", zap.String("id", invoice.ID), zap.Error(err))
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	for _, li := range invoice.LineItems {
		if err := r.insertLineItem(ctx, li); err != nil {
			return err
		}
	}

	return nil
}

// GetByID retrieves an invoice with its line items
func (r *InvoiceRepository) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.getOne(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = ?`, id)
}

// GetByShareToken retrieves an invoice by its public share token
func (r *InvoiceRepository) GetByShareToken(ctx context.Context, token string) (*entity.Invoice, error) {
	return r.getOne(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE share_token = ?`, token)
}

func (r *InvoiceRepository) getOne(ctx context.Context, query string, arg interface{}) (*entity.Invoice, error) {
	invoice, err := scanInvoice(getExecutor(ctx, r.db).QueryRowContext(ctx, query, arg))
	if err == sql.ErrNoRows {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get invoice", zap.Error(err))
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	items, err := r.GetLineItems(ctx, invoice.ID)
	if err != nil {
		return nil, err
	}
	invoice.LineItems = items

	return invoice, nil
}

// Update updates the invoice header. Number and share token are identity and
// never change here; line items are replaced through ReplaceLineItems.
func (r *InvoiceRepository) Update(ctx context.Context, invoice *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET contact_id = ?, invoice_date = ?, due_date = ?, notes = ?
		WHERE id = ?
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		invoice.ContactID,
		invoice.InvoiceDate,
		invoice.DueDate,
		invoice.Notes,
		invoice.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update invoice", zap.String("id", invoice.ID), zap.Error(err))
		return fmt.Errorf("failed to update invoice: %w", err)
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

// List retrieves invoices matching the query, newest first, with line items
func (r *InvoiceRepository) List(ctx context.Context, q port.InvoiceListQuery) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE 1=1`
	var args []interface{}

	if !q.IncludeArchived {
		query += ` AND is_active = 1`
	}
	if q.ContactID != "" {
		query += ` AND contact_id = ?`
		args = append(args, q.ContactID)
	}
	if q.Search != "" {
		query += ` AND invoice_number LIKE ?`
		args = append(args, "%"+q.Search+"%")
	}

	query += ` ORDER BY invoice_date DESC, created_at DESC, id LIMIT ? OFFSET ?`
	args = append(args, q.Limit, q.Offset)

	return r.queryInvoices(ctx, query, args...)
}

// GetActiveByContactIDs returns all active invoices of the given contacts
// with line items loaded
func (r *InvoiceRepository) GetActiveByContactIDs(ctx context.Context, contactIDs []string) ([]*entity.Invoice, error) {
	if len(contactIDs) == 0 {
		return nil, nil
	}

	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE is_active = 1 AND contact_id IN (` +
		placeholders(len(contactIDs)) + `)`

	args := make([]interface{}, len(contactIDs))
	for i, id := range contactIDs {
		args[i] = id
	}

	return r.queryInvoices(ctx, query, args...)
}

// LastNumberForYear returns the highest invoice number carrying the year's
// prefix, or "" for a fresh year. Length sorts before text so a five-digit
// sequence outranks every four-digit one once a year passes 9999 invoices.
func (r *InvoiceRepository) LastNumberForYear(ctx context.Context, year int) (string, error) {
	query := `
		SELECT invoice_number FROM invoices WHERE invoice_number LIKE ?
		ORDER BY length(invoice_number) DESC, invoice_number DESC LIMIT 1
	`

	var number string
	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, fmt.Sprintf("INV%d%%", year)).Scan(&number)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		r.logger.Error("Failed to get last invoice number", zap.Int("year", year), zap.Error(err))
		return "", fmt.Errorf("failed to get last invoice number: %w", err)
	}

	return number, nil
}

// ReplaceLineItems deletes the invoice's line items and inserts the given set
func (r *InvoiceRepository) ReplaceLineItems(ctx context.Context, invoiceID string, items []*entity.InvoiceLineItem) error {
	if _, err := getExecutor(ctx, r.db).ExecContext(ctx,
		`DELETE FROM invoice_line_items WHERE invoice_id = ?`, invoiceID); err != nil {
		r.logger.Error("Failed to delete line items", zap.String("invoice_id", invoiceID), zap.Error(err))
		return fmt.Errorf("failed to delete line items: %w", err)
	}

	for _, li := range items {
		li.InvoiceID = invoiceID
		if err := r.insertLineItem(ctx, li); err != nil {
			return err
		}
	}

	return nil
}

// GetLineItems returns an invoice's line items ordered by creation time
// ascending; rowid breaks same-second ties in insertion order
func (r *InvoiceRepository) GetLineItems(ctx context.Context, invoiceID string) ([]*entity.InvoiceLineItem, error) {
	query := `
		SELECT id, invoice_id, item_id, description, quantity, unit_price, created_at
		FROM invoice_line_items
		WHERE invoice_id = ?
		ORDER BY created_at, rowid
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, invoiceID)
	if err != nil {
		r.logger.Error("Failed to get line items", zap.String("invoice_id", invoiceID), zap.Error(err))
		return nil, fmt.Errorf("failed to get line items: %w", err)
	}
	defer rows.Close()

	var items []*entity.InvoiceLineItem
	for rows.Next() {
		li, err := scanLineItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line item: %w", err)
		}
		items = append(items, li)
	}

	return items, rows.Err()
}

func (r *InvoiceRepository) insertLineItem(ctx context.Context, li *entity.InvoiceLineItem) error {
	query := `
		INSERT INTO invoice_line_items (id, invoice_id, item_id, description, quantity, unit_price)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		li.ID,
		li.InvoiceID,
		nullString(li.ItemID),
		li.Description,
		li.Quantity,
		li.UnitPrice,
	)
	if err != nil {
		r.logger.Error("Failed to create line item", zap.String("id", li.ID), zap.Error(err))
		return fmt.Errorf("failed to create line item: %w", err)
	}

	return nil
}

func (r *InvoiceRepository) queryInvoices(ctx context.Context, query string, args ...interface{}) ([]*entity.Invoice, error) {
	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to query invoices", zap.Error(err))
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*entity.Invoice
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, invoice)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, invoice := range invoices {
		items, err := r.GetLineItems(ctx, invoice.ID)
		if err != nil {
			return nil, err
		}
		invoice.LineItems = items
	}

	return invoices, nil
}

func scanInvoice(row rowScanner) (*entity.Invoice, error) {
	var invoice entity.Invoice
	var dueDate sql.NullInt64

	err := row.Scan(
		&invoice.ID,
		&invoice.ContactID,
		&invoice.InvoiceNumber,
		&invoice.ShareToken,
		&invoice.InvoiceDate,
		&dueDate,
		&invoice.Notes,
		&invoice.IsActive,
		&invoice.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if dueDate.Valid {
		invoice.DueDate = &dueDate.Int64
	}

	return &invoice, nil
}

func scanLineItem(row rowScanner) (*entity.InvoiceLineItem, error) {
	var li entity.InvoiceLineItem
	var itemID sql.NullString

	err := row.Scan(
		&li.ID,
		&li.InvoiceID,
		&itemID,
		&li.Description,
		&li.Quantity,
		&li.UnitPrice,
		&li.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	li.ItemID = itemID.String

	return &li, nil
}

// placeholders returns n comma-separated "?" marks for IN clauses
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// Verify interface compliance
var _ port.InvoiceRepository = (*InvoiceRepository)(nil)
