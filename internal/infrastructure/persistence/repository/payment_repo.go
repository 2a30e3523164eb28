package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/smallbiz/backoffice/internal/application/port"
	"github.com/smallbiz/backoffice/internal/domain/entity"
)

// PaymentRepository implements port.PaymentRepository
type PaymentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *sql.DB, logger *zap.Logger) port.PaymentRepository {
	return &PaymentRepository{
		db:     db,
		logger: logger,
	}
}

const paymentColumns = `id, contact_id, invoice_id, amount, payment_date, payment_method, type, notes, is_active, created_at`

// Create inserts a new payment row
func (r *PaymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (
			id, contact_id, invoice_id, amount, payment_date, payment_method, type, notes, is_active
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		payment.ID,
		payment.ContactID,
		nullString(payment.InvoiceID),
		payment.Amount,
		payment.PaymentDate,
		payment.PaymentMethod,
		payment.Type,
		payment.Notes,
		payment.IsActive,
	)
	if err != nil {
		r.logger.Error("Failed to create payment", zap.String("id", payment.ID), zap.Error(err))
		return fmt.Errorf("failed to create payment: %w", err)
	}

	return nil
}

// GetByID retrieves a payment by ID
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = ?`

	payment, err := scanPayment(getExecutor(ctx, r.db).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get payment by ID", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return payment, nil
}

// Update updates a payment's mutable fields
func (r *PaymentRepository) Update(ctx context.Context, payment *entity.Payment) error {
	query := `
		UPDATE payments
		SET contact_id = ?, invoice_id = ?, amount = ?, payment_date = ?, payment_method = ?, type = ?, notes = ?
		WHERE id = ?
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		payment.ContactID,
		nullString(payment.InvoiceID),
		payment.Amount,
		payment.PaymentDate,
		payment.PaymentMethod,
		payment.Type,
		payment.Notes,
		payment.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update payment", zap.String("id", payment.ID), zap.Error(err))
		return fmt.Errorf("failed to update payment: %w", err)
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

// List retrieves payments matching the query, newest first
func (r *PaymentRepository) List(ctx context.Context, q port.PaymentListQuery) ([]*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE 1=1`
	var args []interface{}

	if !q.IncludeArchived {
		query += ` AND is_active = 1`
	}
	if q.ContactID != "" {
		query += ` AND contact_id = ?`
		args = append(args, q.ContactID)
	}
	if q.InvoiceID != "" {
		query += ` AND invoice_id = ?`
		args = append(args, q.InvoiceID)
	}

	query += ` ORDER BY payment_date DESC, created_at DESC, id LIMIT ? OFFSET ?`
	args = append(args, q.Limit, q.Offset)

	return r.queryPayments(ctx, query, args...)
}

// GetActiveByContactIDs returns all active payments of the given contacts
func (r *PaymentRepository) GetActiveByContactIDs(ctx context.Context, contactIDs []string) ([]*entity.Payment, error) {
	if len(contactIDs) == 0 {
		return nil, nil
	}

	query := `SELECT ` + paymentColumns + ` FROM payments WHERE is_active = 1 AND contact_id IN (` +
		placeholders(len(contactIDs)) + `)`

	args := make([]interface{}, len(contactIDs))
	for i, id := range contactIDs {
		args[i] = id
	}

	return r.queryPayments(ctx, query, args...)
}

func (r *PaymentRepository) queryPayments(ctx context.Context, query string, args ...interface{}) ([]*entity.Payment, error) {
	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to query payments", zap.Error(err))
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	var payments []*entity.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, payment)
	}

	return payments, rows.Err()
}

func scanPayment(row rowScanner) (*entity.Payment, error) {
	var payment entity.Payment
	var invoiceID sql.NullString

	err := row.Scan(
		&payment.ID,
		&payment.ContactID,
		&invoiceID,
		&payment.Amount,
		&payment.PaymentDate,
		&payment.PaymentMethod,
		&payment.Type,
		&payment.Notes,
		&payment.IsActive,
		&payment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	payment.InvoiceID = invoiceID.String

	return &payment, nil
}

// Verify interface compliance
var _ port.PaymentRepository = (*PaymentRepository)(nil)
