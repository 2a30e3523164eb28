package service

import (
	"context"
	"fmt"
	"time"

	"github.com/smallbiz/backoffice/internal/application/port"
	"github.com/smallbiz/backoffice/internal/domain/entity"
	"github.com/smallbiz/backoffice/internal/domain/identifier"
)

// PaymentInput carries the writable fields of a payment
type PaymentInput struct {
	ContactID     string  `json:"contact_id"`
	InvoiceID     string  `json:"invoice_id"`
	Amount        float64 `json:"amount"`
	PaymentDate   int64   `json:"payment_date"`
	PaymentMethod string  `json:"payment_method"`
	Type          string  `json:"type"`
	Notes         string  `json:"notes"`
}

// PaymentService manages payments and refunds
type PaymentService interface {
	CreatePayment(ctx context.Context, input PaymentInput) (*entity.Payment, error)
	GetPayment(ctx context.Context, id string) (*entity.Payment, error)
	UpdatePayment(ctx context.Context, id string, input PaymentInput) (*entity.Payment, error)
	ListPayments(ctx context.Context, q port.PaymentListQuery) ([]*entity.Payment, error)
}

type paymentServiceImpl struct {
	paymentRepo port.PaymentRepository
	contactRepo port.ContactRepository
	invoiceRepo port.InvoiceRepository
	logger      Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo port.PaymentRepository,
	contactRepo port.ContactRepository,
	invoiceRepo port.InvoiceRepository,
	logger Logger,
) PaymentService {
	return &paymentServiceImpl{
		paymentRepo: paymentRepo,
		contactRepo: contactRepo,
		invoiceRepo: invoiceRepo,
		logger:      logger,
	}
}

// CreatePayment validates the input, mints an ID, and persists the payment
func (s *paymentServiceImpl) CreatePayment(ctx context.Context, input PaymentInput) (*entity.Payment, error) {
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	payment := &entity.Payment{
		ID:            identifier.NewEntityID(entity.PrefixPayment),
		ContactID:     input.ContactID,
		InvoiceID:     input.InvoiceID,
		Amount:        input.Amount,
		PaymentDate:   input.PaymentDate,
		PaymentMethod: input.PaymentMethod,
		Type:          input.Type,
		Notes:         input.Notes,
		IsActive:      true,
		CreatedAt:     time.Now(),
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		s.logger.Error("Failed to create payment", "error", err, "contact_id", input.ContactID)
		return nil, err
	}

	s.logger.Info("Payment created", "id", payment.ID, "type", payment.Type, "amount", payment.Amount)
	return payment, nil
}

// GetPayment retrieves a payment by ID
func (s *paymentServiceImpl) GetPayment(ctx context.Context, id string) (*entity.Payment, error) {
	return s.paymentRepo.GetByID(ctx, id)
}

// UpdatePayment validates and applies the new field values
func (s *paymentServiceImpl) UpdatePayment(ctx context.Context, id string, input PaymentInput) (*entity.Payment, error) {
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	payment.ContactID = input.ContactID
	payment.InvoiceID = input.InvoiceID
	payment.Amount = input.Amount
	payment.PaymentDate = input.PaymentDate
	payment.PaymentMethod = input.PaymentMethod
	payment.Type = input.Type
	payment.Notes = input.Notes

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		s.logger.Error("Failed to update payment", "error", err, "id", id)
		return nil, err
	}

	return payment, nil
}

// ListPayments retrieves a page of payments
func (s *paymentServiceImpl) ListPayments(ctx context.Context, q port.PaymentListQuery) ([]*entity.Payment, error) {
	q.Limit, q.Offset = clampPage(q.Limit, q.Offset)
	return s.paymentRepo.List(ctx, q)
}

// validate rejects malformed input and dangling references before anything
// is persisted
func (s *paymentServiceImpl) validate(ctx context.Context, input PaymentInput) error {
	if input.ContactID == "" {
		return fmt.Errorf("%w: contact_id is required", ErrValidation)
	}
	if input.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if input.PaymentDate <= 0 {
		return fmt.Errorf("%w: payment_date is required", ErrValidation)
	}
	if input.Type != entity.PaymentTypePayment && input.Type != entity.PaymentTypeRefund {
		return fmt.Errorf("%w: type must be %q or %q", ErrValidation, entity.PaymentTypePayment, entity.PaymentTypeRefund)
	}

	if _, err := s.contactRepo.GetByID(ctx, input.ContactID); err != nil {
		return err
	}

	if input.InvoiceID != "" {
		invoice, err := s.invoiceRepo.GetByID(ctx, input.InvoiceID)
		if err != nil {
			return err
		}
		if invoice.ContactID != input.ContactID {
			return fmt.Errorf("%w: invoice %s does not belong to contact %s", ErrValidation, input.InvoiceID, input.ContactID)
		}
	}

	return nil
}
