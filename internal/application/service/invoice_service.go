package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/smallbiz/backoffice/internal/application/port"
	"github.com/smallbiz/backoffice/internal/domain/balance"
	"github.com/smallbiz/backoffice/internal/domain/entity"
	"github.com/smallbiz/backoffice/internal/domain/identifier"
)

// numberAllocationRetries bounds how often invoice creation re-reads the
// last number after losing the uniqueness race to a concurrent writer.
const numberAllocationRetries = 3

// LineItemInput carries one line item of an invoice create/update
type LineItemInput struct {
	ItemID      string  `json:"item_id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// InvoiceInput carries the writable fields of an invoice. Line items are
// replaced wholesale on update.
type InvoiceInput struct {
	ContactID   string          `json:"contact_id"`
	InvoiceDate int64           `json:"invoice_date"`
	DueDate     *int64          `json:"due_date"`
	Notes       string          `json:"notes"`
	LineItems   []LineItemInput `json:"line_items"`
}

// InvoiceWithStatus pairs an invoice with its derived total and the owning
// contact's payment status
type InvoiceWithStatus struct {
	*entity.Invoice
	Total   float64                `json:"total"`
	Status  string                 `json:"status"`
	Summary balance.ContactSummary `json:"contact_summary"`
}

// InvoiceService manages invoices and their public share view
type InvoiceService interface {
	CreateInvoice(ctx context.Context, input InvoiceInput) (*InvoiceWithStatus, error)
	GetInvoice(ctx context.Context, id string) (*InvoiceWithStatus, error)
	UpdateInvoice(ctx context.Context, id string, input InvoiceInput) (*InvoiceWithStatus, error)
	ListInvoices(ctx context.Context, q port.InvoiceListQuery) ([]*InvoiceWithStatus, error)

	// GetSharedInvoice resolves the public share token to the invoice plus
	// its contact, for the unauthenticated invoice page. The token was
	// minted once at creation; look-ups reuse the stored value.
	GetSharedInvoice(ctx context.Context, token string) (*InvoiceWithStatus, *entity.Contact, error)
}

type invoiceServiceImpl struct {
	invoiceRepo port.InvoiceRepository
	contactRepo port.ContactRepository
	paymentRepo port.PaymentRepository
	txManager   port.TransactionManager
	logger      Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoiceRepo port.InvoiceRepository,
	contactRepo port.ContactRepository,
	paymentRepo port.PaymentRepository,
	txManager port.TransactionManager,
	logger Logger,
) InvoiceService {
	return &invoiceServiceImpl{
		invoiceRepo: invoiceRepo,
		contactRepo: contactRepo,
		paymentRepo: paymentRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// CreateInvoice validates the input, mints the invoice number and share
// token, and persists header plus line items in one transaction.
//
// Number allocation is read-compute-insert; the UNIQUE constraint on
// invoice_number turns a concurrent duplicate into a retriable error
// instead of letting two invoices share a number.
func (s *invoiceServiceImpl) CreateInvoice(ctx context.Context, input InvoiceInput) (*InvoiceWithStatus, error) {
	if err := validateInvoiceInput(input); err != nil {
		return nil, err
	}

	if _, err := s.contactRepo.GetByID(ctx, input.ContactID); err != nil {
		return nil, err
	}

	token, err := identifier.NewShareToken()
	if err != nil {
		return nil, err
	}

	invoice := &entity.Invoice{
		ID:          identifier.NewEntityID(entity.PrefixInvoice),
		ContactID:   input.ContactID,
		ShareToken:  token,
		InvoiceDate: input.InvoiceDate,
		DueDate:     input.DueDate,
		Notes:       input.Notes,
		IsActive:    true,
		CreatedAt:   time.Now(),
		LineItems:   buildLineItems(input.LineItems),
	}

	year := time.Now().UTC().Year()

	for attempt := 0; ; attempt++ {
		last, err := s.invoiceRepo.LastNumberForYear(ctx, year)
		if err != nil {
			// Surfacing the failure matters here: falling back to 0001
			// would hand out a number that likely already exists.
			return nil, err
		}

		invoice.InvoiceNumber, err = identifier.NextInvoiceNumber(year, last)
		if err != nil {
			return nil, err
		}

		err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
			return s.invoiceRepo.Create(txCtx, invoice)
		})
		if err == nil {
			break
		}
		if !errors.Is(err, entity.ErrDuplicateInvoiceNumber) || attempt+1 >= numberAllocationRetries {
			s.logger.Error("Failed to create invoice", "error", err, "contact_id", input.ContactID)
			return nil, err
		}

		s.logger.Info("Invoice number taken, retrying", "number", invoice.InvoiceNumber, "attempt", attempt+1)
	}

	s.logger.Info("Invoice created", "id", invoice.ID, "number", invoice.InvoiceNumber)
	return s.annotate(ctx, invoice)
}

// GetInvoice retrieves an invoice with total, status, and contact summary
func (s *invoiceServiceImpl) GetInvoice(ctx context.Context, id string) (*InvoiceWithStatus, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.annotate(ctx, invoice)
}

// UpdateInvoice applies new header fields and replaces the line items
// wholesale, in one transaction
func (s *invoiceServiceImpl) UpdateInvoice(ctx context.Context, id string, input InvoiceInput) (*InvoiceWithStatus, error) {
	if err := validateInvoiceInput(input); err != nil {
		return nil, err
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.contactRepo.GetByID(ctx, input.ContactID); err != nil {
		return nil, err
	}

	invoice.ContactID = input.ContactID
	invoice.InvoiceDate = input.InvoiceDate
	invoice.DueDate = input.DueDate
	invoice.Notes = input.Notes
	invoice.LineItems = buildLineItems(input.LineItems)

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.invoiceRepo.Update(txCtx, invoice); err != nil {
			return err
		}
		return s.invoiceRepo.ReplaceLineItems(txCtx, invoice.ID, invoice.LineItems)
	})
	if err != nil {
		s.logger.Error("Failed to update invoice", "error", err, "id", id)
		return nil, err
	}

	s.logger.Info("Invoice updated", "id", id)
	return s.annotate(ctx, invoice)
}

// ListInvoices retrieves a page of invoices, each annotated with total and
// status. Statuses come from one batched balance computation over the page's
// contacts, the same arithmetic the detail view uses.
func (s *invoiceServiceImpl) ListInvoices(ctx context.Context, q port.InvoiceListQuery) ([]*InvoiceWithStatus, error) {
	q.Limit, q.Offset = clampPage(q.Limit, q.Offset)

	invoices, err := s.invoiceRepo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(invoices) == 0 {
		return []*InvoiceWithStatus{}, nil
	}

	contactIDs := uniqueContactIDs(invoices)

	summaries, err := s.summarize(ctx, contactIDs)
	if err != nil {
		return nil, err
	}

	result := make([]*InvoiceWithStatus, len(invoices))
	for i, inv := range invoices {
		summary := summaries[inv.ContactID]
		result[i] = &InvoiceWithStatus{
			Invoice: inv,
			Total:   balance.InvoiceTotal(inv.LineItems),
			Status:  balance.Status(summary),
			Summary: summary,
		}
	}

	return result, nil
}

// GetSharedInvoice resolves a share token to the invoice and its contact
func (s *invoiceServiceImpl) GetSharedInvoice(ctx context.Context, token string) (*InvoiceWithStatus, *entity.Contact, error) {
	invoice, err := s.invoiceRepo.GetByShareToken(ctx, token)
	if err != nil {
		return nil, nil, err
	}

	contact, err := s.contactRepo.GetByID(ctx, invoice.ContactID)
	if err != nil {
		return nil, nil, err
	}

	annotated, err := s.annotate(ctx, invoice)
	if err != nil {
		return nil, nil, err
	}

	return annotated, contact, nil
}

// annotate attaches total, status, and contact summary to one invoice
func (s *invoiceServiceImpl) annotate(ctx context.Context, invoice *entity.Invoice) (*InvoiceWithStatus, error) {
	summaries, err := s.summarize(ctx, []string{invoice.ContactID})
	if err != nil {
		return nil, err
	}

	summary := summaries[invoice.ContactID]
	return &InvoiceWithStatus{
		Invoice: invoice,
		Total:   balance.InvoiceTotal(invoice.LineItems),
		Status:  balance.Status(summary),
		Summary: summary,
	}, nil
}

func (s *invoiceServiceImpl) summarize(ctx context.Context, contactIDs []string) (map[string]balance.ContactSummary, error) {
	invoices, err := s.invoiceRepo.GetActiveByContactIDs(ctx, contactIDs)
	if err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.GetActiveByContactIDs(ctx, contactIDs)
	if err != nil {
		return nil, err
	}

	return balance.Compute(contactIDs, invoices, payments), nil
}

func buildLineItems(inputs []LineItemInput) []*entity.InvoiceLineItem {
	items := make([]*entity.InvoiceLineItem, len(inputs))
	for i, in := range inputs {
		items[i] = &entity.InvoiceLineItem{
			ID:          identifier.NewEntityID(entity.PrefixInvoice),
			ItemID:      in.ItemID,
			Description: in.Description,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			CreatedAt:   time.Now(),
		}
	}
	return items
}

func uniqueContactIDs(invoices []*entity.Invoice) []string {
	seen := make(map[string]bool, len(invoices))
	var ids []string
	for _, inv := range invoices {
		if !seen[inv.ContactID] {
			seen[inv.ContactID] = true
			ids = append(ids, inv.ContactID)
		}
	}
	return ids
}

func validateInvoiceInput(input InvoiceInput) error {
	if input.ContactID == "" {
		return fmt.Errorf("%w: contact_id is required", ErrValidation)
	}
	if input.InvoiceDate <= 0 {
		return fmt.Errorf("%w: invoice_date is required", ErrValidation)
	}
	for i, li := range input.LineItems {
		if li.Description == "" {
			return fmt.Errorf("%w: line item %d: description is required", ErrValidation, i)
		}
		if li.Quantity <= 0 {
			return fmt.Errorf("%w: line item %d: quantity must be positive", ErrValidation, i)
		}
		if li.UnitPrice < 0 {
			return fmt.Errorf("%w: line item %d: unit_price must not be negative", ErrValidation, i)
		}
	}
	return nil
}
