package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/smallbiz/backoffice/internal/application/port"
	"github.com/smallbiz/backoffice/internal/domain/balance"
	"github.com/smallbiz/backoffice/internal/domain/entity"
)

func newInvoiceService(invoiceRepo *mockInvoiceRepo, contactRepo *mockContactRepo, paymentRepo *mockPaymentRepo) InvoiceService {
	return NewInvoiceService(invoiceRepo, contactRepo, paymentRepo, &mockTxManager{}, &mockLogger{})
}

func TestInvoiceService_CreateInvoice(t *testing.T) {
	year := time.Now().UTC().Year()

	tests := []struct {
		name       string
		input      InvoiceInput
		lastNumber string
		wantNumber string
		wantErr    bool
	}{
		{
			name: "first invoice of the year",
			input: InvoiceInput{
				ContactID:   "c1",
				InvoiceDate: 1735689600,
				LineItems:   []LineItemInput{{Description: "Consulting", Quantity: 2, UnitPrice: 10.50}},
			},
			wantNumber: fmt.Sprintf("INV%d0001", year),
		},
		{
			name: "continues the year's sequence",
			input: InvoiceInput{
				ContactID:   "c1",
				InvoiceDate: 1735689600,
				LineItems:   []LineItemInput{{Description: "Consulting", Quantity: 1, UnitPrice: 5}},
			},
			lastNumber: fmt.Sprintf("INV%d0041", year),
			wantNumber: fmt.Sprintf("INV%d0042", year),
		},
		{
			name:    "missing contact id rejected",
			input:   InvoiceInput{InvoiceDate: 1735689600},
			wantErr: true,
		},
		{
			name: "non-positive quantity rejected",
			input: InvoiceInput{
				ContactID:   "c1",
				InvoiceDate: 1735689600,
				LineItems:   []LineItemInput{{Description: "Consulting", Quantity: 0, UnitPrice: 5}},
			},
			wantErr: true,
		},
		{
			name: "negative unit price rejected",
			input: InvoiceInput{
				ContactID:   "c1",
				InvoiceDate: 1735689600,
				LineItems:   []LineItemInput{{Description: "Consulting", Quantity: 1, UnitPrice: -1}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var created *entity.Invoice
			invoiceRepo := &mockInvoiceRepo{
				lastNumberForYearFunc: func(ctx context.Context, y int) (string, error) {
					return tt.lastNumber, nil
				},
				createFunc: func(ctx context.Context, invoice *entity.Invoice) error {
					created = invoice
					return nil
				},
			}

			service := newInvoiceService(invoiceRepo, &mockContactRepo{}, &mockPaymentRepo{})

			result, err := service.CreateInvoice(context.Background(), tt.input)

			if (err != nil) != tt.wantErr {
				t.Fatalf("CreateInvoice() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Errorf("CreateInvoice() error = %v, want ErrValidation", err)
				}
				if created != nil {
					t.Errorf("CreateInvoice() persisted despite validation failure")
				}
				return
			}

			if result.InvoiceNumber != tt.wantNumber {
				t.Errorf("CreateInvoice() number = %v, want %v", result.InvoiceNumber, tt.wantNumber)
			}
			if len(result.ShareToken) != 16 {
				t.Errorf("CreateInvoice() share token = %q, want 16 hex chars", result.ShareToken)
			}
			if created == nil {
				t.Fatalf("CreateInvoice() did not persist the invoice")
			}
			if len(created.LineItems) != len(tt.input.LineItems) {
				t.Errorf("CreateInvoice() persisted %d line items, want %d",
					len(created.LineItems), len(tt.input.LineItems))
			}
		})
	}
}

func TestInvoiceService_CreateInvoice_RetriesOnDuplicateNumber(t *testing.T) {
	year := time.Now().UTC().Year()

	attempts := 0
	invoiceRepo := &mockInvoiceRepo{
		lastNumberForYearFunc: func(ctx context.Context, y int) (string, error) {
			// Another writer advances the sequence between our attempts.
			return fmt.Sprintf("INV%d%04d", year, 10+attempts), nil
		},
		createFunc: func(ctx context.Context, invoice *entity.Invoice) error {
			attempts++
			if attempts == 1 {
				return entity.ErrDuplicateInvoiceNumber
			}
			return nil
		},
	}

	service := newInvoiceService(invoiceRepo, &mockContactRepo{}, &mockPaymentRepo{})

	result, err := service.CreateInvoice(context.Background(), InvoiceInput{
		ContactID:   "c1",
		InvoiceDate: 1735689600,
	})
	if err != nil {
		t.Fatalf("CreateInvoice() error = %v", err)
	}

	if attempts != 2 {
		t.Errorf("CreateInvoice() attempts = %d, want 2", attempts)
	}
	if want := fmt.Sprintf("INV%d0012", year); result.InvoiceNumber != want {
		t.Errorf("CreateInvoice() number = %v, want %v", result.InvoiceNumber, want)
	}
}

func TestInvoiceService_CreateInvoice_NumberLookupFailureSurfaces(t *testing.T) {
	lookupErr := errors.New("store unreachable")
	invoiceRepo := &mockInvoiceRepo{
		lastNumberForYearFunc: func(ctx context.Context, y int) (string, error) {
			return "", lookupErr
		},
	}

	service := newInvoiceService(invoiceRepo, &mockContactRepo{}, &mockPaymentRepo{})

	_, err := service.CreateInvoice(context.Background(), InvoiceInput{
		ContactID:   "c1",
		InvoiceDate: 1735689600,
	})
	if !errors.Is(err, lookupErr) {
		t.Errorf("CreateInvoice() error = %v, want the lookup failure to surface", err)
	}
}

func TestInvoiceService_GetInvoice_Status(t *testing.T) {
	tests := []struct {
		name       string
		lineItems  []*entity.InvoiceLineItem
		payments   []*entity.Payment
		wantTotal  float64
		wantStatus string
	}{
		{
			name:       "partial",
			lineItems:  []*entity.InvoiceLineItem{{Description: "Work", Quantity: 1, UnitPrice: 1000}},
			payments:   []*entity.Payment{{ContactID: "c1", Amount: 400, Type: entity.PaymentTypePayment}},
			wantTotal:  1000,
			wantStatus: balance.StatusPartial,
		},
		{
			name:       "paid",
			lineItems:  []*entity.InvoiceLineItem{{Description: "Work", Quantity: 1, UnitPrice: 500}},
			payments:   []*entity.Payment{{ContactID: "c1", Amount: 500, Type: entity.PaymentTypePayment}},
			wantTotal:  500,
			wantStatus: balance.StatusPaid,
		},
		{
			name:       "unpaid",
			lineItems:  []*entity.InvoiceLineItem{{Description: "Work", Quantity: 1, UnitPrice: 300}},
			wantTotal:  300,
			wantStatus: balance.StatusUnpaid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &entity.Invoice{ID: "i1", ContactID: "c1", IsActive: true, LineItems: tt.lineItems}

			invoiceRepo := &mockInvoiceRepo{
				getByIDFunc: func(ctx context.Context, id string) (*entity.Invoice, error) {
					return inv, nil
				},
				getActiveByContactIDsFunc: func(ctx context.Context, contactIDs []string) ([]*entity.Invoice, error) {
					return []*entity.Invoice{inv}, nil
				},
			}
			paymentRepo := &mockPaymentRepo{
				getActiveByContactIDsFunc: func(ctx context.Context, contactIDs []string) ([]*entity.Payment, error) {
					return tt.payments, nil
				},
			}

			service := newInvoiceService(invoiceRepo, &mockContactRepo{}, paymentRepo)

			result, err := service.GetInvoice(context.Background(), "i1")
			if err != nil {
				t.Fatalf("GetInvoice() error = %v", err)
			}

			if result.Total != tt.wantTotal {
				t.Errorf("GetInvoice() total = %v, want %v", result.Total, tt.wantTotal)
			}
			if result.Status != tt.wantStatus {
				t.Errorf("GetInvoice() status = %v, want %v", result.Status, tt.wantStatus)
			}
		})
	}
}

func TestInvoiceService_ListMatchesDetail(t *testing.T) {
	// One contact, two invoices, one payment covering half of the first.
	// The list annotation must agree with the detail annotation for every
	// invoice.
	inv1 := &entity.Invoice{ID: "i1", ContactID: "c1", IsActive: true,
		LineItems: []*entity.InvoiceLineItem{{Description: "A", Quantity: 1, UnitPrice: 100}}}
	inv2 := &entity.Invoice{ID: "i2", ContactID: "c1", IsActive: true,
		LineItems: []*entity.InvoiceLineItem{{Description: "B", Quantity: 2, UnitPrice: 50}}}
	payments := []*entity.Payment{{ContactID: "c1", Amount: 100, Type: entity.PaymentTypePayment}}

	invoiceRepo := &mockInvoiceRepo{
		listFunc: func(ctx context.Context, q port.InvoiceListQuery) ([]*entity.Invoice, error) {
			return []*entity.Invoice{inv1, inv2}, nil
		},
		getByIDFunc: func(ctx context.Context, id string) (*entity.Invoice, error) {
			if id == "i1" {
				return inv1, nil
			}
			return inv2, nil
		},
		getActiveByContactIDsFunc: func(ctx context.Context, contactIDs []string) ([]*entity.Invoice, error) {
			return []*entity.Invoice{inv1, inv2}, nil
		},
	}
	paymentRepo := &mockPaymentRepo{
		getActiveByContactIDsFunc: func(ctx context.Context, contactIDs []string) ([]*entity.Payment, error) {
			return payments, nil
		},
	}

	service := newInvoiceService(invoiceRepo, &mockContactRepo{}, paymentRepo)

	list, err := service.ListInvoices(context.Background(), port.InvoiceListQuery{})
	if err != nil {
		t.Fatalf("ListInvoices() error = %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("ListInvoices() returned %d invoices, want 2", len(list))
	}

	for _, fromList := range list {
		detail, err := service.GetInvoice(context.Background(), fromList.ID)
		if err != nil {
			t.Fatalf("GetInvoice(%s) error = %v", fromList.ID, err)
		}

		if fromList.Status != detail.Status {
			t.Errorf("invoice %s: list status %v != detail status %v", fromList.ID, fromList.Status, detail.Status)
		}
		if fromList.Summary != detail.Summary {
			t.Errorf("invoice %s: list summary %+v != detail summary %+v", fromList.ID, fromList.Summary, detail.Summary)
		}
		if fromList.Status != balance.StatusPartial {
			t.Errorf("invoice %s: status = %v, want partial", fromList.ID, fromList.Status)
		}
	}
}

func TestInvoiceService_GetSharedInvoice(t *testing.T) {
	inv := &entity.Invoice{
		ID: "i1", ContactID: "c1", ShareToken: "a1b2c3d4e5f60718", IsActive: true,
		LineItems: []*entity.InvoiceLineItem{{Description: "Work", Quantity: 2, UnitPrice: 10.50}},
	}

	invoiceRepo := &mockInvoiceRepo{
		getByShareTokenFunc: func(ctx context.Context, token string) (*entity.Invoice, error) {
			if token == inv.ShareToken {
				return inv, nil
			}
			return nil, entity.ErrNotFound
		},
		getByIDFunc: func(ctx context.Context, id string) (*entity.Invoice, error) {
			return inv, nil
		},
		getActiveByContactIDsFunc: func(ctx context.Context, contactIDs []string) ([]*entity.Invoice, error) {
			return []*entity.Invoice{inv}, nil
		},
	}

	service := newInvoiceService(invoiceRepo, &mockContactRepo{}, &mockPaymentRepo{})

	shared, contact, err := service.GetSharedInvoice(context.Background(), inv.ShareToken)
	if err != nil {
		t.Fatalf("GetSharedInvoice() error = %v", err)
	}
	if contact == nil || contact.ID != "c1" {
		t.Fatalf("GetSharedInvoice() contact = %+v, want c1", contact)
	}

	// Round-trip: token lookup and ID lookup agree on total and item order.
	byID, err := service.GetInvoice(context.Background(), inv.ID)
	if err != nil {
		t.Fatalf("GetInvoice() error = %v", err)
	}
	if shared.Total != byID.Total {
		t.Errorf("shared total %v != detail total %v", shared.Total, byID.Total)
	}
	for i := range shared.LineItems {
		if shared.LineItems[i].ID != byID.LineItems[i].ID {
			t.Errorf("line item order differs at %d", i)
		}
	}

	_, _, err = service.GetSharedInvoice(context.Background(), "0000000000000000")
	if !errors.Is(err, entity.ErrNotFound) {
		t.Errorf("GetSharedInvoice() with unknown token error = %v, want ErrNotFound", err)
	}
}
