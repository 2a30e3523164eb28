package service

import (
	"context"

	"github.com/smallbiz/backoffice/internal/application/port"
	"github.com/smallbiz/backoffice/internal/domain/entity"
)

// Mock repositories

type mockContactRepo struct {
	createFunc  func(ctx context.Context, contact *entity.Contact) error
	getByIDFunc func(ctx context.Context, id string) (*entity.Contact, error)
	updateFunc  func(ctx context.Context, contact *entity.Contact) error
	listFunc    func(ctx context.Context, q port.ContactListQuery) ([]*entity.Contact, error)
}

func (m *mockContactRepo) Create(ctx context.Context, contact *entity.Contact) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, contact)
	}
	return nil
}

func (m *mockContactRepo) GetByID(ctx context.Context, id string) (*entity.Contact, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &entity.Contact{ID: id, CompanyName: "Acme", IsActive: true}, nil
}

func (m *mockContactRepo) Update(ctx context.Context, contact *entity.Contact) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, contact)
	}
	return nil
}

func (m *mockContactRepo) List(ctx context.Context, q port.ContactListQuery) ([]*entity.Contact, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, q)
	}
	return []*entity.Contact{}, nil
}

type mockAddressRepo struct {
	createFunc               func(ctx context.Context, addr *entity.ContactAddress) error
	getByIDFunc              func(ctx context.Context, id string) (*entity.ContactAddress, error)
	getByContactIDFunc       func(ctx context.Context, contactID string) ([]*entity.ContactAddress, error)
	updateFunc               func(ctx context.Context, addr *entity.ContactAddress) error
	deleteFunc               func(ctx context.Context, id string) error
	clearDefaultBillingFunc  func(ctx context.Context, contactID, exceptID string) error
	clearDefaultShippingFunc func(ctx context.Context, contactID, exceptID string) error
}

func (m *mockAddressRepo) Create(ctx context.Context, addr *entity.ContactAddress) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, addr)
	}
	return nil
}

func (m *mockAddressRepo) GetByID(ctx context.Context, id string) (*entity.ContactAddress, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, entity.ErrNotFound
}

func (m *mockAddressRepo) GetByContactID(ctx context.Context, contactID string) ([]*entity.ContactAddress, error) {
	if m.getByContactIDFunc != nil {
		return m.getByContactIDFunc(ctx, contactID)
	}
	return []*entity.ContactAddress{}, nil
}

func (m *mockAddressRepo) Update(ctx context.Context, addr *entity.ContactAddress) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, addr)
	}
	return nil
}

func (m *mockAddressRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockAddressRepo) ClearDefaultBilling(ctx context.Context, contactID, exceptID string) error {
	if m.clearDefaultBillingFunc != nil {
		return m.clearDefaultBillingFunc(ctx, contactID, exceptID)
	}
	return nil
}

func (m *mockAddressRepo) ClearDefaultShipping(ctx context.Context, contactID, exceptID string) error {
	if m.clearDefaultShippingFunc != nil {
		return m.clearDefaultShippingFunc(ctx, contactID, exceptID)
	}
	return nil
}

type mockItemRepo struct {
	createFunc  func(ctx context.Context, item *entity.Item) error
	getByIDFunc func(ctx context.Context, id string) (*entity.Item, error)
	updateFunc  func(ctx context.Context, item *entity.Item) error
	listFunc    func(ctx context.Context, q port.ListQuery) ([]*entity.Item, error)
}

func (m *mockItemRepo) Create(ctx context.Context, item *entity.Item) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, item)
	}
	return nil
}

func (m *mockItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &entity.Item{ID: id, Name: "Widget", IsActive: true}, nil
}

func (m *mockItemRepo) Update(ctx context.Context, item *entity.Item) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, item)
	}
	return nil
}

func (m *mockItemRepo) List(ctx context.Context, q port.ListQuery) ([]*entity.Item, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, q)
	}
	return []*entity.Item{}, nil
}

type mockInvoiceRepo struct {
	createFunc                func(ctx context.Context, invoice *entity.Invoice) error
	getByIDFunc               func(ctx context.Context, id string) (*entity.Invoice, error)
	getByShareTokenFunc       func(ctx context.Context, token string) (*entity.Invoice, error)
	updateFunc                func(ctx context.Context, invoice *entity.Invoice) error
	listFunc                  func(ctx context.Context, q port.InvoiceListQuery) ([]*entity.Invoice, error)
	getActiveByContactIDsFunc func(ctx context.Context, contactIDs []string) ([]*entity.Invoice, error)
	lastNumberForYearFunc     func(ctx context.Context, year int) (string, error)
	replaceLineItemsFunc      func(ctx context.Context, invoiceID string, items []*entity.InvoiceLineItem) error
	getLineItemsFunc          func(ctx context.Context, invoiceID string) ([]*entity.InvoiceLineItem, error)
}

func (m *mockInvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, invoice)
	}
	return nil
}

func (m *mockInvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &entity.Invoice{ID: id, ContactID: "c1", IsActive: true}, nil
}

func (m *mockInvoiceRepo) GetByShareToken(ctx context.Context, token string) (*entity.Invoice, error) {
	if m.getByShareTokenFunc != nil {
		return m.getByShareTokenFunc(ctx, token)
	}
	return nil, entity.ErrNotFound
}

func (m *mockInvoiceRepo) Update(ctx context.Context, invoice *entity.Invoice) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, invoice)
	}
	return nil
}

func (m *mockInvoiceRepo) List(ctx context.Context, q port.InvoiceListQuery) ([]*entity.Invoice, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, q)
	}
	return []*entity.Invoice{}, nil
}

func (m *mockInvoiceRepo) GetActiveByContactIDs(ctx context.Context, contactIDs []string) ([]*entity.Invoice, error) {
	if m.getActiveByContactIDsFunc != nil {
		return m.getActiveByContactIDsFunc(ctx, contactIDs)
	}
	return []*entity.Invoice{}, nil
}

func (m *mockInvoiceRepo) LastNumberForYear(ctx context.Context, year int) (string, error) {
	if m.lastNumberForYearFunc != nil {
		return m.lastNumberForYearFunc(ctx, year)
	}
	return "", nil
}

func (m *mockInvoiceRepo) ReplaceLineItems(ctx context.Context, invoiceID string, items []*entity.InvoiceLineItem) error {
	if m.replaceLineItemsFunc != nil {
		return m.replaceLineItemsFunc(ctx, invoiceID, items)
	}
	return nil
}

func (m *mockInvoiceRepo) GetLineItems(ctx context.Context, invoiceID string) ([]*entity.InvoiceLineItem, error) {
	if m.getLineItemsFunc != nil {
		return m.getLineItemsFunc(ctx, invoiceID)
	}
	return []*entity.InvoiceLineItem{}, nil
}

type mockPaymentRepo struct {
	createFunc                func(ctx context.Context, payment *entity.Payment) error
	getByIDFunc               func(ctx context.Context, id string) (*entity.Payment, error)
	updateFunc                func(ctx context.Context, payment *entity.Payment) error
	listFunc                  func(ctx context.Context, q port.PaymentListQuery) ([]*entity.Payment, error)
	getActiveByContactIDsFunc func(ctx context.Context, contactIDs []string) ([]*entity.Payment, error)
}

func (m *mockPaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, payment)
	}
	return nil
}

func (m *mockPaymentRepo) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &entity.Payment{ID: id, ContactID: "c1", Amount: 100, Type: entity.PaymentTypePayment, IsActive: true}, nil
}

func (m *mockPaymentRepo) Update(ctx context.Context, payment *entity.Payment) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, payment)
	}
	return nil
}

func (m *mockPaymentRepo) List(ctx context.Context, q port.PaymentListQuery) ([]*entity.Payment, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, q)
	}
	return []*entity.Payment{}, nil
}

func (m *mockPaymentRepo) GetActiveByContactIDs(ctx context.Context, contactIDs []string) ([]*entity.Payment, error) {
	if m.getActiveByContactIDsFunc != nil {
		return m.getActiveByContactIDsFunc(ctx, contactIDs)
	}
	return []*entity.Payment{}, nil
}

type mockArchiveRepo struct {
	setActiveFunc       func(ctx context.Context, e port.ArchiveEntity, id string, active bool) error
	permanentDeleteFunc func(ctx context.Context, e port.ArchiveEntity, id string) error
}

func (m *mockArchiveRepo) SetActive(ctx context.Context, e port.ArchiveEntity, id string, active bool) error {
	if m.setActiveFunc != nil {
		return m.setActiveFunc(ctx, e, id, active)
	}
	return nil
}

func (m *mockArchiveRepo) PermanentDelete(ctx context.Context, e port.ArchiveEntity, id string) error {
	if m.permanentDeleteFunc != nil {
		return m.permanentDeleteFunc(ctx, e, id)
	}
	return nil
}

type mockTxManager struct {
	withTransactionFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.withTransactionFunc != nil {
		return m.withTransactionFunc(ctx, fn)
	}
	return fn(ctx)
}

type mockLogger struct{}

func (m *mockLogger) Info(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Error(msg string, keysAndValues ...interface{}) {}
