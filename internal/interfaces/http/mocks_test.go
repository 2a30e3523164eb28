package http

import (
	"context"

	"github.com/smallbiz/backoffice/internal/application/port"
	"github.com/smallbiz/backoffice/internal/application/service"
	"github.com/smallbiz/backoffice/internal/domain/entity"
)

type mockContactService struct {
	createFn        func(ctx context.Context, input service.ContactInput) (*entity.Contact, error)
	getFn           func(ctx context.Context, id string) (*service.ContactWithBalance, error)
	updateFn        func(ctx context.Context, id string, input service.ContactInput) (*entity.Contact, error)
	listFn          func(ctx context.Context, q port.ContactListQuery) ([]*service.ContactWithBalance, error)
	addAddressFn    func(ctx context.Context, contactID string, input service.AddressInput) (*entity.ContactAddress, error)
	updateAddressFn func(ctx context.Context, contactID, addressID string, input service.AddressInput) (*entity.ContactAddress, error)
	deleteAddressFn func(ctx context.Context, contactID, addressID string) error
}

func (m *mockContactService) CreateContact(ctx context.Context, input service.ContactInput) (*entity.Contact, error) {
	return m.createFn(ctx, input)
}

func (m *mockContactService) GetContact(ctx context.Context, id string) (*service.ContactWithBalance, error) {
	return m.getFn(ctx, id)
}

func (m *mockContactService) UpdateContact(ctx context.Context, id string, input service.ContactInput) (*entity.Contact, error) {
	return m.updateFn(ctx, id, input)
}

func (m *mockContactService) ListContacts(ctx context.Context, q port.ContactListQuery) ([]*service.ContactWithBalance, error) {
	return m.listFn(ctx, q)
}

func (m *mockContactService) AddAddress(ctx context.Context, contactID string, input service.AddressInput) (*entity.ContactAddress, error) {
	return m.addAddressFn(ctx, contactID, input)
}

func (m *mockContactService) UpdateAddress(ctx context.Context, contactID, addressID string, input service.AddressInput) (*entity.ContactAddress, error) {
	return m.updateAddressFn(ctx, contactID, addressID, input)
}

func (m *mockContactService) DeleteAddress(ctx context.Context, contactID, addressID string) error {
	return m.deleteAddressFn(ctx, contactID, addressID)
}

type mockItemService struct {
	createFn func(ctx context.Context, input service.ItemInput) (*entity.Item, error)
	getFn    func(ctx context.Context, id string) (*entity.Item, error)
	updateFn func(ctx context.Context, id string, input service.ItemInput) (*entity.Item, error)
	listFn   func(ctx context.Context, q port.ListQuery) ([]*entity.Item, error)
}

func (m *mockItemService) CreateItem(ctx context.Context, input service.ItemInput) (*entity.Item, error) {
	return m.createFn(ctx, input)
}

func (m *mockItemService) GetItem(ctx context.Context, id string) (*entity.Item, error) {
	return m.getFn(ctx, id)
}

func (m *mockItemService) UpdateItem(ctx context.Context, id string, input service.ItemInput) (*entity.Item, error) {
	return m.updateFn(ctx, id, input)
}

func (m *mockItemService) ListItems(ctx context.Context, q port.ListQuery) ([]*entity.Item, error) {
	return m.listFn(ctx, q)
}

type mockInvoiceService struct {
	createFn    func(ctx context.Context, input service.InvoiceInput) (*service.InvoiceWithStatus, error)
	getFn       func(ctx context.Context, id string) (*service.InvoiceWithStatus, error)
	updateFn    func(ctx context.Context, id string, input service.InvoiceInput) (*service.InvoiceWithStatus, error)
	listFn      func(ctx context.Context, q port.InvoiceListQuery) ([]*service.InvoiceWithStatus, error)
	getSharedFn func(ctx context.Context, token string) (*service.InvoiceWithStatus, *entity.Contact, error)
}

func (m *mockInvoiceService) CreateInvoice(ctx context.Context, input service.InvoiceInput) (*service.InvoiceWithStatus, error) {
	return m.createFn(ctx, input)
}

func (m *mockInvoiceService) GetInvoice(ctx context.Context, id string) (*service.InvoiceWithStatus, error) {
	return m.getFn(ctx, id)
}

func (m *mockInvoiceService) UpdateInvoice(ctx context.Context, id string, input service.InvoiceInput) (*service.InvoiceWithStatus, error) {
	return m.updateFn(ctx, id, input)
}

func (m *mockInvoiceService) ListInvoices(ctx context.Context, q port.InvoiceListQuery) ([]*service.InvoiceWithStatus, error) {
	return m.listFn(ctx, q)
}

func (m *mockInvoiceService) GetSharedInvoice(ctx context.Context, token string) (*service.InvoiceWithStatus, *entity.Contact, error) {
	return m.getSharedFn(ctx, token)
}

type mockPaymentService struct {
	createFn func(ctx context.Context, input service.PaymentInput) (*entity.Payment, error)
	getFn    func(ctx context.Context, id string) (*entity.Payment, error)
	updateFn func(ctx context.Context, id string, input service.PaymentInput) (*entity.Payment, error)
	listFn   func(ctx context.Context, q port.PaymentListQuery) ([]*entity.Payment, error)
}

func (m *mockPaymentService) CreatePayment(ctx context.Context, input service.PaymentInput) (*entity.Payment, error) {
	return m.createFn(ctx, input)
}

func (m *mockPaymentService) GetPayment(ctx context.Context, id string) (*entity.Payment, error) {
	return m.getFn(ctx, id)
}

func (m *mockPaymentService) UpdatePayment(ctx context.Context, id string, input service.PaymentInput) (*entity.Payment, error) {
	return m.updateFn(ctx, id, input)
}

func (m *mockPaymentService) ListPayments(ctx context.Context, q port.PaymentListQuery) ([]*entity.Payment, error) {
	return m.listFn(ctx, q)
}

type mockArchiveService struct {
	archiveFn func(ctx context.Context, e port.ArchiveEntity, id string) error
	restoreFn func(ctx context.Context, e port.ArchiveEntity, id string) error
	deleteFn  func(ctx context.Context, e port.ArchiveEntity, id string) error
}

func (m *mockArchiveService) Archive(ctx context.Context, e port.ArchiveEntity, id string) error {
	return m.archiveFn(ctx, e, id)
}

func (m *mockArchiveService) Restore(ctx context.Context, e port.ArchiveEntity, id string) error {
	return m.restoreFn(ctx, e, id)
}

func (m *mockArchiveService) PermanentDelete(ctx context.Context, e port.ArchiveEntity, id string) error {
	return m.deleteFn(ctx, e, id)
}

type mockLogger struct{}

func (m *mockLogger) Info(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Error(msg string, keysAndValues ...interface{}) {}
