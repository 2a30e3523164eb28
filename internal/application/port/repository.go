package port

import (
	"context"

	"github.com/smallbiz/backoffice/internal/domain/entity"
)

// ListQuery captures search, filter, and paging options shared by the list
// endpoints. Zero values mean "no filter"; Limit is clamped by the handlers.
type ListQuery struct {
	Search          string
	IncludeArchived bool
	Limit           int
	Offset          int
}

// ContactListQuery adds contact-specific filters to ListQuery.
type ContactListQuery struct {
	ListQuery
	SupplierOnly bool
}

// InvoiceListQuery adds invoice-specific filters to ListQuery.
type InvoiceListQuery struct {
	ListQuery
	ContactID string
}

// PaymentListQuery adds payment-specific filters to ListQuery.
type PaymentListQuery struct {
	ListQuery
	ContactID string
	InvoiceID string
}

// ContactRepository defines persistence operations for Contact
type ContactRepository interface {
	Create(ctx context.Context, contact *entity.Contact) error
	GetByID(ctx context.Context, id string) (*entity.Contact, error)
	Update(ctx context.Context, contact *entity.Contact) error
	List(ctx context.Context, q ContactListQuery) ([]*entity.Contact, error)
}

// AddressRepository defines persistence operations for ContactAddress
type AddressRepository interface {
	Create(ctx context.Context, addr *entity.ContactAddress) error
	GetByID(ctx context.Context, id string) (*entity.ContactAddress, error)
	GetByContactID(ctx context.Context, contactID string) ([]*entity.ContactAddress, error)
	Update(ctx context.Context, addr *entity.ContactAddress) error
	Delete(ctx context.Context, id string) error

	// ClearDefaultBilling / ClearDefaultShipping drop the default flag on
	// every address of the contact except the one given. Called in the same
	// transaction that sets the flag, so at most one address per contact
	// carries each flag.
	ClearDefaultBilling(ctx context.Context, contactID, exceptID string) error
	ClearDefaultShipping(ctx context.Context, contactID, exceptID string) error
}

// ItemRepository defines persistence operations for Item
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	List(ctx context.Context, q ListQuery) ([]*entity.Item, error)
}

// InvoiceRepository defines persistence operations for Invoice and its line items
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	GetByShareToken(ctx context.Context, token string) (*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	List(ctx context.Context, q InvoiceListQuery) ([]*entity.Invoice, error)

	// GetActiveByContactIDs returns all active invoices of the given
	// contacts with line items loaded, for balance computation.
	GetActiveByContactIDs(ctx context.Context, contactIDs []string) ([]*entity.Invoice, error)

	// LastNumberForYear returns the lexicographically-last invoice number
	// with the given year's prefix, or "" when the year has none. A store
	// failure surfaces as an error; starting over at 0001 on a failed
	// lookup would invite number collisions.
	LastNumberForYear(ctx context.Context, year int) (string, error)

	// ReplaceLineItems deletes the invoice's line items and inserts the
	// given set. Invoice edits replace items wholesale.
	ReplaceLineItems(ctx context.Context, invoiceID string, items []*entity.InvoiceLineItem) error

	GetLineItems(ctx context.Context, invoiceID string) ([]*entity.InvoiceLineItem, error)
}

// PaymentRepository defines persistence operations for Payment
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id string) (*entity.Payment, error)
	Update(ctx context.Context, payment *entity.Payment) error
	List(ctx context.Context, q PaymentListQuery) ([]*entity.Payment, error)

	// GetActiveByContactIDs returns all active payments of the given
	// contacts, for balance computation.
	GetActiveByContactIDs(ctx context.Context, contactIDs []string) ([]*entity.Payment, error)
}

// ArchiveEntity enumerates the tables the archive workflow may touch. The
// repository keeps one statically-known query per member; callers can never
// smuggle a table name in as a string.
type ArchiveEntity int

const (
	ArchiveContact ArchiveEntity = iota
	ArchiveItem
	ArchiveInvoice
	ArchivePayment
)

// ArchiveRepository toggles the soft-delete flag and performs permanent
// deletes from the archive view.
type ArchiveRepository interface {
	SetActive(ctx context.Context, e ArchiveEntity, id string, active bool) error

	// PermanentDelete removes an archived row for good. Deleting a row that
	// is still active returns entity.ErrNotArchived.
	PermanentDelete(ctx context.Context, e ArchiveEntity, id string) error
}

// TransactionManager executes a function within a database transaction
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
