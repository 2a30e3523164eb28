package service

import (
	"context"
	"fmt"
	"time"

	"github.com/smallbiz/backoffice/internal/application/port"
	"github.com/smallbiz/backoffice/internal/domain/balance"
	"github.com/smallbiz/backoffice/internal/domain/entity"
	"github.com/smallbiz/backoffice/internal/domain/identifier"
	"github.com/smallbiz/backoffice/pkg/utils"
)

// ContactInput carries the writable fields of a contact
type ContactInput struct {
	CompanyName    string `json:"company_name"`
	PersonIncharge string `json:"person_incharge"`
	PrimaryPhone   string `json:"primary_phone"`
	Email          string `json:"email"`
	IsSupplier     bool   `json:"is_supplier"`
}

// AddressInput carries the writable fields of a contact address
type AddressInput struct {
	Label             string `json:"label"`
	Line1             string `json:"line1"`
	Line2             string `json:"line2"`
	City              string `json:"city"`
	State             string `json:"state"`
	PostalCode        string `json:"postal_code"`
	Country           string `json:"country"`
	IsDefaultBilling  bool   `json:"is_default_billing"`
	IsDefaultShipping bool   `json:"is_default_shipping"`
}

// ContactWithBalance pairs a contact with its derived money figures
type ContactWithBalance struct {
	*entity.Contact
	balance.ContactSummary
}

// ContactService manages contacts and their addresses
type ContactService interface {
	CreateContact(ctx context.Context, input ContactInput) (*entity.Contact, error)
	GetContact(ctx context.Context, id string) (*ContactWithBalance, error)
	UpdateContact(ctx context.Context, id string, input ContactInput) (*entity.Contact, error)
	ListContacts(ctx context.Context, q port.ContactListQuery) ([]*ContactWithBalance, error)

	AddAddress(ctx context.Context, contactID string, input AddressInput) (*entity.ContactAddress, error)
	UpdateAddress(ctx context.Context, contactID, addressID string, input AddressInput) (*entity.ContactAddress, error)
	DeleteAddress(ctx context.Context, contactID, addressID string) error
}

type contactServiceImpl struct {
	contactRepo port.ContactRepository
	addressRepo port.AddressRepository
	invoiceRepo port.InvoiceRepository
	paymentRepo port.PaymentRepository
	txManager   port.TransactionManager
	logger      Logger
}

// NewContactService creates a new ContactService
func NewContactService(
	contactRepo port.ContactRepository,
	addressRepo port.AddressRepository,
	invoiceRepo port.InvoiceRepository,
	paymentRepo port.PaymentRepository,
	txManager port.TransactionManager,
	logger Logger,
) ContactService {
	return &contactServiceImpl{
		contactRepo: contactRepo,
		addressRepo: addressRepo,
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// CreateContact validates the input, mints an ID, and persists the contact
func (s *contactServiceImpl) CreateContact(ctx context.Context, input ContactInput) (*entity.Contact, error) {
	input = sanitizeContactInput(input)
	if err := validateContactInput(input); err != nil {
		return nil, err
	}

	contact := &entity.Contact{
		ID:             identifier.NewEntityID(entity.PrefixContact),
		CompanyName:    input.CompanyName,
		PersonIncharge: input.PersonIncharge,
		PrimaryPhone:   input.PrimaryPhone,
		Email:          input.Email,
		IsSupplier:     input.IsSupplier,
		IsActive:       true,
		CreatedAt:      time.Now(),
	}

	if err := s.contactRepo.Create(ctx, contact); err != nil {
		s.logger.Error("Failed to create contact", "error", err, "company_name", input.CompanyName)
		return nil, err
	}

	s.logger.Info("Contact created", "id", contact.ID, "company_name", contact.CompanyName)
	return contact, nil
}

// GetContact retrieves a contact with addresses and balance figures
func (s *contactServiceImpl) GetContact(ctx context.Context, id string) (*ContactWithBalance, error) {
	contact, err := s.contactRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	addrs, err := s.addressRepo.GetByContactID(ctx, id)
	if err != nil {
		return nil, err
	}
	contact.Addresses = addrs

	summaries, err := s.summarize(ctx, []string{id})
	if err != nil {
		return nil, err
	}

	return &ContactWithBalance{Contact: contact, ContactSummary: summaries[id]}, nil
}

// UpdateContact validates and applies the new field values
func (s *contactServiceImpl) UpdateContact(ctx context.Context, id string, input ContactInput) (*entity.Contact, error) {
	input = sanitizeContactInput(input)
	if err := validateContactInput(input); err != nil {
		return nil, err
	}

	contact, err := s.contactRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	contact.CompanyName = input.CompanyName
	contact.PersonIncharge = input.PersonIncharge
	contact.PrimaryPhone = input.PrimaryPhone
	contact.Email = input.Email
	contact.IsSupplier = input.IsSupplier

	if err := s.contactRepo.Update(ctx, contact); err != nil {
		s.logger.Error("Failed to update contact", "error", err, "id", id)
		return nil, err
	}

	s.logger.Info("Contact updated", "id", id)
	return contact, nil
}

// ListContacts retrieves a page of contacts, each annotated with balance
// figures computed in one batch. Batching never changes an individual
// contact's arithmetic; the detail view goes through the same calculator.
func (s *contactServiceImpl) ListContacts(ctx context.Context, q port.ContactListQuery) ([]*ContactWithBalance, error) {
	q.Limit, q.Offset = clampPage(q.Limit, q.Offset)

	contacts, err := s.contactRepo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(contacts) == 0 {
		return []*ContactWithBalance{}, nil
	}

	ids := make([]string, len(contacts))
	for i, c := range contacts {
		ids[i] = c.ID
	}

	summaries, err := s.summarize(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]*ContactWithBalance, len(contacts))
	for i, c := range contacts {
		result[i] = &ContactWithBalance{Contact: c, ContactSummary: summaries[c.ID]}
	}

	return result, nil
}

// AddAddress creates an address; setting a default flag clears it on the
// contact's other addresses within the same transaction
func (s *contactServiceImpl) AddAddress(ctx context.Context, contactID string, input AddressInput) (*entity.ContactAddress, error) {
	if err := validateAddressInput(input); err != nil {
		return nil, err
	}

	if _, err := s.contactRepo.GetByID(ctx, contactID); err != nil {
		return nil, err
	}

	addr := &entity.ContactAddress{
		ID:                identifier.NewEntityID(entity.PrefixAddress),
		ContactID:         contactID,
		Label:             input.Label,
		Line1:             input.Line1,
		Line2:             input.Line2,
		City:              input.City,
		State:             input.State,
		PostalCode:        input.PostalCode,
		Country:           input.Country,
		IsDefaultBilling:  input.IsDefaultBilling,
		IsDefaultShipping: input.IsDefaultShipping,
		CreatedAt:         time.Now(),
	}

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.addressRepo.Create(txCtx, addr); err != nil {
			return err
		}
		return s.enforceDefaultFlags(txCtx, addr)
	})
	if err != nil {
		s.logger.Error("Failed to add address", "error", err, "contact_id", contactID)
		return nil, err
	}

	s.logger.Info("Address added", "id", addr.ID, "contact_id", contactID)
	return addr, nil
}

// UpdateAddress applies new field values, keeping the default-flag invariant
func (s *contactServiceImpl) UpdateAddress(ctx context.Context, contactID, addressID string, input AddressInput) (*entity.ContactAddress, error) {
	if err := validateAddressInput(input); err != nil {
		return nil, err
	}

	addr, err := s.addressRepo.GetByID(ctx, addressID)
	if err != nil {
		return nil, err
	}
	if addr.ContactID != contactID {
		return nil, entity.ErrNotFound
	}

	addr.Label = input.Label
	addr.Line1 = input.Line1
	addr.Line2 = input.Line2
	addr.City = input.City
	addr.State = input.State
	addr.PostalCode = input.PostalCode
	addr.Country = input.Country
	addr.IsDefaultBilling = input.IsDefaultBilling
	addr.IsDefaultShipping = input.IsDefaultShipping

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.addressRepo.Update(txCtx, addr); err != nil {
			return err
		}
		return s.enforceDefaultFlags(txCtx, addr)
	})
	if err != nil {
		s.logger.Error("Failed to update address", "error", err, "id", addressID)
		return nil, err
	}

	return addr, nil
}

// DeleteAddress removes an address of the contact
func (s *contactServiceImpl) DeleteAddress(ctx context.Context, contactID, addressID string) error {
	addr, err := s.addressRepo.GetByID(ctx, addressID)
	if err != nil {
		return err
	}
	if addr.ContactID != contactID {
		return entity.ErrNotFound
	}

	return s.addressRepo.Delete(ctx, addressID)
}

// summarize runs the balance calculator over the given contacts' active
// invoices and payments
func (s *contactServiceImpl) summarize(ctx context.Context, contactIDs []string) (map[string]balance.ContactSummary, error) {
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

func (s *contactServiceImpl) enforceDefaultFlags(ctx context.Context, addr *entity.ContactAddress) error {
	if addr.IsDefaultBilling {
		if err := s.addressRepo.ClearDefaultBilling(ctx, addr.ContactID, addr.ID); err != nil {
			return err
		}
	}
	if addr.IsDefaultShipping {
		if err := s.addressRepo.ClearDefaultShipping(ctx, addr.ContactID, addr.ID); err != nil {
			return err
		}
	}
	return nil
}

// sanitizeContactInput strips control characters from the free-text fields
// before they reach validation or storage
func sanitizeContactInput(input ContactInput) ContactInput {
	input.CompanyName = utils.SanitizeString(input.CompanyName)
	input.PersonIncharge = utils.SanitizeString(input.PersonIncharge)
	return input
}

func validateContactInput(input ContactInput) error {
	if input.CompanyName == "" {
		return fmt.Errorf("%w: company_name is required", ErrValidation)
	}
	if input.Email != "" {
		if err := utils.ValidateEmail(input.Email); err != nil {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}
	if input.PrimaryPhone != "" {
		if err := utils.ValidatePhone(input.PrimaryPhone); err != nil {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}
	return nil
}

func validateAddressInput(input AddressInput) error {
	if input.Line1 == "" {
		return fmt.Errorf("%w: line1 is required", ErrValidation)
	}
	if input.City == "" {
		return fmt.Errorf("%w: city is required", ErrValidation)
	}
	return nil
}
