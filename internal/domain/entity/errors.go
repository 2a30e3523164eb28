package entity

import "errors"

var (
	// ErrNotFound is returned when a row lookup matches nothing
	ErrNotFound = errors.New("record not found")

	// ErrNotArchived is returned when a permanent delete targets an active row
	ErrNotArchived = errors.New("record must be archived before permanent deletion")

	// ErrDuplicateCompanyName is returned when a contact's company name is taken
	ErrDuplicateCompanyName = errors.New("company name already exists")

	// ErrDuplicateInvoiceNumber is returned when an insert loses the
	// invoice-number uniqueness race; callers re-read the sequence and retry
	ErrDuplicateInvoiceNumber = errors.New("invoice number already exists")
)
