package entity

import "time"

// Contact represents a customer or supplier that invoices and payments attach to.
type Contact struct {
	ID             string    `json:"id"`
	CompanyName    string    `json:"company_name"`
	PersonIncharge string    `json:"person_incharge"`
	PrimaryPhone   string    `json:"primary_phone"`
	Email          string    `json:"email,omitempty"`
	IsSupplier     bool      `json:"is_supplier"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`

	// Addresses are loaded on demand, not on every query.
	Addresses []*ContactAddress `json:"addresses,omitempty"`
}

// ContactAddress is one postal address of a contact. At most one address per
// contact may carry each default flag; the repository clears competing flags
// inside the same transaction that sets one.
type ContactAddress struct {
	ID                string    `json:"id"`
	ContactID         string    `json:"contact_id"`
	Label             string    `json:"label"`
	Line1             string    `json:"line1"`
	Line2             string    `json:"line2,omitempty"`
	City              string    `json:"city"`
	State             string    `json:"state,omitempty"`
	PostalCode        string    `json:"postal_code"`
	Country           string    `json:"country"`
	IsDefaultBilling  bool      `json:"is_default_billing"`
	IsDefaultShipping bool      `json:"is_default_shipping"`
	CreatedAt         time.Time `json:"created_at"`
}
