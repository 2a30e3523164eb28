package entity

import "time"

// Payment records money received from (type "payment") or returned to
// (type "refund") a contact. InvoiceID is optional: a payment may apply to
// the contact generally rather than to one invoice.
type Payment struct {
	ID            string    `json:"id"`
	ContactID     string    `json:"contact_id"`
	InvoiceID     string    `json:"invoice_id,omitempty"`
	Amount        float64   `json:"amount"`
	PaymentDate   int64     `json:"payment_date"` // unix seconds
	PaymentMethod string    `json:"payment_method,omitempty"`
	Type          string    `json:"type"`
	Notes         string    `json:"notes,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}
