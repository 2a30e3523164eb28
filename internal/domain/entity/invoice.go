package entity

import "time"

// Invoice is the invoice header. Identity fields (number, share token) are
// minted once at creation and never change afterwards; IsActive is toggled by
// the archive workflow.
type Invoice struct {
	ID            string     `json:"id"`
	ContactID     string     `json:"contact_id"`
	InvoiceNumber string     `json:"invoice_number"`
	ShareToken    string     `json:"-"`
	InvoiceDate   int64      `json:"invoice_date"` // unix seconds
	DueDate       *int64     `json:"due_date,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	IsActive      bool       `json:"is_active"`
	CreatedAt     time.Time  `json:"created_at"`

	// LineItems ordered by creation time ascending.
	LineItems []*InvoiceLineItem `json:"line_items,omitempty"`
}

// InvoiceLineItem is one row of an invoice. Its contribution to the invoice
// total is Quantity * UnitPrice. On invoice edit the whole set is replaced.
type InvoiceLineItem struct {
	ID          string    `json:"id"`
	InvoiceID   string    `json:"invoice_id"`
	ItemID      string    `json:"item_id,omitempty"`
	Description string    `json:"description"`
	Quantity    float64   `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
	CreatedAt   time.Time `json:"created_at"`
}
