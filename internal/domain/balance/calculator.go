// Package balance computes contact balances and invoice payment status from
// invoice and payment rows. It is a pure aggregation over its inputs: no
// storage access, no side effects, and identical arithmetic whether invoked
// for one contact or a batch.
package balance

import (
	"math"

	"github.com/smallbiz/backoffice/internal/domain/entity"
)

// Invoice status values
const (
	StatusPaid    = "paid"
	StatusPartial = "partial"
	StatusUnpaid  = "unpaid"
)

// ContactSummary holds the derived money figures for one contact.
type ContactSummary struct {
	TotalInvoiced float64 `json:"total_invoiced"`
	TotalPaid     float64 `json:"total_paid"`
	Balance       float64 `json:"balance"`
}

// LineItemTotal returns quantity * unitPrice with malformed numerics treated
// as zero. Order of line items never affects the sum built from it.
func LineItemTotal(li *entity.InvoiceLineItem) float64 {
	return sanitize(sanitize(li.Quantity) * sanitize(li.UnitPrice))
}

// InvoiceTotal sums the line item contributions of one invoice. An invoice
// with no line items totals zero.
func InvoiceTotal(items []*entity.InvoiceLineItem) float64 {
	var total float64
	for _, li := range items {
		total += LineItemTotal(li)
	}
	return total
}

// Compute aggregates invoices and payments into per-contact summaries. The
// invoices slice is expected to carry only active invoices with their line
// items loaded, and payments only active payments; filtering is the caller's
// concern. Contacts listed in contactIDs always appear in the result, so a
// contact with no invoices and no payments reports a zero balance.
//
// Refunds contribute positively to TotalPaid, same as payments. That mirrors
// the behavior this module replaces and is almost certainly a defect (a refund
// should increase what is owed); it is kept for compatibility with existing
// figures rather than corrected here.
func Compute(contactIDs []string, invoices []*entity.Invoice, payments []*entity.Payment) map[string]ContactSummary {
	summaries := make(map[string]ContactSummary, len(contactIDs))
	for _, id := range contactIDs {
		summaries[id] = ContactSummary{}
	}

	for _, inv := range invoices {
		s := summaries[inv.ContactID]
		s.TotalInvoiced += InvoiceTotal(inv.LineItems)
		summaries[inv.ContactID] = s
	}

	for _, p := range payments {
		s := summaries[p.ContactID]
		s.TotalPaid += sanitize(p.Amount)
		summaries[p.ContactID] = s
	}

	for id, s := range summaries {
		s.Balance = s.TotalInvoiced - s.TotalPaid
		summaries[id] = s
	}

	return summaries
}

// Status classifies an invoice given its owning contact's summary. The
// classification is contact-level: every invoice of a contact reports the
// same status. List and detail views both go through this function so the
// two can never disagree.
func Status(s ContactSummary) string {
	switch {
	case s.Balance <= 0:
		return StatusPaid
	case s.TotalPaid <= 0:
		return StatusUnpaid
	default:
		return StatusPartial
	}
}

// sanitize maps NaN and infinities to zero so one bad row cannot poison a
// whole computation.
func sanitize(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
