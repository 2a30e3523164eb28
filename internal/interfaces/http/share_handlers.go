package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/smallbiz/backoffice/internal/domain/balance"
	"github.com/smallbiz/backoffice/internal/domain/entity"
)

// shareLineView is one rendered line item row on the public invoice page
type shareLineView struct {
	Description string
	Quantity    float64
	UnitPrice   string
	Amount      string
}

// shareInvoiceView is the template model for the public invoice page. All
// money figures come from the balance calculator so the page agrees with
// the API to the cent.
type shareInvoiceView struct {
	InvoiceNumber string
	InvoiceDate   string
	DueDate       string
	Status        string
	Notes         string
	CompanyName   string
	ContactPerson string
	ContactEmail  string
	Lines         []shareLineView
	Total         string
	Balance       string
}

// SharedInvoicePage handles GET /share/invoice/:token. Unknown tokens get a
// branded 404 page; store failures get a generic error page. No auth.
func (h *Handlers) SharedInvoicePage(c *gin.Context) {
	invoice, contact, err := h.invoiceService.GetSharedInvoice(c.Request.Context(), c.Param("token"))
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			c.HTML(http.StatusNotFound, "not_found.html", gin.H{})
			return
		}
		h.logger.Error("Failed to load shared invoice", "error", err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{})
		return
	}

	view := shareInvoiceView{
		InvoiceNumber: invoice.InvoiceNumber,
		InvoiceDate:   formatShareDate(invoice.InvoiceDate),
		Status:        invoice.Status,
		Notes:         invoice.Notes,
		CompanyName:   contact.CompanyName,
		ContactPerson: contact.PersonIncharge,
		ContactEmail:  contact.Email,
		Total:         formatMoney(invoice.Total),
		Balance:       formatMoney(invoice.Summary.Balance),
	}
	if invoice.DueDate != nil {
		view.DueDate = formatShareDate(*invoice.DueDate)
	}
	for _, li := range invoice.LineItems {
		view.Lines = append(view.Lines, shareLineView{
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   formatMoney(li.UnitPrice),
			Amount:      formatMoney(balance.LineItemTotal(li)),
		})
	}

	c.HTML(http.StatusOK, "share_invoice.html", view)
}

// SharedInvoicePDF handles GET /share/invoice/:token/pdf
func (h *Handlers) SharedInvoicePDF(c *gin.Context) {
	invoice, contact, err := h.invoiceService.GetSharedInvoice(c.Request.Context(), c.Param("token"))
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			c.HTML(http.StatusNotFound, "not_found.html", gin.H{})
			return
		}
		h.logger.Error("Failed to load shared invoice for PDF", "error", err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{})
		return
	}

	pdfBytes, err := h.pdfWriter.RenderInvoice(invoice, contact)
	if err != nil {
		h.logger.Error("Failed to render invoice PDF", "invoice_id", invoice.ID, "error", err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{})
		return
	}

	filename := fmt.Sprintf("%s.pdf", invoice.InvoiceNumber)
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func formatShareDate(unix int64) string {
	return time.Unix(unix, 0).UTC().Format("January 2, 2006")
}

func formatMoney(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
