package http

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/smallbiz/backoffice/internal/application/port"
	"github.com/smallbiz/backoffice/internal/application/service"
)

// InvoiceListRequest represents query parameters for listing invoices
type InvoiceListRequest struct {
	ListRequest
	ContactID string `form:"contact_id"`
}

// CreateInvoice handles POST /api/invoices
func (h *Handlers) CreateInvoice(c *gin.Context) {
	var input service.InvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), input)
	if err != nil {
		h.logger.Error("Failed to create invoice", "contact_id", input.ContactID, "error", err)
		h.writeServiceError(c, err)
		return
	}

	created(c, invoice)
}

// ListInvoices handles GET /api/invoices
func (h *Handlers) ListInvoices(c *gin.Context) {
	var req InvoiceListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, "invalid query parameters")
		return
	}

	invoices, err := h.invoiceService.ListInvoices(c.Request.Context(), port.InvoiceListQuery{
		ListQuery: port.ListQuery{
			Search:          req.Search,
			IncludeArchived: req.IncludeArchived,
			Limit:           req.Limit,
			Offset:          req.Offset,
		},
		ContactID: req.ContactID,
	})
	if err != nil {
		h.logger.Error("Failed to list invoices", "error", err)
		h.writeServiceError(c, err)
		return
	}

	ok(c, invoices)
}

// GetInvoice handles GET /api/invoices/:id
func (h *Handlers) GetInvoice(c *gin.Context) {
	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	ok(c, invoice)
}

// UpdateInvoice handles PUT /api/invoices/:id
func (h *Handlers) UpdateInvoice(c *gin.Context) {
	var input service.InvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		h.logger.Error("Failed to update invoice", "id", c.Param("id"), "error", err)
		h.writeServiceError(c, err)
		return
	}

	ok(c, invoice)
}

// ExportInvoices handles GET /api/invoices/export. Filters match the list
// endpoint; the response is an xlsx attachment.
func (h *Handlers) ExportInvoices(c *gin.Context) {
	var req InvoiceListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, "invalid query parameters")
		return
	}

	invoices, err := h.invoiceService.ListInvoices(c.Request.Context(), port.InvoiceListQuery{
		ListQuery: port.ListQuery{
			Search:          req.Search,
			IncludeArchived: req.IncludeArchived,
			Limit:           req.Limit,
			Offset:          req.Offset,
		},
		ContactID: req.ContactID,
	})
	if err != nil {
		h.logger.Error("Failed to list invoices for export", "error", err)
		h.writeServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("invoices-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := h.excelWriter.WriteInvoiceList(invoices, c.Writer); err != nil {
		// Headers may already be out; log and abort the stream.
		h.logger.Error("Failed to stream invoice export", "error", err)
		c.Abort()
	}
}
