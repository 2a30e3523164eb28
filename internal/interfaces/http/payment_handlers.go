package http

import (
	"github.com/gin-gonic/gin"

	"github.com/smallbiz/backoffice/internal/application/port"
	"github.com/smallbiz/backoffice/internal/application/service"
)

// PaymentListRequest represents query parameters for listing payments
type PaymentListRequest struct {
	ListRequest
	ContactID string `form:"contact_id"`
	InvoiceID string `form:"invoice_id"`
}

// CreatePayment handles POST /api/payments
func (h *Handlers) CreatePayment(c *gin.Context) {
	var input service.PaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	payment, err := h.paymentService.CreatePayment(c.Request.Context(), input)
	if err != nil {
		h.logger.Error("Failed to create payment", "contact_id", input.ContactID, "error", err)
		h.writeServiceError(c, err)
		return
	}

	created(c, payment)
}

// ListPayments handles GET /api/payments
func (h *Handlers) ListPayments(c *gin.Context) {
	var req PaymentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, "invalid query parameters")
		return
	}

	payments, err := h.paymentService.ListPayments(c.Request.Context(), port.PaymentListQuery{
		ListQuery: port.ListQuery{
			Search:          req.Search,
			IncludeArchived: req.IncludeArchived,
			Limit:           req.Limit,
			Offset:          req.Offset,
		},
		ContactID: req.ContactID,
		InvoiceID: req.InvoiceID,
	})
	if err != nil {
		h.logger.Error("Failed to list payments", "error", err)
		h.writeServiceError(c, err)
		return
	}

	ok(c, payments)
}

// GetPayment handles GET /api/payments/:id
func (h *Handlers) GetPayment(c *gin.Context) {
	payment, err := h.paymentService.GetPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	ok(c, payment)
}

// UpdatePayment handles PUT /api/payments/:id
func (h *Handlers) UpdatePayment(c *gin.Context) {
	var input service.PaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	payment, err := h.paymentService.UpdatePayment(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		h.logger.Error("Failed to update payment", "id", c.Param("id"), "error", err)
		h.writeServiceError(c, err)
		return
	}

	ok(c, payment)
}
