package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/smallbiz/backoffice/internal/application/port"
	"github.com/smallbiz/backoffice/internal/application/service"
	"github.com/smallbiz/backoffice/internal/domain/entity"
	"github.com/smallbiz/backoffice/internal/export"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	contactService service.ContactService
	itemService    service.ItemService
	invoiceService service.InvoiceService
	paymentService service.PaymentService
	archiveService service.ArchiveService
	excelWriter    *export.ExcelWriter
	pdfWriter      *export.PDFWriter
	logger         Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	contactService service.ContactService,
	itemService service.ItemService,
	invoiceService service.InvoiceService,
	paymentService service.PaymentService,
	archiveService service.ArchiveService,
	excelWriter *export.ExcelWriter,
	pdfWriter *export.PDFWriter,
	logger Logger,
) *Handlers {
	return &Handlers{
		contactService: contactService,
		itemService:    itemService,
		invoiceService: invoiceService,
		paymentService: paymentService,
		archiveService: archiveService,
		excelWriter:    excelWriter,
		pdfWriter:      pdfWriter,
		logger:         logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// ListRequest represents shared query parameters for list endpoints
type ListRequest struct {
	Search          string `form:"search"`
	IncludeArchived bool   `form:"include_archived"`
	Limit           int    `form:"limit"`
	Offset          int    `form:"offset"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   "1.0.0",
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    response,
	})
}

// writeServiceError maps service and repository errors onto HTTP statuses.
// Validation problems carry their reason to the client; everything
// unexpected stays a generic 500.
func (h *Handlers) writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
	case errors.Is(err, entity.ErrNotFound):
		c.JSON(http.StatusNotFound, Response{Success: false, Error: "not found"})
	case errors.Is(err, entity.ErrNotArchived):
		c.JSON(http.StatusConflict, Response{Success: false, Error: "record must be archived before permanent deletion"})
	case errors.Is(err, entity.ErrDuplicateCompanyName):
		c.JSON(http.StatusConflict, Response{Success: false, Error: "company name already exists"})
	default:
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "internal error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Response{Success: false, Error: msg})
}

func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

func created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Success: true, Data: data})
}

// archive, restore and permanent delete share one shape per entity kind

func (h *Handlers) archive(c *gin.Context, e port.ArchiveEntity) {
	if err := h.archiveService.Archive(c.Request.Context(), e, c.Param("id")); err != nil {
		h.logger.Error("Archive failed", "id", c.Param("id"), "error", err)
		h.writeServiceError(c, err)
		return
	}
	ok(c, gin.H{"id": c.Param("id"), "archived": true})
}

func (h *Handlers) restore(c *gin.Context, e port.ArchiveEntity) {
	if err := h.archiveService.Restore(c.Request.Context(), e, c.Param("id")); err != nil {
		h.logger.Error("Restore failed", "id", c.Param("id"), "error", err)
		h.writeServiceError(c, err)
		return
	}
	ok(c, gin.H{"id": c.Param("id"), "archived": false})
}

func (h *Handlers) permanentDelete(c *gin.Context, e port.ArchiveEntity) {
	if c.Query("confirm") != "true" {
		badRequest(c, "permanent deletion requires confirm=true")
		return
	}
	if err := h.archiveService.PermanentDelete(c.Request.Context(), e, c.Param("id")); err != nil {
		h.logger.Error("Permanent delete failed", "id", c.Param("id"), "error", err)
		h.writeServiceError(c, err)
		return
	}
	ok(c, gin.H{"id": c.Param("id"), "deleted": true})
}

func (h *Handlers) ArchiveContact(c *gin.Context) { h.archive(c, port.ArchiveContact) }
func (h *Handlers) RestoreContact(c *gin.Context) { h.restore(c, port.ArchiveContact) }
func (h *Handlers) DeleteContact(c *gin.Context)  { h.permanentDelete(c, port.ArchiveContact) }

func (h *Handlers) ArchiveItem(c *gin.Context) { h.archive(c, port.ArchiveItem) }
func (h *Handlers) RestoreItem(c *gin.Context) { h.restore(c, port.ArchiveItem) }
func (h *Handlers) DeleteItem(c *gin.Context)  { h.permanentDelete(c, port.ArchiveItem) }

func (h *Handlers) ArchiveInvoice(c *gin.Context) { h.archive(c, port.ArchiveInvoice) }
func (h *Handlers) RestoreInvoice(c *gin.Context) { h.restore(c, port.ArchiveInvoice) }
func (h *Handlers) DeleteInvoice(c *gin.Context)  { h.permanentDelete(c, port.ArchiveInvoice) }

func (h *Handlers) ArchivePayment(c *gin.Context) { h.archive(c, port.ArchivePayment) }
func (h *Handlers) RestorePayment(c *gin.Context) { h.restore(c, port.ArchivePayment) }
func (h *Handlers) DeletePayment(c *gin.Context)  { h.permanentDelete(c, port.ArchivePayment) }
