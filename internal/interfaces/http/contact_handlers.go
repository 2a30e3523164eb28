package http

import (
	"github.com/gin-gonic/gin"

	"github.com/smallbiz/backoffice/internal/application/port"
	"github.com/smallbiz/backoffice/internal/application/service"
)

// ContactListRequest represents query parameters for listing contacts
type ContactListRequest struct {
	ListRequest
	Supplier bool `form:"supplier"`
}

// CreateContact handles POST /api/contacts
func (h *Handlers) CreateContact(c *gin.Context) {
	var input service.ContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	contact, err := h.contactService.CreateContact(c.Request.Context(), input)
	if err != nil {
		h.logger.Error("Failed to create contact", "error", err)
		h.writeServiceError(c, err)
		return
	}

	created(c, contact)
}

// ListContacts handles GET /api/contacts
func (h *Handlers) ListContacts(c *gin.Context) {
	var req ContactListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, "invalid query parameters")
		return
	}

	contacts, err := h.contactService.ListContacts(c.Request.Context(), port.ContactListQuery{
		ListQuery: port.ListQuery{
			Search:          req.Search,
			IncludeArchived: req.IncludeArchived,
			Limit:           req.Limit,
			Offset:          req.Offset,
		},
		SupplierOnly: req.Supplier,
	})
	if err != nil {
		h.logger.Error("Failed to list contacts", "error", err)
		h.writeServiceError(c, err)
		return
	}

	ok(c, contacts)
}

// GetContact handles GET /api/contacts/:id
func (h *Handlers) GetContact(c *gin.Context) {
	contact, err := h.contactService.GetContact(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	ok(c, contact)
}

// UpdateContact handles PUT /api/contacts/:id
func (h *Handlers) UpdateContact(c *gin.Context) {
	var input service.ContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	contact, err := h.contactService.UpdateContact(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		h.logger.Error("Failed to update contact", "id", c.Param("id"), "error", err)
		h.writeServiceError(c, err)
		return
	}

	ok(c, contact)
}

// AddAddress handles POST /api/contacts/:id/addresses
func (h *Handlers) AddAddress(c *gin.Context) {
	var input service.AddressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	address, err := h.contactService.AddAddress(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		h.logger.Error("Failed to add address", "contact_id", c.Param("id"), "error", err)
		h.writeServiceError(c, err)
		return
	}

	created(c, address)
}

// UpdateAddress handles PUT /api/contacts/:id/addresses/:addressId
func (h *Handlers) UpdateAddress(c *gin.Context) {
	var input service.AddressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	address, err := h.contactService.UpdateAddress(
		c.Request.Context(), c.Param("id"), c.Param("addressId"), input)
	if err != nil {
		h.logger.Error("Failed to update address",
			"contact_id", c.Param("id"), "address_id", c.Param("addressId"), "error", err)
		h.writeServiceError(c, err)
		return
	}

	ok(c, address)
}

// DeleteAddress handles DELETE /api/contacts/:id/addresses/:addressId
func (h *Handlers) DeleteAddress(c *gin.Context) {
	err := h.contactService.DeleteAddress(c.Request.Context(), c.Param("id"), c.Param("addressId"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	ok(c, gin.H{"id": c.Param("addressId"), "deleted": true})
}
