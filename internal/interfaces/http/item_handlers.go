package http

import (
	"github.com/gin-gonic/gin"

	"github.com/smallbiz/backoffice/internal/application/port"
	"github.com/smallbiz/backoffice/internal/application/service"
)

// CreateItem handles POST /api/items
func (h *Handlers) CreateItem(c *gin.Context) {
	var input service.ItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	item, err := h.itemService.CreateItem(c.Request.Context(), input)
	if err != nil {
		h.logger.Error("Failed to create item", "error", err)
		h.writeServiceError(c, err)
		return
	}

	created(c, item)
}

// ListItems handles GET /api/items
func (h *Handlers) ListItems(c *gin.Context) {
	var req ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, "invalid query parameters")
		return
	}

	items, err := h.itemService.ListItems(c.Request.Context(), port.ListQuery{
		Search:          req.Search,
		IncludeArchived: req.IncludeArchived,
		Limit:           req.Limit,
		Offset:          req.Offset,
	})
	if err != nil {
		h.logger.Error("Failed to list items", "error", err)
		h.writeServiceError(c, err)
		return
	}

	ok(c, items)
}

// GetItem handles GET /api/items/:id
func (h *Handlers) GetItem(c *gin.Context) {
	item, err := h.itemService.GetItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	ok(c, item)
}

// UpdateItem handles PUT /api/items/:id
func (h *Handlers) UpdateItem(c *gin.Context) {
	var input service.ItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	item, err := h.itemService.UpdateItem(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		h.logger.Error("Failed to update item", "id", c.Param("id"), "error", err)
		h.writeServiceError(c, err)
		return
	}

	ok(c, item)
}
