package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/shopcrm/backend/internal/application/catalog"
)

// CatalogHandler handles category, item and SKU endpoints
type CatalogHandler struct {
	BaseHandler
	catalogService *catalogapp.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *catalogapp.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// CreateCategory godoc
// @Summary      Create a category for a shop
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id      path string true "Shop ID"
// @Param        request body catalogapp.CreateCategoryRequest true "Category creation request"
// @Success      201 {object} dto.Response
// @Router       /shops/{id}/categories [post]
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req catalogapp.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	category, err := h.catalogService.CreateCategory(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, category)
}

// ListCategories godoc
// @Summary      List the categories of a shop
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Shop ID"
// @Success      200 {object} dto.Response
// @Router       /shops/{id}/categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, categories)
}

// DeleteCategory godoc
// @Summary      Delete a category
// @Tags         catalog
// @Param        id path string true "Category ID"
// @Success      204
// @Router       /categories/{id} [delete]
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	if err := h.catalogService.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateItem godoc
// @Summary      Create an item for a shop
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id      path string true "Shop ID"
// @Param        request body catalogapp.CreateItemRequest true "Item creation request"
// @Success      201 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /shops/{id}/items [post]
func (h *CatalogHandler) CreateItem(c *gin.Context) {
	var req catalogapp.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	item, err := h.catalogService.CreateItem(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, item)
}

// ListItems godoc
// @Summary      List the items of a shop
// @Tags         catalog
// @Produce      json
// @Param        id          path  string true  "Shop ID"
// @Param        category_id query string false "Category ID"
// @Success      200 {object} dto.Response
// @Router       /shops/{id}/items [get]
func (h *CatalogHandler) ListItems(c *gin.Context) {
	var filter catalogapp.ItemListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	items, err := h.catalogService.ListItems(c.Request.Context(), c.Param("id"), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, items)
}

// GetItem godoc
// @Summary      Get an item with its SKUs
// @Tags         catalog
// @Produce      json
// @Param        id path int true "Item ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /items/{id} [get]
func (h *CatalogHandler) GetItem(c *gin.Context) {
	id, ok := h.parseInt64Param(c, "id")
	if !ok {
		return
	}

	item, err := h.catalogService.GetItem(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// AddSku godoc
// @Summary      Add a SKU to an item
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id      path int true "Item ID"
// @Param        request body catalogapp.AddSkuRequest true "SKU"
// @Success      201 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Router       /items/{id}/skus [post]
func (h *CatalogHandler) AddSku(c *gin.Context) {
	id, ok := h.parseInt64Param(c, "id")
	if !ok {
		return
	}

	var req catalogapp.AddSkuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	sku, err := h.catalogService.AddSku(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, sku)
}
