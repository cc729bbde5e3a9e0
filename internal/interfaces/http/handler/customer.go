package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	customerapp "github.com/shopcrm/backend/internal/application/customer"
)

// CustomerHandler handles customer-related API endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *customerapp.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *customerapp.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// Create godoc
// @Summary      Create a new customer
// @Description  Registers a platform identity for a shop and channel
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        request body customerapp.CreateCustomerRequest true "Customer creation request"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Router       /customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var req customerapp.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	view, err := h.customerService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, view)
}

// List godoc
// @Summary      List customers
// @Description  Paginated listing filtered by platform, shop, channel and name
// @Tags         customers
// @Produce      json
// @Param        platform   query string false "Platform"
// @Param        shop_id    query string false "Shop ID"
// @Param        channel_id query int    false "Channel ID"
// @Param        name       query string false "Name substring"
// @Param        page       query int    false "Page number" default(1)
// @Param        limit      query int    false "Page size" default(10) maximum(100)
// @Success      200 {object} dto.Response
// @Router       /customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	var filter customerapp.CustomerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	page, err := h.customerService.FindAll(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByID godoc
// @Summary      Get customer by ID
// @Tags         customers
// @Produce      json
// @Param        id path int true "Customer ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /customers/{id} [get]
func (h *CustomerHandler) GetByID(c *gin.Context) {
	id, ok := h.parseInt64Param(c, "id")
	if !ok {
		return
	}

	view, err := h.customerService.FindOne(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, view)
}

// Update godoc
// @Summary      Partially update a customer
// @Description  Only the fields present in the body are applied
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id      path int true "Customer ID"
// @Param        request body customerapp.UpdateCustomerRequest true "Fields to change"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Router       /customers/{id} [patch]
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := h.parseInt64Param(c, "id")
	if !ok {
		return
	}

	var req customerapp.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	view, err := h.customerService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, view)
}

// Delete godoc
// @Summary      Delete a customer
// @Tags         customers
// @Param        id path int true "Customer ID"
// @Success      204
// @Failure      404 {object} dto.Response
// @Router       /customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := h.parseInt64Param(c, "id")
	if !ok {
		return
	}

	if err := h.customerService.Remove(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// GetByExternalID godoc
// @Summary      Get customer by platform identity
// @Tags         customers
// @Produce      json
// @Param        platform   path string true "Platform"
// @Param        externalId path string true "External ID on the platform"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /customers/external/{platform}/{externalId} [get]
func (h *CustomerHandler) GetByExternalID(c *gin.Context) {
	view, err := h.customerService.FindByExternalID(c.Request.Context(), c.Param("platform"), c.Param("externalId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, view)
}

// ListByPlatform godoc
// @Summary      List customers of a platform
// @Tags         customers
// @Produce      json
// @Param        platform path string true "Platform"
// @Success      200 {object} dto.Response
// @Router       /customers/platform/{platform} [get]
func (h *CustomerHandler) ListByPlatform(c *gin.Context) {
	views, err := h.customerService.FindByPlatform(c.Request.Context(), c.Param("platform"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, views)
}

// Search godoc
// @Summary      Search customers by name
// @Tags         customers
// @Produce      json
// @Param        q query string true "Name substring, case-insensitive"
// @Success      200 {object} dto.Response
// @Router       /customers/search [get]
func (h *CustomerHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		h.BadRequest(c, "Query parameter q is required")
		return
	}

	views, err := h.customerService.SearchByName(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, views)
}

// ListByShop godoc
// @Summary      List customers of a shop
// @Tags         customers
// @Produce      json
// @Param        id path string true "Shop ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /shops/{id}/customers [get]
func (h *CustomerHandler) ListByShop(c *gin.Context) {
	views, err := h.customerService.FindByShopID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, views)
}

// ListByChannel godoc
// @Summary      List customers of a channel
// @Tags         customers
// @Produce      json
// @Param        id path int true "Channel ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /channels/{id}/customers [get]
func (h *CustomerHandler) ListByChannel(c *gin.Context) {
	id, ok := h.parseInt64Param(c, "id")
	if !ok {
		return
	}

	views, err := h.customerService.FindByChannelID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, views)
}
