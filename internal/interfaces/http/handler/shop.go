package handler

import (
	"github.com/gin-gonic/gin"
	shopapp "github.com/shopcrm/backend/internal/application/shop"
)

// ShopHandler handles shop and channel API endpoints
type ShopHandler struct {
	BaseHandler
	shopService    *shopapp.ShopService
	channelService *shopapp.ChannelService
}

// NewShopHandler creates a new ShopHandler
func NewShopHandler(shopService *shopapp.ShopService, channelService *shopapp.ChannelService) *ShopHandler {
	return &ShopHandler{
		shopService:    shopService,
		channelService: channelService,
	}
}

// CreateShop godoc
// @Summary      Create a shop
// @Tags         shops
// @Accept       json
// @Produce      json
// @Param        request body shopapp.CreateShopRequest true "Shop creation request"
// @Success      201 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Router       /shops [post]
func (h *ShopHandler) CreateShop(c *gin.Context) {
	var req shopapp.CreateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	shop, err := h.shopService.CreateShop(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, shop)
}

// ListShops godoc
// @Summary      List shops
// @Tags         shops
// @Produce      json
// @Param        search query string false "Name substring"
// @Param        status query string false "active or inactive"
// @Param        page   query int    false "Page number" default(1)
// @Param        limit  query int    false "Page size" default(10)
// @Success      200 {object} dto.Response
// @Router       /shops [get]
func (h *ShopHandler) ListShops(c *gin.Context) {
	var filter shopapp.ShopListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	page, err := h.shopService.ListShops(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetShop godoc
// @Summary      Get a shop
// @Tags         shops
// @Produce      json
// @Param        id path string true "Shop ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /shops/{id} [get]
func (h *ShopHandler) GetShop(c *gin.Context) {
	shop, err := h.shopService.GetShop(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, shop)
}

// DeleteShop godoc
// @Summary      Soft delete a shop
// @Tags         shops
// @Param        id path string true "Shop ID"
// @Success      204
// @Failure      404 {object} dto.Response
// @Router       /shops/{id} [delete]
func (h *ShopHandler) DeleteShop(c *gin.Context) {
	if err := h.shopService.DeleteShop(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateChannel godoc
// @Summary      Open a channel for a shop
// @Tags         channels
// @Accept       json
// @Produce      json
// @Param        id      path string true "Shop ID"
// @Param        request body shopapp.CreateChannelRequest true "Channel creation request"
// @Success      201 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /shops/{id}/channels [post]
func (h *ShopHandler) CreateChannel(c *gin.Context) {
	var req shopapp.CreateChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	channel, err := h.channelService.CreateChannel(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, channel)
}

// ListChannels godoc
// @Summary      List the channels of a shop
// @Tags         channels
// @Produce      json
// @Param        id path string true "Shop ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /shops/{id}/channels [get]
func (h *ShopHandler) ListChannels(c *gin.Context) {
	channels, err := h.channelService.ListChannels(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, channels)
}

// GetChannel godoc
// @Summary      Get a channel
// @Tags         channels
// @Produce      json
// @Param        id path int true "Channel ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /channels/{id} [get]
func (h *ShopHandler) GetChannel(c *gin.Context) {
	id, ok := h.parseInt64Param(c, "id")
	if !ok {
		return
	}

	channel, err := h.channelService.GetChannel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, channel)
}

// DeleteChannel godoc
// @Summary      Delete a channel
// @Description  Fails with 409 while customers still reference the channel
// @Tags         channels
// @Param        id path int true "Channel ID"
// @Success      204
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Router       /channels/{id} [delete]
func (h *ShopHandler) DeleteChannel(c *gin.Context) {
	id, ok := h.parseInt64Param(c, "id")
	if !ok {
		return
	}

	if err := h.channelService.DeleteChannel(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
