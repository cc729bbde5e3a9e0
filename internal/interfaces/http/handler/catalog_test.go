package handler

import (
	"fmt"
	"net/http"
	"testing"

	catalogapp "github.com/shopcrm/backend/internal/application/catalog"
	"github.com/shopcrm/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogHandler_Categories(t *testing.T) {
	env := newTestEnv(t)
	env.seedShop(t, "s1", "Shop One", "Zalo OA")

	w := env.do(http.MethodPost, "/api/v1/shops/s1/categories", map[string]any{"name": "Shoes", "type": "product"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	category := decodeData[catalogapp.CategoryResponse](t, w)
	assert.Equal(t, "s1", category.ShopID)

	categories := decodeData[[]catalogapp.CategoryResponse](t, env.do(http.MethodGet, "/api/v1/shops/s1/categories", nil))
	require.Len(t, categories, 1)

	w = env.do(http.MethodPost, "/api/v1/shops/ghost/categories", map[string]any{"name": "Hats"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.Equal(t, http.StatusNoContent, env.do(http.MethodDelete, "/api/v1/categories/"+category.ID, nil).Code)
	categories = decodeData[[]catalogapp.CategoryResponse](t, env.do(http.MethodGet, "/api/v1/shops/s1/categories", nil))
	assert.Empty(t, categories)

	assert.Equal(t, http.StatusNotFound, env.do(http.MethodDelete, "/api/v1/categories/ghost", nil).Code)
}

func TestCatalogHandler_Items(t *testing.T) {
	env := newTestEnv(t)
	env.seedShop(t, "s1", "Shop One", "Zalo OA")
	env.seedShop(t, "s2", "Shop Two", "Messenger")

	w := env.do(http.MethodPost, "/api/v1/shops/s2/categories", map[string]any{"name": "Elsewhere"})
	require.Equal(t, http.StatusCreated, w.Code)
	foreign := decodeData[catalogapp.CategoryResponse](t, w)

	w = env.do(http.MethodPost, "/api/v1/shops/s1/items", map[string]any{
		"s_id": "sku-100", "name": "Sneaker", "price": "80", "origin_price": "100",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	item := decodeData[catalogapp.ItemResponse](t, w)
	assert.True(t, decimal.NewFromInt(80).Equal(item.Price))

	t.Run("duplicate sid", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/v1/shops/s1/items", map[string]any{"s_id": "sku-100", "name": "Again"})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, dto.ErrCodeAlreadyExists, decodeError(t, w).Code)
	})

	t.Run("category of another shop", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/v1/shops/s1/items", map[string]any{
			"s_id": "sku-101", "name": "Boot", "category_id": foreign.ID,
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, dto.ErrCodeBusinessRule, decodeError(t, w).Code)
	})

	t.Run("negative price", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/v1/shops/s1/items", map[string]any{"s_id": "sku-102", "name": "Odd", "price": "-1"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidInput, decodeError(t, w).Code)
	})

	t.Run("skus", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/items/%d/skus", item.ID)
		w := env.do(http.MethodPost, path, map[string]any{"code": "sneaker-42", "price": "80", "stock": 3})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = env.do(http.MethodGet, fmt.Sprintf("/api/v1/items/%d", item.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		got := decodeData[catalogapp.ItemResponse](t, w)
		require.Len(t, got.Skus, 1)
		assert.Equal(t, "sneaker-42", got.Skus[0].Code)
		assert.Equal(t, 3, got.Skus[0].Stock)

		w = env.do(http.MethodPost, "/api/v1/items/999/skus", map[string]any{"code": "x"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("list", func(t *testing.T) {
		items := decodeData[[]catalogapp.ItemResponse](t, env.do(http.MethodGet, "/api/v1/shops/s1/items", nil))
		require.Len(t, items, 1)
		assert.Equal(t, "sku-100", items[0].SID)

		assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, "/api/v1/shops/ghost/items", nil).Code)
	})
}
