package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/shopcrm/backend/internal/application/catalog"
	customerapp "github.com/shopcrm/backend/internal/application/customer"
	shopapp "github.com/shopcrm/backend/internal/application/shop"
	"github.com/shopcrm/backend/internal/domain/customer"
	"github.com/shopcrm/backend/internal/domain/shared"
	"github.com/shopcrm/backend/internal/infrastructure/persistence"
	"github.com/shopcrm/backend/internal/infrastructure/persistence/models"
	"github.com/shopcrm/backend/internal/interfaces/http/dto"
	"github.com/shopcrm/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// testEnv wires the real services over an in-memory SQLite database
type testEnv struct {
	db       *gorm.DB
	customer *CustomerHandler
	shop     *ShopHandler
	catalog  *CatalogHandler
	engine   *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), persistence.GormConfig(logger.Default.LogMode(logger.Silent)))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.ShopModel{},
		&models.ChannelModel{},
		&models.CustomerModel{},
		&models.CategoryModel{},
		&models.ItemModel{},
		&models.SkuModel{},
	))

	shopRepo := persistence.NewGormShopRepository(db)
	channelRepo := persistence.NewGormChannelRepository(db)

	customerService := customerapp.NewCustomerService(
		persistence.NewGormCustomerRepository(db),
		shopapp.NewShopDirectory(shopRepo, nil),
		shopapp.NewChannelDirectory(channelRepo, nil),
	)

	env := &testEnv{
		db:       db,
		customer: NewCustomerHandler(customerService),
		shop: NewShopHandler(
			shopapp.NewShopService(shopRepo, nil, nil),
			shopapp.NewChannelService(channelRepo, shopRepo, nil, nil),
		),
		catalog: NewCatalogHandler(catalogapp.NewCatalogService(
			persistence.NewGormCategoryRepository(db),
			persistence.NewGormItemRepository(db),
			shopRepo,
			nil,
		)),
	}

	engine := gin.New()
	engine.Use(middleware.RequestID())
	api := engine.Group("/api/v1")

	api.POST("/customers", env.customer.Create)
	api.GET("/customers", env.customer.List)
	api.GET("/customers/search", env.customer.Search)
	api.GET("/customers/external/:platform/:externalId", env.customer.GetByExternalID)
	api.GET("/customers/platform/:platform", env.customer.ListByPlatform)
	api.GET("/customers/:id", env.customer.GetByID)
	api.PATCH("/customers/:id", env.customer.Update)
	api.DELETE("/customers/:id", env.customer.Delete)

	api.POST("/shops", env.shop.CreateShop)
	api.GET("/shops", env.shop.ListShops)
	api.GET("/shops/:id", env.shop.GetShop)
	api.DELETE("/shops/:id", env.shop.DeleteShop)
	api.POST("/shops/:id/channels", env.shop.CreateChannel)
	api.GET("/shops/:id/channels", env.shop.ListChannels)
	api.GET("/shops/:id/customers", env.customer.ListByShop)
	api.GET("/channels/:id", env.shop.GetChannel)
	api.DELETE("/channels/:id", env.shop.DeleteChannel)
	api.GET("/channels/:id/customers", env.customer.ListByChannel)

	api.POST("/shops/:id/categories", env.catalog.CreateCategory)
	api.GET("/shops/:id/categories", env.catalog.ListCategories)
	api.DELETE("/categories/:id", env.catalog.DeleteCategory)
	api.POST("/shops/:id/items", env.catalog.CreateItem)
	api.GET("/shops/:id/items", env.catalog.ListItems)
	api.GET("/items/:id", env.catalog.GetItem)
	api.POST("/items/:id/skus", env.catalog.AddSku)

	env.engine = engine
	return env
}

// do sends a request with an optional JSON body
func (e *testEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

// seedShop creates a shop with one channel through the API
func (e *testEnv) seedShop(t *testing.T, shopID, name, channelName string) int64 {
	t.Helper()

	w := e.do(http.MethodPost, "/api/v1/shops", map[string]string{"id": shopID, "name": name})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = e.do(http.MethodPost, "/api/v1/shops/"+shopID+"/channels", map[string]string{"name": channelName, "platform": "zalo"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	channel := decodeData[shopapp.ChannelResponse](t, w)
	return channel.ID
}

// envelope mirrors dto.Response with a typed data field
type envelope[T any] struct {
	Success bool           `json:"success"`
	Data    T              `json:"data"`
	Error   *dto.ErrorInfo `json:"error"`
	Meta    *dto.Meta      `json:"meta"`
}

func decodeEnvelope[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var resp envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func decodeData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	return decodeEnvelope[T](t, w).Data
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) *dto.ErrorInfo {
	t.Helper()
	resp := decodeEnvelope[json.RawMessage](t, w)
	require.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	return resp.Error
}

func TestGetRequestID(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(*gin.Context)
		expectedID string
	}{
		{
			name: "from context",
			setup: func(c *gin.Context) {
				c.Set(middleware.RequestIDKey, "ctx-request-id")
			},
			expectedID: "ctx-request-id",
		},
		{
			name: "from header when context empty",
			setup: func(c *gin.Context) {
				c.Request.Header.Set(middleware.RequestIDHeader, "header-request-id")
			},
			expectedID: "header-request-id",
		},
		{
			name:       "empty when not set",
			setup:      func(c *gin.Context) {},
			expectedID: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(c)

			assert.Equal(t, tt.expectedID, getRequestID(c))
		})
	}
}

func TestBaseHandler_Responses(t *testing.T) {
	h := &BaseHandler{}

	t.Run("success", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		h.Success(c, map[string]string{"k": "v"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true,"data":{"k":"v"}}`, w.Body.String())
	})

	t.Run("success with meta", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		h.SuccessWithMeta(c, []int{1, 2}, 25, 2, 10)

		resp := decodeEnvelope[[]int](t, w)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, dto.Meta{Total: 25, Page: 2, Limit: 10, TotalPages: 3}, *resp.Meta)
	})

	t.Run("created", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		h.Created(c, "x")
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("no content", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		h.NoContent(c)
		c.Writer.WriteHeaderNow()
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestBaseHandler_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "customer not found",
			err:        customer.NewNotFoundError(7),
			wantStatus: http.StatusNotFound,
			wantCode:   dto.ErrCodeNotFound,
			wantMsg:    "customer 7 not found",
		},
		{
			name:       "duplicate identity",
			err:        customer.NewDuplicateEntityError("zalo", "u1"),
			wantStatus: http.StatusConflict,
			wantCode:   dto.ErrCodeAlreadyExists,
		},
		{
			name:       "invalid reference",
			err:        customer.NewInvalidReferenceError(customer.ReferenceShop, "s9", shared.ErrNotFound),
			wantStatus: http.StatusBadRequest,
			wantCode:   dto.ErrCodeInvalidReference,
		},
		{
			name:       "entity validation code",
			err:        shared.NewDomainError("INVALID_PLATFORM", "Platform cannot be empty"),
			wantStatus: http.StatusBadRequest,
			wantCode:   dto.ErrCodeInvalidInput,
			wantMsg:    "Platform cannot be empty",
		},
		{
			name:       "channel in use",
			err:        shared.NewDomainError("CHANNEL_IN_USE", "Channel is still referenced by customers"),
			wantStatus: http.StatusConflict,
			wantCode:   dto.ErrCodeConflict,
		},
		{
			name:       "category of another shop",
			err:        shared.NewDomainError("CATEGORY_SHOP_MISMATCH", "Category belongs to another shop"),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   dto.ErrCodeBusinessRule,
		},
		{
			name:       "storage failure hides the cause",
			err:        customer.NewStorageFailureError("create", errors.New("pq: connection reset")),
			wantStatus: http.StatusInternalServerError,
			wantCode:   dto.ErrCodeStorageFailure,
			wantMsg:    "An unexpected error occurred",
		},
		{
			name:       "wrapped domain error",
			err:        fmt.Errorf("lookup: %w", shared.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantCode:   dto.ErrCodeNotFound,
		},
		{
			name:       "plain error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   dto.ErrCodeInternal,
			wantMsg:    "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Set(middleware.RequestIDKey, "req-9")

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			errInfo := decodeError(t, w)
			assert.Equal(t, tt.wantCode, errInfo.Code)
			assert.Equal(t, "req-9", errInfo.RequestID)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, errInfo.Message)
			}
			assert.NotContains(t, w.Body.String(), "pq:")
		})
	}
}

func TestBaseHandler_ParseInt64Param(t *testing.T) {
	h := &BaseHandler{}

	for _, raw := range []string{"abc", "0", "-3"} {
		t.Run(raw, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Params = gin.Params{{Key: "id", Value: raw}}

			_, ok := h.parseInt64Param(c, "id")
			assert.False(t, ok)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, dto.ErrCodeInvalidInput, decodeError(t, w).Code)
		})
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	id, ok := h.parseInt64Param(c, "id")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
}
