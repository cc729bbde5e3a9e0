package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopcrm/backend/internal/infrastructure/logger"
	"github.com/shopcrm/backend/internal/infrastructure/telemetry"
	"github.com/shopcrm/backend/internal/interfaces/http/dto"
	"github.com/shopcrm/backend/internal/interfaces/http/handler"
	"github.com/shopcrm/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers groups the HTTP handlers served under /api/v1
type Handlers struct {
	Customer *handler.CustomerHandler
	Shop     *handler.ShopHandler
	Catalog  *handler.CatalogHandler
	Health   *handler.HealthHandler
}

// EngineConfig holds the settings of the gin engine
type EngineConfig struct {
	Logger         *zap.Logger
	HTTPMetrics    *telemetry.HTTPMetrics
	MetricsHandler http.Handler // nil leaves the metrics path unrouted
	MetricsPath    string
	MaxBodySize    int64
	TrustedProxies []string
}

// NewEngine builds the gin engine with the middleware chain, the health and
// metrics endpoints and every API route.
func NewEngine(cfg EngineConfig, h Handlers) (*gin.Engine, error) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = "/metrics"
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}
	engine.HandleMethodNotAllowed = true

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(cfg.Logger, "/health", cfg.MetricsPath),
		middleware.Metrics(cfg.HTTPMetrics, cfg.MetricsPath),
		// inside the access log and metrics so a recovered panic is still counted as a 500
		logger.Recovery(cfg.Logger),
		middleware.Secure(),
		middleware.BodyLimit(cfg.MaxBodySize),
	)

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeNotFound, "Route not found", middleware.GetRequestID(c)))
	})
	engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeBadRequest, "Method not allowed", middleware.GetRequestID(c)))
	})

	if h.Health != nil {
		engine.GET("/health", h.Health.Health)
	}
	if cfg.MetricsHandler != nil {
		engine.GET(cfg.MetricsPath, gin.WrapH(cfg.MetricsHandler))
	}

	r := NewRouter(engine, WithAPIVersion("v1"))
	for _, group := range APIGroups(h) {
		r.Register(group)
	}
	if err := r.Setup(); err != nil {
		return nil, err
	}

	return engine, nil
}

// APIGroups returns the route groups of the versioned API
func APIGroups(h Handlers) []*DomainGroup {
	customers := NewDomainGroup("customers", "/customers").
		POST("", h.Customer.Create).
		GET("", h.Customer.List).
		GET("/search", h.Customer.Search).
		GET("/external/:platform/:externalId", h.Customer.GetByExternalID).
		GET("/platform/:platform", h.Customer.ListByPlatform).
		GET("/:id", h.Customer.GetByID).
		PATCH("/:id", h.Customer.Update).
		DELETE("/:id", h.Customer.Delete)

	shops := NewDomainGroup("shops", "/shops").
		POST("", h.Shop.CreateShop).
		GET("", h.Shop.ListShops).
		GET("/:id", h.Shop.GetShop).
		DELETE("/:id", h.Shop.DeleteShop).
		POST("/:id/channels", h.Shop.CreateChannel).
		GET("/:id/channels", h.Shop.ListChannels).
		GET("/:id/customers", h.Customer.ListByShop).
		POST("/:id/categories", h.Catalog.CreateCategory).
		GET("/:id/categories", h.Catalog.ListCategories).
		POST("/:id/items", h.Catalog.CreateItem).
		GET("/:id/items", h.Catalog.ListItems)

	channels := NewDomainGroup("channels", "/channels").
		GET("/:id", h.Shop.GetChannel).
		DELETE("/:id", h.Shop.DeleteChannel).
		GET("/:id/customers", h.Customer.ListByChannel)

	categories := NewDomainGroup("categories", "/categories").
		DELETE("/:id", h.Catalog.DeleteCategory)

	items := NewDomainGroup("items", "/items").
		GET("/:id", h.Catalog.GetItem).
		POST("/:id/skus", h.Catalog.AddSku)

	return []*DomainGroup{customers, shops, channels, categories, items}
}
