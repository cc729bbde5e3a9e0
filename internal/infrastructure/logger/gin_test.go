package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newLoggedRouter(t *testing.T, skipPaths ...string) (*gin.Engine, *observer.ObservedLogs) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.DebugLevel)
	log := zap.New(core)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if id := c.GetHeader("X-Request-ID"); id != "" {
			c.Set("request_id", id)
		}
		c.Next()
	})
	router.Use(Recovery(log))
	router.Use(GinMiddleware(log, skipPaths...))
	return router, recorded
}

func accessLog(t *testing.T, recorded *observer.ObservedLogs) observer.LoggedEntry {
	t.Helper()
	entries := recorded.FilterMessage("HTTP Request").All()
	require.Len(t, entries, 1)
	return entries[0]
}

func TestGinMiddleware_LevelByStatus(t *testing.T) {
	tests := []struct {
		status int
		level  zapcore.Level
	}{
		{http.StatusOK, zapcore.InfoLevel},
		{http.StatusConflict, zapcore.WarnLevel},
		{http.StatusInternalServerError, zapcore.ErrorLevel},
	}

	for _, tc := range tests {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			router, recorded := newLoggedRouter(t)
			router.GET("/api/v1/customers", func(c *gin.Context) {
				c.Status(tc.status)
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/customers?page=2", nil))

			assert.Equal(t, tc.status, w.Code)
			entry := accessLog(t, recorded)
			assert.Equal(t, tc.level, entry.Level)
			fields := entry.ContextMap()
			assert.Equal(t, int64(tc.status), fields["status"])
			assert.Equal(t, "page=2", fields["query"])
			assert.Equal(t, "/api/v1/customers", fields["route"])
		})
	}
}

func TestGinMiddleware_ContextFields(t *testing.T) {
	router, recorded := newLoggedRouter(t)

	var handlerShopID, handlerRequestID string
	router.GET("/api/v1/shops/:id/customers", func(c *gin.Context) {
		handlerShopID = GetShopID(c.Request.Context())
		handlerRequestID = GetRequestID(c.Request.Context())
		L(c.Request.Context()).Info("listing")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shops/S1/customers", nil)
	req.Header.Set("X-Request-ID", "req-7")
	router.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "S1", handlerShopID)
	assert.Equal(t, "req-7", handlerRequestID)

	fields := accessLog(t, recorded).ContextMap()
	assert.Equal(t, "req-7", fields["request_id"])
	assert.Equal(t, "S1", fields["shop_id"])

	handlerEntries := recorded.FilterMessage("listing").All()
	require.Len(t, handlerEntries, 1)
	assert.Equal(t, "S1", handlerEntries[0].ContextMap()["shop_id"])
}

func TestGinMiddleware_ShopIDFromQuery(t *testing.T) {
	router, recorded := newLoggedRouter(t)
	router.GET("/api/v1/customers", func(c *gin.Context) { c.Status(http.StatusOK) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/customers?shop_id=S2", nil))

	assert.Equal(t, "S2", accessLog(t, recorded).ContextMap()["shop_id"])
}

func TestGinMiddleware_SkipPaths(t *testing.T) {
	router, recorded := newLoggedRouter(t, "/health")
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Zero(t, recorded.FilterMessage("HTTP Request").Len())
}

func TestRecovery(t *testing.T) {
	router, recorded := newLoggedRouter(t)
	router.GET("/boom", func(c *gin.Context) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set("X-Request-ID", "req-9")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"error":{"code":"ERR_INTERNAL","message":"An internal error occurred"}}`, w.Body.String())

	panics := recorded.FilterMessage("Panic recovered").All()
	require.Len(t, panics, 1)
	assert.Equal(t, "req-9", panics[0].ContextMap()["request_id"])
}

func TestGetGinLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.NotNil(t, GetGinLogger(c))

	log := zap.NewExample()
	c.Set("logger", log)
	assert.Same(t, log, GetGinLogger(c))
}
