package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

func serve(r *gin.Engine, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID_GeneratesAndPropagates(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	var seen string
	r.GET("/x", func(c *gin.Context) { seen = c.GetString(RequestIDKey); c.Status(http.StatusOK) })

	w := serve(r, http.MethodGet, "/x", nil)
	require.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))

	w = serve(r, http.MethodGet, "/x", http.Header{RequestIDHeader: {"abc-123"}})
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRequestID_HeaderNameIsCaseInsensitive(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	var seen string
	r.GET("/x", func(c *gin.Context) { seen = c.GetString(RequestIDKey); c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("x-request-id", "lower-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "lower-1", seen)
	assert.Equal(t, "lower-1", w.Header().Get("X-Request-Id"))
}

func TestRequestID_ReplacesOversizedID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	var seen string
	r.GET("/x", func(c *gin.Context) { seen = c.GetString(RequestIDKey); c.Status(http.StatusOK) })

	long := strings.Repeat("a", 129)
	serve(r, http.MethodGet, "/x", http.Header{RequestIDHeader: {long}})

	assert.NotEqual(t, long, seen)
	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
}

func TestErrorHandler_RendersGeneric500(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/x", func(c *gin.Context) { _ = c.Error(errors.New("pq: password authentication failed")) })

	w := serve(r, http.MethodGet, "/x", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Erro interno do servidor."}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "pq:")
}

func TestErrorHandler_KeepsWrittenResponse(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/x", func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "x"})
		_ = c.Error(errors.New("late"))
	})

	w := serve(r, http.MethodGet, "/x", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/x", func(c *gin.Context) { panic("boom") })

	w := serve(r, http.MethodGet, "/x", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Erro interno do servidor."}`, w.Body.String())
}

func TestCORS_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodOptions, "/x", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(r, http.MethodGet, "/x", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiter_RejectsPastBurst(t *testing.T) {
	r := gin.New()
	r.Use(RateLimiter(t.Context(), 0.001, 2))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/x", nil).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/x", nil).Code)

	w := serve(r, http.MethodGet, "/x", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}

func TestRateLimiter_DisabledWhenRPSZero(t *testing.T) {
	r := gin.New()
	r.Use(RateLimiter(t.Context(), 0, 1))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/x", nil).Code)
	}
}

func TestIPLimiter_PerIPAndPurge(t *testing.T) {
	l := newIPLimiter(0.001, 1)
	now := time.Now()

	assert.True(t, l.allow("10.0.0.1", now))
	assert.False(t, l.allow("10.0.0.1", now))
	assert.True(t, l.allow("10.0.0.2", now))

	assert.Equal(t, 0, l.purge(now))
	assert.Equal(t, 2, l.purge(now.Add(visitorIdle+time.Second)))
	assert.True(t, l.allow("10.0.0.1", now.Add(visitorIdle+time.Second)))
}

func TestIPLimiter_PurgeLoopStopsWithContext(t *testing.T) {
	l := newIPLimiter(1, 1)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		l.purgeLoop(ctx, time.Millisecond)
		close(done)
	}()

	l.allow("10.0.0.1", time.Now().Add(-2*visitorIdle))
	assert.Eventually(t, func() bool {
		l.mu.Lock()
		defer l.mu.Unlock()
		return len(l.visitors) == 0
	}, time.Second, 5*time.Millisecond, "idle visitor purged by the loop")

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("purgeLoop still running after cancel")
	}
}

func TestClassifyStatus(t *testing.T) {
	assert.Equal(t, "2xx", classifyStatus(200))
	assert.Equal(t, "4xx", classifyStatus(404))
	assert.Equal(t, "5xx", classifyStatus(503))
	assert.Equal(t, "unknown", classifyStatus(0))
}

func TestMetrics_ExposedByHandler(t *testing.T) {
	r := gin.New()
	r.Use(Metrics())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(MetricsHandler()))

	serve(r, http.MethodGet, "/x", nil)
	w := serve(r, http.MethodGet, "/metrics", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `http_requests_total{endpoint="/x",method="GET",status="2xx"}`)
}
