package middleware

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/devlink/internal/helpers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRequestIDPropagatesOrGenerates(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		id, _ := c.Get("request_id")
		c.String(http.StatusOK, "%v", id)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Body.String())
	assert.Equal(t, "abc", w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Body.String(), 36)
}

func TestErrorHandlerRendersInternalError(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), ErrorHandler(quietLogger()))
	r.GET("/", func(c *gin.Context) {
		_ = c.Error(errors.New("mongo exploded"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
	assert.NotContains(t, w.Body.String(), "mongo exploded")
}

func TestAuthMiddleware(t *testing.T) {
	tokens := helpers.NewTokenManager("secret")
	valid, err := tokens.Issue("64b7f0c2a1b2c3d4e5f60718", "Ann", "//avatar")
	require.NoError(t, err)

	expired, err := helpers.NewTokenManager("secret").
		WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) }).
		Issue("64b7f0c2a1b2c3d4e5f60718", "Ann", "//avatar")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/private", AuthMiddleware(tokens, quietLogger()), func(c *gin.Context) {
		claims, ok := CurrentUser(c)
		require.True(t, ok)
		c.String(http.StatusOK, claims.Name)
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "valid token", header: "Bearer " + valid, status: http.StatusOK},
		{name: "missing header", header: "", status: http.StatusUnauthorized},
		{name: "no bearer prefix", header: valid, status: http.StatusUnauthorized},
		{name: "garbage", header: "Bearer not.a.jwt", status: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + expired, status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "Ann", w.Body.String())
			}
		})
	}
}

func TestRateLimiterBlocksAfterLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	rl := NewRateLimiter(rdb, RateLimitConfig{Window: time.Minute, Limit: 2, KeyPrefix: "rl:login"}, quietLogger())
	r := gin.New()
	r.POST("/login", rl.Middleware(ByClientIP), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiterFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	mr.Close()

	rl := NewRateLimiter(rdb, RateLimitConfig{Window: time.Minute, Limit: 1, KeyPrefix: "rl"}, quietLogger())
	r := gin.New()
	r.GET("/", rl.Middleware(ByClientIP), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimiterDisabledWithoutRedis(t *testing.T) {
	rl := NewRateLimiter(nil, RateLimitConfig{Window: time.Minute, Limit: 0, KeyPrefix: "rl"}, quietLogger())
	r := gin.New()
	r.GET("/", rl.Middleware(ByUser), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsCountsMatchedRoute(t *testing.T) {
	r := gin.New()
	r.Use(Metrics())
	r.GET("/api/posts/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/posts/123", nil))
	require.Equal(t, http.StatusOK, w.Code)

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	var got float64
	for _, mf := range families {
		if mf.GetName() != "devlink_http_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["route"] == "/api/posts/:id" && labels["status"] == "200" {
				got = m.GetCounter().GetValue()
			}
		}
	}
	assert.GreaterOrEqual(t, got, float64(1))
}
