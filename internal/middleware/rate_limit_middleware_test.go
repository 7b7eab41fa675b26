package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T) (*RateLimiter, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRateLimiter(client), mr
}

func TestRateLimiter_LimitBlocksAfterMax(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter, mr := newTestLimiter(t)

	cfg := RateLimitConfig{MaxRequests: 2, Window: time.Minute, KeyPrefix: "rl:play"}
	router := gin.New()
	router.POST("/api/play/start", limiter.Limit(cfg), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	do := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/play/start", nil))
		return w
	}

	assert.Equal(t, http.StatusOK, do().Code)
	assert.Equal(t, http.StatusOK, do().Code)

	w := do()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "rate_limited")
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	// Счётчик лежит в пространстве play-лимита
	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.Contains(t, keys[0], "rl:play:")
	assert.Contains(t, keys[0], "/api/play/start")
}

func TestRateLimiter_LimitByIPIgnoresPath(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter, mr := newTestLimiter(t)

	cfg := RateLimitConfig{MaxRequests: 1, Window: time.Minute, KeyPrefix: "rl:play"}
	router := gin.New()
	group := router.Group("/api/play", limiter.LimitByIP(cfg))
	group.POST("/code", func(c *gin.Context) { c.Status(http.StatusOK) })
	group.POST("/sign", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/play/code", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// Второй запрос с того же IP упирается в общий лимит группы
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/play/sign", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.NotContains(t, keys[0], "/api/play")
}

func TestRateLimitConfigs(t *testing.T) {
	play := PlayRateLimitConfig()
	assert.Equal(t, "rl:play", play.KeyPrefix)
	assert.Equal(t, 20, play.MaxRequests)
	assert.Equal(t, time.Minute, play.Window)

	login := AdminLoginRateLimitConfig()
	assert.Equal(t, "rl:admin:login", login.KeyPrefix)
	assert.Equal(t, 5, login.MaxRequests)
	assert.Equal(t, time.Minute, login.Window)
}
