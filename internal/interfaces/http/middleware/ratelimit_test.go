package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	limiter := NewRateLimiter(3, time.Minute)

	assert.True(t, limiter.Allow("client-a"))
	assert.True(t, limiter.Allow("client-a"))
	assert.True(t, limiter.Allow("client-a"))
	assert.False(t, limiter.Allow("client-a"))

	// Other keys are independent
	assert.True(t, limiter.Allow("client-b"))
}

func TestRateLimiter_WindowReset(t *testing.T) {
	limiter := NewRateLimiter(1, 20*time.Millisecond)

	assert.True(t, limiter.Allow("client"))
	assert.False(t, limiter.Allow("client"))

	time.Sleep(30 * time.Millisecond)

	assert.True(t, limiter.Allow("client"))
}

func TestRateLimiter_Remaining(t *testing.T) {
	limiter := NewRateLimiter(5, time.Minute)

	assert.Equal(t, 5, limiter.Remaining("client"))

	limiter.Allow("client")
	assert.Equal(t, 4, limiter.Remaining("client"))

	limiter.Allow("client")
	limiter.Allow("client")
	assert.Equal(t, 2, limiter.Remaining("client"))
}

func TestRateLimit(t *testing.T) {
	limiter := NewRateLimiter(2, time.Minute)

	router := gin.New()
	router.Use(RateLimit(limiter))
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "RATE_LIMIT_EXCEEDED")
}

func TestRateLimitByKey(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)

	router := gin.New()
	router.POST("/login", RateLimitByKey(limiter, func(c *gin.Context) string {
		return c.GetHeader("X-Test-User")
	}), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	send := func(user string) int {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.Header.Set("X-Test-User", user)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("alice"))
	assert.Equal(t, http.StatusTooManyRequests, send("alice"))
	// A different key still has budget
	assert.Equal(t, http.StatusOK, send("bob"))
}
