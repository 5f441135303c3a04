package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimiterAllowsBurst(t *testing.T) {
	rl := NewRateLimiter(5, 1*time.Minute)
	for i := 0; i < 5; i++ {
		if !rl.allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
}

func TestRateLimiterBlocksOverLimit(t *testing.T) {
	rl := NewRateLimiter(2, 1*time.Minute)
	rl.allow("10.0.0.1")
	rl.allow("10.0.0.1")
	if rl.allow("10.0.0.1") {
		t.Fatal("third request should be rate limited")
	}
}

func TestRateLimiterTokenRefill(t *testing.T) {
	// Short window so the bucket refills within the test
	rl := NewRateLimiter(1, 50*time.Millisecond)
	rl.allow("10.0.0.1")
	if rl.allow("10.0.0.1") {
		t.Fatal("should be rate limited immediately after the burst")
	}
	time.Sleep(60 * time.Millisecond)
	if !rl.allow("10.0.0.1") {
		t.Fatal("token should have refilled")
	}
}

func TestRateLimiterBucketsPerIP(t *testing.T) {
	rl := NewRateLimiter(1, 1*time.Minute)
	rl.allow("10.0.0.1")
	if !rl.allow("10.0.0.2") {
		t.Fatal("a different IP should have its own bucket")
	}
}

func TestRateLimiterMiddlewareReturns429(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter(1, 1*time.Minute)

	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	w1 := httptest.NewRecorder()
	r.ServeHTTP(w1, httptest.NewRequest("GET", "/ping", nil))
	if w1.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w1.Code)
	}

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest("GET", "/ping", nil))
	if w2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w2.Code)
	}
}
