package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"vmake/config"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func requestContext(t *testing.T, remoteAddr string, headers map[string]string) *gin.Context {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.RemoteAddr = remoteAddr
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	c.Request = req
	return c
}

func TestClientIP(t *testing.T) {
	t.Run("forwarded-for takes the first hop", func(t *testing.T) {
		c := requestContext(t, "10.0.0.1:443", map[string]string{
			"X-Forwarded-For": "203.0.113.7, 10.0.0.1",
		})
		if got := clientIP(c); got != "203.0.113.7" {
			t.Fatalf("expected 203.0.113.7, got %q", got)
		}
	})

	t.Run("real-ip when no forwarded-for", func(t *testing.T) {
		c := requestContext(t, "10.0.0.1:443", map[string]string{
			"X-Real-IP": "198.51.100.4",
		})
		if got := clientIP(c); got != "198.51.100.4" {
			t.Fatalf("expected 198.51.100.4, got %q", got)
		}
	})

	t.Run("socket address without headers", func(t *testing.T) {
		c := requestContext(t, "192.0.2.1:5400", nil)
		if got := clientIP(c); got != "192.0.2.1" {
			t.Fatalf("expected 192.0.2.1, got %q", got)
		}
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	config.AppConfig.MaxRequestsPerMin = 2

	r := gin.New()
	r.Use(RateLimitMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func() int {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "198.51.100.9:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	for i := 0; i < 2; i++ {
		if code := send(); code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, code)
		}
	}
	if code := send(); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 once the bucket is drained, got %d", code)
	}
}
