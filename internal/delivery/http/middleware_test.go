package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func TestIsAllowedOrigin(t *testing.T) {
	tests := []struct {
		name           string
		origin         string
		allowedOrigins []string
		want           bool
	}{
		{
			name:           "exact match",
			origin:         "http://localhost:3000",
			allowedOrigins: []string{"http://localhost:3000"},
			want:           true,
		},
		{
			name:           "wildcard match",
			origin:         "https://app.shelfaware.io",
			allowedOrigins: []string{"https://*"},
			want:           true,
		},
		{
			name:           "multiple allowed origins - matches second",
			origin:         "http://localhost:3000",
			allowedOrigins: []string{"https://shelfaware.io", "http://localhost:3000"},
			want:           true,
		},
		{
			name:           "no match",
			origin:         "http://evil.com",
			allowedOrigins: []string{"http://localhost:3000"},
			want:           false,
		},
		{
			name:           "empty origin",
			origin:         "",
			allowedOrigins: []string{"http://localhost:3000"},
			want:           false,
		},
		{
			name:           "empty allowed list",
			origin:         "http://localhost:3000",
			allowedOrigins: []string{},
			want:           false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isAllowedOrigin(tt.origin, tt.allowedOrigins)
			if got != tt.want {
				t.Errorf("isAllowedOrigin(%q, %v) = %v, want %v", tt.origin, tt.allowedOrigins, got, tt.want)
			}
		})
	}
}

func newMiddlewareRouter(middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(middleware...)
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return router
}

func TestCORSMiddleware(t *testing.T) {
	t.Run("sets headers for allowed origin", func(t *testing.T) {
		router := newMiddlewareRouter(CORSMiddleware([]string{"http://localhost:3000"}))

		req, _ := http.NewRequest("GET", "/ping", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
			t.Errorf("Access-Control-Allow-Origin = %q, want http://localhost:3000", got)
		}
	})

	t.Run("omits headers for disallowed origin", func(t *testing.T) {
		router := newMiddlewareRouter(CORSMiddleware([]string{"http://localhost:3000"}))

		req, _ := http.NewRequest("GET", "/ping", nil)
		req.Header.Set("Origin", "http://evil.com")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("Access-Control-Allow-Origin = %q, want empty", got)
		}
	})

	t.Run("answers preflight with 204", func(t *testing.T) {
		router := newMiddlewareRouter(CORSMiddleware([]string{"http://localhost:3000"}))

		req, _ := http.NewRequest("OPTIONS", "/ping", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusNoContent)
		}
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	t.Run("generates an id when none supplied", func(t *testing.T) {
		router := newMiddlewareRouter(RequestIDMiddleware())

		req, _ := http.NewRequest("GET", "/ping", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Header().Get(requestIDHeader) == "" {
			t.Error("X-Request-ID header is empty, want generated id")
		}
	})

	t.Run("echoes a caller-supplied id", func(t *testing.T) {
		router := newMiddlewareRouter(RequestIDMiddleware())

		req, _ := http.NewRequest("GET", "/ping", nil)
		req.Header.Set(requestIDHeader, "caller-id-123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if got := w.Header().Get(requestIDHeader); got != "caller-id-123" {
			t.Errorf("X-Request-ID = %q, want caller-id-123", got)
		}
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("allows requests within limit", func(t *testing.T) {
		router := newMiddlewareRouter(RateLimitMiddleware(5))

		for i := 0; i < 5; i++ {
			req, _ := http.NewRequest("GET", "/ping", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("request %d: Status = %d, want %d", i+1, w.Code, http.StatusOK)
			}
		}
	})

	t.Run("rejects requests over limit with 429 envelope", func(t *testing.T) {
		router := newMiddlewareRouter(RateLimitMiddleware(2))

		var last *httptest.ResponseRecorder
		for i := 0; i < 3; i++ {
			req, _ := http.NewRequest("GET", "/ping", nil)
			last = httptest.NewRecorder()
			router.ServeHTTP(last, req)
		}

		if last.Code != http.StatusTooManyRequests {
			t.Fatalf("Status = %d, want %d", last.Code, http.StatusTooManyRequests)
		}
		response := decodeResponse(t, last)
		if response.Error != "RATE_LIMITED" {
			t.Errorf("error = %s, want RATE_LIMITED", response.Error)
		}
	})

	t.Run("zero limit disables throttling", func(t *testing.T) {
		router := newMiddlewareRouter(RateLimitMiddleware(0))

		for i := 0; i < 50; i++ {
			req, _ := http.NewRequest("GET", "/ping", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("request %d: Status = %d, want %d", i+1, w.Code, http.StatusOK)
			}
		}
	})
}

func TestRecoveryMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RecoveryMiddleware(zap.NewNop()))
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	req, _ := http.NewRequest("GET", "/panic", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	response := decodeResponse(t, w)
	if response.Error != "SERVER_ERROR" {
		t.Errorf("error = %s, want SERVER_ERROR", response.Error)
	}
	if response.Details != "internal server error" {
		t.Errorf("details = %q, want generic message", response.Details)
	}
}
