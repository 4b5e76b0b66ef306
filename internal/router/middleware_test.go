package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bcexpress/tracking-api/internal/config"
	"github.com/bcexpress/tracking-api/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func TestResolveAllowedOrigin(t *testing.T) {
	cases := []struct {
		name             string
		origin           string
		allowed          []string
		allowCredentials bool
		want             string
	}{
		{"wildcard", "https://tracking.bce.example", []string{"*"}, false, "*"},
		{"wildcard with credentials echoes caller", "https://tracking.bce.example", []string{"*"}, true, "https://tracking.bce.example"},
		{"allow-list match", "https://cabang.bce.example", []string{"https://tracking.bce.example", "https://cabang.bce.example"}, false, "https://cabang.bce.example"},
		{"allow-list match is case-insensitive", "https://Tracking.BCE.example", []string{"https://tracking.bce.example"}, false, "https://Tracking.BCE.example"},
		{"unknown origin", "https://untrusted.example", []string{"https://tracking.bce.example"}, false, ""},
		{"no origin header", "", []string{"https://tracking.bce.example"}, false, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := resolveAllowedOrigin(tc.origin, tc.allowed, tc.allowCredentials)
			if got != tc.want {
				t.Fatalf("want %q got %q", tc.want, got)
			}
		})
	}
}

func TestCORSMiddlewareAppliesConfig(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := config.CORSConfig{
		AllowedOrigins:   []string{"https://tracking.bce.example"},
		AllowCredentials: true,
		MaxAge:           600,
	}
	r := gin.New()
	r.Use(CORSMiddleware(cfg))
	r.GET("/api/v1/track/:awb", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/track/BCE2026010001", nil)
	req.Header.Set("Origin", "https://tracking.bce.example")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status want 204 got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://tracking.bce.example" {
		t.Fatalf("allow-origin want configured origin got %q", got)
	}
	if w.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Fatalf("allow-credentials should be true")
	}
	if w.Header().Get("Access-Control-Max-Age") != "600" {
		t.Fatalf("max-age want 600 got %q", w.Header().Get("Access-Control-Max-Age"))
	}
	if w.Header().Get("Vary") != "Origin" {
		t.Fatalf("Vary want Origin got %q", w.Header().Get("Vary"))
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/api/v1/track/BCE2026010001", nil)
	req2.Header.Set("Origin", "https://untrusted.example")
	r.ServeHTTP(w2, req2)

	if w2.Code != http.StatusOK {
		t.Fatalf("request status want 200 got %d", w2.Code)
	}
	if got := w2.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unknown origin must get no allow-origin header, got %q", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var seen string
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/healthz", func(c *gin.Context) {
		seen = getRequestID(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "scan-batch-42")
	r.ServeHTTP(w, req)

	if w.Header().Get(requestIDHeader) != "scan-batch-42" {
		t.Fatalf("request id should propagate, got %q", w.Header().Get(requestIDHeader))
	}
	if seen != "scan-batch-42" {
		t.Fatalf("context request id want scan-batch-42 got %q", seen)
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	r.ServeHTTP(w2, req2)

	generated := w2.Header().Get(requestIDHeader)
	if _, err := uuid.Parse(generated); err != nil {
		t.Fatalf("generated request id should be a uuid, got %q: %v", generated, err)
	}
}

type authRejection struct {
	StatusCode int    `json:"status_code"`
	Msg        string `json:"msg"`
}

func decodeAuthRejection(t *testing.T, w *httptest.ResponseRecorder) authRejection {
	t.Helper()
	var body authRejection
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal envelope failed: %v", err)
	}
	return body
}

func TestJWTAuthMiddlewareRejectsWhenSecretUnset(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(JWTAuthMiddleware("", nil))
	r.GET("/api/v1/admin/shipments", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/shipments", nil)
	r.ServeHTTP(w, req)

	// Business errors ride an HTTP 200 envelope.
	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	body := decodeAuthRejection(t, w)
	if body.StatusCode != 401 {
		t.Fatalf("envelope status_code want 401 got %d", body.StatusCode)
	}
	if body.Msg == "" {
		t.Fatalf("envelope msg should not be empty")
	}
}

func TestJWTAuthMiddlewareRejectsBadBearer(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(JWTAuthMiddleware("tracking-test-secret", repository.NewUserRepository(nil)))
	r.GET("/api/v1/admin/shipments", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	headers := []string{"", "Basic dXNlcjpwYXNz", "Bearer not-a-token"}
	for _, header := range headers {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/shipments", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		r.ServeHTTP(w, req)

		body := decodeAuthRejection(t, w)
		if body.StatusCode != 401 {
			t.Fatalf("header %q: envelope status_code want 401 got %d", header, body.StatusCode)
		}
	}
}
