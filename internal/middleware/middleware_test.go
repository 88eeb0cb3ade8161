package middleware

import (
	"net/http"
	"net/http/httptest"
	"runtime"
	"strings"
	"testing"
	"time"

	"jobboard/internal/config"
	"jobboard/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(middleware ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware...)
	r.GET("/ping", func(c *gin.Context) {
		id, _ := CurrentUserID(c)
		c.String(http.StatusOK, id.String())
	})
	return r
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRequestIDMiddleware(t *testing.T) {
	r := newEngine(RequestIDMiddleware())

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil))
	generated := rec.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(generated)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "client-id-1")
	rec = serve(r, req)
	assert.Equal(t, "client-id-1", rec.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("x", maxRequestIDLength+1))
	rec = serve(r, req)
	assert.NotEqual(t, strings.Repeat("x", maxRequestIDLength+1), rec.Header().Get(RequestIDHeader))
}

func TestRateLimiter_RejectsOverBurst(t *testing.T) {
	r := newEngine(RateLimitMiddleware("test", 0.001, 2))

	for i := 0; i < 2; i++ {
		rec := serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestRateLimiter_PerClient(t *testing.T) {
	r := newEngine(RateLimitMiddleware("test", 0.001, 1))

	first := httptest.NewRequest(http.MethodGet, "/ping", nil)
	first.RemoteAddr = "10.0.0.1:1234"
	second := httptest.NewRequest(http.MethodGet, "/ping", nil)
	second.RemoteAddr = "10.0.0.2:1234"

	assert.Equal(t, http.StatusOK, serve(r, first).Code)
	assert.Equal(t, http.StatusOK, serve(r, second).Code)
}

func TestSecurityHeaders(t *testing.T) {
	rec := serve(newEngine(SecurityHeadersMiddleware(false)), httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))

	rec = serve(newEngine(SecurityHeadersMiddleware(true)), httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestRequestSizeLimit(t *testing.T) {
	r := newEngine(RequestSizeLimitMiddleware(8))

	req := httptest.NewRequest(http.MethodGet, "/ping", strings.NewReader("0123456789"))
	rec := serve(r, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "secret", ExpiryHours: 1, RefreshExpiryHours: 1}
	userID := uuid.New()
	pair, err := utils.GenerateTokenPair(userID, "a@example.com", "user", cfg.Secret, 1, 1)
	require.NoError(t, err)

	r := newEngine(AuthMiddleware(cfg))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + pair.AccessToken, http.StatusUnauthorized},
		{"refresh token", "Bearer " + pair.RefreshToken, http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signedWith(t, "other"), http.StatusUnauthorized},
		{"access token", "Bearer " + pair.AccessToken, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := serve(r, req)
			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, userID.String(), rec.Body.String())
			}
		})
	}
}

func TestOptionalAuthMiddleware(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "secret"}
	userID := uuid.New()
	pair, err := utils.GenerateTokenPair(userID, "a@example.com", "user", cfg.Secret, 1, 1)
	require.NoError(t, err)

	r := newEngine(OptionalAuthMiddleware(cfg))

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uuid.Nil.String(), rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec = serve(r, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uuid.Nil.String(), rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec = serve(r, req)
	assert.Equal(t, userID.String(), rec.Body.String())
}

func TestAdminOnly(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "secret"}
	user, err := utils.GenerateTokenPair(uuid.New(), "u@example.com", "user", cfg.Secret, 1, 1)
	require.NoError(t, err)
	admin, err := utils.GenerateTokenPair(uuid.New(), "a@example.com", "admin", cfg.Secret, 1, 1)
	require.NoError(t, err)

	r := newEngine(AuthMiddleware(cfg), AdminOnly())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+user.AccessToken)
	assert.Equal(t, http.StatusForbidden, serve(r, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+admin.AccessToken)
	assert.Equal(t, http.StatusOK, serve(r, req).Code)
}

func signedWith(t *testing.T, secret string) string {
	t.Helper()
	pair, err := utils.GenerateTokenPair(uuid.New(), "x@example.com", "user", secret, 1, 1)
	require.NoError(t, err)
	return pair.AccessToken
}

func limiterCount(rl *RateLimiter) int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()
	return len(rl.limiters)
}

func TestRateLimiter_SweepsIdleClientsOnArrival(t *testing.T) {
	clock := time.Now()
	rl := NewRateLimiter("test", 1000, 1)
	rl.now = func() time.Time { return clock }

	assert.True(t, rl.getLimiter("10.0.0.1").Allow())
	time.Sleep(20 * time.Millisecond)

	clock = clock.Add(limiterCleanupInterval + time.Second)
	rl.getLimiter("10.0.0.2")

	assert.Equal(t, 1, limiterCount(rl))
}

func TestRateLimiter_KeepsThrottledClients(t *testing.T) {
	clock := time.Now()
	rl := NewRateLimiter("test", 0.001, 1)
	rl.now = func() time.Time { return clock }

	assert.True(t, rl.getLimiter("10.0.0.1").Allow())

	clock = clock.Add(limiterCleanupInterval + time.Second)
	rl.getLimiter("10.0.0.2")

	assert.Equal(t, 2, limiterCount(rl))
}

func TestRateLimiter_StartsNoGoroutines(t *testing.T) {
	before := runtime.NumGoroutine()
	for i := 0; i < 20; i++ {
		RateLimitMiddleware("test", 1, 1)
	}
	assert.LessOrEqual(t, runtime.NumGoroutine(), before)
}
