package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRateLimiterPerAddress(t *testing.T) {
	h := NewRateLimiter(0.001, 2).Handler(ok)

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/games/k", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:1000"))
	assert.Equal(t, http.StatusOK, send("10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:1002"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2:1000"))
}

func TestRateLimiterForgetsIdleAddresses(t *testing.T) {
	clock := time.Unix(1700000000, 0)
	l := NewRateLimiter(1, 1)
	l.now = func() time.Time { return clock }

	l.limiter("10.0.0.1")
	l.limiter("10.0.0.2")
	require.Len(t, l.limiters, 2)

	clock = clock.Add(limiterIdleTTL / 2)
	l.limiter("10.0.0.2")

	clock = clock.Add(limiterIdleTTL/2 + time.Second)
	l.limiter("10.0.0.3")
	require.Len(t, l.limiters, 2)
	require.NotContains(t, l.limiters, "10.0.0.1")
	require.Contains(t, l.limiters, "10.0.0.2")
	require.Contains(t, l.limiters, "10.0.0.3")
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/games", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	CORS(ok).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/games", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec = httptest.NewRecorder()
	CORS(ok).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
