package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

type memoryRateStore struct {
	mu     sync.Mutex
	counts map[string]int64
}

func newMemoryRateStore() *memoryRateStore {
	return &memoryRateStore{counts: make(map[string]int64)}
}

func (m *memoryRateStore) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[key]++
	return m.counts[key], nil
}

func TestAuthRateLimitBlocksAfterLimit(t *testing.T) {
	store := newMemoryRateStore()
	policy := NewAuthRateLimitPolicy("login", time.Minute, 3, 2)

	handler := AuthRateLimit(policy, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(email string) int {
		body := strings.NewReader(`{"email":"` + email + `","password":"pw"}`)
		req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
		req.RemoteAddr = "10.0.0.1:1234"
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		return resp.Code
	}

	if code := send("a@example.com"); code != http.StatusOK {
		t.Fatalf("first request expected 200 got %d", code)
	}
	if code := send("a@example.com"); code != http.StatusOK {
		t.Fatalf("second request expected 200 got %d", code)
	}
	// third request for same email exceeds the email limit of 2
	if code := send("a@example.com"); code != http.StatusTooManyRequests {
		t.Fatalf("third request expected 429 got %d", code)
	}
}

func TestAuthRateLimitBlocksByIP(t *testing.T) {
	store := newMemoryRateStore()
	policy := NewAuthRateLimitPolicy("login", time.Minute, 2, 0)

	handler := AuthRateLimit(policy, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "10.0.0.2:999"
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("request %d expected 200 got %d", i+1, resp.Code)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = "10.0.0.2:999"
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 got %d", resp.Code)
	}
}

func TestAuthRateLimitDisabledPolicyPassesThrough(t *testing.T) {
	policy := NewAuthRateLimitPolicy("login", 0, 0, 0)
	handler := AuthRateLimit(policy, newMemoryRateStore(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200 got %d", resp.Code)
		}
	}
}

func TestClientIPPrefersForwardedHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.0.1:1111"
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 70.41.3.18")

	if ip := clientIP(req); ip != "203.0.113.9" {
		t.Fatalf("expected forwarded ip, got %s", ip)
	}
}
