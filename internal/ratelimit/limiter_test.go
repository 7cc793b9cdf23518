package ratelimit

import (
	"net/http"
	"sync"
	"testing"
	"time"
)

// mockClock is a controllable clock for testing.
type mockClock struct {
	mu  sync.Mutex
	now time.Time
}

func newMockClock() *mockClock {
	return &mockClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *mockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *mockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestAllow_FixedWindow(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{
		Rules: map[string]Rule{ActionCreateBooking: {Max: 3, Window: time.Minute}},
		Clock: clock,
	})
	defer limiter.Close()

	ip := "203.0.113.7"
	for i := 0; i < 3; i++ {
		if result := limiter.Allow(ActionCreateBooking, ip); !result.Allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	clock.Advance(20 * time.Second)
	result := limiter.Allow(ActionCreateBooking, ip)
	if result.Allowed {
		t.Fatal("fourth request within window should be blocked")
	}
	if result.RetryAfter != 40*time.Second {
		t.Errorf("expected retry after 40s, got %s", result.RetryAfter)
	}

	clock.Advance(40 * time.Second)
	if result := limiter.Allow(ActionCreateBooking, ip); !result.Allowed {
		t.Fatal("request after window should be allowed")
	}
}

func TestAllow_IsolatedByActionAndIP(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{
		Rules: map[string]Rule{
			ActionCreateBooking: {Max: 1, Window: time.Minute},
			ActionJoinWaitlist:  {Max: 1, Window: time.Minute},
		},
		Clock: clock,
	})
	defer limiter.Close()

	if !limiter.Allow(ActionCreateBooking, "1.1.1.1").Allowed {
		t.Fatal("first booking should be allowed")
	}
	if limiter.Allow(ActionCreateBooking, "1.1.1.1").Allowed {
		t.Fatal("second booking from same IP should be blocked")
	}
	if !limiter.Allow(ActionCreateBooking, "2.2.2.2").Allowed {
		t.Fatal("other IP should have its own window")
	}
	if !limiter.Allow(ActionJoinWaitlist, "1.1.1.1").Allowed {
		t.Fatal("other action should have its own window")
	}
	if !limiter.Allow("unconfigured", "1.1.1.1").Allowed {
		t.Fatal("actions without a rule are never limited")
	}
}

func TestCleanupDropsExpiredEntries(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{
		Rules: map[string]Rule{ActionRelease: {Max: 1, Window: time.Minute}},
		Clock: clock,
	})
	defer limiter.Close()

	limiter.Allow(ActionRelease, "1.1.1.1")
	clock.Advance(2 * time.Minute)
	limiter.cleanup()

	limiter.mu.Lock()
	remaining := len(limiter.entries)
	limiter.mu.Unlock()
	if remaining != 0 {
		t.Fatalf("expected expired entries removed, got %d", remaining)
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		xri        string
		trustProxy bool
		want       string
	}{
		{name: "remote addr with port", remoteAddr: "203.0.113.5:1234", want: "203.0.113.5"},
		{name: "xff ignored without trust", remoteAddr: "10.0.0.1:1234", xff: "198.51.100.1", want: "10.0.0.1"},
		{name: "rightmost public xff", remoteAddr: "10.0.0.1:1234", xff: "1.2.3.4, 198.51.100.1, 10.0.0.2", trustProxy: true, want: "198.51.100.1"},
		{name: "all private xff", remoteAddr: "10.0.0.1:1234", xff: "10.0.0.3, 192.168.1.1", trustProxy: true, want: "192.168.1.1"},
		{name: "x-real-ip", remoteAddr: "10.0.0.1:1234", xri: "198.51.100.9", trustProxy: true, want: "198.51.100.9"},
		{name: "bare ip", remoteAddr: "198.51.100.7", want: "198.51.100.7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := http.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				r.Header.Set("X-Real-IP", tt.xri)
			}
			if got := GetClientIP(r, tt.trustProxy); got != tt.want {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSanitizeIdentifier(t *testing.T) {
	tests := map[string]string{
		"Player@Example.com": "pl***@example.com",
		"ab@example.com":     "***@example.com",
		"+5491122334455":     "***4455",
		"12":                 "***",
	}
	for in, want := range tests {
		if got := SanitizeIdentifier(in); got != want {
			t.Errorf("SanitizeIdentifier(%q) = %q, want %q", in, got, want)
		}
	}
}
