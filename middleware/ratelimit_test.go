package middleware

import (
	"testing"
)

func TestIPLimiterEnforcesBurst(t *testing.T) {
	l := newIPLimiter(1, 3)

	allowed := 0
	for i := 0; i < 10; i++ {
		if l.get("203.0.113.9").Allow() {
			allowed++
		}
	}
	if allowed != 3 {
		t.Errorf("burst of 3: want 3 allowed, got %d", allowed)
	}
}

func TestIPLimiterIsolatesAddresses(t *testing.T) {
	l := newIPLimiter(1, 1)

	if !l.get("203.0.113.1").Allow() {
		t.Fatal("first request from first IP denied")
	}
	if l.get("203.0.113.1").Allow() {
		t.Error("second request from same IP should be denied")
	}
	if !l.get("203.0.113.2").Allow() {
		t.Error("different IP should have its own budget")
	}
}

func TestEnvKnobParsing(t *testing.T) {
	t.Setenv("RATE_LIMIT_BURST", "42")
	if got := getEnvInt("RATE_LIMIT_BURST", 30); got != 42 {
		t.Errorf("want 42, got %d", got)
	}

	t.Setenv("RATE_LIMIT_BURST", "not-a-number")
	if got := getEnvInt("RATE_LIMIT_BURST", 30); got != 30 {
		t.Errorf("bad value should fall back to default, got %d", got)
	}

	t.Setenv("AUTH_RATE_LIMIT_RPS", "2.5")
	if got := getEnvFloat("AUTH_RATE_LIMIT_RPS", 0.5); got != 2.5 {
		t.Errorf("want 2.5, got %v", got)
	}
}
