package middleware

import (
	"strings"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"Valid", "Str0ngPass", true},
		{"TooShort", "Ab1", false},
		{"NoUpper", "alllower1", false},
		{"NoLower", "ALLUPPER1", false},
		{"NoDigit", "NoDigitsHere", false},
		{"TooLong", strings.Repeat("Aa1", 50), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ok, problems := ValidatePasswordStrength(tc.password)
			if ok != tc.want {
				t.Errorf("expected %v, got %v (%v)", tc.want, ok, problems)
			}
			if !ok && len(problems) == 0 {
				t.Error("rejection must explain itself")
			}
		})
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  plain name  ", "plain name"},
		{"<script>alert(1)</script>", "&lt;script&gt;alert(1)&lt;/script&gt;"},
		{`Tom & "Jerry"`, "Tom &amp; &quot;Jerry&quot;"},
		{"O'Brien", "O&#x27;Brien"},
	}
	for _, tc := range tests {
		if got := SanitizeInput(tc.in); got != tc.want {
			t.Errorf("SanitizeInput(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRateLimiterKeys(t *testing.T) {
	rl := NewRateLimiter()

	a := rl.GetLimiter("auth|1.2.3.4", rate.Every(time.Minute), 1)
	b := rl.GetLimiter("auth|5.6.7.8", rate.Every(time.Minute), 1)
	if a == b {
		t.Error("different keys must get independent limiters")
	}

	again := rl.GetLimiter("auth|1.2.3.4", rate.Every(time.Minute), 1)
	if a != again {
		t.Error("same key must reuse its limiter")
	}

	if !a.Allow() {
		t.Error("first request within burst should pass")
	}
	if a.Allow() {
		t.Error("burst of 1 should block the second immediate request")
	}
	if !b.Allow() {
		t.Error("separate key should be unaffected")
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter()
	rl.GetLimiter("stale", rate.Every(time.Second), 1)
	rl.lastSeen["stale"] = time.Now().Add(-2 * time.Hour)

	rl.Cleanup()

	rl.mutex.Lock()
	_, exists := rl.limiters["stale"]
	rl.mutex.Unlock()
	if exists {
		t.Error("idle limiter not removed")
	}
}
