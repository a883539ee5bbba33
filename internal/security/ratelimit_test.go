package security

import (
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestLimiterStoreEnforcesBurst(t *testing.T) {
	s := NewLimiterStore(rate.Limit(0.001), 2, time.Minute)

	if !s.Allow("10.0.0.1") || !s.Allow("10.0.0.1") {
		t.Fatal("burst requests should be allowed")
	}
	if s.Allow("10.0.0.1") {
		t.Error("third request should be limited")
	}
}

func TestLimiterStoreIsolatesClients(t *testing.T) {
	s := NewLimiterStore(rate.Limit(0.001), 1, time.Minute)

	if !s.Allow("10.0.0.1") {
		t.Fatal("first client should be allowed")
	}
	if !s.Allow("10.0.0.2") {
		t.Error("second client should have its own bucket")
	}
}

func TestLimiterStoreTreatsEmptyIPAsUnknown(t *testing.T) {
	s := NewLimiterStore(rate.Limit(0.001), 1, time.Minute)

	if !s.Allow("") {
		t.Fatal("first unknown-client request should be allowed")
	}
	if s.Allow("  ") {
		t.Error("blank ip should share the unknown bucket")
	}
}
