package global

import (
	"testing"
)

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("KRONO_TEST_KEY", "value")
	if got := GetEnvOrDefault("KRONO_TEST_KEY", "fallback"); got != "value" {
		t.Fatalf("expected env override, got %s", got)
	}
	if got := GetEnvOrDefault("KRONO_TEST_MISSING", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %s", got)
	}
}

func TestGetAPIBaseOverride(t *testing.T) {
	t.Setenv("API_BASE", "http://localhost:9000")
	if got := GetAPIBase(); got != "http://localhost:9000" {
		t.Fatalf("expected API_BASE override, got %s", got)
	}
}

func TestGetTokenPathOverride(t *testing.T) {
	t.Setenv("TOKEN_PATH", "/tmp/krono-token")
	if got := GetTokenPath(); got != "/tmp/krono-token" {
		t.Fatalf("expected TOKEN_PATH override, got %s", got)
	}
}
