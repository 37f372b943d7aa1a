package main

import (
	"testing"
)

func TestParseParams(t *testing.T) {
	got, err := parseParams([]string{"category=tools", "limit=10"})
	if err != nil {
		t.Fatalf("parseParams() error: %v", err)
	}
	if got["category"] != "tools" || got["limit"] != "10" {
		t.Errorf("parseParams() = %v", got)
	}
}

func TestParseParams_Empty(t *testing.T) {
	got, err := parseParams(nil)
	if err != nil {
		t.Fatalf("parseParams() error: %v", err)
	}
	if got != nil {
		t.Errorf("parseParams(nil) = %v, want nil", got)
	}
}

func TestParseParams_Invalid(t *testing.T) {
	for _, bad := range []string{"novalue", "=orphan"} {
		if _, err := parseParams([]string{bad}); err == nil {
			t.Errorf("parseParams(%q) expected error", bad)
		}
	}
}
