package utils

import (
	"regexp"
	"testing"
)

func TestGenerateInstanceID_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9A-F]{13}$`)

	id := GenerateInstanceID()
	if !pattern.MatchString(id) {
		t.Errorf("expected 13 uppercase hex characters, got %q", id)
	}
}

func TestGenerateInstanceID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateInstanceID()
		if seen[id] {
			t.Fatalf("duplicate instance id generated: %s", id)
		}
		seen[id] = true
	}
}
