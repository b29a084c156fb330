package ident

import (
	"strings"
	"testing"
)

func TestNewShape(t *testing.T) {
	id := New("chore")
	parts := strings.Split(id, "-")
	if len(parts) != 3 {
		t.Fatalf("id %q should have three segments, got %d", id, len(parts))
	}
	if parts[0] != "chore" {
		t.Errorf("prefix = %q, want %q", parts[0], "chore")
	}
	if len(parts[2]) != suffixLen {
		t.Errorf("suffix length = %d, want %d", len(parts[2]), suffixLen)
	}
}

func TestNewUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 10000; i++ {
		id := New("x")
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id after %d generations: %q", i, id)
		}
		seen[id] = struct{}{}
	}
}
