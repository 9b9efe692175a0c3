package random

import (
	"context"
	"regexp"
	"testing"
)

func TestNextFormat(t *testing.T) {
	s := New("HOI")
	n, err := s.Next(context.Background())
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if !regexp.MustCompile(`^HOI-\d{13,}-[0-9a-f]{8}$`).MatchString(n) {
		t.Fatalf("unexpected order number %q", n)
	}
}

func TestNextUnique(t *testing.T) {
	s := New("HOI")
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		n, err := s.Next(context.Background())
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if seen[n] {
			t.Fatalf("duplicate order number %q", n)
		}
		seen[n] = true
	}
}
