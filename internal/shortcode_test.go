package internal

import (
	"strings"
	"testing"
)

func TestGenerateShortCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := GenerateShortCode()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(code) != ShortCodeLength {
			t.Fatalf("len(%q) = %d, want %d", code, len(code), ShortCodeLength)
		}
		for _, r := range code {
			if !strings.ContainsRune(shortCodeAlphabet, r) {
				t.Fatalf("code %q contains %q outside alphabet", code, r)
			}
		}
		if !ValidShortCode(code) {
			// A purely numeric draw is possible but astronomically
			// unlikely across 50 samples of 6 chars.
			t.Errorf("generated code %q fails validation", code)
		}
		seen[code] = true
	}
	if len(seen) < 45 {
		t.Errorf("only %d distinct codes in 50 draws", len(seen))
	}
}

func TestValidShortCode(t *testing.T) {
	cases := []struct {
		code string
		want bool
	}{
		{"abc123", true},
		{"my-link", true},
		{"A_b", true},
		{"", false},
		{"   ", false},
		{"123456", false},
		{"a/b", false},
		{"a?b", false},
		{"a#b", false},
		{"0", false},
	}
	for _, c := range cases {
		if got := ValidShortCode(c.code); got != c.want {
			t.Errorf("ValidShortCode(%q) = %v, want %v", c.code, got, c.want)
		}
	}
}
