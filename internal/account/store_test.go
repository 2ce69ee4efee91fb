package account

import (
	"strings"
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Abcdef12")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if strings.Contains(hash, "Abcdef12") {
		t.Error("hash must not contain the raw password")
	}
	if !CheckPassword(hash, "Abcdef12") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "abcdef12") {
		t.Error("wrong password accepted")
	}
	if CheckPassword("not-a-hash", "Abcdef12") {
		t.Error("garbage hash accepted")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	a, err := HashPassword("same-password")
	if err != nil {
		t.Fatal(err)
	}
	b, err := HashPassword("same-password")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("two hashes of the same password must differ")
	}
}
