package utils

import (
	"strings"
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("expected hashing to succeed, got error: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Fatalf("expected a bcrypt hash, got %q", hash)
	}

	if !CheckPassword("correct horse battery staple", hash) {
		t.Fatal("expected the original password to verify")
	}
	if CheckPassword("wrong password", hash) {
		t.Fatal("expected a wrong password to fail verification")
	}
}

func TestHashPasswordProducesUniqueSalts(t *testing.T) {
	first, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("expected hashing to succeed, got error: %v", err)
	}
	second, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("expected hashing to succeed, got error: %v", err)
	}
	if first == second {
		t.Fatal("expected two hashes of the same password to differ")
	}
}

func TestCheckPasswordRejectsMalformedHash(t *testing.T) {
	if CheckPassword("password123", "not-a-bcrypt-hash") {
		t.Fatal("expected verification against a malformed hash to fail")
	}
}
