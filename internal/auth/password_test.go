// EchoRoom - Real-Time Chat Backend
// Copyright 2026 EchoRoom Contributors
// SPDX-License-Identifier: MIT
// https://github.com/amuhanad881-gif/echoroom1

package auth

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correcthorse")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.HasPrefix(hash, "$2a$") && !strings.HasPrefix(hash, "$2b$") {
		t.Errorf("expected bcrypt hash, got %q", hash)
	}

	if !VerifyPassword(hash, "correcthorse") {
		t.Error("correct password rejected")
	}
	if VerifyPassword(hash, "wrongpassword") {
		t.Error("wrong password accepted")
	}
}

func TestHashPasswordEmpty(t *testing.T) {
	if _, err := HashPassword(""); err == nil {
		t.Error("expected error for empty password")
	}
}

func TestHashPasswordUnique(t *testing.T) {
	// bcrypt salts, so two hashes of the same input differ.
	h1, err := HashPassword("samepassword")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	h2, err := HashPassword("samepassword")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if h1 == h2 {
		t.Error("expected distinct salted hashes")
	}
}

func TestVerifyPasswordGarbageHash(t *testing.T) {
	if VerifyPassword("not-a-hash", "anything") {
		t.Error("garbage hash must not verify")
	}
}
