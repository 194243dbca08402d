// EchoRoom - Real-Time Chat Backend
// Copyright 2026 EchoRoom Contributors
// SPDX-License-Identifier: MIT
// https://github.com/amuhanad881-gif/echoroom1

package validation

import (
	"strings"
	"testing"
)

type signupFixture struct {
	Email    string `validate:"required,email"`
	Username string `validate:"required,min=2,max=32"`
	Password string `validate:"required,min=8"`
	Kind     string `validate:"omitempty,oneof=text voice"`
}

func TestValidateStructPasses(t *testing.T) {
	fixture := signupFixture{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "correcthorse",
		Kind:     "voice",
	}
	if err := ValidateStruct(&fixture); err != nil {
		t.Fatalf("expected valid struct, got: %v", err)
	}
}

func TestValidateStructFailures(t *testing.T) {
	tests := []struct {
		name      string
		fixture   signupFixture
		wantField string
		wantMsg   string
	}{
		{
			"missing email",
			signupFixture{Username: "alice", Password: "correcthorse"},
			"Email",
			"Email is required",
		},
		{
			"malformed email",
			signupFixture{Email: "not-an-email", Username: "alice", Password: "correcthorse"},
			"Email",
			"valid email address",
		},
		{
			"short password",
			signupFixture{Email: "a@b.co", Username: "alice", Password: "short"},
			"Password",
			"at least 8 characters",
		},
		{
			"bad enum",
			signupFixture{Email: "a@b.co", Username: "alice", Password: "correcthorse", Kind: "video"},
			"Kind",
			"one of: text voice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.fixture)
			if err == nil {
				t.Fatal("expected validation failure")
			}
			details := err.Details()
			msg, ok := details[tt.wantField]
			if !ok {
				t.Fatalf("expected a %s error, got %v", tt.wantField, details)
			}
			if !strings.Contains(msg, tt.wantMsg) {
				t.Errorf("message %q does not contain %q", msg, tt.wantMsg)
			}
		})
	}
}

func TestValidateStructMultipleErrors(t *testing.T) {
	err := ValidateStruct(&signupFixture{})
	if err == nil {
		t.Fatal("expected validation failure")
	}
	if len(err.Fields()) != 3 {
		t.Errorf("expected 3 field errors, got %d: %v", len(err.Fields()), err)
	}
	if !strings.Contains(err.Error(), ";") {
		t.Errorf("combined message should join failures: %q", err.Error())
	}
}
