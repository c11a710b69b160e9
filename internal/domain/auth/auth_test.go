package auth

import (
	"errors"
	"testing"
	"time"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("super-secret")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}

	if err := CheckPassword(hash, "super-secret"); err != nil {
		t.Fatalf("expected password to match, got %v", err)
	}

	if err := CheckPassword(hash, "wrong"); err == nil {
		t.Fatal("expected mismatch error")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("same-input")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	second, err := HashPassword("same-input")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if first == second {
		t.Fatal("two hashes of the same input are identical; salt missing")
	}
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	if err := CheckPassword("not-a-bcrypt-digest", "anything"); err == nil {
		t.Fatal("expected verification failure for malformed digest")
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	secret := "test-secret"

	token, err := GenerateToken(secret, "u1", time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	subject, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if subject != "u1" {
		t.Fatalf("subject mismatch: got %q", subject)
	}
}

func TestParseTokenFailures(t *testing.T) {
	secret := "test-secret"
	expired, err := GenerateToken(secret, "u1", -time.Minute)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	valid, err := GenerateToken(secret, "u1", time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	tests := []struct {
		name    string
		token   string
		secret  string
		wantErr error
	}{
		{name: "expired", token: expired, secret: secret, wantErr: ErrTokenExpired},
		{name: "wrong secret", token: valid, secret: "other", wantErr: ErrTokenInvalid},
		{name: "garbage", token: "not.a.token", secret: secret, wantErr: ErrTokenInvalid},
		{name: "empty", token: "", secret: secret, wantErr: ErrTokenInvalid},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseToken(tc.secret, tc.token)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("got %v, want %v", err, tc.wantErr)
			}
		})
	}
}
