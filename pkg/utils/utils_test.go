package utils

import (
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	password := "secret"
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if !CheckPassword(password, hash) {
		t.Error("expected password check to pass")
	}
	if CheckPassword("wrongpassword", hash) {
		t.Error("expected password check to fail")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	secret := "supersecret"

	token, err := GenerateToken("123", "investor", secret)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken(token, secret)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != "123" {
		t.Errorf("expected UserID 123, got %s", claims.UserID)
	}
	if claims.Role != "investor" {
		t.Errorf("expected role investor, got %s", claims.Role)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken("123", "founder", "supersecret")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := ValidateToken(token, "wrongsecret"); err == nil {
		t.Error("expected error with wrong secret")
	}
}
