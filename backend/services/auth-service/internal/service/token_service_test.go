package service

import (
	"testing"
	"time"
)

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewTokenService("token-test-secret", time.Hour)

	token, tokenID, err := svc.GenerateToken("account-1", "client")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if tokenID == "" {
		t.Fatal("empty token id")
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != "account-1" || claims.Role != "client" {
		t.Fatalf("claims = %+v", claims)
	}
	if claims.ID != tokenID {
		t.Fatalf("claims.ID = %q, want %q", claims.ID, tokenID)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, _, err := issuer.GenerateToken("account-1", "client")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := verifier.ValidateToken(token); err == nil {
		t.Fatal("token accepted with wrong secret")
	}
}

func TestGenerateTokenRequiresAccountID(t *testing.T) {
	svc := NewTokenService("token-test-secret", time.Hour)
	if _, _, err := svc.GenerateToken("", "client"); err == nil {
		t.Fatal("expected error for empty account id")
	}
}
