package utils

import "testing"

func TestGenerateAndVerifyToken(t *testing.T) {
	token, err := GenerateToken("user-1", "user@example.com")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("UserID = %q, want user-1", claims.UserID)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("Email = %q, want user@example.com", claims.Email)
	}
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	if _, err := VerifyToken("not-a-token"); err == nil {
		t.Error("garbage token should fail verification")
	}
}

func TestVerifyTokenRejectsTampered(t *testing.T) {
	token, err := GenerateToken("user-1", "user@example.com")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	tampered := token[:len(token)-2] + "xx"
	if _, err := VerifyToken(tampered); err == nil {
		t.Error("tampered token should fail verification")
	}
}
