package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	manager := NewManager("test-secret", 15*time.Minute)
	userID := uuid.New()

	token, err := manager.GenerateAccessToken(userID, "dana@example.com", "candidate")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := manager.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID = %v, want %v", claims.UserID, userID)
	}
	if claims.Email != "dana@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.Role != "candidate" {
		t.Errorf("Role = %q", claims.Role)
	}

	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if lifetime != manager.GetAccessExpiry() {
		t.Errorf("token lifetime = %v, want %v", lifetime, manager.GetAccessExpiry())
	}
}

func TestValidateAccessTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", time.Minute).GenerateAccessToken(uuid.New(), "", "")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := NewManager("secret-b", time.Minute).ValidateAccessToken(token); err == nil {
		t.Error("token signed with a different secret must not validate")
	}
}

func TestValidateAccessTokenRejectsExpired(t *testing.T) {
	manager := NewManager("test-secret", -time.Minute)
	token, err := manager.GenerateAccessToken(uuid.New(), "", "")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := manager.ValidateAccessToken(token); err == nil {
		t.Error("expired token must not validate")
	}
}
