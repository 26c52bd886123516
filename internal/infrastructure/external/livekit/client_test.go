package livekit

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func parseClaims(t *testing.T, token string) jwt.MapClaims {
	t.Helper()
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	return parsed.Claims.(jwt.MapClaims)
}

func TestGenerateTokenUsesConfiguredTTL(t *testing.T) {
	c := NewClient("ws://localhost:7880", "api-key", testSecret, 30*time.Minute)

	token, err := c.GenerateToken("user-1", "sess-1", nil)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims := parseClaims(t, token)
	exp, ok := claims["exp"].(float64)
	if !ok {
		t.Fatal("token missing exp claim")
	}
	remaining := time.Until(time.Unix(int64(exp), 0))
	if remaining < 29*time.Minute || remaining > 31*time.Minute {
		t.Errorf("token valid for %v, want about 30m", remaining)
	}

	video, ok := claims["video"].(map[string]any)
	if !ok {
		t.Fatal("token missing video grant")
	}
	if room := video["room"]; room != "interview-sess-1" {
		t.Errorf("room = %v, want interview-sess-1", room)
	}
}

func TestGenerateTokenOptionsOverrideTTL(t *testing.T) {
	c := NewClient("ws://localhost:7880", "api-key", testSecret, 30*time.Minute)

	publish := true
	token, err := c.GenerateToken("user-1", "sess-1", &TokenOptions{
		ValidFor:     5 * time.Minute,
		CanPublish:   publish,
		CanSubscribe: publish,
	})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	exp := parseClaims(t, token)["exp"].(float64)
	remaining := time.Until(time.Unix(int64(exp), 0))
	if remaining < 4*time.Minute || remaining > 6*time.Minute {
		t.Errorf("token valid for %v, want about 5m", remaining)
	}
}

func TestNewClientDefaultsZeroTTL(t *testing.T) {
	c := NewClient("ws://localhost:7880", "api-key", testSecret, 0)
	if c.tokenTTL != 2*time.Hour {
		t.Errorf("tokenTTL = %v, want the 2h default", c.tokenTTL)
	}
}

func TestRoomName(t *testing.T) {
	c := NewClient("ws://localhost:7880", "api-key", testSecret, time.Hour)
	if got := c.RoomName("abc"); got != "interview-abc" {
		t.Errorf("RoomName = %q", got)
	}
}
