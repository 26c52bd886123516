package livekit

import (
	"fmt"
	"time"

	"github.com/livekit/protocol/auth"
)

// Client issues LiveKit join tokens for the interview camera feed. Rooms are
// created implicitly when the candidate joins, so only token minting is
// needed server-side.
type Client struct {
	apiKey    string
	apiSecret string
	url       string
	tokenTTL  time.Duration
}

// TokenOptions holds options for generating access token
type TokenOptions struct {
	ValidFor     time.Duration
	CanPublish   bool
	CanSubscribe bool
}

// NewClient creates a new LiveKit client. tokenTTL bounds the validity of
// issued join tokens; zero falls back to two hours.
func NewClient(url, apiKey, apiSecret string, tokenTTL time.Duration) *Client {
	if tokenTTL <= 0 {
		tokenTTL = 2 * time.Hour
	}
	return &Client{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		url:       url,
		tokenTTL:  tokenTTL,
	}
}

// URL returns the LiveKit server URL the frontend should connect to
func (c *Client) URL() string {
	return c.url
}

// RoomName derives the camera-feed room name for a session
func (c *Client) RoomName(sessionID string) string {
	return "interview-" + sessionID
}

// GenerateToken generates an access token for joining the session room
func (c *Client) GenerateToken(userKey, sessionID string, options *TokenOptions) (string, error) {
	if options == nil {
		options = &TokenOptions{
			ValidFor:     c.tokenTTL,
			CanPublish:   true,
			CanSubscribe: true,
		}
	}

	at := auth.NewAccessToken(c.apiKey, c.apiSecret)
	grant := &auth.VideoGrant{
		RoomJoin:     true,
		Room:         c.RoomName(sessionID),
		CanPublish:   &options.CanPublish,
		CanSubscribe: &options.CanSubscribe,
	}

	at.AddGrant(grant).
		SetIdentity(userKey).
		SetValidFor(options.ValidFor)

	token, err := at.ToJWT()
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return token, nil
}
