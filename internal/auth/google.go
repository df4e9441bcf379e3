package auth

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"

	"github.com/tahmidr/matrimony-backend/pkg/config"
)

type googleVerifier struct {
	clientID string
}

// NewGoogleVerifier returns a verifier that validates Google ID tokens against
// the configured OAuth client ID. Returns nil when no client ID is configured,
// which disables the Google sign-in endpoint.
func NewGoogleVerifier(cfg config.GoogleConfig) GoogleTokenVerifier {
	if cfg.ClientID == "" {
		return nil
	}
	return &googleVerifier{clientID: cfg.ClientID}
}

func (g *googleVerifier) Verify(ctx context.Context, rawToken string) (*GoogleProfile, error) {
	payload, err := idtoken.Validate(ctx, rawToken, g.clientID)
	if err != nil {
		return nil, fmt.Errorf("validate google id token: %w", err)
	}

	profile := &GoogleProfile{}
	if v, ok := payload.Claims["email"].(string); ok {
		profile.Email = v
	}
	if v, ok := payload.Claims["name"].(string); ok {
		profile.Name = v
	}
	if v, ok := payload.Claims["picture"].(string); ok {
		profile.PhotoURL = v
	}
	if profile.Email == "" {
		return nil, fmt.Errorf("google token missing email claim")
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok && !verified {
		return nil, fmt.Errorf("google email not verified")
	}
	return profile, nil
}
