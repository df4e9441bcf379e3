package auth

import (
	"github.com/tahmidr/matrimony-backend/internal/users"
)

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GoogleLoginRequest carries the Google-issued ID token to verify.
type GoogleLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// TokenRequest is the legacy token-exchange payload used by resolver clients.
type TokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// TokenResponse carries the bare access token the legacy exchange returns.
type TokenResponse struct {
	Token string `json:"token"`
}

// LoginResponse contains the tokens and user produced by a successful login.
type LoginResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	User         *users.UserDTO `json:"user"`
}
