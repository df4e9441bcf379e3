// Package client is the Go consumer of the matrimony API: identity plumbing,
// session resolution, route authorization decisions, and the biodata listing
// query engine.
package client

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailInUse         = errors.New("email already in use")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrPopupClosed        = errors.New("sign-in window closed before completing")
	ErrNoIdentity         = errors.New("no signed-in identity")
	ErrSubscriberExists   = errors.New("identity subscription already active")
)

const minPasswordLen = 8

// Identity is the authenticated principal reported by the identity provider.
type Identity struct {
	Email       string
	DisplayName string
	PhotoURL    string
	Provider    string
}

// ProfileUpdate carries the mutable display attributes of an identity.
// Nil fields are left unchanged.
type ProfileUpdate struct {
	DisplayName *string
	PhotoURL    *string
}

// Authenticator is the external identity provider boundary. Implementations
// verify credentials or drive a federated flow and return the resulting
// identity; they hold no session state of their own.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*Identity, error)
	Register(ctx context.Context, email, password string) (*Identity, error)
	FederatedSignIn(ctx context.Context) (*Identity, error)
}

// Gateway tracks the current identity and fans sign-in/sign-out completions
// out to a single subscriber.
type Gateway struct {
	auth Authenticator

	mu       sync.Mutex
	current  *Identity
	listener func(*Identity)
}

func NewGateway(auth Authenticator) (*Gateway, error) {
	if auth == nil {
		return nil, errors.New("authenticator is required")
	}
	return &Gateway{auth: auth}, nil
}

// CurrentIdentity returns the signed-in identity, or nil.
func (g *Gateway) CurrentIdentity() *Identity {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.current == nil {
		return nil
	}
	cp := *g.current
	return &cp
}

func (g *Gateway) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	id, err := g.auth.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	g.setIdentity(id)
	return id, nil
}

func (g *Gateway) SignUp(ctx context.Context, email, password string) (*Identity, error) {
	if len(password) < minPasswordLen {
		return nil, ErrWeakPassword
	}
	id, err := g.auth.Register(ctx, email, password)
	if err != nil {
		return nil, err
	}
	g.setIdentity(id)
	return id, nil
}

func (g *Gateway) SignInWithGoogle(ctx context.Context) (*Identity, error) {
	id, err := g.auth.FederatedSignIn(ctx)
	if err != nil {
		return nil, err
	}
	g.setIdentity(id)
	return id, nil
}

// UpdateProfile mutates the current identity's display attributes in place.
// Subscribers are not notified; only sign-in and sign-out emit events.
func (g *Gateway) UpdateProfile(_ context.Context, update ProfileUpdate) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.current == nil {
		return ErrNoIdentity
	}
	if update.DisplayName != nil {
		g.current.DisplayName = *update.DisplayName
	}
	if update.PhotoURL != nil {
		g.current.PhotoURL = *update.PhotoURL
	}
	return nil
}

func (g *Gateway) SignOut(_ context.Context) {
	g.setIdentity(nil)
}

// OnIdentityChanged registers the single identity subscriber. The callback is
// invoked once immediately with the current identity (or nil) and again after
// every completed sign-in or sign-out. The returned function unsubscribes.
func (g *Gateway) OnIdentityChanged(fn func(*Identity)) (func(), error) {
	if fn == nil {
		return nil, errors.New("callback is required")
	}

	g.mu.Lock()
	if g.listener != nil {
		g.mu.Unlock()
		return nil, ErrSubscriberExists
	}
	g.listener = fn
	current := g.current
	g.mu.Unlock()

	fn(current)

	return func() {
		g.mu.Lock()
		g.listener = nil
		g.mu.Unlock()
	}, nil
}

func (g *Gateway) setIdentity(id *Identity) {
	g.mu.Lock()
	g.current = id
	fn := g.listener
	g.mu.Unlock()

	if fn != nil {
		fn(id)
	}
}
