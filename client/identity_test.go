package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthenticator struct {
	creds map[string]string
}

func (s *stubAuthenticator) Authenticate(_ context.Context, email, password string) (*Identity, error) {
	if s.creds[email] != password {
		return nil, ErrInvalidCredentials
	}
	return &Identity{Email: email, Provider: "password"}, nil
}

func (s *stubAuthenticator) Register(_ context.Context, email, password string) (*Identity, error) {
	if _, exists := s.creds[email]; exists {
		return nil, ErrEmailInUse
	}
	s.creds[email] = password
	return &Identity{Email: email, Provider: "password"}, nil
}

func (s *stubAuthenticator) FederatedSignIn(_ context.Context) (*Identity, error) {
	return &Identity{Email: "federated@example.com", Provider: "google"}, nil
}

func newTestGateway(t *testing.T) *Gateway {
	t.Helper()
	gw, err := NewGateway(&stubAuthenticator{creds: map[string]string{
		"alice@example.com": "correct-horse",
	}})
	require.NoError(t, err)
	return gw
}

func TestGatewaySingleSubscription(t *testing.T) {
	gw := newTestGateway(t)

	var immediate []*Identity
	unsubscribe, err := gw.OnIdentityChanged(func(id *Identity) {
		immediate = append(immediate, id)
	})
	require.NoError(t, err)
	require.Len(t, immediate, 1, "subscriber is called once immediately")
	assert.Nil(t, immediate[0])

	_, err = gw.OnIdentityChanged(func(*Identity) {})
	assert.ErrorIs(t, err, ErrSubscriberExists)

	unsubscribe()
	_, err = gw.OnIdentityChanged(func(*Identity) {})
	assert.NoError(t, err)
}

func TestGatewaySignInAndOutNotify(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	var events []*Identity
	_, err := gw.OnIdentityChanged(func(id *Identity) {
		events = append(events, id)
	})
	require.NoError(t, err)

	id, err := gw.SignIn(ctx, "alice@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", id.Email)

	gw.SignOut(ctx)

	require.Len(t, events, 3)
	assert.Nil(t, events[0])
	assert.Equal(t, "alice@example.com", events[1].Email)
	assert.Nil(t, events[2])
	assert.Nil(t, gw.CurrentIdentity())
}

func TestGatewaySignInBadCredentials(t *testing.T) {
	gw := newTestGateway(t)

	_, err := gw.SignIn(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, gw.CurrentIdentity())
}

func TestGatewaySignUpWeakPassword(t *testing.T) {
	gw := newTestGateway(t)

	_, err := gw.SignUp(context.Background(), "bob@example.com", "short")
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestGatewaySignUpEmailInUse(t *testing.T) {
	gw := newTestGateway(t)

	_, err := gw.SignUp(context.Background(), "alice@example.com", "long-enough-pass")
	assert.ErrorIs(t, err, ErrEmailInUse)
}

func TestGatewayUpdateProfileRequiresIdentity(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	name := "Alice"
	err := gw.UpdateProfile(ctx, ProfileUpdate{DisplayName: &name})
	assert.ErrorIs(t, err, ErrNoIdentity)

	_, err = gw.SignIn(ctx, "alice@example.com", "correct-horse")
	require.NoError(t, err)

	require.NoError(t, gw.UpdateProfile(ctx, ProfileUpdate{DisplayName: &name}))
	assert.Equal(t, "Alice", gw.CurrentIdentity().DisplayName)
}
