package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/multierr"
)

// Session is the derived authorization state bound to an identity. Token and
// Role are set only while Identity is non-nil. Ready is false exactly while a
// resolution for the latest identity change is in flight.
type Session struct {
	Identity *Identity
	Token    string
	Role     string
	Ready    bool

	// Err aggregates non-fatal resolution failures. A session with Err set
	// is degraded, not broken: Ready still becomes true.
	Err error
}

// Resolver turns identity-change events into resolved sessions. Each change
// starts a new resolution generation; results belonging to a superseded
// generation are discarded so a slow backend call can never apply a stale
// token or role to a newer identity.
type Resolver struct {
	api   *API
	store TokenStore

	mu         sync.Mutex
	generation uint64
	session    Session
	onChange   func(Session)
}

// NewResolver builds a resolver over the given API and token store. onChange,
// when non-nil, is invoked with a snapshot after every session update.
func NewResolver(api *API, store TokenStore, onChange func(Session)) (*Resolver, error) {
	if api == nil {
		return nil, errors.New("api is required")
	}
	if store == nil {
		return nil, errors.New("token store is required")
	}
	return &Resolver{api: api, store: store, onChange: onChange}, nil
}

// Session returns a snapshot of the current session.
func (r *Resolver) Session() Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session
}

// Resolve processes one identity-change event synchronously. A nil identity
// clears the session and stored token without any network calls.
func (r *Resolver) Resolve(ctx context.Context, id *Identity) {
	gen := r.begin(id)
	if id == nil {
		r.apply(gen, "", "", nil)
		return
	}
	r.resolve(ctx, gen, id.Email)
}

// Bind subscribes the resolver to the gateway's identity changes. The
// resolution generation is claimed synchronously in the callback so event
// order is preserved; the network work runs off the caller's goroutine.
// The returned function unsubscribes.
func (r *Resolver) Bind(ctx context.Context, gw *Gateway) (func(), error) {
	if gw == nil {
		return nil, errors.New("gateway is required")
	}
	return gw.OnIdentityChanged(func(id *Identity) {
		gen := r.begin(id)
		if id == nil {
			r.apply(gen, "", "", nil)
			return
		}
		go r.resolve(ctx, gen, id.Email)
	})
}

func (r *Resolver) resolve(ctx context.Context, gen uint64, email string) {
	token, tokenErr := r.api.ExchangeToken(ctx, email)
	role, roleErr := r.api.FetchRole(ctx, email)

	var err error
	if tokenErr != nil {
		err = multierr.Append(err, fmt.Errorf("token exchange: %w", tokenErr))
		token = ""
	}
	if roleErr != nil {
		err = multierr.Append(err, fmt.Errorf("role lookup: %w", roleErr))
		role = ""
	}

	r.apply(gen, token, role, err)
}

// begin claims a new resolution generation and moves the session out of the
// ready state.
func (r *Resolver) begin(id *Identity) uint64 {
	r.mu.Lock()
	r.generation++
	gen := r.generation
	r.session = Session{Identity: id}
	snapshot := r.session
	fn := r.onChange
	r.mu.Unlock()

	if fn != nil {
		fn(snapshot)
	}
	return gen
}

// apply finishes a resolution. It is a no-op when gen has been superseded.
// Token persistence and the session mutation happen under one lock so a
// sign-out can never be observed half-applied.
func (r *Resolver) apply(gen uint64, token, role string, err error) bool {
	r.mu.Lock()

	if gen != r.generation {
		r.mu.Unlock()
		return false
	}

	if token != "" {
		if saveErr := r.store.Save(token); saveErr != nil {
			err = multierr.Append(err, fmt.Errorf("persist token: %w", saveErr))
		}
	} else {
		if clearErr := r.store.Clear(); clearErr != nil {
			err = multierr.Append(err, fmt.Errorf("clear token: %w", clearErr))
		}
	}

	r.session.Token = token
	r.session.Role = role
	r.session.Err = err
	r.session.Ready = true
	snapshot := r.session
	fn := r.onChange
	r.mu.Unlock()

	if fn != nil {
		fn(snapshot)
	}
	return true
}
