// Package session holds the process-local registry of live sessions.
// The registry is the sole serialization point for login/logout on a
// given username.
package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dosmed/drug-ordering-system/internal/core/domain"
)

// Registry maps usernames to opaque session handles. Insertion uses a
// single atomic insert-if-absent, so two racing logins for the same
// username can never both succeed.
type Registry struct {
	sessions sync.Map
	log      zerolog.Logger
}

func NewRegistry(log zerolog.Logger) *Registry {
	return &Registry{log: log.With().Str("component", "session_registry").Logger()}
}

// TryLogin records a session for username, rejecting with
// domain.ErrAlreadyLoggedIn when one is already live.
func (r *Registry) TryLogin(_ context.Context, username, handle string) error {
	if _, loaded := r.sessions.LoadOrStore(username, handle); loaded {
		r.log.Warn().Str("username", username).Msg("user already logged in")
		return domain.ErrAlreadyLoggedIn
	}

	r.log.Info().Str("username", username).Msg("session registered")
	return nil
}

// Logout removes the session for username and reports whether one existed.
func (r *Registry) Logout(_ context.Context, username string) bool {
	if _, loaded := r.sessions.LoadAndDelete(username); !loaded {
		r.log.Warn().Str("username", username).Msg("no session to remove")
		return false
	}

	r.log.Info().Str("username", username).Msg("session removed")
	return true
}
