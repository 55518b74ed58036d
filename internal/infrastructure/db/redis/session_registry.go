package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/dosmed/drug-ordering-system/internal/core/domain"
)

// DefaultSessionTTL bounds how long an abandoned session blocks a
// username before it expires on its own.
const DefaultSessionTTL = 24 * time.Hour

// SessionRegistry enforces single-session-per-username across process
// instances. Insertion is a single SET NX so two racing logins for the
// same username can never both succeed.
type SessionRegistry struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

func NewSessionRegistry(client *redis.Client, ttl time.Duration, log zerolog.Logger) *SessionRegistry {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionRegistry{
		client: client,
		ttl:    ttl,
		log:    log.With().Str("component", "session_registry").Logger(),
	}
}

func (r *SessionRegistry) key(username string) string {
	return "session:" + username
}

// TryLogin records a session for username, rejecting with
// domain.ErrAlreadyLoggedIn when one is already live.
func (r *SessionRegistry) TryLogin(ctx context.Context, username, handle string) error {
	ok, err := r.client.SetNX(ctx, r.key(username), handle, r.ttl).Result()
	if err != nil {
		r.log.Error().Err(err).Str("username", username).Msg("session insert failed")
		return domain.ErrStorageUnavailable
	}
	if !ok {
		r.log.Warn().Str("username", username).Msg("user already logged in")
		return domain.ErrAlreadyLoggedIn
	}

	r.log.Info().Str("username", username).Msg("session registered")
	return nil
}

// Logout removes the session for username and reports whether one existed.
func (r *SessionRegistry) Logout(ctx context.Context, username string) bool {
	n, err := r.client.Del(ctx, r.key(username)).Result()
	if err != nil {
		r.log.Error().Err(err).Str("username", username).Msg("session delete failed")
		return false
	}
	if n == 0 {
		r.log.Warn().Str("username", username).Msg("no session to remove")
		return false
	}

	r.log.Info().Str("username", username).Msg("session removed")
	return true
}
