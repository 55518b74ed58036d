package ports

import "context"

// SessionRegistry gates logins to a single active session per username
// and stashes an opaque handle for out-of-band notification. Handles are
// never looked up by value.
type SessionRegistry interface {
	// TryLogin atomically records a session for username. It returns
	// domain.ErrAlreadyLoggedIn when a live session exists; under
	// concurrent attempts for one username exactly one call succeeds.
	TryLogin(ctx context.Context, username, handle string) error
	// Logout removes the session for username. It reports whether a
	// session was actually removed; a no-op is logged as a warning.
	Logout(ctx context.Context, username string) bool
}
