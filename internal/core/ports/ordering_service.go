package ports

import (
	"context"
	"time"

	"github.com/dosmed/drug-ordering-system/internal/core/domain"
)

// DrugProjection is the wire-safe view of a catalog entry handed to
// clients building an order: Selected and ToOrder always start at their
// zero values.
type DrugProjection struct {
	ID          int64  `json:"id"`
	Selected    bool   `json:"selected"`
	Name        string `json:"name"`
	Description string `json:"description"`
	InStock     int64  `json:"in_stock"`
	ToOrder     int64  `json:"to_order"`
}

// OrderProjection is the wire-safe view of an order. OrderedBy carries
// the ordering user's display name, or the numeric id as a string when
// the user record is missing.
type OrderProjection struct {
	ID          int64      `json:"id"`
	OrderedBy   string     `json:"ordered_by"`
	Delivered   bool       `json:"delivered"`
	OrderedAt   time.Time  `json:"ordered_at"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
}

// OrderingService is the core boundary consumed by the remote-facing
// adapter.
type OrderingService interface {
	// Login verifies credentials and registers a session. Unknown
	// username and wrong password are indistinguishable: both return
	// domain.ErrInvalidCredentials. Correct credentials with a live
	// session return domain.ErrAlreadyLoggedIn.
	Login(ctx context.Context, username, pwd, handle string) (*domain.User, error)
	// Logout drops the user's session, if any.
	Logout(ctx context.Context, username string)

	// ProvisionUser creates a user from a plaintext password: a fresh
	// salt is generated and the hash derived before persistence.
	// Returns the existing user on a duplicate, nil on success.
	ProvisionUser(ctx context.Context, user *domain.User, plaintext string) (*domain.User, error)
	// ImportUser creates a user whose hash and salt were precomputed by
	// the caller; the entity is passed through unchanged.
	ImportUser(ctx context.Context, user *domain.User) (*domain.User, error)
	// ChangePassword fails closed: false on unknown user, old-password
	// mismatch, or update failure.
	ChangePassword(ctx context.Context, userID int64, oldPwd, newPwd string) bool
	// UpdateUser persists a modified user; false when the id is unknown
	// or the update was rejected.
	UpdateUser(ctx context.Context, user *domain.User) bool

	// AvailableDrugs lists in-stock drugs as projections.
	AvailableDrugs(ctx context.Context) []DrugProjection
	// AddDrug, UpdateDrug and RemoveDrug manage the catalog.
	AddDrug(ctx context.Context, drug *domain.Drug) (*domain.Drug, error)
	UpdateDrug(ctx context.Context, drug *domain.Drug) bool
	RemoveDrug(ctx context.Context, drugID int64) bool

	// PlaceOrder defaults DeliveredAt to now plus the delivery ETA when
	// unset, then persists header and line items atomically. True iff
	// the order was stored.
	PlaceOrder(ctx context.Context, order *domain.Order) bool
	// Orders lists all orders as projections.
	Orders(ctx context.Context) []OrderProjection
	// CompleteOrder marks an order delivered; a no-op on unknown ids.
	CompleteOrder(ctx context.Context, orderID int64)
	// CancelOrder removes an order and its line items; a no-op on
	// unknown ids.
	CancelOrder(ctx context.Context, orderID int64)
}
