package ports

import (
	"context"

	"github.com/dosmed/drug-ordering-system/internal/core/domain"
)

// Repository is the uniform CRUD contract over the relational store.
//
// Absence is a normal outcome reported as domain.ErrNotFound; storage
// faults are logged at the repository boundary and reported as
// domain.ErrStorageUnavailable so callers can tell the two apart.
type Repository[ID comparable, T any] interface {
	// GetByID returns the entity with the given id.
	GetByID(ctx context.Context, id ID) (*T, error)
	// GetAll returns every stored entity; an empty slice when there are none.
	GetAll(ctx context.Context) ([]T, error)
	// Add persists a new entity. On success it returns (nil, nil) and
	// assigns the store-generated id to the passed entity in place. When
	// an entity with the same id already exists, the stored entity is
	// returned and nothing is written. A nil entity fails with
	// domain.ErrNilEntity; an invalid one with *validation.Error.
	Add(ctx context.Context, entity *T) (*T, error)
	// Remove deletes the entity with the given id and returns it;
	// domain.ErrNotFound when nothing matched.
	Remove(ctx context.Context, id ID) (*T, error)
	// Update overwrites the stored row and returns the prior value. When
	// no row exists for the entity's id nothing is written and
	// domain.ErrNotFound is returned. Same nil/validation contract as Add.
	Update(ctx context.Context, entity *T) (*T, error)
	// Clear deletes all rows and resets the auto-increment counter.
	// Partial failures are logged, not raised.
	Clear(ctx context.Context) error
}

// UserRepository adds username lookup to the generic contract.
type UserRepository interface {
	Repository[int64, domain.User]
	// GetByUsername returns domain.ErrNotFound for an empty name.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// DrugRepository adds the availability query to the generic contract.
type DrugRepository interface {
	Repository[int64, domain.Drug]
	// GetAvailable returns all drugs with in-stock quantity above zero.
	GetAvailable(ctx context.Context) ([]domain.Drug, error)
}

// OrderRepository adds the placement path to the generic contract.
type OrderRepository interface {
	Repository[int64, domain.Order]
	// PlaceOrder inserts the order header and one child row per
	// drug-id/quantity pair in a single transaction; any child failure
	// rolls the whole placement back. Duplicate-id semantics match Add.
	PlaceOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
}
