package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/dosmed/drug-ordering-system/internal/core/domain"
	"github.com/dosmed/drug-ordering-system/internal/core/validation"
)

// storageErr wraps a driver fault so callers can tell "storage failed"
// apart from "not found". The cause is logged at the call site.
func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrStorageUnavailable, op, err)
}

type userRow struct {
	ID                 int64     `db:"id"`
	Username           string    `db:"username"`
	FirstName          string    `db:"first_name"`
	LastName           string    `db:"last_name"`
	PasswordHash       string    `db:"password_hash"`
	Salt               string    `db:"salt"`
	RoleCode           int64     `db:"role_code"`
	Email              string    `db:"email"`
	NextPasswordChange time.Time `db:"next_password_change"`
}

func (r userRow) toDomain() (*domain.User, error) {
	role, err := domain.RoleFromCode(r.RoleCode)
	if err != nil {
		return nil, err
	}
	return &domain.User{
		ID:                 r.ID,
		Username:           r.Username,
		FirstName:          r.FirstName,
		LastName:           r.LastName,
		PasswordHash:       r.PasswordHash,
		Salt:               r.Salt,
		Role:               role,
		Email:              r.Email,
		NextPasswordChange: r.NextPasswordChange,
	}, nil
}

// UserRepository persists users. Every write is gated by the user
// validator before touching the store.
type UserRepository struct {
	db       *sqlx.DB
	validate validation.Validator[*domain.User]
	log      zerolog.Logger
}

func NewUserRepository(db *sqlx.DB, log zerolog.Logger) *UserRepository {
	return &UserRepository{
		db:       db,
		validate: validation.ForUser(),
		log:      log.With().Str("component", "user_repository").Logger(),
	}
}

const selectUserColumns = `SELECT id, username, first_name, last_name, password_hash, salt, role_code, email, next_password_change FROM users`

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var row userRow
	err := r.db.GetContext(ctx, &row, selectUserColumns+` WHERE id = ?;`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		r.log.Error().Err(err).Int64("id", id).Msg("user lookup failed")
		return nil, storageErr("get user", err)
	}
	return row.toDomain()
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if username == "" {
		return nil, domain.ErrNotFound
	}

	var row userRow
	err := r.db.GetContext(ctx, &row, selectUserColumns+` WHERE username = ?;`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		r.log.Error().Err(err).Str("username", username).Msg("user lookup failed")
		return nil, storageErr("get user by username", err)
	}
	return row.toDomain()
}

func (r *UserRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	var rows []userRow
	if err := r.db.SelectContext(ctx, &rows, selectUserColumns+`;`); err != nil {
		r.log.Error().Err(err).Msg("listing users failed")
		return nil, storageErr("list users", err)
	}

	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		user, err := row.toDomain()
		if err != nil {
			r.log.Error().Err(err).Int64("id", row.ID).Msg("stored user is corrupt")
			return nil, err
		}
		users = append(users, *user)
	}
	return users, nil
}

func (r *UserRepository) Add(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, domain.ErrNilEntity
	}
	if err := r.validate.Validate(user); err != nil {
		r.log.Warn().Err(err).Msg("user rejected by validator")
		return nil, err
	}

	if user.ID != 0 {
		if existing, err := r.GetByID(ctx, user.ID); err == nil {
			r.log.Warn().Int64("id", user.ID).Msg("user id already stored")
			return existing, nil
		}
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, first_name, last_name, password_hash, salt, role_code, email, next_password_change)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?);`,
		user.Username, user.FirstName, user.LastName, user.PasswordHash, user.Salt,
		user.Role.Code(), user.Email, user.NextPasswordChange)
	if err != nil {
		// A unique-constraint hit on username means the account exists.
		if existing, lookupErr := r.GetByUsername(ctx, user.Username); lookupErr == nil {
			r.log.Warn().Str("username", user.Username).Msg("username already stored")
			return existing, nil
		}
		r.log.Error().Err(err).Msg("user insert failed")
		return nil, storageErr("insert user", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		r.log.Error().Err(err).Msg("reading back generated user id failed")
		return nil, storageErr("insert user", err)
	}
	user.ID = id
	return nil, nil
}

func (r *UserRepository) Remove(ctx context.Context, id int64) (*domain.User, error) {
	old, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?;`, id)
	if err != nil {
		r.log.Error().Err(err).Int64("id", id).Msg("user delete failed")
		return nil, storageErr("delete user", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrNotFound
	}
	return old, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, domain.ErrNilEntity
	}
	if err := r.validate.Validate(user); err != nil {
		r.log.Warn().Err(err).Msg("user rejected by validator")
		return nil, err
	}

	old, err := r.GetByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE users SET username = ?, first_name = ?, last_name = ?, password_hash = ?, salt = ?, role_code = ?, email = ?, next_password_change = ?
		 WHERE id = ?;`,
		user.Username, user.FirstName, user.LastName, user.PasswordHash, user.Salt,
		user.Role.Code(), user.Email, user.NextPasswordChange, user.ID)
	if err != nil {
		r.log.Error().Err(err).Int64("id", user.ID).Msg("user update failed")
		return nil, storageErr("update user", err)
	}
	return old, nil
}

func (r *UserRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM users;`); err != nil {
		r.log.Error().Err(err).Msg("clearing users failed")
		return storageErr("clear users", err)
	}
	if err := resetSequence(r.db, "users"); err != nil {
		r.log.Error().Err(err).Msg("resetting users sequence failed")
	}
	return nil
}
