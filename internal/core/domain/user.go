package domain

import "time"

// User models a staff account. PasswordHash and Salt are fixed-length
// hex strings (see pkg/password); the zero ID marks an entity that has
// not been persisted yet.
type User struct {
	ID                 int64     `json:"id"`
	Username           string    `json:"username"`
	FirstName          string    `json:"first_name"`
	LastName           string    `json:"last_name"`
	PasswordHash       string    `json:"-"`
	Salt               string    `json:"-"`
	Role               Role      `json:"role"`
	Email              string    `json:"email"`
	NextPasswordChange time.Time `json:"next_password_change"`
}

// FieldValues enumerates every declared field for the completeness phase
// of validation.
func (u *User) FieldValues() []any {
	return []any{
		u.ID,
		u.Username,
		u.FirstName,
		u.LastName,
		u.PasswordHash,
		u.Salt,
		u.Role,
		u.Email,
		u.NextPasswordChange,
	}
}

// FullName is the display form used by order projections.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// UserBuilder assembles a User with sensible defaults, mirroring how
// callers construct transient entities before validation and persistence.
type UserBuilder struct {
	u User
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{u: User{
		Username:           "user-name",
		FirstName:          "first-name",
		LastName:           "last-name",
		Role:               RoleAdmin,
		Email:              "email@dos.com",
		NextPasswordChange: time.Now().UTC(),
	}}
}

func (b *UserBuilder) From(other *User) *UserBuilder {
	b.u = *other
	return b
}

func (b *UserBuilder) ID(id int64) *UserBuilder {
	b.u.ID = id
	return b
}

func (b *UserBuilder) Username(username string) *UserBuilder {
	b.u.Username = username
	return b
}

func (b *UserBuilder) FirstName(firstName string) *UserBuilder {
	b.u.FirstName = firstName
	return b
}

func (b *UserBuilder) LastName(lastName string) *UserBuilder {
	b.u.LastName = lastName
	return b
}

func (b *UserBuilder) PasswordHash(hash string) *UserBuilder {
	b.u.PasswordHash = hash
	return b
}

func (b *UserBuilder) Salt(salt string) *UserBuilder {
	b.u.Salt = salt
	return b
}

func (b *UserBuilder) Role(role Role) *UserBuilder {
	b.u.Role = role
	return b
}

func (b *UserBuilder) Email(email string) *UserBuilder {
	b.u.Email = email
	return b
}

func (b *UserBuilder) NextPasswordChange(t time.Time) *UserBuilder {
	b.u.NextPasswordChange = t
	return b
}

func (b *UserBuilder) Build() *User {
	u := b.u
	return &u
}
