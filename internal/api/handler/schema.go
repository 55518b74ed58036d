package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type provisionUserRequest struct {
	Username  string `json:"username"   validate:"required"`
	Password  string `json:"password"   validate:"required"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
	Role      string `json:"role"       validate:"required,oneof=admin pharmacy_staff hospital_staff"`
	Email     string `json:"email"      validate:"required,email"`
}

// importUserRequest carries credential material precomputed by the
// caller, for migrating accounts from another instance.
type importUserRequest struct {
	Username           string    `json:"username"             validate:"required"`
	PasswordHash       string    `json:"password_hash"        validate:"required,len=64"`
	Salt               string    `json:"salt"                 validate:"required,len=64"`
	FirstName          string    `json:"first_name"           validate:"required"`
	LastName           string    `json:"last_name"            validate:"required"`
	Role               string    `json:"role"                 validate:"required,oneof=admin pharmacy_staff hospital_staff"`
	Email              string    `json:"email"                validate:"required,email"`
	NextPasswordChange time.Time `json:"next_password_change" validate:"required"`
}

// updateUserRequest replaces the stored record wholesale; credential
// fields travel with it so the update path stays symmetric with import.
type updateUserRequest struct {
	Username           string    `json:"username"             validate:"required"`
	PasswordHash       string    `json:"password_hash"        validate:"required,len=64"`
	Salt               string    `json:"salt"                 validate:"required,len=64"`
	FirstName          string    `json:"first_name"           validate:"required"`
	LastName           string    `json:"last_name"            validate:"required"`
	Role               string    `json:"role"                 validate:"required,oneof=admin pharmacy_staff hospital_staff"`
	Email              string    `json:"email"                validate:"required,email"`
	NextPasswordChange time.Time `json:"next_password_change" validate:"required"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

type drugRequest struct {
	Name        string `json:"name"        validate:"required"`
	Description string `json:"description"`
	InStock     int64  `json:"in_stock"    validate:"gte=0"`
}

type placeOrderRequest struct {
	Drugs       map[int64]int64 `json:"drugs"        validate:"required,min=1"`
	DeliveredAt *time.Time      `json:"delivered_at"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

// userResponse never carries credential material.
type userResponse struct {
	ID                 int64     `json:"id"`
	Username           string    `json:"username"`
	FirstName          string    `json:"first_name"`
	LastName           string    `json:"last_name"`
	Role               string    `json:"role"`
	Email              string    `json:"email"`
	NextPasswordChange time.Time `json:"next_password_change"`
}

type placeOrderResponse struct {
	ID int64 `json:"id"`
}
