package domain

import "errors"

var ErrNotFound = errors.New("entity not found")
var ErrStorageUnavailable = errors.New("storage unavailable")
var ErrNilEntity = errors.New("nil entity")
var ErrAlreadyLoggedIn = errors.New("user already logged in")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUnknownRole = errors.New("unknown role code")
