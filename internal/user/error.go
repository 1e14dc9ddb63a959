package user

import "errors"

var (
	ErrProfileNotFound    = errors.New("profile not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrUsernameExists     = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
	ErrNothingToUpdate    = errors.New("no profile fields to update")

	PgUniqueViolation = "23505"
)
