package service

import "errors"

// Validation errors. The HTTP layer maps them to 400 responses.
var (
	ErrMissingFields    = errors.New("missing required fields")
	ErrNameTooShort     = errors.New("name too short")
	ErrPasswordTooShort = errors.New("password too short")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrTopicRequired    = errors.New("topic required")
	ErrTopicTooLong     = errors.New("topic too long")
	ErrInvalidLevel     = errors.New("invalid level")
	ErrTextTooLong      = errors.New("text too long")
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionInvalid     = errors.New("session expired or invalid")
	ErrUserNotFound       = errors.New("user not found")
	ErrClanExists         = errors.New("clan already exists")
	ErrClanNotFound       = errors.New("clan not found")
	ErrNotInClan          = errors.New("user is not in a clan")
	ErrAIUnavailable      = errors.New("ai service temporarily unavailable")
)
