package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrUnknownAction is returned when a wire action names a kind the feature does not define.
var ErrUnknownAction = errors.New("unknown action")

// ErrInvalidAction is returned when a wire action is missing a required field.
var ErrInvalidAction = errors.New("invalid action")
