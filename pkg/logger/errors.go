package logger

import "errors"

// ErrInvalidLevel is returned by ParseLevel for unknown level names.
var ErrInvalidLevel = errors.New("invalid log level")

// ErrInvalidStoreOptions is returned when per-store logger options cannot be interpreted.
var ErrInvalidStoreOptions = errors.New("invalid logger store options")
