package core

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
)

type options struct {
	logger *slog.Logger
	newID  func() (string, error)
}

func defaultOptions() options {
	return options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		newID:  newUUID,
	}
}

// Option configures a Collection.
type Option func(*options)

// WithLogger sets the logger used to report collection operations.
//
// If nil is passed, logging is disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		}
		o.logger = logger
	}
}

// WithIDGenerator sets the function used to create ids for documents that
// are created without an _id field.
//
// If nil is passed, random UUIDs are used.
func WithIDGenerator(fn func() (string, error)) Option {
	return func(o *options) {
		if fn == nil {
			fn = newUUID
		}
		o.newID = fn
	}
}

func newUUID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
