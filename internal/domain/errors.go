package domain

import "errors"

var (
	// ErrInvalidArgument signals a caller-supplied value that fails validation.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidLeadKind signals an id or kind that resolves to no recognized lead.
	ErrInvalidLeadKind = errors.New("invalid lead kind")
	// ErrSourceUnavailable signals a result source that could not serve the request.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrNotFound signals a missing file or resource.
	ErrNotFound = errors.New("not found")
	// ErrParse signals malformed persisted data.
	ErrParse = errors.New("parse failed")
	// ErrWrite signals a failed write to disk.
	ErrWrite = errors.New("write failed")
	// ErrEmptyCollection signals an export with no leads to write.
	ErrEmptyCollection = errors.New("empty collection")
)
