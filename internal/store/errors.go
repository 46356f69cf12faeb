package store

import "errors"

var (
	// ErrStoreUnavailable is returned by every operation when no usable
	// connection to the document store exists.
	ErrStoreUnavailable = errors.New("document store unavailable")
	// ErrInvalidIdentifier means an id string is not a valid encoding of a
	// document key. It is distinct from a document being absent.
	ErrInvalidIdentifier = errors.New("invalid document identifier")
	// ErrInvalidCollection is returned for an empty collection name.
	ErrInvalidCollection = errors.New("collection name must not be empty")
)
