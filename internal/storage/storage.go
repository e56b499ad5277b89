package storage

import "errors"

// ErrNotFound is returned by Load when no record exists under the name.
var ErrNotFound = errors.New("record not found")

// Storage persists named flat JSON records. The contract is best-effort:
// a failed Save loses at most the last mutation, and records carry no
// version or migration scheme.
type Storage interface {
	// Load reads the record into the given value. Returns ErrNotFound
	// when the record has never been saved.
	Load(name string, into interface{}) error

	// Save writes the record, replacing any previous value.
	Save(name string, value interface{}) error

	// Delete removes the record. Deleting a missing record is a no-op.
	Delete(name string) error
}
