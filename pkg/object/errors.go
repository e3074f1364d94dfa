package object

import (
	"errors"
	"fmt"
)

// Sentinel errors classifying every failure mode of the read path.
// Callers match with errors.Is.
var (
	// ErrNotFound means no loose object file exists for the hash.
	ErrNotFound = errors.New("object not found")

	// ErrMalformed means the object exists but cannot be decoded: a broken
	// zlib stream, a bad envelope, or a payload violating its type's format.
	ErrMalformed = errors.New("malformed object")

	// ErrUnsupportedType means the envelope is well-formed but its type
	// token is not one of blob, tree or commit.
	ErrUnsupportedType = errors.New("unsupported object type")

	// ErrBadHash means an object name is not 40 hex characters.
	ErrBadHash = errors.New("invalid object name")
)

// NotFoundError reports an absent object together with the absolute
// filesystem path that was probed for it.
type NotFoundError struct {
	Hash Hash
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("object %s not found at %s", e.Hash, e.Path)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrNotFound) match any NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
