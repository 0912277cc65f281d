package integrity

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the entity addressed by its previous key no
// longer exists. Callers treat it as a no-op.
var ErrNotFound = errors.New("integrity: entity not found")

// NotFoundError carries the kind and key of the missing entity.
type NotFoundError struct {
	kind string
	key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("integrity: %s %q not found", e.kind, e.key)
}

// Is makes errors.Is(err, ErrNotFound) match.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// Kind returns "table" or "relationship".
func (e *NotFoundError) Kind() string {
	return e.kind
}

// Key returns the name that was looked up.
func (e *NotFoundError) Key() string {
	return e.key
}

func newNotFound(kind, key string) *NotFoundError {
	return &NotFoundError{kind: kind, key: key}
}

// IsNotFound reports whether err signals a missing entity.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNotFound)
}
