// Package edit implements structural edits of a single table. Every function
// returns a new table and leaves its input untouched; slices that an edit does
// not touch are shared with the input.
//
// Edits never cascade into relationships. A relationship whose referred key
// is changed here keeps its referredColumn until it is saved again.
package edit

import "errors"

var (
	// ErrIndexOutOfRange is returned when a position does not address an element.
	ErrIndexOutOfRange = errors.New("edit: index out of range")

	// ErrInvalidUniqueKey is returned when a compound unique key has a blank
	// name or no columns.
	ErrInvalidUniqueKey = errors.New("edit: compound unique key needs a name and at least one column")
)
