package dialect

import (
	"errors"
	"fmt"
)

var (
	// ErrBoundary is the sentinel wrapped by every *BoundaryError.
	ErrBoundary = errors.New("malformed code block")

	// ErrUnknownDialect is returned by [ByName] for an unsupported name.
	ErrUnknownDialect = errors.New("unknown dialect")
)

// BoundaryError reports an opening delimiter whose block could not be
// delimited: an unclosed fence or environment, or a directive whose code
// lines are all blank.
type BoundaryError struct {
	Dialect string
	Offset  int
	Reason  string
}

func (e *BoundaryError) Error() string {
	return fmt.Sprintf("%s block at offset %d: %s", e.Dialect, e.Offset, e.Reason)
}

func (e *BoundaryError) Unwrap() error {
	return ErrBoundary
}
