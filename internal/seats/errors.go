package seats

import (
	"errors"
	"fmt"
)

var (
	ErrSeatFetchFailed       = errors.New("failed to fetch seats")
	ErrSeatNotSelectable     = errors.New("seat is not selectable")
	ErrSelectionLimitReached = errors.New("selection limit reached")
)

// SelectionLimitError is returned when picking one more seat would exceed the cap
type SelectionLimitError struct {
	Limit int
}

func (e *SelectionLimitError) Error() string {
	return fmt.Sprintf("at most %d seats can be selected", e.Limit)
}

func (e *SelectionLimitError) Unwrap() error {
	return ErrSelectionLimitReached
}
