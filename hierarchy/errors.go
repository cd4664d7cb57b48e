package hierarchy

import (
	"errors"
	"fmt"
)

// ErrInvalid marks every structural validation failure of a primitive.
var ErrInvalid = errors.New("invalid hierarchy")

func invalidf(field string, format string, args ...any) error {
	return fmt.Errorf("%w: field %q: %s", ErrInvalid, field, fmt.Sprintf(format, args...))
}
