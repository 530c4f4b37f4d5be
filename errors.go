package cronner

import (
	"errors"
	"fmt"
)

// ErrInvalidSegmentCount is returned when rule text does not normalize to
// exactly seven fields.
var ErrInvalidSegmentCount = errors.New("invalid number of segments")

// ErrEmptyRule is returned when rule text is empty or only whitespace.
var ErrEmptyRule = errors.New("empty rule")

// PatternError reports a comma-separated token that matches none of the
// supported shapes, or a shape the field does not allow.
type PatternError struct {
	Field Field
	Token string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern '%s' in %s", e.Token, e.Field)
}
