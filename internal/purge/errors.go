package purge

import (
	"errors"
	"fmt"
)

// ErrIterationLimit reports that the similarity loop hit its iteration cap
// while matches remained.
var ErrIterationLimit = errors.New("iteration limit reached")

// PatternError reports a regular expression that failed to compile.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("compile pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// ErrorKind classifies the error for callers that map failures to exit paths.
func (e *PatternError) ErrorKind() string { return "pattern_compile" }
