// ABOUTME: Error types returned by the metabolic calculator.
// ABOUTME: IncompleteProfileError names the personal data fields that blocked computation.
package metabolic

import (
	"errors"
	"strings"
)

// ErrNonPositiveTarget is returned when the goal offset drives the target to zero or below.
var ErrNonPositiveTarget = errors.New("target calories must be positive")

// IncompleteProfileError reports personal data that is missing, unparsable or out of domain.
type IncompleteProfileError struct {
	Fields []string
}

func (e *IncompleteProfileError) Error() string {
	if len(e.Fields) == 0 {
		return "incomplete profile: no personal data question"
	}
	return "incomplete profile: missing or invalid " + strings.Join(e.Fields, ", ")
}

// IsIncompleteProfile reports whether err is or wraps an IncompleteProfileError.
func IsIncompleteProfile(err error) bool {
	var ipe *IncompleteProfileError
	return errors.As(err, &ipe)
}
