// Package experience extracts total years of professional experience from résumé text.
package experience

import "fmt"

// DateRangeError describes a date-range fragment that was found but cannot count toward experience
type DateRangeError struct {
	Fragment string
	Message  string
	Cause    error
}

func (e *DateRangeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("date range %q: %s: %v", e.Fragment, e.Message, e.Cause)
	}
	return fmt.Sprintf("date range %q: %s", e.Fragment, e.Message)
}

func (e *DateRangeError) Unwrap() error {
	return e.Cause
}
