package biquad

import "fmt"

// DesignError reports a filter design parameter outside the usable range.
type DesignError struct {
	Field string
	Value float64
}

func (e *DesignError) Error() string {
	return fmt.Sprintf("biquad design: invalid %s: %g", e.Field, e.Value)
}
