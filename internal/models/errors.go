// ABOUTME: Typed error for invalid enum tokens, so callers can branch
// ABOUTME: with errors.As instead of string matching.
package models

import "fmt"

// ParamError reports an unparseable parameter token along with the set of
// accepted values.
type ParamError struct {
	Param    string
	Value    string
	Accepted []string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid %s: %q (expected one of %v)", e.Param, e.Value, e.Accepted)
}

// NewParamError builds a ParamError for a parameter name, the rejected
// value, and the accepted tokens.
func NewParamError(param, value string, accepted ...string) *ParamError {
	return &ParamError{Param: param, Value: value, Accepted: accepted}
}
