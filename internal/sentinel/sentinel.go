// Package sentinel defines a const-declarable error type used for the
// sentinel errors exposed across pgentry packages.
package sentinel

var _ error = Error("")

// Error is a string-backed error type that can be declared const. Because the
// type is comparable, errors.Is matches it through wrapped chains with the
// default == comparison, and const declaration rules out reassignment at
// package level (unlike values from errors.New).
type Error string

// Error implements the error interface.
func (e Error) Error() string {
	return string(e)
}
