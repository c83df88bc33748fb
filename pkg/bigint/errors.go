package bigint

import "errors"

var (
	// ErrDivisionByZero is returned by every quotient or remainder operation
	// whose divisor is zero.
	ErrDivisionByZero = errors.New("bigint: division by zero")

	// ErrSyntax is returned by ParseStrict for text that is not a decimal integer.
	ErrSyntax = errors.New("bigint: invalid decimal integer")

	// ErrOutOfRange is returned when a value does not fit a native integer.
	ErrOutOfRange = errors.New("bigint: value out of range")
)
