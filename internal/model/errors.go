package model

import "errors"

var (
	// ErrInvalidArgument marks malformed input: mismatched lengths, unknown
	// config tags, empty TSP maps and similar.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDomain marks a mathematically undefined operation such as the square
	// root of a negative number.
	ErrDomain = errors.New("domain error")
)
