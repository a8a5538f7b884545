package gbce

import "errors"

// Errors returned by the exchange and its securities.
//
// They are always wrapped with some context, use errors.Is to test for them.
var (
	// ErrInvalidArgument reports a caller supplied value that violates a precondition.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrDomain reports a mathematically undefined result.
	ErrDomain = errors.New("division undefined")
	// ErrNotFound reports an unknown symbol.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists reports a duplicate symbol registration.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNoData reports an aggregate query without eligible data.
	ErrNoData = errors.New("no data")
	// ErrStaleData reports an aggregate query blocked by a security that has never traded.
	ErrStaleData = errors.New("stale data")
)
