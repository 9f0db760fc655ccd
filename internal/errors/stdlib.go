package errors

import "errors"

// Re-exported standard library helpers so callers only import one errors package.
var (
	New    = errors.New
	Is     = errors.Is
	As     = errors.As
	Join   = errors.Join
	Unwrap = errors.Unwrap
)
