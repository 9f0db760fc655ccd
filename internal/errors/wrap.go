package errors

import "fmt"

// ErrorWrapper provides context-aware error wrapping.
type ErrorWrapper struct {
	module    string
	operation string
}

// NewWrapper creates a new error wrapper with module and operation context.
func NewWrapper(module, operation string) *ErrorWrapper {
	return &ErrorWrapper{
		module:    module,
		operation: operation,
	}
}

// Wrap wraps an error with operation context.
// Returns nil if err is nil.
func (w *ErrorWrapper) Wrap(err error, userMessage string) error {
	if err == nil {
		return nil
	}
	return &WrappedError{
		Module:      w.module,
		Operation:   w.operation,
		Cause:       err,
		UserMessage: userMessage,
	}
}

// Wrapf wraps an error with a formatted user message.
func (w *ErrorWrapper) Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &WrappedError{
		Module:      w.module,
		Operation:   w.operation,
		Cause:       err,
		UserMessage: fmt.Sprintf(format, args...),
	}
}

// WrappedError contains both internal error details and a user-facing message.
type WrappedError struct {
	Module      string // module name (e.g., "bot", "classify", "storage")
	Operation   string // operation being performed (e.g., "classify_message", "send_reply")
	Cause       error
	UserMessage string
}

func (e *WrappedError) Error() string {
	return fmt.Sprintf("[%s:%s] %s: %v", e.Module, e.Operation, e.UserMessage, e.Cause)
}

func (e *WrappedError) Unwrap() error {
	return e.Cause
}

// GetUserMessage returns the user-friendly message from a WrappedError.
// Returns the error string if not a WrappedError.
func GetUserMessage(err error) string {
	if err == nil {
		return ""
	}
	var wrapped *WrappedError
	if As(err, &wrapped) {
		return wrapped.UserMessage
	}
	return err.Error()
}
