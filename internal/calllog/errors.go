package calllog

import "fmt"

// PermissionError reports a capability that was not granted. Fetches
// refuse locally with this error before any I/O.
type PermissionError struct {
	Capability Capability
}

func (e *PermissionError) Error() string {
	if e.Capability == WriteCallLog {
		return "Write Call Log permission is required."
	}
	return "Read Call Log permission is required to display call history."
}

// FetchError wraps a failed store query.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("Failed to load call logs: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ValidationError reports an unparsable field. Nothing is written.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// WriteError wraps a failed insert. It is logged, never returned to the
// edit flow.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("Failed to update call log: %v", e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
