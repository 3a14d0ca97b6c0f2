package app

import (
	"github.com/reign/calleditor/internal/calllog"
	"github.com/reign/calleditor/internal/permission"
)

// GrantsLoadedMsg carries the stored grants read on startup.
type GrantsLoadedMsg struct {
	Gate permission.Gate
	Err  error
}

// PermissionResultMsg carries the answer to a permission request.
type PermissionResultMsg struct {
	Result map[calllog.Capability]bool
	Err    error
}

// CallLogsLoadedMsg carries the result of one fetch. RequestID ties it to
// the fetch that produced it.
type CallLogsLoadedMsg struct {
	RequestID string
	Entries   []calllog.Entry
	Err       error
}

// WriteDoneMsg is sent when a write attempt finishes. Err is only set for
// input that failed validation; store failures are swallowed.
type WriteDoneMsg struct {
	Err error
}

// ClearTransientErrorMsg clears a transient error after a timeout.
type ClearTransientErrorMsg struct{}
