// Package daemon provides the server, client and protocol types for sharing
// the call-log store over a Unix socket using NDJSON.
package daemon

import "github.com/reign/calleditor/internal/calllog"

// Command names.
const (
	CmdQuery     = "query"
	CmdInsert    = "insert"
	CmdGrants    = "grants"
	CmdSetGrants = "set_grants"
	CmdPing      = "ping"
)

// Command is sent from a client to the daemon.
type Command struct {
	Cmd    string                      `json:"cmd"`
	Limit  int                         `json:"limit,omitempty"`
	Values *calllog.Values             `json:"values,omitempty"`
	Grants map[calllog.Capability]bool `json:"grants,omitempty"`
}

// Response is returned by the daemon after processing a command.
type Response struct {
	OK      bool                        `json:"ok"`
	Error   string                      `json:"error,omitempty"`
	Entries []calllog.Entry             `json:"entries,omitempty"`
	ID      string                      `json:"id,omitempty"`
	Grants  map[calllog.Capability]bool `json:"grants,omitempty"`
}
