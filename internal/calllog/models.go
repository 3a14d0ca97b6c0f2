// Package calllog holds the call-log domain types shared by the store,
// the repository, the daemon protocol and the UI.
package calllog

import (
	"fmt"
	"strings"
	"time"
)

// CallType mirrors the platform call-log type column.
type CallType int

const (
	Unknown            CallType = 0
	Incoming           CallType = 1
	Outgoing           CallType = 2
	Missed             CallType = 3
	Voicemail          CallType = 4
	Rejected           CallType = 5
	Blocked            CallType = 6
	AnsweredExternally CallType = 7
)

// EditableTypes are the call types offered by the edit form.
var EditableTypes = []CallType{Incoming, Outgoing, Missed}

// String returns the display label for the type.
func (t CallType) String() string {
	switch t {
	case Incoming:
		return "Incoming"
	case Outgoing:
		return "Outgoing"
	case Missed:
		return "Missed"
	case Voicemail:
		return "Voicemail"
	case Rejected:
		return "Rejected"
	case Blocked:
		return "Blocked"
	case AnsweredExternally:
		return "Answered Externally"
	default:
		return "Unknown"
	}
}

// ParseCallType accepts a label ("missed", "answered-externally") or the
// numeric column value.
func ParseCallType(s string) (CallType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	switch key {
	case "incoming", "1":
		return Incoming, nil
	case "outgoing", "2":
		return Outgoing, nil
	case "missed", "3":
		return Missed, nil
	case "voicemail", "4":
		return Voicemail, nil
	case "rejected", "5":
		return Rejected, nil
	case "blocked", "6":
		return Blocked, nil
	case "answeredexternally", "7":
		return AnsweredExternally, nil
	}
	return Unknown, fmt.Errorf("unknown call type %q", s)
}

// Entry is one call record as read from the store. Entries are snapshots:
// edits submit a new write and the list is re-read.
type Entry struct {
	ID       string   `json:"id"`
	Number   *string  `json:"number,omitempty"`
	Date     int64    `json:"date"` // milliseconds since epoch
	Type     CallType `json:"type"`
	Duration int64    `json:"duration"` // seconds
	Name     *string  `json:"name,omitempty"`
}

// Time returns the call timestamp in loc (Local when nil).
func (e Entry) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.UnixMilli(e.Date).In(loc)
}

// DisplayName prefers the cached name, then the number.
func (e Entry) DisplayName() string {
	if e.Name != nil && *e.Name != "" {
		return *e.Name
	}
	if e.Number != nil && *e.Number != "" {
		return *e.Number
	}
	return "Unknown"
}

// Values is the row written by an insert.
type Values struct {
	Number     string   `json:"number"`
	Date       int64    `json:"date"`
	Duration   int64    `json:"duration"`
	New        int      `json:"new"`
	Type       CallType `json:"type"`
	CachedName string   `json:"cachedName"`
}

// EditPayload is what the edit flow submits.
type EditPayload struct {
	ID              string
	Name            string
	Number          string
	DateString      string
	TimeString      string
	DurationSeconds int64
	Type            CallType
}

// Values parses the date and time strings in loc and builds the insert row.
func (p EditPayload) Values(loc *time.Location) (Values, error) {
	ts, err := ParseDateTime(p.DateString, p.TimeString, loc)
	if err != nil {
		return Values{}, err
	}
	return Values{
		Number:     p.Number,
		Date:       ts.UnixMilli(),
		Duration:   p.DurationSeconds,
		New:        1,
		Type:       p.Type,
		CachedName: p.Name,
	}, nil
}

// Capability names a call-log permission.
type Capability string

const (
	ReadCallLog  Capability = "read_call_log"
	WriteCallLog Capability = "write_call_log"
)

// Capabilities are requested together as a pair.
var Capabilities = []Capability{ReadCallLog, WriteCallLog}

// StringPtr returns a pointer to s. Convenience for building entries.
func StringPtr(s string) *string { return &s }
