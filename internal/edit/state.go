// Package edit holds the transient fields of one editing session.
package edit

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/reign/calleditor/internal/calllog"
)

// ZeroDuration is forced into the duration field for missed calls.
const ZeroDuration = "00:00:00"

var durationPattern = regexp.MustCompile(`^\d{1,2}:\d{2}:\d{2}$`)

// State is owned by the edit screen for one session and dropped on submit
// or cancel.
type State struct {
	EntryID string
	Name    string
	Number  string
	Date    string
	Time    string

	durationText string
	callType     calllog.CallType
}

// New prefills a session from entry. A nil entry starts an "add" session
// dated now.
func New(entry *calllog.Entry, now time.Time, loc *time.Location) *State {
	if loc == nil {
		loc = time.Local
	}
	if entry == nil {
		local := now.In(loc)
		return &State{
			Date:         calllog.FormatDate(local),
			Time:         calllog.FormatTime(local),
			durationText: ZeroDuration,
			callType:     calllog.Incoming,
		}
	}

	s := &State{
		EntryID:      entry.ID,
		Date:         calllog.FormatDate(entry.Time(loc)),
		Time:         calllog.FormatTime(entry.Time(loc)),
		durationText: calllog.FormatClock(entry.Duration),
		callType:     entry.Type,
	}
	if entry.Name != nil {
		s.Name = *entry.Name
	}
	if entry.Number != nil {
		s.Number = *entry.Number
	}
	if s.callType == calllog.Missed {
		s.durationText = ZeroDuration
	}
	return s
}

// CallType returns the selected type.
func (s *State) CallType() calllog.CallType { return s.callType }

// SetCallType selects a type. Missed forces a zero duration.
func (s *State) SetCallType(t calllog.CallType) {
	s.callType = t
	if t == calllog.Missed {
		s.durationText = ZeroDuration
	}
}

// DurationLocked reports whether the duration field rejects edits.
func (s *State) DurationLocked() bool {
	return s.callType == calllog.Missed
}

// DurationText returns the raw duration field.
func (s *State) DurationText() string { return s.durationText }

// SetDurationText updates the duration field unless it is locked.
func (s *State) SetDurationText(v string) bool {
	if s.DurationLocked() {
		return false
	}
	s.durationText = v
	return true
}

// DurationValid checks only the HH:mm:ss shape; minute and second
// components are not range checked.
func (s *State) DurationValid() bool {
	return durationPattern.MatchString(s.durationText)
}

// DurationSeconds converts the field as h*3600+m*60+s, or 0 when the shape
// is invalid.
func (s *State) DurationSeconds() int64 {
	if !s.DurationValid() {
		return 0
	}
	var parts [3]int64
	for i, p := range strings.Split(s.durationText, ":") {
		n, _ := strconv.ParseInt(p, 10, 64)
		parts[i] = n
	}
	return parts[0]*3600 + parts[1]*60 + parts[2]
}

// Payload builds the submission for this session.
func (s *State) Payload() calllog.EditPayload {
	duration := s.DurationSeconds()
	if s.callType == calllog.Missed {
		duration = 0
	}
	return calllog.EditPayload{
		ID:              s.EntryID,
		Name:            s.Name,
		Number:          s.Number,
		DateString:      s.Date,
		TimeString:      s.Time,
		DurationSeconds: duration,
		Type:            s.callType,
	}
}
