package edit

import (
	"testing"
	"time"

	"github.com/reign/calleditor/internal/calllog"
	"github.com/stretchr/testify/assert"
)

func TestDurationValidity(t *testing.T) {
	s := New(nil, time.Now(), time.UTC)

	assert.True(t, s.SetDurationText("5:6:00"))
	assert.False(t, s.DurationValid(), "single-digit minutes must be rejected")
	assert.Equal(t, int64(0), s.DurationSeconds())

	s.SetDurationText("5:61:00")
	assert.True(t, s.DurationValid(), "components are not range-checked")
	assert.Equal(t, int64(5*3600+61*60), s.DurationSeconds())

	s.SetDurationText("05:59:59")
	assert.True(t, s.DurationValid())
	assert.Equal(t, int64(21599), s.DurationSeconds())
}

func TestDurationLenientComponents(t *testing.T) {
	s := New(nil, time.Now(), time.UTC)

	s.SetDurationText("1:75:99")
	assert.True(t, s.DurationValid())
	assert.Equal(t, int64(3600+75*60+99), s.DurationSeconds())

	s.SetDurationText("123:00:00")
	assert.False(t, s.DurationValid())
}

func TestMissedForcesZeroAndLocks(t *testing.T) {
	s := New(nil, time.Now(), time.UTC)
	s.SetDurationText("00:02:30")

	s.SetCallType(calllog.Missed)
	assert.Equal(t, ZeroDuration, s.DurationText())
	assert.True(t, s.DurationLocked())

	assert.False(t, s.SetDurationText("00:05:00"))
	assert.Equal(t, ZeroDuration, s.DurationText())
	assert.Equal(t, int64(0), s.Payload().DurationSeconds)

	s.SetCallType(calllog.Outgoing)
	assert.False(t, s.DurationLocked())
	assert.True(t, s.SetDurationText("00:05:00"))
	assert.Equal(t, int64(300), s.Payload().DurationSeconds)
}

func TestNewFromEntry(t *testing.T) {
	loc := time.UTC
	when := time.Date(2024, 1, 1, 13, 5, 0, 0, loc)
	entry := &calllog.Entry{
		ID:       "12",
		Number:   calllog.StringPtr("555-0100"),
		Date:     when.UnixMilli(),
		Type:     calllog.Outgoing,
		Duration: 3723,
	}

	s := New(entry, time.Now(), loc)

	assert.Equal(t, "12", s.EntryID)
	assert.Equal(t, "", s.Name)
	assert.Equal(t, "555-0100", s.Number)
	assert.Equal(t, "01/01/2024", s.Date)
	assert.Equal(t, "01:05 PM", s.Time)
	assert.Equal(t, "01:02:03", s.DurationText())
	assert.Equal(t, calllog.Outgoing, s.CallType())
}

func TestNewForAdd(t *testing.T) {
	now := time.Date(2024, 7, 4, 9, 30, 0, 0, time.UTC)

	s := New(nil, now, time.UTC)

	assert.Equal(t, "", s.EntryID)
	assert.Equal(t, "04/07/2024", s.Date)
	assert.Equal(t, "09:30 AM", s.Time)
	assert.Equal(t, ZeroDuration, s.DurationText())
	assert.Equal(t, calllog.Incoming, s.CallType())
}

func TestPayloadRoundTripsThroughParse(t *testing.T) {
	loc := time.FixedZone("EST", -5*60*60)
	when := time.Date(2023, 12, 31, 23, 59, 0, 0, loc)
	s := New(&calllog.Entry{ID: "3", Date: when.UnixMilli(), Type: calllog.Incoming, Duration: 61}, time.Now(), loc)

	v, err := s.Payload().Values(loc)

	assert.NoError(t, err)
	assert.Equal(t, when.UnixMilli(), v.Date)
	assert.Equal(t, int64(61), v.Duration)
}
