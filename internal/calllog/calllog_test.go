package calllog

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateTime_AfternoonInLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)

	got, err := ParseDateTime("01/01/2024", "01:00 PM", loc)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 1, 1, 13, 0, 0, 0, loc), got)
}

func TestParseDateTime_LowercaseMarker(t *testing.T) {
	got, err := ParseDateTime("15/06/2023", "09:30 am", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 6, 15, 9, 30, 0, 0, time.UTC), got)
}

func TestParseDateTime_SingleDigitComponents(t *testing.T) {
	got, err := ParseDateTime("1/2/2024", "1:05 pm", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 1, 13, 5, 0, 0, time.UTC), got)

	got, err = ParseDateTime("15/06/2023", "9:30 AM", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 6, 15, 9, 30, 0, 0, time.UTC), got)
}

func TestParseDateTime_Malformed(t *testing.T) {
	_, err := ParseDateTime("2024-01-01", "01:00 PM", time.UTC)
	require.Error(t, err)

	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestParseDateTime_EmptyTime(t *testing.T) {
	_, err := ParseDateTime("01/01/2024", "", time.UTC)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestEditPayloadValues(t *testing.T) {
	p := EditPayload{
		ID:              "7",
		Name:            "Jane",
		Number:          "555-0100",
		DateString:      "02/03/2024",
		TimeString:      "11:15 PM",
		DurationSeconds: 90,
		Type:            Outgoing,
	}

	v, err := p.Values(time.UTC)
	require.NoError(t, err)

	assert.Equal(t, "555-0100", v.Number)
	assert.Equal(t, "Jane", v.CachedName)
	assert.Equal(t, int64(90), v.Duration)
	assert.Equal(t, 1, v.New)
	assert.Equal(t, Outgoing, v.Type)
	assert.Equal(t, time.Date(2024, 3, 2, 23, 15, 0, 0, time.UTC).UnixMilli(), v.Date)
}

func TestCallTypeString(t *testing.T) {
	assert.Equal(t, "Incoming", Incoming.String())
	assert.Equal(t, "Answered Externally", AnsweredExternally.String())
	assert.Equal(t, "Unknown", CallType(42).String())
}

func TestParseCallType(t *testing.T) {
	ct, err := ParseCallType("Missed")
	require.NoError(t, err)
	assert.Equal(t, Missed, ct)

	ct, err = ParseCallType("answered-externally")
	require.NoError(t, err)
	assert.Equal(t, AnsweredExternally, ct)

	ct, err = ParseCallType("2")
	require.NoError(t, err)
	assert.Equal(t, Outgoing, ct)

	_, err = ParseCallType("collect")
	assert.Error(t, err)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "01:02:03", FormatDuration(3723))
	assert.Equal(t, "02:05", FormatDuration(125))
	assert.Equal(t, "7s", FormatDuration(7))
	assert.Equal(t, "0s", FormatDuration(0))
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatClock(0))
	assert.Equal(t, "05:59:59", FormatClock(21599))
	assert.Equal(t, "100:00:00", FormatClock(360000))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Jane", Entry{Name: StringPtr("Jane"), Number: StringPtr("1")}.DisplayName())
	assert.Equal(t, "555", Entry{Number: StringPtr("555")}.DisplayName())
	assert.Equal(t, "Unknown", Entry{}.DisplayName())
}

func TestFetchErrorUnwraps(t *testing.T) {
	cause := errors.New("disk gone")
	err := error(&FetchError{Err: cause})
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "Failed to load call logs")
}
