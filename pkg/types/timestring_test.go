package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())

	for _, bad := range []string{"", "9:3", "24:00", "12:60", "noon", "12.30"} {
		_, err := NewTimeStringFromString(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestNewTimeStringFromMinutes(t *testing.T) {
	ts, err := NewTimeStringFromMinutes(0)
	require.NoError(t, err)
	assert.Equal(t, "00:00", ts.String())

	ts, err = NewTimeStringFromMinutes(1439)
	require.NoError(t, err)
	assert.Equal(t, "23:59", ts.String())

	_, err = NewTimeStringFromMinutes(-1)
	assert.Error(t, err)
	_, err = NewTimeStringFromMinutes(MinutesPerDay)
	assert.Error(t, err)
}

func TestTimeString_Minutes(t *testing.T) {
	m, err := TimeString("10:45").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 645, m)

	_, err = TimeString("banana").Minutes()
	assert.Error(t, err)
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts, err := TimeString("16:30").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, "17:00", ts.String())

	// slots never cross midnight
	_, err = TimeString("23:45").AddMinutes(30)
	assert.Error(t, err)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name   string
		aStart string
		aEnd   string
		bStart string
		bEnd   string
		want   bool
	}{
		{"disjoint", "09:00", "09:30", "10:00", "10:30", false},
		{"touching end to start", "10:30", "11:00", "11:00", "11:30", false},
		{"partial overlap", "10:45", "11:15", "11:00", "11:30", true},
		{"contained", "11:00", "11:15", "10:00", "12:00", true},
		{"identical", "11:00", "11:30", "11:00", "11:30", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(
				TimeString(tt.aStart), TimeString(tt.aEnd),
				TimeString(tt.bStart), TimeString(tt.bEnd),
			)
			assert.Equal(t, tt.want, got)
			// symmetric
			assert.Equal(t, tt.want, Overlaps(
				TimeString(tt.bStart), TimeString(tt.bEnd),
				TimeString(tt.aStart), TimeString(tt.aEnd),
			))
		})
	}
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	// postgres TIME columns carry seconds
	require.NoError(t, ts.Scan("09:30:00"))
	assert.Equal(t, "09:30", ts.String())

	require.NoError(t, ts.Scan([]byte("17:45")))
	assert.Equal(t, "17:45", ts.String())

	require.NoError(t, ts.Scan(time.Date(2026, 3, 2, 8, 15, 0, 0, time.UTC)))
	assert.Equal(t, "08:15", ts.String())

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("09:30").Value()
	require.NoError(t, err)
	assert.Equal(t, "09:30", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("junk").Value()
	assert.Error(t, err)
}
