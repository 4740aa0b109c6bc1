package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateTime(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"date only", "2024-06-07", time.Date(2024, 6, 7, 0, 0, 0, 0, loc)},
		{"date and clock", "2024-06-05 09:30", time.Date(2024, 6, 5, 9, 30, 0, 0, loc)},
		{"iso without zone", "2024-06-05T09:30", time.Date(2024, 6, 5, 9, 30, 0, 0, loc)},
		{"rfc3339 keeps its offset", "2024-06-05T09:30:00Z", time.Date(2024, 6, 5, 9, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDateTime(tt.input, loc)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}

	_, err := ParseDateTime("next friday", loc)
	assert.Error(t, err)
}

func TestParseClock(t *testing.T) {
	valid := map[string]int{
		"00:00": 0,
		"09:00": 540,
		"9:05":  545,
		"23:59": 1439,
		"24:00": 1440,
	}
	for input, want := range valid {
		got, err := ParseClock(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	for _, input := range []string{"", "9", "09:5", "09:60", "24:01", "-1:00", "ab:cd"} {
		_, err := ParseClock(input)
		assert.ErrorIs(t, err, ErrInvalidClock, input)
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "09:00", FormatClock(540))
	assert.Equal(t, "00:05", FormatClock(5))
	assert.Equal(t, "24:00", FormatClock(1440))
}
