package controller

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseInterviewDate_AcceptsDatetimeLocal(t *testing.T) {
	got, err := parseInterviewDate("2025-03-01T10:00")
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC), got)
}

func TestParseInterviewDate_AcceptsRFC3339(t *testing.T) {
	got, err := parseInterviewDate("2025-03-01T10:00:00+07:00")
	require.NoError(t, err)
	require.Equal(t, 2025, got.Year())
	require.Equal(t, 10, got.Hour())
	_, offset := got.Zone()
	require.Equal(t, 7*3600, offset)
}

func TestParseInterviewDate_RejectsOtherShapes(t *testing.T) {
	for _, raw := range []string{"", "2025-03-01", "01-03-2025 10:00", "besok pagi"} {
		_, err := parseInterviewDate(raw)
		require.Error(t, err, "input %q", raw)
	}
}
