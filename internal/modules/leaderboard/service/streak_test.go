package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(now time.Time, daysAgo int, hour int) time.Time {
	return now.AddDate(0, 0, -daysAgo).Truncate(24 * time.Hour).Add(time.Duration(hour) * time.Hour)
}

func TestComputeStreaks(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name            string
		votes           []time.Time
		expectedCurrent int
		expectedLongest int
	}{
		{
			name:            "no votes",
			votes:           nil,
			expectedCurrent: 0,
			expectedLongest: 0,
		},
		{
			name:            "single vote today",
			votes:           []time.Time{day(now, 0, 9)},
			expectedCurrent: 1,
			expectedLongest: 1,
		},
		{
			name:            "three consecutive days ending today",
			votes:           []time.Time{day(now, 2, 8), day(now, 1, 12), day(now, 0, 9)},
			expectedCurrent: 3,
			expectedLongest: 3,
		},
		{
			name:            "streak ending yesterday still counts",
			votes:           []time.Time{day(now, 2, 8), day(now, 1, 12)},
			expectedCurrent: 2,
			expectedLongest: 2,
		},
		{
			name:            "last vote three days ago resets current",
			votes:           []time.Time{day(now, 4, 8), day(now, 3, 12)},
			expectedCurrent: 0,
			expectedLongest: 2,
		},
		{
			name: "longest run sits in the past",
			votes: []time.Time{
				day(now, 10, 9), day(now, 9, 9), day(now, 8, 9), day(now, 7, 9), day(now, 6, 9),
				day(now, 1, 9), day(now, 0, 9),
			},
			expectedCurrent: 2,
			expectedLongest: 5,
		},
		{
			name:            "several votes on the same day collapse",
			votes:           []time.Time{day(now, 0, 1), day(now, 0, 9), day(now, 0, 23)},
			expectedCurrent: 1,
			expectedLongest: 1,
		},
		{
			name:            "unsorted input",
			votes:           []time.Time{day(now, 0, 9), day(now, 2, 8), day(now, 1, 12)},
			expectedCurrent: 3,
			expectedLongest: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current, longest := ComputeStreaks(now, tt.votes)
			assert.Equal(t, tt.expectedCurrent, current, "current streak")
			assert.Equal(t, tt.expectedLongest, longest, "longest streak")
		})
	}
}

func TestComputeStreaksUsesUTCDays(t *testing.T) {
	// 23:30 UTC-5 and 01:00 UTC+2 land on different local days but the same
	// and adjacent UTC days respectively.
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	est := time.FixedZone("UTC-5", -5*3600)

	votes := []time.Time{
		time.Date(2026, 3, 13, 23, 30, 0, 0, est), // 2026-03-14 UTC
		time.Date(2026, 3, 15, 1, 0, 0, 0, time.UTC),
	}

	current, longest := ComputeStreaks(now, votes)
	assert.Equal(t, 2, current)
	assert.Equal(t, 2, longest)
}
