package service

import (
	"sort"
	"time"
)

// ComputeStreaks derives the current and longest consecutive-day voting
// streaks from a user's vote timestamps. Timestamps are truncated to UTC
// calendar days before comparison; duplicates within a day collapse. The
// current streak is zero unless the most recent vote day is today or
// yesterday relative to now. Single pass over the deduplicated days.
func ComputeStreaks(now time.Time, voteTimes []time.Time) (current, longest int) {
	if len(voteTimes) == 0 {
		return 0, 0
	}

	seen := make(map[time.Time]struct{}, len(voteTimes))
	days := make([]time.Time, 0, len(voteTimes))
	for _, t := range voteTimes {
		day := truncateDay(t)
		if _, ok := seen[day]; !ok {
			seen[day] = struct{}{}
			days = append(days, day)
		}
	}

	// Most recent first.
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	today := truncateDay(now)
	yesterday := today.AddDate(0, 0, -1)

	countingCurrent := days[0].Equal(today) || days[0].Equal(yesterday)

	run := 1
	if countingCurrent {
		current = 1
	}
	longest = 1

	for i := 1; i < len(days); i++ {
		if days[i-1].Sub(days[i]) == 24*time.Hour {
			run++
			if countingCurrent {
				current = run
			}
		} else {
			// First gap ends the current streak but the scan continues for
			// the longest run.
			countingCurrent = false
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	return current, longest
}

func truncateDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
