package engine

import (
	"sort"

	"github.com/amityadavvoid-ui/Syetem/internal/clock"
)

// DayComplete applies the streak policy: every active quest done (with at
// least one active), or interference logged that day.
func DayComplete(active []Quest, interference bool) bool {
	if interference {
		return true
	}
	if len(active) == 0 {
		return false
	}
	for _, q := range active {
		if !q.Completed {
			return false
		}
	}
	return true
}

// CurrentStreak counts consecutive complete days ending at today or, if
// today is not complete yet, yesterday.
func CurrentStreak(days []string, today string) int {
	set := daySet(days)
	start := today
	if !set[start] {
		start = clock.MustAddDays(today, -1)
		if !set[start] {
			return 0
		}
	}
	n := 0
	for d := start; set[d]; d = clock.MustAddDays(d, -1) {
		n++
	}
	return n
}

// LongestStreak returns the longest run of consecutive complete days.
func LongestStreak(days []string) int {
	sorted := sortedValidDays(days)
	best, run := 0, 0
	for i, d := range sorted {
		if i > 0 {
			if gap, err := clock.DaysBetween(sorted[i-1], d); err == nil && gap == 1 {
				run++
			} else {
				run = 1
			}
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}

type CalendarDay struct {
	Day      string `json:"day" yaml:"day"`
	Complete bool   `json:"complete" yaml:"complete"`
	Today    bool   `json:"today,omitempty" yaml:"today,omitempty"`
}

// Calendar returns the last n days ending at today, oldest first.
func Calendar(days []string, today string, n int) []CalendarDay {
	if n <= 0 {
		return nil
	}
	set := daySet(days)
	out := make([]CalendarDay, 0, n)
	for i := n - 1; i >= 0; i-- {
		d := clock.MustAddDays(today, -i)
		out = append(out, CalendarDay{Day: d, Complete: set[d], Today: i == 0})
	}
	return out
}

func daySet(days []string) map[string]bool {
	set := make(map[string]bool, len(days))
	for _, d := range days {
		set[d] = true
	}
	return set
}

// sortedValidDays drops unparsable keys and duplicates.
func sortedValidDays(days []string) []string {
	seen := make(map[string]bool, len(days))
	out := make([]string, 0, len(days))
	for _, d := range days {
		if seen[d] {
			continue
		}
		if _, err := clock.ParseDay(d); err != nil {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
