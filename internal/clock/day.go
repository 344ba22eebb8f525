package clock

import (
	"fmt"
	"time"
)

// DayLayout is the calendar-day key used for every persisted date.
const DayLayout = "2006-01-02"

// DayOf returns the local calendar day of t.
func DayOf(t time.Time) string {
	return t.Format(DayLayout)
}

// Today returns the calendar day of c.Now().
func Today(c Clock) string {
	return DayOf(c.Now())
}

// ParseDay parses a YYYY-MM-DD key as midnight UTC. Only the date part
// matters; UTC keeps day arithmetic free of DST gaps.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q: %w", s, err)
	}
	return t, nil
}

// AddDays returns the day n calendar days after day (n may be negative).
func AddDays(day string, n int) (string, error) {
	t, err := ParseDay(day)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(DayLayout), nil
}

// MustAddDays is AddDays for keys already known to be valid.
func MustAddDays(day string, n int) string {
	out, err := AddDays(day, n)
	if err != nil {
		panic(err)
	}
	return out
}

// DaysBetween returns the whole number of days from a to b (b - a).
func DaysBetween(a, b string) (int, error) {
	ta, err := ParseDay(a)
	if err != nil {
		return 0, err
	}
	tb, err := ParseDay(b)
	if err != nil {
		return 0, err
	}
	return int(tb.Sub(ta).Hours() / 24), nil
}

// NextMidnight returns the start of the local day following t.
func NextMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location())
}

// Countdown returns the time left until the next rollover.
func Countdown(t time.Time) time.Duration {
	return NextMidnight(t).Sub(t)
}

// FormatCountdown renders a duration as "Hh Mm Ss".
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	return fmt.Sprintf("%dh %dm %ds", h, m, s)
}
