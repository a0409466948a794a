package analytics

import (
	"strconv"
	"time"
)

// Window is the half-open [Start, End) filter range for one period. All marks
// the unbounded window of PeriodAll, where Start/End carry no meaning.
type Window struct {
	Start time.Time
	End   time.Time
	All   bool
}

// Contains reports whether t falls inside the window. Records outside the
// window are excluded entirely, never clipped into a boundary bucket.
func (w Window) Contains(t time.Time) bool {
	if w.All {
		return true
	}
	return !t.Before(w.Start) && t.Before(w.End)
}

var weekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

var monthLabels = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// WindowFor maps a period selector to its concrete date range relative to now.
func WindowFor(period Period, now time.Time) Window {
	switch period {
	case PeriodToday:
		start := startOfDay(now)
		return Window{Start: start, End: start.AddDate(0, 0, 1)}

	case PeriodWeek:
		start := startOfWeek(now)
		return Window{Start: start, End: start.AddDate(0, 0, 7)}

	case PeriodMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return Window{Start: start, End: start.AddDate(0, 1, 0)}

	case PeriodYear:
		start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		return Window{Start: start, End: start.AddDate(1, 0, 0)}

	default: // PeriodAll
		return Window{All: true}
	}
}

// BucketLabels returns the fixed ordered x-axis labels for the period. The
// sequence is immutable during one aggregation pass; every series produced in
// that pass has exactly this length.
func BucketLabels(period Period, now time.Time) []string {
	switch period {
	case PeriodToday:
		labels := make([]string, 24)
		for h := 0; h < 24; h++ {
			labels[h] = strconv.Itoa(h)
		}
		return labels

	case PeriodWeek:
		return weekdayLabels[:]

	case PeriodMonth:
		days := daysInMonth(now)
		labels := make([]string, days)
		for d := 0; d < days; d++ {
			labels[d] = strconv.Itoa(d + 1)
		}
		return labels

	default: // PeriodYear and PeriodAll share the monthly scheme
		return monthLabels[:]
	}
}

// BucketRange returns the half-open sub-range for bucket i. The ranges
// partition the period window with no gaps or overlaps.
func BucketRange(period Period, i int, now time.Time) (time.Time, time.Time) {
	switch period {
	case PeriodToday:
		start := startOfDay(now).Add(time.Duration(i) * time.Hour)
		return start, start.Add(time.Hour)

	case PeriodWeek:
		start := startOfWeek(now).AddDate(0, 0, i)
		return start, start.AddDate(0, 0, 1)

	case PeriodMonth:
		start := time.Date(now.Year(), now.Month(), 1+i, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 0, 1)

	default: // PeriodYear and PeriodAll
		start := time.Date(now.Year(), time.Month(1+i), 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, 0)
	}
}

// BucketIndex is the inverse of BucketRange: the unique bucket containing t,
// or ok=false when t falls outside every bucket of the period.
func BucketIndex(period Period, t time.Time, now time.Time) (int, bool) {
	// Bucket boundaries live in now's location; a record carrying another
	// offset must be indexed by its instant, not its own wall-clock fields.
	t = t.In(now.Location())

	switch period {
	case PeriodToday:
		start := startOfDay(now)
		if t.Before(start) || !t.Before(start.AddDate(0, 0, 1)) {
			return 0, false
		}
		return t.Hour(), true

	case PeriodWeek:
		start := startOfWeek(now)
		for i := 0; i < 7; i++ {
			dayStart := start.AddDate(0, 0, i)
			if !t.Before(dayStart) && t.Before(dayStart.AddDate(0, 0, 1)) {
				return i, true
			}
		}
		return 0, false

	case PeriodMonth:
		if t.Year() != now.Year() || t.Month() != now.Month() {
			return 0, false
		}
		return t.Day() - 1, true

	default: // PeriodYear and PeriodAll chart against the current calendar year
		if t.Year() != now.Year() {
			return 0, false
		}
		return int(t.Month()) - 1, true
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns midnight of the Monday at or before t.
func startOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday = 7
	}
	start := t.AddDate(0, 0, -weekday+1)
	return startOfDay(start)
}

func daysInMonth(t time.Time) int {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return first.AddDate(0, 1, 0).Add(-time.Hour).Day()
}
