package availability

import (
	"fmt"
	"sort"
	"time"
)

// Window is a span of time a tutor published as bookable on a single UTC day.
type Window struct {
	StartUTC time.Time `json:"start_datetime_utc"`
	EndUTC   time.Time `json:"end_datetime_utc"`
}

// BookedInterval is the time range of a confirmed booking for the same tutor and day.
type BookedInterval struct {
	StartUTC time.Time `json:"start_datetime_utc"`
	EndUTC   time.Time `json:"end_datetime_utc"`
}

// FreeSlot is a part of a window no booking overlaps, as UTC "HH:MM" clock times.
type FreeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type span struct {
	start int
	end   int
}

// ComputeFreeSlots subtracts bookings from availability windows for one tutor on one day.
//
// Only the UTC hour and minute of every timestamp are used. Windows are handled one at a
// time in start order and their results concatenated, so overlapping windows produce
// overlapping slots. A booking that only touches a window boundary does not reduce it.
// Neither input slice is modified.
func ComputeFreeSlots(windows []Window, bookings []BookedInterval) []FreeSlot {
	result := []FreeSlot{}
	if len(windows) == 0 {
		return result
	}

	available := make([]span, 0, len(windows))
	for _, w := range windows {
		available = append(available, span{start: minuteOfDay(w.StartUTC), end: minuteOfDay(w.EndUTC)})
	}
	booked := make([]span, 0, len(bookings))
	for _, b := range bookings {
		booked = append(booked, span{start: minuteOfDay(b.StartUTC), end: minuteOfDay(b.EndUTC)})
	}

	sortByStart(available)
	sortByStart(booked)

	for _, w := range available {
		var overlapping []span
		for _, b := range booked {
			if b.start < w.end && b.end > w.start {
				overlapping = append(overlapping, b)
			}
		}

		if len(overlapping) == 0 {
			result = append(result, newFreeSlot(w.start, w.end))
			continue
		}
		result = append(result, subtract(w, overlapping)...)
	}

	return result
}

func subtract(w span, overlapping []span) []FreeSlot {
	var free []FreeSlot
	cursor := w.start

	sortByStart(overlapping)
	for _, b := range overlapping {
		if cursor < b.start {
			free = append(free, newFreeSlot(cursor, b.start))
		}
		if b.end > cursor {
			cursor = b.end
		}
	}

	if cursor < w.end {
		free = append(free, newFreeSlot(cursor, w.end))
	}
	return free
}

func sortByStart(spans []span) {
	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].start < spans[j].start
	})
}

func minuteOfDay(t time.Time) int {
	t = t.UTC()
	return t.Hour()*60 + t.Minute()
}

func newFreeSlot(start, end int) FreeSlot {
	return FreeSlot{Start: FormatClock(start), End: FormatClock(end)}
}

// FormatClock renders minutes since midnight as a zero padded 24h "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseClock is the inverse of FormatClock.
func ParseClock(clock string) (int, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", clock, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Covers reports whether [start, end) lies entirely inside one of the slots.
// Only the UTC clock time of start and end is compared.
func Covers(slots []FreeSlot, start, end time.Time) bool {
	from, to := minuteOfDay(start), minuteOfDay(end)
	for _, s := range slots {
		slotStart, err := ParseClock(s.Start)
		if err != nil {
			continue
		}
		slotEnd, err := ParseClock(s.End)
		if err != nil {
			continue
		}
		if slotStart <= from && to <= slotEnd {
			return true
		}
	}
	return false
}
