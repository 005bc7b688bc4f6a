package availability

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// DayRange returns the first and last millisecond of the given UTC calendar day.
func DayRange(date string) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, date, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", date, err)
	}
	return day, day.Add(24*time.Hour - time.Millisecond), nil
}
