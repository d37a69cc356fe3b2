package domain

import (
	"fmt"
	"time"
)

// DayLayout is the format of a local calendar day.
const DayLayout = "2006-01-02"

// DayBounds returns the [start, end) instants of a local calendar day.
func DayBounds(localDay string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(DayLayout, localDay, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid day %q", ErrValidation, localDay)
	}
	return start, start.AddDate(0, 0, 1), nil
}

// LocalDay formats t as a local calendar day.
func LocalDay(t time.Time) string {
	return t.In(time.Local).Format(DayLayout)
}
