package zermelo

import "time"

const secondsPerDay = 24 * 60 * 60

// Clock supplies the current instant. Its Location decides which calendar
// day is "today".
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in Location (time.Local when nil).
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	return time.Now().In(loc)
}

// ClockFunc adapts a plain function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// DayWindow returns the Unix epoch bounds of the calendar day containing
// now, in now's location. The start is local midnight resolved with the
// offset in effect at midnight; the end is always start + 86400, also on
// days with a DST transition.
func DayWindow(now time.Time) (start, end int64) {
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	start = midnight.Unix()
	return start, start + secondsPerDay
}
