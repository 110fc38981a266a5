// Package timestamp formats publish dates in the site's display timezone.
package timestamp

import (
	"time"
	_ "time/tzdata"
)

// DisplayTimezone is the zone all dates on the site are shown in.
const DisplayTimezone = "America/Los_Angeles"

const machineLayout = "2006-01-02T15:04:05.999999999-07:00"

var displayLocation = mustLoad(DisplayTimezone)

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// Machine returns t as an RFC 3339 timestamp with the display timezone's
// offset, suitable for a <time datetime> attribute.
func Machine(t time.Time) string {
	return t.In(displayLocation).Format(machineLayout)
}

// Human returns the calendar date of t in the display timezone.
func Human(t time.Time) string {
	return Machine(t)[:10]
}
