package common

import "time"

// LayoutDateTime is the timestamp layout of change-log headers and console logs.
const LayoutDateTime = "2006-01-02 15:04:05"

// JST is the fixed UTC+9 zone used for every timestamp the watcher writes,
// independent of the host's local zone.
var JST = time.FixedZone("JST", 9*60*60)

// Clock returns the current time. Tests substitute a fixed function.
type Clock func() time.Time

// FixedZoneClock returns a Clock reporting time.Now in the given zone.
func FixedZoneClock(loc *time.Location) Clock {
	return func() time.Time {
		return time.Now().In(loc)
	}
}

// FormatDateTime formats t as YYYY-MM-DD HH:MM:SS in loc.
func FormatDateTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(LayoutDateTime)
}
