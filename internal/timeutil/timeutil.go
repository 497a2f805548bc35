// Package timeutil holds the pure time functions shared by the clock,
// calendar and alarm views.
package timeutil

import (
	"time"

	"github.com/halcyde/timedock/internal/store"
)

// AlarmWindow is the tolerance around an alarm's time of day inside which
// ShouldAlarmRing matches. The scheduler ticks once per second, so a match
// is evaluated many times per window but fires at most once.
const AlarmWindow = 30 * time.Second

// FormatTime renders hour:minute:second in the given display format
// ("12" with AM/PM, anything else 24-hour).
func FormatTime(t time.Time, format string) string {
	if format == "12" {
		return t.Format("03:04:05 PM")
	}
	return t.Format("15:04:05")
}

// FormatClock renders hour:minute of a stored "HH:MM" time-of-day string
// in the given display format. Unparseable input is returned as is.
func FormatClock(clock, format string) string {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return clock
	}
	if format == "12" {
		return t.Format("3:04 PM")
	}
	return t.Format("15:04")
}

// FormatDate renders the full weekday/month/day/year line shown under the
// clock, e.g. "Monday, January 2, 2006".
func FormatDate(t time.Time) string {
	return t.Format("Monday, January 2, 2006")
}

// TimeInZone returns the current instant in the named IANA zone, for
// display only. Zone resolution uses the host's zone database.
func TimeInZone(zone string) (time.Time, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return time.Time{}, err
	}
	return time.Now().In(loc), nil
}

// DaysInMonth returns the number of calendar days in the month.
func DaysInMonth(month time.Month, year int) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday returns the weekday (0=Sunday) of the month's first day.
func FirstWeekday(month time.Month, year int) int {
	return int(time.Date(year, month, 1, 0, 0, 0, 0, time.Local).Weekday())
}

// IsToday reports whether t falls on the current calendar day.
func IsToday(t time.Time) bool {
	return IsSameDay(t, time.Now())
}

// IsSameDay reports calendar-day equality, ignoring time of day.
func IsSameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// AlarmInstant combines now's calendar day with the alarm's stored
// hour:minute, seconds zeroed.
func AlarmInstant(a store.Alarm, now time.Time) (time.Time, bool) {
	hour, minute, ok := a.Clock()
	if !ok {
		return time.Time{}, false
	}
	y, m, d := now.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, now.Location()), true
}

// ShouldAlarmRing reports whether the alarm matches the current instant:
// it must be active and now must be within AlarmWindow of today's
// occurrence of its time of day. Repeat-policy filtering is deliberately
// not applied here; Alarm.RingsOn covers that and the scheduler composes
// the two.
func ShouldAlarmRing(a store.Alarm, now time.Time) bool {
	if !a.Active {
		return false
	}
	at, ok := AlarmInstant(a, now)
	if !ok {
		return false
	}
	diff := now.Sub(at)
	if diff < 0 {
		diff = -diff
	}
	return diff < AlarmWindow
}
