package store

import (
	"fmt"
	"time"
)

// Repeat controls which days an alarm is eligible to fire on.
type Repeat string

const (
	RepeatOnce     Repeat = "none"
	RepeatDaily    Repeat = "daily"
	RepeatWeekdays Repeat = "weekdays"
	RepeatWeekends Repeat = "weekends"
	RepeatCustom   Repeat = "custom"
)

// Alarm sounds recognized by the UI.
var AlarmSounds = []string{"default", "gentle", "classic", "digital"}

type Alarm struct {
	ID            string `json:"id"`
	Label         string `json:"label"`
	Time          string `json:"time"` // "HH:MM", 24-hour
	Active        bool   `json:"isActive"`
	Repeat        Repeat `json:"repeat"`
	CustomDays    []int  `json:"customDays,omitempty"` // 0=Sunday..6=Saturday, used when Repeat=custom
	Sound         string `json:"sound"`
	SnoozeEnabled bool   `json:"snoozeEnabled"`
	SnoozeMinutes int    `json:"snoozeMinutes"`
}

// Clock parses the alarm's stored time of day.
func (a Alarm) Clock() (hour, minute int, ok bool) {
	return parseClock(a.Time)
}

// RingsOn reports whether the alarm's repeat policy allows it to fire on
// the given weekday. One-shot alarms are eligible every day; they stay
// armed until turned off.
func (a Alarm) RingsOn(day time.Weekday) bool {
	switch a.Repeat {
	case RepeatDaily, RepeatOnce, "":
		return true
	case RepeatWeekdays:
		return day != time.Saturday && day != time.Sunday
	case RepeatWeekends:
		return day == time.Saturday || day == time.Sunday
	case RepeatCustom:
		for _, d := range a.CustomDays {
			if d == int(day) {
				return true
			}
		}
		return false
	}
	return false
}

// RepeatText renders the repeat policy the way the alarm list shows it.
func (a Alarm) RepeatText() string {
	switch a.Repeat {
	case RepeatDaily:
		return "Daily"
	case RepeatWeekdays:
		return "Weekdays"
	case RepeatWeekends:
		return "Weekends"
	case RepeatCustom:
		names := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
		out := ""
		for _, d := range a.CustomDays {
			if d < 0 || d > 6 {
				continue
			}
			if out != "" {
				out += ", "
			}
			out += names[d]
		}
		if out == "" {
			return "Custom"
		}
		return out
	}
	return "Once"
}

// Event categories.
const (
	CategoryWork     = "work"
	CategoryPersonal = "personal"
	CategoryHealth   = "health"
	CategorySocial   = "social"
	CategoryOther    = "other"
)

var EventCategories = []string{
	CategoryWork, CategoryPersonal, CategoryHealth, CategorySocial, CategoryOther,
}

type CalendarEvent struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"` // "YYYY-MM-DD"
	Time        string `json:"time"` // "HH:MM", 24-hour
	Description string `json:"description"`
	Category    string `json:"category"`
	Reminder    int    `json:"reminder,omitempty"` // minutes before the event, 0 = none
}

// Day parses the event's calendar date.
func (e CalendarEvent) Day() (time.Time, error) {
	return time.ParseInLocation("2006-01-02", e.Date, time.Local)
}

type Settings struct {
	TimeFormat        string `json:"timeFormat"` // "12" or "24"
	Theme             string `json:"theme"`      // "light" or "dark"
	DefaultAlarmSound string `json:"defaultAlarmSound"`
	CalendarView      string `json:"calendarView"` // "daily", "weekly" or "monthly"
	Notifications     bool   `json:"notifications"`
}

// DefaultSettings is the record substituted when nothing is stored yet.
func DefaultSettings() Settings {
	return Settings{
		TimeFormat:        "12",
		Theme:             "light",
		DefaultAlarmSound: "default",
		CalendarView:      "monthly",
		Notifications:     true,
	}
}

func parseClock(s string) (hour, minute int, ok bool) {
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return 0, 0, false
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
