package store

import (
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// Should have run migration v1
	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/timedock.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen — should succeed and not re-migrate
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s2.Close()
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// Key/value documents
// ============================================================

func TestGetMissingKey(t *testing.T) {
	s := newTestStore(t)
	_, ok, err := s.Get("nope")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("missing key should report not found")
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	s := newTestStore(t)
	if err := s.Set("k", `{"a":1}`); err != nil {
		t.Fatal(err)
	}
	v, ok, err := s.Get("k")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || v != `{"a":1}` {
		t.Fatalf("got %q found=%v", v, ok)
	}
}

func TestSetOverwritesWholeValue(t *testing.T) {
	s := newTestStore(t)
	s.Set("k", "first")
	s.Set("k", "second")
	v, _, _ := s.Get("k")
	if v != "second" {
		t.Fatalf("expected full overwrite, got %q", v)
	}
}

func TestLoadJSONCorruptFallsBack(t *testing.T) {
	s := newTestStore(t)
	s.Set(KeyAlarms, "{not json")

	a := NewAlarms(s)
	if len(a.List()) != 0 {
		t.Fatal("corrupt document should hydrate to empty collection")
	}
}

// ============================================================
// Alarms
// ============================================================

func TestCreateAndListAlarm(t *testing.T) {
	s := newTestStore(t)
	a := NewAlarms(s)

	created, err := a.Create(Alarm{Label: "Wake", Time: "07:30", Repeat: RepeatOnce})
	if err != nil {
		t.Fatal(err)
	}
	if created == nil {
		t.Fatal("expected alarm to be created")
	}
	if created.ID == "" {
		t.Fatal("expected generated identity")
	}
	if !created.Active {
		t.Fatal("new alarm should be active")
	}

	alarms := a.List()
	if len(alarms) != 1 {
		t.Fatalf("expected 1 alarm, got %d", len(alarms))
	}
	if alarms[0].Label != "Wake" || alarms[0].Time != "07:30" || alarms[0].Repeat != RepeatOnce {
		t.Fatalf("unexpected alarm: %+v", alarms[0])
	}
}

func TestCreateAlarmRejectsMissingFields(t *testing.T) {
	s := newTestStore(t)
	a := NewAlarms(s)

	cases := []Alarm{
		{Label: "", Time: "07:30"},
		{Label: "Wake", Time: ""},
		{Label: "Wake", Time: "25:00"},
		{Label: "Wake", Time: "07:61"},
	}
	for _, c := range cases {
		created, err := a.Create(c)
		if err != nil {
			t.Fatal(err)
		}
		if created != nil {
			t.Fatalf("invalid alarm %+v should be silently rejected", c)
		}
	}
	if len(a.List()) != 0 {
		t.Fatal("rejected creates must be no-ops")
	}
}

func TestAlarmInsertionOrderPreserved(t *testing.T) {
	s := newTestStore(t)
	a := NewAlarms(s)

	a.Create(Alarm{Label: "first", Time: "06:00"})
	a.Create(Alarm{Label: "second", Time: "07:00"})
	a.Create(Alarm{Label: "third", Time: "08:00"})

	alarms := a.List()
	if alarms[0].Label != "first" || alarms[1].Label != "second" || alarms[2].Label != "third" {
		t.Fatalf("insertion order not preserved: %+v", alarms)
	}
}

func TestAlarmPersistsAcrossRehydration(t *testing.T) {
	s := newTestStore(t)
	a := NewAlarms(s)
	a.Create(Alarm{Label: "Wake", Time: "07:30"})

	// Fresh manager over the same store sees the same collection.
	b := NewAlarms(s)
	alarms := b.List()
	if len(alarms) != 1 || alarms[0].Label != "Wake" {
		t.Fatalf("rehydrated collection wrong: %+v", alarms)
	}
}

func TestUpdateAlarm(t *testing.T) {
	s := newTestStore(t)
	a := NewAlarms(s)
	created, _ := a.Create(Alarm{Label: "Wake", Time: "07:30"})

	updated := *created
	updated.Label = "Workout"
	updated.Time = "06:15"
	if err := a.Update(updated); err != nil {
		t.Fatal(err)
	}

	got := a.Get(created.ID)
	if got == nil || got.Label != "Workout" || got.Time != "06:15" {
		t.Fatalf("update not applied: %+v", got)
	}
	if got.ID != created.ID {
		t.Fatal("identity must be immutable across updates")
	}
}

func TestUpdateAlarmInvalidIsNoop(t *testing.T) {
	s := newTestStore(t)
	a := NewAlarms(s)
	created, _ := a.Create(Alarm{Label: "Wake", Time: "07:30"})

	bad := *created
	bad.Label = ""
	if err := a.Update(bad); err != nil {
		t.Fatal(err)
	}
	if a.Get(created.ID).Label != "Wake" {
		t.Fatal("invalid update must not take effect")
	}
}

func TestUpdateAlarmUnknownIDIsNoop(t *testing.T) {
	s := newTestStore(t)
	a := NewAlarms(s)
	a.Create(Alarm{Label: "Wake", Time: "07:30"})

	if err := a.Update(Alarm{ID: "missing", Label: "X", Time: "09:00"}); err != nil {
		t.Fatal(err)
	}
	if len(a.List()) != 1 || a.List()[0].Label != "Wake" {
		t.Fatal("unknown ID update must be a no-op")
	}
}

func TestToggleAlarm(t *testing.T) {
	s := newTestStore(t)
	a := NewAlarms(s)
	created, _ := a.Create(Alarm{Label: "Wake", Time: "07:30"})

	a.Toggle(created.ID)
	if a.Get(created.ID).Active {
		t.Fatal("toggle should deactivate")
	}
	a.Toggle(created.ID)
	if !a.Get(created.ID).Active {
		t.Fatal("toggle should reactivate")
	}
}

func TestDeleteAlarm(t *testing.T) {
	s := newTestStore(t)
	a := NewAlarms(s)
	first, _ := a.Create(Alarm{Label: "Wake", Time: "07:30"})
	a.Create(Alarm{Label: "Lunch", Time: "12:00"})

	if err := a.Delete(first.ID); err != nil {
		t.Fatal(err)
	}
	alarms := a.List()
	if len(alarms) != 1 || alarms[0].Label != "Lunch" {
		t.Fatalf("delete left wrong collection: %+v", alarms)
	}

	// Deleting again is a no-op.
	if err := a.Delete(first.ID); err != nil {
		t.Fatal(err)
	}
}

func TestListReturnsCopy(t *testing.T) {
	s := newTestStore(t)
	a := NewAlarms(s)
	a.Create(Alarm{Label: "Wake", Time: "07:30"})

	alarms := a.List()
	alarms[0].Label = "mutated"
	if a.List()[0].Label != "Wake" {
		t.Fatal("List must return a copy")
	}
}

func TestNormalizeAlarmDefaults(t *testing.T) {
	s := newTestStore(t)
	a := NewAlarms(s)

	created, _ := a.Create(Alarm{Label: "Wake", Time: "07:30", SnoozeMinutes: -3})
	if created.Repeat != RepeatOnce {
		t.Fatalf("empty repeat should default to once, got %q", created.Repeat)
	}
	if created.Sound != "default" {
		t.Fatalf("empty sound should default, got %q", created.Sound)
	}
	if created.SnoozeMinutes != 5 {
		t.Fatalf("non-positive snooze should default to 5, got %d", created.SnoozeMinutes)
	}

	withDays, _ := a.Create(Alarm{Label: "X", Time: "08:00", Repeat: RepeatDaily, CustomDays: []int{1, 2}})
	if withDays.CustomDays != nil {
		t.Fatal("custom days must be cleared unless repeat is custom")
	}
}

// ============================================================
// Alarm model
// ============================================================

func TestAlarmRingsOn(t *testing.T) {
	tests := []struct {
		name  string
		alarm Alarm
		day   time.Weekday
		want  bool
	}{
		{"daily monday", Alarm{Repeat: RepeatDaily}, time.Monday, true},
		{"daily sunday", Alarm{Repeat: RepeatDaily}, time.Sunday, true},
		{"once any day", Alarm{Repeat: RepeatOnce}, time.Wednesday, true},
		{"weekdays monday", Alarm{Repeat: RepeatWeekdays}, time.Monday, true},
		{"weekdays saturday", Alarm{Repeat: RepeatWeekdays}, time.Saturday, false},
		{"weekends sunday", Alarm{Repeat: RepeatWeekends}, time.Sunday, true},
		{"weekends friday", Alarm{Repeat: RepeatWeekends}, time.Friday, false},
		{"custom hit", Alarm{Repeat: RepeatCustom, CustomDays: []int{2, 4}}, time.Tuesday, true},
		{"custom miss", Alarm{Repeat: RepeatCustom, CustomDays: []int{2, 4}}, time.Friday, false},
		{"custom empty", Alarm{Repeat: RepeatCustom}, time.Monday, false},
	}
	for _, tt := range tests {
		if got := tt.alarm.RingsOn(tt.day); got != tt.want {
			t.Errorf("%s: RingsOn(%v) = %v, want %v", tt.name, tt.day, got, tt.want)
		}
	}
}

func TestAlarmRepeatText(t *testing.T) {
	tests := []struct {
		alarm Alarm
		want  string
	}{
		{Alarm{Repeat: RepeatOnce}, "Once"},
		{Alarm{Repeat: RepeatDaily}, "Daily"},
		{Alarm{Repeat: RepeatWeekdays}, "Weekdays"},
		{Alarm{Repeat: RepeatWeekends}, "Weekends"},
		{Alarm{Repeat: RepeatCustom, CustomDays: []int{1, 3}}, "Mon, Wed"},
		{Alarm{Repeat: RepeatCustom}, "Custom"},
	}
	for _, tt := range tests {
		if got := tt.alarm.RepeatText(); got != tt.want {
			t.Errorf("RepeatText() = %q, want %q", got, tt.want)
		}
	}
}

func TestAlarmClock(t *testing.T) {
	h, m, ok := Alarm{Time: "07:30"}.Clock()
	if !ok || h != 7 || m != 30 {
		t.Fatalf("Clock() = %d,%d,%v", h, m, ok)
	}
	if _, _, ok := (Alarm{Time: "garbage"}).Clock(); ok {
		t.Fatal("garbage time should not parse")
	}
}

// ============================================================
// Events
// ============================================================

func TestCreateAndListEvent(t *testing.T) {
	s := newTestStore(t)
	e := NewEvents(s)

	created, err := e.Create(CalendarEvent{
		Title:    "Dentist",
		Date:     "2026-09-14",
		Time:     "10:00",
		Category: CategoryHealth,
		Reminder: 15,
	})
	if err != nil {
		t.Fatal(err)
	}
	if created == nil || created.ID == "" {
		t.Fatal("expected created event with identity")
	}

	events := e.List()
	if len(events) != 1 || events[0].Title != "Dentist" {
		t.Fatalf("unexpected events: %+v", events)
	}
}

func TestCreateEventRejectsInvalid(t *testing.T) {
	s := newTestStore(t)
	e := NewEvents(s)

	cases := []CalendarEvent{
		{Title: "", Date: "2026-09-14", Time: "10:00"},
		{Title: "X", Date: "", Time: "10:00"},
		{Title: "X", Date: "not-a-date", Time: "10:00"},
		{Title: "X", Date: "2026-09-14", Time: "26:00"},
	}
	for _, c := range cases {
		created, err := e.Create(c)
		if err != nil {
			t.Fatal(err)
		}
		if created != nil {
			t.Fatalf("invalid event %+v should be silently rejected", c)
		}
	}
	if len(e.List()) != 0 {
		t.Fatal("rejected creates must be no-ops")
	}
}

func TestEventsOnDate(t *testing.T) {
	s := newTestStore(t)
	e := NewEvents(s)
	e.Create(CalendarEvent{Title: "A", Date: "2026-09-14", Time: "10:00"})
	e.Create(CalendarEvent{Title: "B", Date: "2026-09-15", Time: "11:00"})
	e.Create(CalendarEvent{Title: "C", Date: "2026-09-14", Time: "12:00"})

	on := e.On("2026-09-14")
	if len(on) != 2 {
		t.Fatalf("expected 2 events, got %d", len(on))
	}
	if on[0].Title != "A" || on[1].Title != "C" {
		t.Fatalf("storage order not stable: %+v", on)
	}
}

func TestUpdateAndDeleteEvent(t *testing.T) {
	s := newTestStore(t)
	e := NewEvents(s)
	created, _ := e.Create(CalendarEvent{Title: "A", Date: "2026-09-14", Time: "10:00"})

	updated := *created
	updated.Title = "A2"
	if err := e.Update(updated); err != nil {
		t.Fatal(err)
	}
	if e.List()[0].Title != "A2" {
		t.Fatal("update not applied")
	}

	if err := e.Delete(created.ID); err != nil {
		t.Fatal(err)
	}
	if len(e.List()) != 0 {
		t.Fatal("delete not applied")
	}
}

func TestEventCategoryNormalized(t *testing.T) {
	s := newTestStore(t)
	e := NewEvents(s)
	created, _ := e.Create(CalendarEvent{Title: "A", Date: "2026-09-14", Time: "10:00", Category: "banana"})
	if created.Category != CategoryOther {
		t.Fatalf("unknown category should normalize to other, got %q", created.Category)
	}
}

// ============================================================
// Settings
// ============================================================

func TestLoadSettingsDefaults(t *testing.T) {
	s := newTestStore(t)
	got := s.LoadSettings()
	want := DefaultSettings()
	if got != want {
		t.Fatalf("defaults: got %+v, want %+v", got, want)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	in := Settings{
		TimeFormat:        "24",
		Theme:             "dark",
		DefaultAlarmSound: "gentle",
		CalendarView:      "weekly",
		Notifications:     false,
	}
	if err := s.SaveSettings(in); err != nil {
		t.Fatal(err)
	}
	if got := s.LoadSettings(); got != in {
		t.Fatalf("round trip: got %+v, want %+v", got, in)
	}

	// Saving again and reloading is idempotent.
	if err := s.SaveSettings(in); err != nil {
		t.Fatal(err)
	}
	if got := s.LoadSettings(); got != in {
		t.Fatalf("second round trip: got %+v, want %+v", got, in)
	}
}

func TestLoadSettingsCorruptFallsBack(t *testing.T) {
	s := newTestStore(t)
	s.Set(KeySettings, "{{{")
	if got := s.LoadSettings(); got != DefaultSettings() {
		t.Fatalf("corrupt settings should fall back to defaults, got %+v", got)
	}
}
