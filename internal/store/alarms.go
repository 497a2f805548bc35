package store

import "github.com/google/uuid"

// Alarms owns the in-memory alarm collection. The store is only a
// serialization target: every mutation rebuilds the slice and writes the
// whole document back under KeyAlarms.
type Alarms struct {
	store  *Store
	alarms []Alarm
}

// NewAlarms hydrates the alarm collection from the store. A missing or
// corrupt document hydrates to an empty collection.
func NewAlarms(s *Store) *Alarms {
	a := &Alarms{store: s}
	a.store.loadJSON(KeyAlarms, &a.alarms)
	return a
}

// List returns the alarms in insertion order. The returned slice is a
// copy; mutating it does not affect the collection.
func (a *Alarms) List() []Alarm {
	out := make([]Alarm, len(a.alarms))
	copy(out, a.alarms)
	return out
}

// Get returns the alarm with the given ID, or nil.
func (a *Alarms) Get(id string) *Alarm {
	for i := range a.alarms {
		if a.alarms[i].ID == id {
			al := a.alarms[i]
			return &al
		}
	}
	return nil
}

// Create appends a new alarm, assigns its identity and persists. An alarm
// without a label or a parseable time is silently rejected and nil is
// returned. New alarms start active.
func (a *Alarms) Create(alarm Alarm) (*Alarm, error) {
	if !validAlarm(alarm) {
		return nil, nil
	}
	alarm.ID = uuid.New().String()
	alarm.Active = true
	normalizeAlarm(&alarm)

	next := make([]Alarm, 0, len(a.alarms)+1)
	next = append(next, a.alarms...)
	next = append(next, alarm)
	if err := a.store.saveJSON(KeyAlarms, next); err != nil {
		return nil, err
	}
	a.alarms = next
	return &alarm, nil
}

// Update replaces the alarm with the same ID in place. Invalid input or an
// unknown ID is a silent no-op.
func (a *Alarms) Update(alarm Alarm) error {
	if !validAlarm(alarm) {
		return nil
	}
	normalizeAlarm(&alarm)

	next := make([]Alarm, len(a.alarms))
	copy(next, a.alarms)
	found := false
	for i := range next {
		if next[i].ID == alarm.ID {
			next[i] = alarm
			found = true
			break
		}
	}
	if !found {
		return nil
	}
	if err := a.store.saveJSON(KeyAlarms, next); err != nil {
		return err
	}
	a.alarms = next
	return nil
}

// Toggle flips the active flag of the alarm with the given ID.
func (a *Alarms) Toggle(id string) error {
	next := make([]Alarm, len(a.alarms))
	copy(next, a.alarms)
	found := false
	for i := range next {
		if next[i].ID == id {
			next[i].Active = !next[i].Active
			found = true
			break
		}
	}
	if !found {
		return nil
	}
	if err := a.store.saveJSON(KeyAlarms, next); err != nil {
		return err
	}
	a.alarms = next
	return nil
}

// Delete removes the alarm with the given ID.
func (a *Alarms) Delete(id string) error {
	next := make([]Alarm, 0, len(a.alarms))
	for _, al := range a.alarms {
		if al.ID != id {
			next = append(next, al)
		}
	}
	if len(next) == len(a.alarms) {
		return nil
	}
	if err := a.store.saveJSON(KeyAlarms, next); err != nil {
		return err
	}
	a.alarms = next
	return nil
}

func validAlarm(a Alarm) bool {
	if a.Label == "" {
		return false
	}
	_, _, ok := parseClock(a.Time)
	return ok
}

func normalizeAlarm(a *Alarm) {
	if a.Repeat == "" {
		a.Repeat = RepeatOnce
	}
	if a.Repeat != RepeatCustom {
		a.CustomDays = nil
	}
	if a.Sound == "" {
		a.Sound = "default"
	}
	if a.SnoozeMinutes <= 0 {
		a.SnoozeMinutes = 5
	}
}
