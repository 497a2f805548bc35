package store

import "github.com/google/uuid"

// Events owns the in-memory calendar event collection, mirrored to the
// store under KeyEvents on every mutation.
type Events struct {
	store  *Store
	events []CalendarEvent
}

// NewEvents hydrates the event collection from the store.
func NewEvents(s *Store) *Events {
	e := &Events{store: s}
	e.store.loadJSON(KeyEvents, &e.events)
	return e
}

// List returns the events in stable storage order.
func (e *Events) List() []CalendarEvent {
	out := make([]CalendarEvent, len(e.events))
	copy(out, e.events)
	return out
}

// On returns the events whose date equals the given "YYYY-MM-DD" day.
func (e *Events) On(date string) []CalendarEvent {
	var out []CalendarEvent
	for _, ev := range e.events {
		if ev.Date == date {
			out = append(out, ev)
		}
	}
	return out
}

// Create appends a new event, assigns its identity and persists. An event
// missing a title, a valid date or a valid time is silently rejected.
func (e *Events) Create(ev CalendarEvent) (*CalendarEvent, error) {
	if !validEvent(ev) {
		return nil, nil
	}
	ev.ID = uuid.New().String()
	normalizeEvent(&ev)

	next := make([]CalendarEvent, 0, len(e.events)+1)
	next = append(next, e.events...)
	next = append(next, ev)
	if err := e.store.saveJSON(KeyEvents, next); err != nil {
		return nil, err
	}
	e.events = next
	return &ev, nil
}

// Update replaces the event with the same ID. Invalid input or an unknown
// ID is a silent no-op.
func (e *Events) Update(ev CalendarEvent) error {
	if !validEvent(ev) {
		return nil
	}
	normalizeEvent(&ev)

	next := make([]CalendarEvent, len(e.events))
	copy(next, e.events)
	found := false
	for i := range next {
		if next[i].ID == ev.ID {
			next[i] = ev
			found = true
			break
		}
	}
	if !found {
		return nil
	}
	if err := e.store.saveJSON(KeyEvents, next); err != nil {
		return err
	}
	e.events = next
	return nil
}

// Delete removes the event with the given ID.
func (e *Events) Delete(id string) error {
	next := make([]CalendarEvent, 0, len(e.events))
	for _, ev := range e.events {
		if ev.ID != id {
			next = append(next, ev)
		}
	}
	if len(next) == len(e.events) {
		return nil
	}
	if err := e.store.saveJSON(KeyEvents, next); err != nil {
		return err
	}
	e.events = next
	return nil
}

func validEvent(ev CalendarEvent) bool {
	if ev.Title == "" || !validDate(ev.Date) {
		return false
	}
	_, _, ok := parseClock(ev.Time)
	return ok
}

func normalizeEvent(ev *CalendarEvent) {
	switch ev.Category {
	case CategoryWork, CategoryPersonal, CategoryHealth, CategorySocial, CategoryOther:
	default:
		ev.Category = CategoryOther
	}
	if ev.Reminder < 0 {
		ev.Reminder = 0
	}
}
