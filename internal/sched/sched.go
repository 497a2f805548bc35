// Package sched implements the alarm matching loop. The scheduler has no
// timer of its own: the owner calls Tick once per second with the current
// instant, which also makes it testable with synthetic timestamps.
package sched

import (
	"time"

	"github.com/halcyde/timedock/internal/store"
	"github.com/halcyde/timedock/internal/timeutil"
)

// AlarmSource supplies the alarm collection scanned on each tick.
type AlarmSource interface {
	List() []store.Alarm
}

// PlayFunc triggers sound playback for the named sound. It is invoked
// exactly once per idle→ringing transition. A playback failure must not
// affect the ring state; the returned error is for reporting only.
type PlayFunc func(sound string) error

// Scheduler evaluates alarms against wall-clock time and holds the ring
// state. At most one alarm rings at a time; further matches are not
// queued and wait for acknowledgment.
type Scheduler struct {
	alarms AlarmSource
	play   PlayFunc

	ringing *store.Alarm

	// fired maps alarm ID to the matched instant, so an acknowledged
	// alarm does not re-fire inside the same window. It fires again on a
	// later pass through an eligible day.
	fired map[string]time.Time

	// Pending snoozed ring: a one-shot copy of the snoozed alarm,
	// anchored at an absolute instant and discarded after ringing.
	snoozeAlarm *store.Alarm
	snoozeAt    time.Time

	playErr error
}

func New(alarms AlarmSource, play PlayFunc) *Scheduler {
	return &Scheduler{
		alarms: alarms,
		play:   play,
		fired:  make(map[string]time.Time),
	}
}

// Ringing returns the currently ringing alarm, or nil.
func (s *Scheduler) Ringing() *store.Alarm {
	return s.ringing
}

// PlayError returns and clears the last sound-playback failure.
func (s *Scheduler) PlayError() error {
	err := s.playErr
	s.playErr = nil
	return err
}

// Tick evaluates every alarm against now and returns the alarm that
// started ringing on this tick, if any. While a ring is active the tick
// is a no-op.
func (s *Scheduler) Tick(now time.Time) *store.Alarm {
	if s.ringing != nil {
		return nil
	}

	if s.snoozeAlarm != nil {
		diff := now.Sub(s.snoozeAt)
		if diff < 0 {
			diff = -diff
		}
		if diff < timeutil.AlarmWindow {
			alarm := *s.snoozeAlarm
			s.snoozeAlarm = nil
			return s.startRing(alarm, now)
		}
		// Missed entirely (e.g. process suspended past the window).
		if now.After(s.snoozeAt.Add(timeutil.AlarmWindow)) {
			s.snoozeAlarm = nil
		}
	}

	for id, at := range s.fired {
		if now.Sub(at) > 24*time.Hour {
			delete(s.fired, id)
		}
	}

	for _, alarm := range s.alarms.List() {
		if !alarm.RingsOn(now.Weekday()) {
			continue
		}
		if !timeutil.ShouldAlarmRing(alarm, now) {
			continue
		}
		at, _ := timeutil.AlarmInstant(alarm, now)
		if prev, ok := s.fired[alarm.ID]; ok && prev.Equal(at) {
			continue // already acknowledged in this window
		}
		s.fired[alarm.ID] = at
		return s.startRing(alarm, now)
	}
	return nil
}

func (s *Scheduler) startRing(alarm store.Alarm, now time.Time) *store.Alarm {
	s.ringing = &alarm
	if s.play != nil {
		if err := s.play(alarm.Sound); err != nil {
			s.playErr = err
		}
	}
	return s.ringing
}

// Dismiss clears the ring state unconditionally.
func (s *Scheduler) Dismiss() {
	s.ringing = nil
}

// Snooze clears the ring state and schedules a one-shot re-ring at
// now + the alarm's snooze duration. It reports whether the snooze was
// accepted; alarms without snooze enabled can only be dismissed.
func (s *Scheduler) Snooze(now time.Time) bool {
	if s.ringing == nil || !s.ringing.SnoozeEnabled {
		return false
	}
	alarm := *s.ringing
	s.snoozeAlarm = &alarm
	s.snoozeAt = now.Add(time.Duration(alarm.SnoozeMinutes) * time.Minute)
	s.ringing = nil
	return true
}

// SnoozedUntil returns the pending snooze instant, or the zero time.
func (s *Scheduler) SnoozedUntil() time.Time {
	if s.snoozeAlarm == nil {
		return time.Time{}
	}
	return s.snoozeAt
}
