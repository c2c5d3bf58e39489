// Package calendar provides interviewer availability lookups and event
// creation. The Google Calendar implementation lives in google.go; the
// Service interface keeps the scheduler testable without network access.
package calendar

import (
	"context"
	"time"
)

// Slot is one bookable time window.
type Slot struct {
	Start time.Time
	End   time.Time
}

// Attendee is one event participant.
type Attendee struct {
	Email string
}

// Event describes a calendar event to create.
type Event struct {
	Summary             string
	Description         string
	Start               time.Time
	End                 time.Time
	Attendees           []Attendee
	ConferenceRequestID string
}

// Service is the external calendar boundary.
type Service interface {
	// AvailableSlots returns open windows of the requested duration inside
	// working hours between from and to, earliest first.
	AvailableSlots(ctx context.Context, calendarID string, from, to time.Time, duration time.Duration) ([]Slot, error)

	// CreateEvent books the event and returns the provider event id.
	CreateEvent(ctx context.Context, calendarID string, event Event) (string, error)
}

// Working hours and slot stepping for availability generation.
const (
	workdayStartHour = 9
	workdayEndHour   = 17
	slotStep         = 30 * time.Minute
)

// openSlots walks the window in slotStep increments and keeps every
// working-hours slot that does not overlap a busy period.
func openSlots(from, to time.Time, duration time.Duration, busy []Slot) []Slot {
	var slots []Slot

	for current := from; current.Before(to); current = current.Add(slotStep) {
		if current.Hour() < workdayStartHour || current.Hour() >= workdayEndHour {
			continue
		}

		end := current.Add(duration)

		available := true
		for _, b := range busy {
			if current.Before(b.End) && end.After(b.Start) {
				available = false
				break
			}
		}

		if available {
			slots = append(slots, Slot{Start: current, End: end})
		}
	}

	return slots
}
