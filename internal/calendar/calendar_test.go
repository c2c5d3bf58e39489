package calendar

import (
	"testing"
	"time"
)

func day(hour, minute int) time.Time {
	return time.Date(2026, 9, 1, hour, minute, 0, 0, time.UTC)
}

func TestOpenSlotsRespectsWorkingHours(t *testing.T) {
	slots := openSlots(day(0, 0), day(23, 59), time.Hour, nil)

	if len(slots) == 0 {
		t.Fatalf("expected slots within working hours")
	}

	for _, slot := range slots {
		if slot.Start.Hour() < 9 || slot.Start.Hour() >= 17 {
			t.Fatalf("slot starts outside working hours: %s", slot.Start)
		}
	}

	if !slots[0].Start.Equal(day(9, 0)) {
		t.Fatalf("expected first slot at 09:00, got %s", slots[0].Start)
	}
	if !slots[0].End.Equal(day(10, 0)) {
		t.Fatalf("expected one-hour slot, got end %s", slots[0].End)
	}
}

func TestOpenSlotsSkipsBusyPeriods(t *testing.T) {
	busy := []Slot{
		{Start: day(9, 0), End: day(11, 0)},
	}

	slots := openSlots(day(9, 0), day(12, 0), time.Hour, busy)

	for _, slot := range slots {
		if slot.Start.Before(day(11, 0)) {
			t.Fatalf("slot overlaps busy period: %s", slot.Start)
		}
	}

	if len(slots) == 0 {
		t.Fatalf("expected slots after the busy period")
	}
	if !slots[0].Start.Equal(day(11, 0)) {
		t.Fatalf("expected first open slot at 11:00, got %s", slots[0].Start)
	}
}

func TestOpenSlotsPartialOverlapIsBusy(t *testing.T) {
	// Busy 9:30-10:00. A one-hour slot at 9:00 overlaps it and must be
	// excluded even though its start is free.
	busy := []Slot{
		{Start: day(9, 30), End: day(10, 0)},
	}

	slots := openSlots(day(9, 0), day(11, 0), time.Hour, busy)

	for _, slot := range slots {
		if slot.Start.Equal(day(9, 0)) || slot.Start.Equal(day(9, 30)) {
			t.Fatalf("overlapping slot not excluded: %s", slot.Start)
		}
	}
}

func TestOpenSlotsSteppedEveryThirtyMinutes(t *testing.T) {
	slots := openSlots(day(9, 0), day(10, 1), 30*time.Minute, nil)

	want := []time.Time{day(9, 0), day(9, 30), day(10, 0)}
	if len(slots) != len(want) {
		t.Fatalf("expected %d slots, got %d", len(want), len(slots))
	}
	for i, slot := range slots {
		if !slot.Start.Equal(want[i]) {
			t.Fatalf("slot %d: got %s, want %s", i, slot.Start, want[i])
		}
	}
}

func TestOpenSlotsEmptyWindow(t *testing.T) {
	if slots := openSlots(day(10, 0), day(10, 0), time.Hour, nil); len(slots) != 0 {
		t.Fatalf("expected no slots for empty window, got %d", len(slots))
	}
}
