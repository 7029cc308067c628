package booking

import (
	"fmt"
	"time"
)

const (
	firstSlotHour = 9
	lastSlotHour  = 20
	weekendOpen   = 11
)

// SlotValues returns the canonical slot keys, 09:00 through 20:00 on the hour.
func SlotValues() []string {
	out := make([]string, 0, lastSlotHour-firstSlotHour+1)
	for h := firstSlotHour; h <= lastSlotHour; h++ {
		out = append(out, fmt.Sprintf("%02d:00", h))
	}
	return out
}

func slotLabel(hour int) string {
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:00 %s", h, suffix)
}

// DefaultSlots returns every slot marked available.
func DefaultSlots() []TimeSlot {
	out := make([]TimeSlot, 0, lastSlotHour-firstSlotHour+1)
	for h := firstSlotHour; h <= lastSlotHour; h++ {
		out = append(out, TimeSlot{Value: fmt.Sprintf("%02d:00", h), Label: slotLabel(h), Available: true})
	}
	return out
}

// ComputeAvailability marks which slots are open on date. It only filters
// past hours and weekend opening; the lunch closure and the same-day notice
// buffer are enforced by ValidateTime.
func ComputeAvailability(date string, now time.Time) []TimeSlot {
	slots := DefaultSlots()
	d, ok := parseDate(date, now.Location())
	if date == "" || !ok {
		return slots
	}
	for i := range slots {
		hour, _, _ := parseClock(slots[i].Value)
		slots[i].Available = IsSlotOpen(hour, d, now)
	}
	return slots
}

func IsSlotOpen(hour int, date, now time.Time) bool {
	if sameDay(date, now) && hour <= now.Hour() {
		return false
	}
	if isWeekend(date) {
		return hour >= weekendOpen && hour <= lastSlotHour
	}
	return hour >= firstSlotHour && hour <= lastSlotHour
}
