package booking

import "testing"

func availableHours(slots []TimeSlot) map[int]bool {
	out := map[int]bool{}
	for _, s := range slots {
		h, _, ok := parseClock(s.Value)
		if !ok {
			continue
		}
		out[h] = s.Available
	}
	return out
}

func TestSlotValues(t *testing.T) {
	vals := SlotValues()
	if len(vals) != 12 {
		t.Fatalf("got %d slots, want 12", len(vals))
	}
	if vals[0] != "09:00" || vals[11] != "20:00" {
		t.Errorf("slots = %v", vals)
	}
}

func TestDefaultSlotLabels(t *testing.T) {
	want := map[string]string{"09:00": "9:00 AM", "11:00": "11:00 AM", "12:00": "12:00 PM", "13:00": "1:00 PM", "20:00": "8:00 PM"}
	for _, s := range DefaultSlots() {
		if !s.Available {
			t.Errorf("default slot %s unavailable", s.Value)
		}
		if l, ok := want[s.Value]; ok && l != s.Label {
			t.Errorf("label(%s) = %q, want %q", s.Value, s.Label, l)
		}
	}
}

func TestComputeAvailability(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		openFrom int
	}{
		{"weekday", "2026-10-22", 9},
		{"saturday", "2026-10-24", 11},
		{"sunday", "2026-10-25", 11},
		{"today", "2026-10-21", 11},
		{"empty", "", 9},
		{"garbage", "not-a-date", 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hours := availableHours(ComputeAvailability(tt.date, refNow))
			if len(hours) != 12 {
				t.Fatalf("got %d slots", len(hours))
			}
			for h := 9; h <= 20; h++ {
				if want := h >= tt.openFrom; hours[h] != want {
					t.Errorf("hour %d available = %v, want %v", h, hours[h], want)
				}
			}
		})
	}
}

func TestComputeAvailabilityIgnoresLunchBreak(t *testing.T) {
	hours := availableHours(ComputeAvailability("2026-10-22", refNow))
	if !hours[15] || !hours[16] {
		t.Error("lunch hours are filtered by ValidateTime, not availability")
	}
}
