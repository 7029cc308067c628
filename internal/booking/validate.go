package booking

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	nameRe     = regexp.MustCompile(`^[A-Za-z\s\-']+$`)
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe    = regexp.MustCompile(`^[+]?[1-9]\d{0,15}$`)
	nonDigitRe = regexp.MustCompile(`\D`)
)

// GuestOptions are the selectable party sizes.
var GuestOptions = []string{"1", "2", "3", "4", "5", "6", "7", "8"}

const (
	maxGuests      = 8
	largeParty     = 6
	advanceMonths  = 3
	noticeHours    = 2
	largePartyDays = 2
	selectSentinel = "default"
)

func ValidateName(value string) string {
	name := strings.TrimSpace(value)
	switch {
	case name == "":
		return "Name is required"
	case !nameRe.MatchString(name):
		return "Name can only contain letters, spaces, hyphens, and apostrophes"
	case len(name) < 2:
		return "Name must be at least 2 characters long"
	case len(name) > 50:
		return "Name must be less than 50 characters"
	}
	return ""
}

func ValidateEmail(value string) string {
	email := strings.TrimSpace(value)
	switch {
	case email == "":
		return "Email is required"
	case !emailRe.MatchString(email):
		return "Please enter a valid email address"
	case len(email) > 100:
		return "Email must be less than 100 characters"
	}
	return ""
}

func ValidatePhone(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Phone number is required"
	}
	digits := nonDigitRe.ReplaceAllString(value, "")
	switch {
	case len(digits) < 10:
		return "Phone number must be at least 10 digits"
	case len(digits) > 15:
		return "Phone number must be less than 15 digits"
	case !phoneRe.MatchString(digits):
		return "Please enter a valid phone number"
	}
	return ""
}

// ValidateDate checks a YYYY-MM-DD date against today in now's location.
func ValidateDate(value string, now time.Time) string {
	if strings.TrimSpace(value) == "" {
		return "Please select a date"
	}
	d, ok := parseDate(value, now.Location())
	if !ok {
		return "Please enter a valid date"
	}
	today := midnight(now)
	switch {
	case d.Before(today):
		return "Please select a date from today onwards"
	case d.After(today.AddDate(0, advanceMonths, 0)):
		return "Reservations can only be made up to 3 months in advance"
	case d.Weekday() == time.Monday:
		return "Sorry, we are closed on Mondays. Please select another date."
	}
	return ""
}

// ValidateSelect guards constrained inputs against empty, sentinel and
// tampered values.
func ValidateSelect(value, fieldName string, allowed []string) string {
	if value == "" || value == selectSentinel {
		return fieldName + " is required"
	}
	for _, a := range allowed {
		if value == a {
			return ""
		}
	}
	return "Invalid " + strings.ToLower(fieldName) + " selection"
}

// ValidateTime checks a slot against operating hours, same-day notice and the
// weekday lunch closure for the given date.
func ValidateTime(value, date string, now time.Time) string {
	if msg := ValidateSelect(value, "Time", SlotValues()); msg != "" {
		return msg
	}
	if date == "" || ValidateDate(date, now) != "" {
		return "Please select a date first"
	}
	d, _ := parseDate(date, now.Location())
	hour, minute, _ := parseClock(value)

	weekend := isWeekend(d)
	if weekend && (hour < 11 || hour > 20) {
		return "Weekend hours are 11:00 AM - 8:00 PM"
	}
	if !weekend && (hour < 9 || hour > 20) {
		return "Weekday hours are 9:00 AM - 8:00 PM"
	}

	if sameDay(d, now) {
		if hour*60+minute <= now.Hour()*60+now.Minute() {
			return "Please select a future time for today"
		}
		if hour < now.Hour()+noticeHours {
			return "Reservations require at least 2 hours advance notice"
		}
	}

	if !weekend && inLunchBreak(hour, minute) {
		return "Kitchen is closed from 2:30 PM - 4:00 PM for lunch break"
	}
	return ""
}

// ValidateGuests checks the party size against the chosen date and time.
// advisory marks a soft warning that must not block submission.
func ValidateGuests(value, date, slot string, now time.Time) (msg string, advisory bool) {
	if msg := ValidateSelect(value, "Number of guests", GuestOptions); msg != "" {
		return msg, false
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return "Minimum 1 guest required", false
	}
	if n > maxGuests {
		return "For parties larger than 8 guests, please call us directly", false
	}

	hour, _, hasTime := parseClock(slot)

	if n >= largeParty {
		d, ok := parseDate(date, now.Location())
		if date == "" || !ok {
			return "Please select a date for large party reservations", false
		}
		if isWeekend(d) {
			return "Large parties (6+ guests) are not available on weekends", false
		}
		if hasTime && hour >= 18 && hour <= 20 {
			return "Large parties (6+ guests) are not available during peak hours (6:00 PM - 8:00 PM)", false
		}
		if daysUntil(d, now) < largePartyDays {
			return "Large parties (6+ guests) require at least 2 days advance booking", false
		}
	}

	if n == 1 && hasTime && hour >= 19 && hour <= 20 {
		return "Single diner reservations during peak hours (7:00 PM - 8:00 PM) may have limited availability", true
	}
	return "", false
}

func inLunchBreak(hour, minute int) bool {
	return (hour == 14 && minute >= 30) || hour == 15 || (hour == 16 && minute == 0)
}

func parseDate(value string, loc *time.Location) (time.Time, bool) {
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(value), loc)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

func parseClock(value string) (hour, minute int, ok bool) {
	t, err := time.Parse(TimeLayout, value)
	if err != nil {
		return 0, 0, false
	}
	return t.Hour(), t.Minute(), true
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func isWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// daysUntil is the ceiling of the number of days between now and the start
// of d.
func daysUntil(d, now time.Time) int {
	return int(math.Ceil(d.Sub(now).Hours() / 24))
}
