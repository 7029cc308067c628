package booking

import "time"

// DateLayout and TimeLayout are the wire formats for reservation dates and slots.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type Status string

const (
	StatusConfirmed Status = "Confirmed"
	StatusPending   Status = "Pending"
)

// Reservation is a persisted booking record.
type Reservation struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Guests    string    `json:"guests"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Request holds the in-progress form values of a booking session.
type Request struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Date   string `json:"date"`
	Time   string `json:"time"`
	Guests string `json:"guests"`
}

// DefaultGuests is the guest count a fresh form starts with.
const DefaultGuests = "2"

func emptyRequest() Request {
	return Request{Guests: DefaultGuests}
}

type TimeSlot struct {
	Value     string `json:"value"`
	Label     string `json:"label"`
	Available bool   `json:"available"`
}

type Field string

const (
	FieldName   Field = "name"
	FieldEmail  Field = "email"
	FieldPhone  Field = "phone"
	FieldDate   Field = "date"
	FieldTime   Field = "time"
	FieldGuests Field = "guests"
)

// Fields lists the form fields in submission order; the first failing one
// names the blocking alert.
var Fields = []Field{FieldName, FieldEmail, FieldPhone, FieldDate, FieldTime, FieldGuests}

// ParseField maps a form field name to a Field.
func ParseField(s string) (Field, bool) {
	for _, f := range Fields {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// label is how a field is named in the submission alert.
func (f Field) label() string {
	if f == FieldGuests {
		return "guest count"
	}
	return string(f)
}

// Get returns the value of f.
func (r Request) Get(f Field) string {
	switch f {
	case FieldName:
		return r.Name
	case FieldEmail:
		return r.Email
	case FieldPhone:
		return r.Phone
	case FieldDate:
		return r.Date
	case FieldTime:
		return r.Time
	case FieldGuests:
		return r.Guests
	}
	return ""
}
