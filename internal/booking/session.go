package booking

import (
	"context"
	"fmt"
	"time"
)

type State string

const (
	StateEditing    State = "editing"
	StateSubmitting State = "submitting"
	StateRejected   State = "rejected"
)

// Session is the state of one booking form: field values, their errors,
// slot availability and the reservation collection loaded at construction.
// It is not safe for concurrent use; callers serialize events.
type Session struct {
	store *Store
	now   func() time.Time

	state        State
	values       Request
	errors       map[Field]string
	advisories   map[Field]string
	slots        []TimeSlot
	reservations []Reservation
}

// SubmitResult describes the outcome of Submit. Alert is the single message
// shown to the user: the first failing field, or the confirmation.
type SubmitResult struct {
	Accepted    bool
	Alert       string
	Field       Field
	Reservation Reservation
}

// View is a snapshot for presentation.
type View struct {
	State        State             `json:"state"`
	Values       Request           `json:"values"`
	Errors       map[string]string `json:"errors"`
	Advisories   map[string]string `json:"advisories"`
	Slots        []TimeSlot        `json:"slots"`
	Reservations []Reservation     `json:"reservations"`
}

// NewSession loads the reservation collection once and starts editing a
// blank form.
func NewSession(ctx context.Context, store *Store, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	s := &Session{
		store:        store,
		now:          now,
		reservations: store.Load(ctx),
	}
	s.reset()
	return s
}

func (s *Session) reset() {
	s.state = StateEditing
	s.values = emptyRequest()
	s.errors = map[Field]string{}
	s.advisories = map[Field]string{}
	s.slots = DefaultSlots()
}

// Change applies a field edit and re-runs the validators that depend on it.
func (s *Session) Change(f Field, value string) error {
	now := s.now()
	s.state = StateEditing
	switch f {
	case FieldName:
		s.values.Name = value
		s.setError(FieldName, ValidateName(value))
	case FieldEmail:
		s.values.Email = value
		s.setError(FieldEmail, ValidateEmail(value))
	case FieldPhone:
		s.values.Phone = value
		s.setError(FieldPhone, ValidatePhone(value))
	case FieldDate:
		s.values.Date = value
		msg := ValidateDate(value, now)
		s.setError(FieldDate, msg)
		s.values.Time = ""
		s.setError(FieldTime, "")
		if msg != "" {
			s.slots = DefaultSlots()
		} else {
			s.slots = ComputeAvailability(value, now)
		}
	case FieldTime:
		s.values.Time = value
		s.setError(FieldTime, ValidateTime(value, s.values.Date, now))
		if s.values.Date != "" && s.errors[FieldDate] == "" {
			s.validateGuests(now)
		}
	case FieldGuests:
		s.values.Guests = value
		s.validateGuests(now)
	default:
		return fmt.Errorf("unknown field %q", f)
	}
	return nil
}

// Submit re-validates every field. When all pass the reservation is appended
// and the form resets.
func (s *Session) Submit(ctx context.Context) SubmitResult {
	s.state = StateSubmitting
	now := s.now()
	v := s.values

	s.setError(FieldName, ValidateName(v.Name))
	s.setError(FieldEmail, ValidateEmail(v.Email))
	s.setError(FieldPhone, ValidatePhone(v.Phone))
	s.setError(FieldDate, ValidateDate(v.Date, now))
	s.setError(FieldTime, ValidateTime(v.Time, v.Date, now))
	s.validateGuests(now)

	for _, f := range Fields {
		if s.errors[f] != "" {
			s.state = StateRejected
			return SubmitResult{
				Field: f,
				Alert: fmt.Sprintf("Please fix the %s error before submitting.", f.label()),
			}
		}
	}

	var r Reservation
	s.reservations, r = s.store.Append(ctx, s.reservations, v)
	s.reset()
	return SubmitResult{
		Accepted:    true,
		Reservation: r,
		Alert:       fmt.Sprintf("Booking confirmed for %s on %s at %s for %s guests!", r.Name, r.Date, r.Time, r.Guests),
	}
}

func (s *Session) validateGuests(now time.Time) {
	msg, advisory := ValidateGuests(s.values.Guests, s.values.Date, s.values.Time, now)
	if advisory {
		s.setError(FieldGuests, "")
		s.advisories[FieldGuests] = msg
		return
	}
	delete(s.advisories, FieldGuests)
	s.setError(FieldGuests, msg)
}

func (s *Session) setError(f Field, msg string) {
	if msg == "" {
		delete(s.errors, f)
		return
	}
	s.errors[f] = msg
}

func (s *Session) State() State { return s.state }

func (s *Session) Values() Request { return s.values }

func (s *Session) Slots() []TimeSlot { return append([]TimeSlot(nil), s.slots...) }

// Error returns the blocking error for f, or "".
func (s *Session) Error(f Field) string { return s.errors[f] }

// Message returns what the form shows under f: the blocking error, or the
// advisory when there is none.
func (s *Session) Message(f Field) string {
	if msg := s.errors[f]; msg != "" {
		return msg
	}
	return s.advisories[f]
}

func (s *Session) HasErrors() bool { return len(s.errors) > 0 }

func (s *Session) Reservations() []Reservation {
	return append([]Reservation(nil), s.reservations...)
}

func (s *Session) View() View {
	v := View{
		State:        s.state,
		Values:       s.values,
		Errors:       make(map[string]string, len(s.errors)),
		Advisories:   make(map[string]string, len(s.advisories)),
		Slots:        s.Slots(),
		Reservations: s.Reservations(),
	}
	for f, msg := range s.errors {
		v.Errors[string(f)] = msg
	}
	for f, msg := range s.advisories {
		v.Advisories[string(f)] = msg
	}
	return v
}
