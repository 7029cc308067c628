package web

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/example/littlelemon/internal/booking"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type special struct {
	Name        string
	Price       string
	Description string
}

var specials = []special{
	{"Greek Salad", "$12.99", "Crispy lettuce, peppers, olives and Chicago-style feta, dressed with garlic and rosemary croutons."},
	{"Bruschetta", "$5.99", "Grilled bread smeared with garlic, seasoned with salt and olive oil."},
	{"Lemon Dessert", "$5.00", "Straight from grandma's recipe book, every ingredient sourced and as authentic as can be."},
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.render(w, "templates/home.html", tmplData{Title: "Home", Page: "home", Specials: specials})
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	s.render(w, "templates/about.html", tmplData{Title: "About", Page: "about"})
}

// visitor returns the caller's visitor id, issuing a new one when the
// cookie is missing or invalid.
func (s *Server) visitor(w http.ResponseWriter, r *http.Request) string {
	if id, ok := s.cookies.read(r, visitorCookie); ok {
		return id
	}
	id := uuid.NewString()
	if err := s.cookies.write(w, r, visitorCookie, id, visitorMaxAge); err != nil {
		s.log.Error("set visitor cookie", zap.Error(err))
	}
	return id
}

// mountSession opens a fresh booking form for visitor.
func (s *Server) mountSession(ctx context.Context, w http.ResponseWriter, r *http.Request, visitor string) *mount {
	sess := booking.NewSession(ctx, s.storeFor(visitor), s.now)
	id, m := s.mounts.add(visitor, sess)
	if err := s.cookies.write(w, r, sessionCookie, id, 0); err != nil {
		s.log.Error("set session cookie", zap.Error(err))
	}
	return m
}

// currentSession resumes the caller's open form or mounts a new one.
func (s *Server) currentSession(ctx context.Context, w http.ResponseWriter, r *http.Request, visitor string) *mount {
	if id, ok := s.cookies.read(r, sessionCookie); ok {
		if m, ok := s.mounts.get(id, visitor); ok {
			return m
		}
	}
	return s.mountSession(ctx, w, r, visitor)
}

func (s *Server) bookingData(v booking.View, flash string, ok bool) tmplData {
	today := s.now()
	return tmplData{
		Title:        "Reserve a Table",
		Page:         "booking",
		Flash:        flash,
		FlashOK:      ok,
		View:         v,
		GuestOptions: booking.GuestOptions,
		MinDate:      today.Format(booking.DateLayout),
		MaxDate:      today.AddDate(0, 3, 0).Format(booking.DateLayout),
	}
}

func (s *Server) handleBooking(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	visitor := s.visitor(w, r)

	switch r.Method {
	case http.MethodGet:
		m := s.mountSession(ctx, w, r, visitor)
		m.mu.Lock()
		v := m.session.View()
		m.mu.Unlock()
		s.render(w, "templates/booking.html", s.bookingData(v, "", false))
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		m := s.currentSession(ctx, w, r, visitor)
		m.mu.Lock()
		for _, f := range booking.Fields {
			// Re-read each pass: a date change clears the time.
			vals, ok := r.PostForm[string(f)]
			if !ok || len(vals) == 0 || vals[0] == m.session.Values().Get(f) {
				continue
			}
			_ = m.session.Change(f, vals[0])
		}
		res := m.session.Submit(ctx)
		v := m.session.View()
		m.mu.Unlock()
		s.render(w, "templates/booking.html", s.bookingData(v, res.Alert, res.Accepted))
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

type fieldEvent struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (s *Server) handleField(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var ev fieldEvent
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&ev); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	f, ok := booking.ParseField(ev.Field)
	if !ok {
		jsonError(w, http.StatusBadRequest, "unknown field")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	m := s.currentSession(ctx, w, r, s.visitor(w, r))
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.session.Change(f, ev.Value); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, m.session.View())
}

type submitResponse struct {
	Accepted    bool                 `json:"accepted"`
	Alert       string               `json:"alert"`
	Field       string               `json:"field,omitempty"`
	Reservation *booking.Reservation `json:"reservation,omitempty"`
	View        booking.View         `json:"view"`
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	m := s.currentSession(ctx, w, r, s.visitor(w, r))
	m.mu.Lock()
	defer m.mu.Unlock()

	res := m.session.Submit(ctx)
	out := submitResponse{
		Accepted: res.Accepted,
		Alert:    res.Alert,
		Field:    string(res.Field),
		View:     m.session.View(),
	}
	if res.Accepted {
		out.Reservation = &res.Reservation
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleReservations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	visitor := s.visitor(w, r)

	// An open form holds the authoritative collection even when saves fail.
	if id, ok := s.cookies.read(r, sessionCookie); ok {
		if m, ok := s.mounts.get(id, visitor); ok {
			m.mu.Lock()
			rs := m.session.Reservations()
			m.mu.Unlock()
			writeJSON(w, http.StatusOK, rs)
			return
		}
	}
	writeJSON(w, http.StatusOK, s.storeFor(visitor).Load(ctx))
}

func (s *Server) handleSlots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	now := s.now()
	date := r.URL.Query().Get("date")
	if date == "" {
		date = now.Format(booking.DateLayout)
	}
	if _, err := time.Parse(booking.DateLayout, date); err != nil {
		jsonError(w, http.StatusBadRequest, "Please enter a valid date")
		return
	}
	writeJSON(w, http.StatusOK, booking.ComputeAvailability(date, now))
}
