package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/littlelemon/internal/kv"
	"go.uber.org/zap"
)

// StorageKey is where the reservation collection lives in the key-value store.
const StorageKey = "bookingData"

// Store reads and writes the reservation collection. Persistence failures are
// logged and never returned: the caller's in-memory collection stays
// authoritative.
type Store struct {
	kv  kv.Store
	log *zap.Logger
	now func() time.Time
}

func NewStore(backend kv.Store, log *zap.Logger, now func() time.Time) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &Store{kv: backend, log: log, now: now}
}

// SeedReservations is shown when nothing has been persisted yet.
func SeedReservations() []Reservation {
	return []Reservation{
		{
			ID: 1, Name: "Maria Rossi", Email: "maria.rossi@example.com", Phone: "+13125550142",
			Date: "2025-09-12", Time: "19:00", Guests: "2", Status: StatusConfirmed,
			CreatedAt: time.Date(2025, 9, 1, 14, 3, 0, 0, time.UTC),
		},
		{
			ID: 2, Name: "James O'Connor", Email: "james.oconnor@example.com", Phone: "+13125550178",
			Date: "2025-09-13", Time: "12:00", Guests: "4", Status: StatusConfirmed,
			CreatedAt: time.Date(2025, 9, 2, 9, 41, 0, 0, time.UTC),
		},
		{
			ID: 3, Name: "Aisha Khan", Email: "aisha.khan@example.com", Phone: "+13125550113",
			Date: "2025-09-16", Time: "18:00", Guests: "6", Status: StatusPending,
			CreatedAt: time.Date(2025, 9, 3, 17, 20, 0, 0, time.UTC),
		},
	}
}

func (s *Store) Load(ctx context.Context) []Reservation {
	raw, ok, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		s.log.Error("failed to load booking data", zap.String("key", StorageKey), zap.Error(err))
		return SeedReservations()
	}
	if !ok || raw == "" {
		return SeedReservations()
	}
	var out []Reservation
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		s.log.Error("failed to load booking data", zap.String("key", StorageKey), zap.Error(err))
		return SeedReservations()
	}
	if out == nil {
		out = []Reservation{}
	}
	return out
}

func (s *Store) Save(ctx context.Context, records []Reservation) {
	if records == nil {
		records = []Reservation{}
	}
	b, err := json.Marshal(records)
	if err != nil {
		s.log.Error("failed to encode booking data", zap.Error(err))
		return
	}
	if err := s.kv.Set(ctx, StorageKey, string(b)); err != nil {
		s.log.Error("failed to save booking data",
			zap.String("key", StorageKey), zap.Int("records", len(records)), zap.Error(err))
	}
}

// Append assigns the next id to req, persists current plus the new record and
// returns both. The returned slice is valid even when the save failed.
func (s *Store) Append(ctx context.Context, current []Reservation, req Request) ([]Reservation, Reservation) {
	r := Reservation{
		ID:        len(current) + 1,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Date:      req.Date,
		Time:      req.Time,
		Guests:    req.Guests,
		Status:    StatusConfirmed,
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	}
	next := make([]Reservation, 0, len(current)+1)
	next = append(next, current...)
	next = append(next, r)
	s.Save(ctx, next)
	s.log.Info("reservation added", zap.Int("id", r.ID), zap.String("date", r.Date), zap.String("time", r.Time))
	return next, r
}

// Clear replaces the collection with an empty one.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Set(ctx, StorageKey, "[]"); err != nil {
		return fmt.Errorf("clear booking data: %w", err)
	}
	return nil
}
