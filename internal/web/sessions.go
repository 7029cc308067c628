package web

import (
	"context"
	"sync"
	"time"

	"github.com/example/littlelemon/internal/booking"
	"github.com/google/uuid"
)

// mount is one open booking form. mu serializes the events of its session.
type mount struct {
	mu      sync.Mutex
	visitor string
	session *booking.Session
	seen    time.Time
}

// maxMountsPerVisitor bounds the open forms one visitor can hold; opening
// another drops the oldest.
const maxMountsPerVisitor = 5

type registry struct {
	ttl time.Duration
	now func() time.Time

	mu        sync.Mutex
	mounts    map[string]*mount
	byVisitor map[string][]string // mount ids, oldest first
}

func newRegistry(ttl time.Duration, now func() time.Time) *registry {
	return &registry{
		ttl:       ttl,
		now:       now,
		mounts:    map[string]*mount{},
		byVisitor: map[string][]string{},
	}
}

func (r *registry) add(visitor string, s *booking.Session) (string, *mount) {
	id := uuid.NewString()
	m := &mount{visitor: visitor, session: s, seen: r.now()}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mounts[id] = m
	ids := append(r.byVisitor[visitor], id)
	for len(ids) > maxMountsPerVisitor {
		delete(r.mounts, ids[0])
		ids = ids[1:]
	}
	r.byVisitor[visitor] = ids
	return id, m
}

// remove drops id. r.mu must be held.
func (r *registry) remove(id string) {
	m, ok := r.mounts[id]
	if !ok {
		return
	}
	delete(r.mounts, id)
	ids := r.byVisitor[m.visitor]
	for i, other := range ids {
		if other == id {
			ids = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}
	if len(ids) == 0 {
		delete(r.byVisitor, m.visitor)
		return
	}
	r.byVisitor[m.visitor] = ids
}

// get returns the live mount id belonging to visitor.
func (r *registry) get(id, visitor string) (*mount, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.mounts[id]
	if !ok || m.visitor != visitor {
		return nil, false
	}
	now := r.now()
	if now.Sub(m.seen) > r.ttl {
		r.remove(id)
		return nil, false
	}
	m.seen = now
	return m, true
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.mounts)
}

// sweep drops idle mounts and returns how many were removed.
func (r *registry) sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	n := 0
	for id, m := range r.mounts {
		if now.Sub(m.seen) > r.ttl {
			r.remove(id)
			n++
		}
	}
	return n
}

func (r *registry) run(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.sweep()
		}
	}
}
