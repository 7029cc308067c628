package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/example/littlelemon/internal/booking"
	"github.com/example/littlelemon/internal/kv"
)

func TestRegistryExpiry(t *testing.T) {
	now := refNow
	clock := func() time.Time { return now }
	r := newRegistry(30*time.Minute, clock)
	sess := booking.NewSession(context.Background(), booking.NewStore(kv.NewMemory(), nil, clock), clock)

	id, _ := r.add("v1", sess)
	if _, ok := r.get(id, "v2"); ok {
		t.Fatal("mount returned for another visitor")
	}
	now = now.Add(20 * time.Minute)
	if _, ok := r.get(id, "v1"); !ok {
		t.Fatal("mount expired early")
	}
	// get refreshed the idle timer.
	now = now.Add(20 * time.Minute)
	if n := r.sweep(); n != 0 {
		t.Fatalf("swept %d live mounts", n)
	}
	now = now.Add(31 * time.Minute)
	if n := r.sweep(); n != 1 {
		t.Fatalf("swept %d, want 1", n)
	}
	if r.len() != 0 {
		t.Fatal("registry not empty")
	}
}

func TestRegistryGetExpired(t *testing.T) {
	now := refNow
	r := newRegistry(time.Minute, func() time.Time { return now })
	id, _ := r.add("v", nil)
	now = now.Add(2 * time.Minute)
	if _, ok := r.get(id, "v"); ok {
		t.Fatal("expired mount returned")
	}
	if r.len() != 0 {
		t.Fatal("expired mount not removed")
	}
}

func TestRegistryCapsMountsPerVisitor(t *testing.T) {
	r := newRegistry(time.Hour, func() time.Time { return refNow })
	var ids []string
	for i := 0; i < maxMountsPerVisitor+2; i++ {
		id, _ := r.add("v1", nil)
		ids = append(ids, id)
	}
	other, _ := r.add("v2", nil)

	if got, want := r.len(), maxMountsPerVisitor+1; got != want {
		t.Fatalf("registry holds %d mounts, want %d", got, want)
	}
	for _, id := range ids[:2] {
		if _, ok := r.get(id, "v1"); ok {
			t.Errorf("oldest mount %s not evicted", id)
		}
	}
	for _, id := range ids[2:] {
		if _, ok := r.get(id, "v1"); !ok {
			t.Errorf("recent mount %s evicted", id)
		}
	}
	if _, ok := r.get(other, "v2"); !ok {
		t.Error("another visitor's mount was evicted")
	}
}

func TestBookingPageReloadsStayBounded(t *testing.T) {
	s := NewServer(Options{
		Backend:  kv.NewMemory(),
		Now:      func() time.Time { return refNow },
		HashKey:  make([]byte, 32),
		BlockKey: make([]byte, 32),
	})
	ts := httptest.NewServer(s.Routes())
	defer ts.Close()

	c := newClient(t)
	for i := 0; i < 3*maxMountsPerVisitor; i++ {
		if code, _ := getBody(t, c, ts.URL+"/booking"); code != http.StatusOK {
			t.Fatalf("status %d", code)
		}
	}
	if got := s.mounts.len(); got != maxMountsPerVisitor {
		t.Errorf("registry holds %d mounts, want %d", got, maxMountsPerVisitor)
	}
}
