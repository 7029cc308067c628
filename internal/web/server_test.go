package web

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/example/littlelemon/internal/booking"
	"github.com/example/littlelemon/internal/kv"
)

var refNow = time.Date(2026, 10, 21, 10, 30, 0, 0, time.UTC)

func newTestServer(t *testing.T) (*httptest.Server, *kv.Memory) {
	t.Helper()
	mem := kv.NewMemory()
	s := NewServer(Options{
		Backend:    mem,
		Now:        func() time.Time { return refNow },
		QuotaBytes: 5 << 20,
		HashKey:    bytes.Repeat([]byte("h"), 32),
		BlockKey:   bytes.Repeat([]byte("b"), 32),
	})
	ts := httptest.NewServer(s.Routes())
	t.Cleanup(ts.Close)
	return ts, mem
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return &http.Client{Jar: jar}
}

func postJSON(t *testing.T, c *http.Client, u string, body any, out any) int {
	t.Helper()
	b, _ := json.Marshal(body)
	resp, err := c.Post(u, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if out != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatal(err)
		}
	}
	return resp.StatusCode
}

func getBody(t *testing.T, c *http.Client, u string) (int, string) {
	t.Helper()
	resp, err := c.Get(u)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(b)
}

func TestHealthz(t *testing.T) {
	ts, _ := newTestServer(t)
	code, body := getBody(t, ts.Client(), ts.URL+"/healthz")
	if code != http.StatusOK || body != "ok\n" {
		t.Fatalf("healthz = %d %q", code, body)
	}
}

func TestPages(t *testing.T) {
	ts, _ := newTestServer(t)
	tests := []struct {
		path string
		code int
		want string
	}{
		{"/", http.StatusOK, "Greek Salad"},
		{"/about", http.StatusOK, "Monday: closed"},
		{"/booking", http.StatusOK, "Maria Rossi"},
		{"/static/style.css", http.StatusOK, "--green"},
		{"/missing", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			code, body := getBody(t, newClient(t), ts.URL+tt.path)
			if code != tt.code {
				t.Fatalf("status = %d, want %d", code, tt.code)
			}
			if !strings.Contains(body, tt.want) {
				t.Errorf("body missing %q", tt.want)
			}
		})
	}
}

func TestBookingAPIFlow(t *testing.T) {
	ts, _ := newTestServer(t)
	c := newClient(t)
	if code, _ := getBody(t, c, ts.URL+"/booking"); code != http.StatusOK {
		t.Fatalf("mount status %d", code)
	}

	events := []fieldEvent{
		{"name", "John Doe"},
		{"email", "john@example.com"},
		{"phone", "+13125550100"},
		{"date", "2026-10-22"},
		{"time", "12:00"},
		{"guests", "2"},
	}
	var view booking.View
	for _, ev := range events {
		if code := postJSON(t, c, ts.URL+"/api/booking/field", ev, &view); code != http.StatusOK {
			t.Fatalf("field %s: status %d", ev.Field, code)
		}
	}
	if len(view.Errors) != 0 {
		t.Fatalf("unexpected errors %v", view.Errors)
	}

	var res submitResponse
	if code := postJSON(t, c, ts.URL+"/api/booking/submit", nil, &res); code != http.StatusOK {
		t.Fatalf("submit status %d", code)
	}
	if !res.Accepted || res.Reservation == nil || res.Reservation.ID != 4 {
		t.Fatalf("submit = %+v", res)
	}
	if res.View.Values.Name != "" {
		t.Errorf("form not reset: %+v", res.View.Values)
	}

	var rs []booking.Reservation
	resp, err := c.Get(ts.URL + "/api/reservations")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(&rs); err != nil {
		t.Fatal(err)
	}
	if len(rs) != 4 || rs[3].Name != "John Doe" {
		t.Errorf("reservations = %+v", rs)
	}
}

func TestSubmitWithoutMount(t *testing.T) {
	ts, _ := newTestServer(t)
	var res submitResponse
	if code := postJSON(t, newClient(t), ts.URL+"/api/booking/submit", nil, &res); code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	if res.Accepted || res.Alert != "Please fix the name error before submitting." || res.Field != "name" {
		t.Errorf("submit = %+v", res)
	}
	if res.View.Errors["email"] == "" {
		t.Error("inline errors missing from view")
	}
}

func TestFieldBadRequests(t *testing.T) {
	ts, _ := newTestServer(t)
	c := newClient(t)
	if code := postJSON(t, c, ts.URL+"/api/booking/field", fieldEvent{"notes", "x"}, nil); code != http.StatusBadRequest {
		t.Errorf("unknown field status %d", code)
	}
	resp, err := c.Post(ts.URL+"/api/booking/field", "application/json", strings.NewReader("{"))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad json status %d", resp.StatusCode)
	}
	code, _ := getBody(t, c, ts.URL+"/api/booking/field")
	if code != http.StatusMethodNotAllowed {
		t.Errorf("GET status %d", code)
	}
}

func getSlots(t *testing.T, c *http.Client, u string) []booking.TimeSlot {
	t.Helper()
	resp, err := c.Get(u)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: status %d", u, resp.StatusCode)
	}
	var slots []booking.TimeSlot
	if err := json.NewDecoder(resp.Body).Decode(&slots); err != nil {
		t.Fatal(err)
	}
	return slots
}

func TestAvailableSlots(t *testing.T) {
	ts, _ := newTestServer(t)
	c := newClient(t)

	tests := []struct {
		name     string
		query    string
		openFrom int
	}{
		{"weekend", "?date=2026-10-24", 11},
		{"today when omitted", "", 11},
		{"empty date means today", "?date=", 11},
		{"monday is a well-formed date", "?date=2026-10-26", 9},
		{"past date is a well-formed date", "?date=2026-10-20", 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := getSlots(t, c, ts.URL+"/api/available-slots"+tt.query)
			if len(slots) != 12 {
				t.Fatalf("got %d slots", len(slots))
			}
			for i, s := range slots {
				if want := 9+i >= tt.openFrom; s.Available != want {
					t.Errorf("%s available = %v, want %v", s.Value, s.Available, want)
				}
			}
		})
	}

	for _, bad := range []string{"not-a-date", "2026-13-01", "24/10/2026"} {
		if code, _ := getBody(t, c, ts.URL+"/api/available-slots?date="+bad); code != http.StatusBadRequest {
			t.Errorf("date %q: status %d, want 400", bad, code)
		}
	}
}

func TestVisitorsAreIsolated(t *testing.T) {
	ts, mem := newTestServer(t)
	a, b := newClient(t), newClient(t)

	form := url.Values{
		"name": {"John Doe"}, "email": {"john@example.com"}, "phone": {"+13125550100"},
		"date": {"2026-10-22"}, "time": {"12:00"}, "guests": {"2"},
	}
	resp, err := a.PostForm(ts.URL+"/booking", form)
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "Booking confirmed for John Doe on 2026-10-22 at 12:00 for 2 guests!") {
		t.Fatalf("confirmation missing from page")
	}

	u, _ := url.Parse(ts.URL)
	var visitor string
	for _, ck := range a.Jar.Cookies(u) {
		if ck.Name == visitorCookie {
			visitor = ck.Value
		}
	}
	if visitor == "" {
		t.Fatal("visitor cookie not set")
	}

	var rs []booking.Reservation
	resp, err = b.Get(ts.URL + "/api/reservations")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(&rs); err != nil {
		t.Fatal(err)
	}
	if len(rs) != 3 {
		t.Errorf("second visitor sees %d reservations, want seeds", len(rs))
	}

	if _, ok, _ := mem.Get(context.Background(), booking.StorageKey); ok {
		t.Error("reservations stored outside a visitor namespace")
	}
}

func TestBookingFormRejection(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, err := newClient(t).PostForm(ts.URL+"/booking", url.Values{"name": {"R2D2"}})
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	page := string(body)
	if !strings.Contains(page, "Please fix the name error before submitting.") {
		t.Error("alert missing")
	}
	if !strings.Contains(page, "Name can only contain letters, spaces, hyphens, and apostrophes") {
		t.Error("inline name error missing")
	}
}

func TestBookingFormDateChangeKeepsPostedTime(t *testing.T) {
	ts, _ := newTestServer(t)
	c := newClient(t)
	if code, _ := getBody(t, c, ts.URL+"/booking"); code != http.StatusOK {
		t.Fatalf("mount status %d", code)
	}

	form := url.Values{
		"name": {"R2D2"}, "email": {"john@example.com"}, "phone": {"+13125550100"},
		"date": {"2026-10-22"}, "time": {"12:00"}, "guests": {"2"},
	}
	resp, err := c.PostForm(ts.URL+"/booking", form)
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "Please fix the name error before submitting.") {
		t.Fatal("first post should be rejected on the name")
	}

	form.Set("name", "John Doe")
	form.Set("date", "2026-10-23")
	resp, err = c.PostForm(ts.URL+"/booking", form)
	if err != nil {
		t.Fatal(err)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	page := string(body)
	if strings.Contains(page, "Time is required") {
		t.Error("posted time dropped after date change")
	}
	if !strings.Contains(page, "Booking confirmed for John Doe on 2026-10-23 at 12:00 for 2 guests!") {
		t.Error("confirmation missing from page")
	}
}
