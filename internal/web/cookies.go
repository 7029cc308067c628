package web

import (
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

const (
	visitorCookie = "littlelemon_visitor"
	sessionCookie = "littlelemon_session"

	visitorMaxAge = 365 * 24 * time.Hour
)

type cookieValue struct {
	ID string
	V  int
}

// cookieJar signs and encrypts the visitor and session ids.
type cookieJar struct {
	sc *securecookie.SecureCookie
}

func newCookieJar(hashKey, blockKey []byte) *cookieJar {
	sc := securecookie.New(hashKey, blockKey)
	sc.MaxAge(int(visitorMaxAge.Seconds()))
	return &cookieJar{sc: sc}
}

func (j *cookieJar) read(r *http.Request, name string) (string, bool) {
	c, err := r.Cookie(name)
	if err != nil {
		return "", false
	}
	var v cookieValue
	if err := j.sc.Decode(name, c.Value, &v); err != nil || v.ID == "" {
		return "", false
	}
	return v.ID, true
}

// write sets name to id. maxAge 0 makes a browser-session cookie.
func (j *cookieJar) write(w http.ResponseWriter, r *http.Request, name, id string, maxAge time.Duration) error {
	encoded, err := j.sc.Encode(name, cookieValue{ID: id, V: 1})
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
		MaxAge:   int(maxAge.Seconds()),
	})
	return nil
}
