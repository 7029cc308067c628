package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/example/littlelemon/internal/booking"
	"github.com/example/littlelemon/internal/kv"
	"go.uber.org/zap"
)

//go:embed templates/*.html static/*
var fs embed.FS

const requestTimeout = 5 * time.Second

type Options struct {
	Backend    kv.Store
	Log        *zap.Logger
	Now        func() time.Time
	QuotaBytes int
	SessionTTL time.Duration
	HashKey    []byte
	BlockKey   []byte
}

type Server struct {
	backend kv.Store
	log     *zap.Logger
	now     func() time.Time
	quota   int

	cookies *cookieJar
	mounts  *registry
}

func NewServer(o Options) *Server {
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.SessionTTL <= 0 {
		o.SessionTTL = 30 * time.Minute
	}
	return &Server{
		backend: o.Backend,
		log:     o.Log,
		now:     o.Now,
		quota:   o.QuotaBytes,
		cookies: newCookieJar(o.HashKey, o.BlockKey),
		mounts:  newRegistry(o.SessionTTL, o.Now),
	}
}

type tmplData struct {
	Title string
	Page  string

	Flash   string
	FlashOK bool

	Specials     []special
	View         booking.View
	GuestOptions []string
	MinDate      string
	MaxDate      string
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/static/", http.FileServer(http.FS(fs)))

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})

	mux.HandleFunc("/", s.handleHome)
	mux.HandleFunc("/about", s.handleAbout)
	mux.HandleFunc("/booking", s.handleBooking)

	mux.HandleFunc("/api/booking/field", s.handleField)
	mux.HandleFunc("/api/booking/submit", s.handleSubmit)
	mux.HandleFunc("/api/reservations", s.handleReservations)
	mux.HandleFunc("/api/available-slots", s.handleSlots)

	return s.logging(mux)
}

// ExpireSessions drops idle booking sessions until ctx is done.
func (s *Server) ExpireSessions(ctx context.Context) {
	s.mounts.run(ctx, time.Minute)
}

// storeFor returns the reservation store scoped to one visitor.
func (s *Server) storeFor(visitor string) *booking.Store {
	ns := kv.WithQuota(kv.Namespace(s.backend, kv.VisitorPrefix(visitor)), s.quota)
	return booking.NewStore(ns, s.log.With(zap.String("visitor", visitor)), s.now)
}

func (s *Server) render(w http.ResponseWriter, name string, data tmplData) {
	t, err := template.ParseFS(fs,
		"templates/base.html",
		name,
	)
	if err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, "base", data); err != nil {
		http.Error(w, "render error: "+err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func Start(ctx context.Context, addr string, h http.Handler, log *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	log.Info("listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
