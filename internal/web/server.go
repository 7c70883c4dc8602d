package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/jaminalder/tictactoe-timetravel/internal/app"
)

// Options tunes the HTTP layer.
type Options struct {
	Logger    zerolog.Logger
	Heartbeat time.Duration
}

const defaultHeartbeat = 15 * time.Second

// NewServer wires routes and returns an http.Handler.
// It also installs the fragment renderer used for the service's broadcasts.
func NewServer(s *app.Service, opts Options) http.Handler {
	if opts.Heartbeat <= 0 {
		opts.Heartbeat = defaultHeartbeat
	}
	h := &handlers{svc: s, tpl: loadTemplates(), log: opts.Logger, heartbeat: opts.Heartbeat}
	s.SetRenderer(h.renderFragment)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(opts.Logger))
	r.Use(middleware.Recoverer)

	r.Get("/", h.index)
	r.Post("/game", h.create)
	r.Route("/game/{id}", func(r chi.Router) {
		r.Get("/", h.view)
		r.Post("/play", h.play)
		r.Post("/jump", h.jump)
		r.Post("/order", h.order)
		r.Get("/events", h.events)
	})
	return r
}

// requestLogger logs one line per request once the handler returns.
func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			ev := log.Info()
			if status >= http.StatusInternalServerError {
				ev = log.Error()
			}
			ev.Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("elapsed", time.Since(start)).
				Msg("request")
		})
	}
}
