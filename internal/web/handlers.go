package web

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/jaminalder/tictactoe-timetravel/internal/app"
	"github.com/jaminalder/tictactoe-timetravel/internal/domain"
)

type handlers struct {
	svc       *app.Service
	tpl       *templates
	log       zerolog.Logger
	heartbeat time.Duration
}

func (h *handlers) renderFragment(gs app.GameState) []byte {
	return renderTemplate(h.tpl.frag, "", newGameView(gs, ""))
}

func writeHTML(w http.ResponseWriter, b []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	writeHTML(w, renderTemplate(h.tpl.index, "base", nil))
}

func (h *handlers) create(w http.ResponseWriter, r *http.Request) {
	gs, err := h.svc.CreateGame()
	if err != nil {
		http.Error(w, "failed to create", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/game/"+gs.ID, http.StatusSeeOther)
}

func (h *handlers) view(w http.ResponseWriter, r *http.Request) {
	gs, ok := h.svc.Get(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeHTML(w, renderTemplate(h.tpl.game, "base", newGameView(*gs, "")))
}

// formInt reads an integer form field; malformed input yields -1, which
// every domain operation rejects.
func formInt(r *http.Request, key string) int {
	_ = r.ParseForm()
	v, err := strconv.Atoi(r.Form.Get(key))
	if err != nil {
		return -1
	}
	return v
}

func (h *handlers) play(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	pos := formInt(r, "pos")
	gs, err := h.svc.Play(id, pos)
	h.respond(w, r, id, gs, err)
}

func (h *handlers) jump(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ply := formInt(r, "ply")
	gs, err := h.svc.JumpTo(id, ply)
	h.respond(w, r, id, gs, err)
}

func (h *handlers) order(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	gs, err := h.svc.ToggleOrder(id)
	h.respond(w, r, id, gs, err)
}

// respond renders the game fragment, with a message when the action was rejected.
func (h *handlers) respond(w http.ResponseWriter, r *http.Request, id string, gs *app.GameState, err error) {
	var errMsg string
	if err != nil {
		if errors.Is(err, app.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		switch {
		case errors.Is(err, domain.ErrInvalidMove):
			errMsg = "Cell is occupied or game is over"
		case errors.Is(err, domain.ErrOutOfRange):
			errMsg = "No such move"
		default:
			h.log.Error().Err(err).Str("game", id).Msg("unexpected error")
			errMsg = "Something went wrong"
		}
		cur, ok := h.svc.Get(id)
		if !ok {
			http.NotFound(w, r)
			return
		}
		gs = cur
	}
	writeHTML(w, renderTemplate(h.tpl.frag, "", newGameView(*gs, errMsg)))
}

func (h *handlers) events(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.svc.Get(id); !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	// In tests or non-EventSource requests, just acknowledge headers and return
	if r.Header.Get("Accept") != "text/event-stream" {
		w.WriteHeader(http.StatusOK)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		w.WriteHeader(http.StatusOK)
		return
	}
	ctx := r.Context()
	ch, unsub, err := h.svc.Subscribe(ctx, id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer unsub()
	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()
	// Initial flush of headers
	w.WriteHeader(http.StatusOK)
	flusher.Flush()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = io.WriteString(w, ": ping\n\n")
			flusher.Flush()
		case b, ok := <-ch:
			if !ok {
				return
			}
			writeEvent(w, "game", b)
			flusher.Flush()
		}
	}
}

// writeEvent emits one SSE event; every payload line gets its own data field.
func writeEvent(w io.Writer, name string, payload []byte) {
	_, _ = fmt.Fprintf(w, "event: %s\n", name)
	for _, line := range bytes.Split(payload, []byte("\n")) {
		_, _ = fmt.Fprintf(w, "data: %s\n", line)
	}
	_, _ = io.WriteString(w, "\n")
}
