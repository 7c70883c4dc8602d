package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jaminalder/tictactoe-timetravel/internal/domain"
)

// Errors exposed by the service layer.
var ErrNotFound = errors.New("game not found")

// GameState is the in-memory state tracked per game.
type GameState struct {
	ID      string
	History *domain.History
	Order   domain.Order
	Created time.Time
	Updated time.Time
}

// snapshot copies gs deeply enough that callers cannot reach live history.
func (gs *GameState) snapshot() GameState {
	cp := *gs
	cp.History = gs.History.Clone()
	return cp
}

type subscriber struct {
	ch        chan []byte
	closeOnce sync.Once
}

func (s *subscriber) close() { s.closeOnce.Do(func() { close(s.ch) }) }

// Service manages games and subscribers.
//
// Every mutation of a game runs under one lock, so a caller always observes
// the result of its own call and never an interleaving of two.
type Service struct {
	mu     sync.Mutex
	games  map[string]*GameState
	subs   map[string]map[*subscriber]struct{}
	render func(GameState) []byte
	log    zerolog.Logger
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for game events.
func WithLogger(l zerolog.Logger) Option { return func(s *Service) { s.log = l } }

// WithRenderer sets the function producing broadcast payloads.
func WithRenderer(renderer func(GameState) []byte) Option {
	return func(s *Service) {
		if renderer != nil {
			s.render = renderer
		}
	}
}

// NewService creates a service. Without a renderer broadcasts carry no payload.
func NewService(opts ...Option) *Service {
	s := &Service{
		games:  make(map[string]*GameState),
		subs:   make(map[string]map[*subscriber]struct{}),
		render: func(GameState) []byte { return nil },
		log:    zerolog.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetRenderer replaces the broadcast renderer function.
func (s *Service) SetRenderer(renderer func(GameState) []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if renderer == nil {
		s.render = func(GameState) []byte { return nil }
		return
	}
	s.render = renderer
}

// CreateGame creates and registers a new game.
func (s *Service) CreateGame() (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	gs := &GameState{
		ID:      uuid.NewString(),
		History: domain.NewHistory(),
		Order:   domain.Ascending,
		Created: now,
		Updated: now,
	}
	s.games[gs.ID] = gs
	s.log.Debug().Str("game", gs.ID).Msg("game created")
	cp := gs.snapshot()
	return &cp, nil
}

// Get returns a copy of the game state if present.
func (s *Service) Get(id string) (*GameState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gs, ok := s.games[id]
	if !ok {
		return nil, false
	}
	cp := gs.snapshot()
	return &cp, true
}

// Play places the next mark at pos (0..8) and broadcasts the new state.
func (s *Service) Play(id string, pos int) (*GameState, error) {
	return s.mutate(id, "play", func(gs *GameState) error {
		if err := gs.History.ApplyMove(pos); err != nil {
			return fmt.Errorf("play %d: %w", pos, err)
		}
		s.log.Debug().Str("game", id).Int("pos", pos).Int("ply", gs.History.CurrentPly()).
			Stringer("status", gs.History.Outcome().Status).Msg("move applied")
		return nil
	})
}

// JumpTo moves the game to an earlier or later recorded ply.
func (s *Service) JumpTo(id string, ply int) (*GameState, error) {
	return s.mutate(id, "jump", func(gs *GameState) error {
		if err := gs.History.JumpTo(ply); err != nil {
			return fmt.Errorf("jump to %d: %w", ply, err)
		}
		s.log.Debug().Str("game", id).Int("ply", ply).Msg("jumped")
		return nil
	})
}

// ToggleOrder flips the display order of the move list.
func (s *Service) ToggleOrder(id string) (*GameState, error) {
	return s.mutate(id, "order", func(gs *GameState) error {
		gs.Order = gs.Order.Toggle()
		return nil
	})
}

// mutate applies fn under the lock, then fans the rendered result out.
// On error nothing is broadcast and the game is unchanged.
func (s *Service) mutate(id, op string, fn func(*GameState) error) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gs, ok := s.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	if err := fn(gs); err != nil {
		s.log.Debug().Err(err).Str("game", id).Str("op", op).Msg("rejected")
		return nil, err
	}
	gs.Updated = s.now()

	cp := gs.snapshot()
	s.broadcastLocked(id, s.render(cp))
	return &cp, nil
}

// broadcastLocked delivers payload without blocking; slow subscribers are
// dropped. Sends happen under s.mu so they never race a close.
func (s *Service) broadcastLocked(id string, payload []byte) {
	set := s.subs[id]
	dropped := 0
	for sub := range set {
		select {
		case sub.ch <- payload:
		default:
			sub.close()
			delete(set, sub)
			dropped++
		}
	}
	if dropped > 0 {
		s.log.Debug().Str("game", id).Int("dropped", dropped).Msg("dropped slow subscribers")
	}
}

// Subscribe registers a subscriber for a game. Returns a channel and an unsubscribe func.
// The channel is closed when ctx ends, when unsubscribe is called, or when
// the subscriber falls behind.
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan []byte, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[id]; !ok {
		return nil, nil, ErrNotFound
	}
	set := s.subs[id]
	if set == nil {
		set = make(map[*subscriber]struct{})
		s.subs[id] = set
	}
	sub := &subscriber{ch: make(chan []byte, 1)}
	set[sub] = struct{}{}

	var stop func() bool
	unsubOnce := &sync.Once{}
	unsub := func() {
		unsubOnce.Do(func() {
			// Subscribe holds s.mu until stop is assigned
			s.mu.Lock()
			defer s.mu.Unlock()
			stop()
			if set, ok := s.subs[id]; ok {
				delete(set, sub)
				if len(set) == 0 {
					delete(s.subs, id)
				}
			}
			sub.close()
		})
	}
	stop = context.AfterFunc(ctx, unsub)
	return sub.ch, unsub, nil
}
