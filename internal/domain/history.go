package domain

import (
	"errors"
	"fmt"
)

// Errors returned by domain operations.
var (
	ErrInvalidMove = errors.New("invalid move")
	ErrOutOfRange  = errors.New("ply out of range")
)

// NoMove marks the initial entry, which has no move position.
const NoMove = -1

// Entry is one recorded ply: the board after the move and where it was made.
type Entry struct {
	Board Board
	Pos   int
}

// History holds every board of a game, one per ply, and the ply being viewed.
//
// Entry 0 is always the empty board. Jumping back keeps later entries around
// until the next move, which discards them.
type History struct {
	entries []Entry
	current int
}

// NewHistory returns a history at game start.
func NewHistory() *History {
	return &History{entries: []Entry{{Pos: NoMove}}}
}

// Len returns the number of recorded plies, including game start.
func (h *History) Len() int { return len(h.entries) }

// CurrentPly returns the index of the ply being viewed.
func (h *History) CurrentPly() int { return h.current }

// CurrentBoard returns the board at the current ply.
func (h *History) CurrentBoard() Board { return h.entries[h.current].Board }

// Outcome evaluates the current board.
func (h *History) Outcome() Outcome { return Evaluate(h.CurrentBoard()) }

// Next returns the side to move at the current ply. X moves on even plies.
func (h *History) Next() Cell {
	if h.current%2 == 0 {
		return X
	}
	return O
}

// Entry returns the entry recorded at ply.
func (h *History) Entry(ply int) (Entry, error) {
	if ply < 0 || ply >= len(h.entries) {
		return Entry{}, fmt.Errorf("ply %d of %d: %w", ply, len(h.entries), ErrOutOfRange)
	}
	return h.entries[ply], nil
}

// ApplyMove places the current side's mark at pos (0..8).
// Any plies after the current one are discarded first.
func (h *History) ApplyMove(pos int) error {
	if pos < 0 || pos > 8 {
		return fmt.Errorf("position %d: %w", pos, ErrInvalidMove)
	}
	board := h.CurrentBoard()
	if board[pos] != Empty {
		return fmt.Errorf("position %d occupied: %w", pos, ErrInvalidMove)
	}
	if out := Evaluate(board); out.Status != InProgress {
		return fmt.Errorf("game is %s: %w", out.Status, ErrInvalidMove)
	}

	board[pos] = h.Next()
	// full slice expression so a truncated tail is never written through
	h.entries = append(h.entries[:h.current+1:h.current+1], Entry{Board: board, Pos: pos})
	h.current = len(h.entries) - 1
	return nil
}

// JumpTo moves the current ply without touching recorded entries.
func (h *History) JumpTo(ply int) error {
	if ply < 0 || ply >= len(h.entries) {
		return fmt.Errorf("ply %d of %d: %w", ply, len(h.entries), ErrOutOfRange)
	}
	h.current = ply
	return nil
}

// Descriptor locates the move made at a ply.
// Row and Col are 1-indexed and zero for game start.
type Descriptor struct {
	Start bool
	Row   int
	Col   int
}

func (d Descriptor) String() string {
	if d.Start {
		return "game start"
	}
	return fmt.Sprintf("(%d,%d)", d.Row, d.Col)
}

// MoveDescriptor describes the move recorded at ply.
func (h *History) MoveDescriptor(ply int) (Descriptor, error) {
	e, err := h.Entry(ply)
	if err != nil {
		return Descriptor{}, err
	}
	if e.Pos == NoMove {
		return Descriptor{Start: true}, nil
	}
	return Descriptor{Row: e.Pos/3 + 1, Col: e.Pos%3 + 1}, nil
}

// Clone returns a deep copy that shares no storage with h.
func (h *History) Clone() *History {
	entries := make([]Entry, len(h.entries))
	copy(entries, h.entries)
	return &History{entries: entries, current: h.current}
}
