package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// boardOf builds a board from a 9-char pattern of 'X', 'O' and '.'.
func boardOf(t *testing.T, s string) Board {
	t.Helper()
	require.Len(t, s, 9)
	var b Board
	for i, r := range s {
		switch r {
		case 'X':
			b[i] = X
		case 'O':
			b[i] = O
		case '.':
		default:
			t.Fatalf("bad cell %q at %d", r, i)
		}
	}
	return b
}

func TestEvaluateEveryLine(t *testing.T) {
	for _, side := range []Cell{X, O} {
		for _, ln := range Lines {
			var b Board
			for _, i := range ln {
				b[i] = side
			}
			out := Evaluate(b)
			require.Equal(t, Won, out.Status, "line %v side %v", ln, side)
			assert.Equal(t, side, out.Winner)
			assert.Equal(t, ln, out.Line)
		}
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		board  string
		status Status
		winner Cell
		line   [3]int
	}{
		{name: "empty board", board: ".........", status: InProgress},
		{name: "partial board", board: "X...O....", status: InProgress},
		{name: "one empty cell", board: "XOXXOO.XO", status: InProgress},
		{name: "X wins top row", board: "XXXOO....", status: Won, winner: X, line: [3]int{0, 1, 2}},
		{name: "O wins middle column", board: "XOX.O..OX", status: Won, winner: O, line: [3]int{1, 4, 7}},
		{name: "O wins anti-diagonal", board: "XXO.O.OX.", status: Won, winner: O, line: [3]int{2, 4, 6}},
		{name: "full board with a line is a win", board: "XOXOXOOXX", status: Won, winner: X, line: [3]int{0, 4, 8}},
		{name: "draw", board: "XOXXOOOXX", status: Draw},
		{name: "first line in order wins", board: "XXXXOOXOO", status: Won, winner: X, line: [3]int{0, 1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Evaluate(boardOf(t, tt.board))
			require.Equal(t, tt.status, out.Status)
			if tt.status == Won {
				assert.Equal(t, tt.winner, out.Winner)
				assert.Equal(t, tt.line, out.Line)
			}
		})
	}
}

func TestEvaluateIsPure(t *testing.T) {
	b := boardOf(t, "XO.XO....")
	before := b
	first := Evaluate(b)
	assert.Equal(t, first, Evaluate(b))
	assert.Equal(t, before, b)
}

func TestOutcomeOnLineAndSummary(t *testing.T) {
	won := Evaluate(boardOf(t, "OOOXX.X.."))
	assert.True(t, won.OnLine(0))
	assert.True(t, won.OnLine(2))
	assert.False(t, won.OnLine(3))
	assert.Equal(t, "Winner: O", won.Summary(X))

	assert.Equal(t, "Draw", Evaluate(boardOf(t, "XOXXOOOXX")).Summary(X))

	open := Evaluate(boardOf(t, "X........"))
	assert.False(t, open.OnLine(0))
	assert.Equal(t, "Next player: O", open.Summary(O))
}
