package domain

// Cell represents a board cell state.
type Cell uint8

const (
	Empty Cell = iota
	X
	O
)

func (c Cell) String() string {
	switch c {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return ""
	}
}

// Board is a fixed 3x3 board stored row-major.
// It is a value type: assigning or passing a Board copies all nine cells.
type Board [9]Cell

// Full reports whether no cell is Empty.
func (b Board) Full() bool {
	for _, c := range b {
		if c == Empty {
			return false
		}
	}
	return true
}

// Status is the state of a game as seen from a single board.
type Status uint8

const (
	InProgress Status = iota
	Won
	Draw
)

func (s Status) String() string {
	switch s {
	case Won:
		return "won"
	case Draw:
		return "draw"
	default:
		return "in progress"
	}
}

// Lines lists every winning triple in evaluation order.
var Lines = [8][3]int{
	// rows
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	// cols
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	// diags
	{0, 4, 8}, {2, 4, 6},
}

// Outcome is the result of evaluating a board.
// Winner and Line are only meaningful when Status is Won.
type Outcome struct {
	Status Status
	Winner Cell
	Line   [3]int
}

// Evaluate reports whether b has been won, drawn, or is still in progress.
// When several lines are complete the first one in Lines wins.
func Evaluate(b Board) Outcome {
	for _, ln := range Lines {
		a := b[ln[0]]
		if a != Empty && a == b[ln[1]] && a == b[ln[2]] {
			return Outcome{Status: Won, Winner: a, Line: ln}
		}
	}
	if b.Full() {
		return Outcome{Status: Draw}
	}
	return Outcome{Status: InProgress}
}

// OnLine reports whether cell i is part of the winning line.
func (o Outcome) OnLine(i int) bool {
	if o.Status != Won {
		return false
	}
	return o.Line[0] == i || o.Line[1] == i || o.Line[2] == i
}

// Summary is the one-line status shown above the board.
func (o Outcome) Summary(next Cell) string {
	switch o.Status {
	case Won:
		return "Winner: " + o.Winner.String()
	case Draw:
		return "Draw"
	default:
		return "Next player: " + next.String()
	}
}
