// Package term plays a game on a line-oriented terminal.
package term

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"

	"github.com/jaminalder/tictactoe-timetravel/internal/domain"
)

const helpText = `commands:
  N | play N     mark cell N (1-9, row by row) or r,c (1-3 each)
  jump N         go to move #N
  sort           toggle move list order
  new            start over
  help           show this text
  quit           leave
`

var errQuit = errors.New("quit")

// Session holds one terminal game.
type Session struct {
	out     io.Writer
	style   *termenv.Output
	log     zerolog.Logger
	history *domain.History
	order   domain.Order
}

// NewSession writes to out using the colour profile of style.
func NewSession(out io.Writer, style *termenv.Output, log zerolog.Logger) *Session {
	return &Session{out: out, style: style, log: log, history: domain.NewHistory()}
}

// Run reads commands from in until EOF or quit.
func (s *Session) Run(in io.Reader) error {
	s.render()
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(s.out)
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		err := s.Exec(line)
		switch {
		case errors.Is(err, errQuit):
			return nil
		case err != nil:
			s.log.Debug().Err(err).Str("cmd", line).Msg("rejected")
			fmt.Fprintf(s.out, "error: %s\n", describe(err))
		default:
			s.render()
		}
	}
}

// Exec runs a single command against the session.
func (s *Session) Exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	switch cmd {
	case "quit", "exit", "q":
		return errQuit
	case "help", "?":
		fmt.Fprint(s.out, helpText)
		return nil
	case "new":
		s.history = domain.NewHistory()
		return nil
	case "sort":
		s.order = s.order.Toggle()
		return nil
	case "jump":
		if len(args) != 1 {
			return errors.New("usage: jump N")
		}
		ply, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("jump %q: %w", args[0], domain.ErrOutOfRange)
		}
		return s.history.JumpTo(ply)
	case "play":
		if len(args) != 1 {
			return errors.New("usage: play N")
		}
		return s.play(args[0])
	default:
		if len(args) == 0 {
			return s.play(cmd)
		}
		return fmt.Errorf("unknown command %q, try help", cmd)
	}
}

func (s *Session) play(arg string) error {
	pos, err := parseCell(arg)
	if err != nil {
		return err
	}
	return s.history.ApplyMove(pos)
}

// parseCell accepts a cell number 1-9 or a 1-indexed "row,col" pair.
func parseCell(arg string) (int, error) {
	if r, c, ok := strings.Cut(arg, ","); ok {
		row, err1 := strconv.Atoi(strings.TrimSpace(r))
		col, err2 := strconv.Atoi(strings.TrimSpace(c))
		if err1 != nil || err2 != nil || row < 1 || row > 3 || col < 1 || col > 3 {
			return 0, fmt.Errorf("cell %q: %w", arg, domain.ErrInvalidMove)
		}
		return (row-1)*3 + col - 1, nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("unknown command %q, try help", arg)
	}
	return n - 1, nil
}

func describe(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidMove):
		return "cell is occupied or game is over"
	case errors.Is(err, domain.ErrOutOfRange):
		return "no such move"
	default:
		return err.Error()
	}
}

func (s *Session) render() {
	h := s.history
	board := h.CurrentBoard()
	out := h.Outcome()

	fmt.Fprintln(s.out, out.Summary(h.Next()))
	for r := 0; r < 3; r++ {
		cells := make([]string, 3)
		for c := 0; c < 3; c++ {
			i := r*3 + c
			sym := board[i].String()
			if sym == "" {
				sym = strconv.Itoa(i + 1)
				cells[c] = " " + s.style.String(sym).Faint().String() + " "
				continue
			}
			st := s.style.String(sym).Bold()
			if out.OnLine(i) {
				st = st.Foreground(s.style.Color("3")).Reverse()
			}
			cells[c] = " " + st.String() + " "
		}
		fmt.Fprintln(s.out, strings.Join(cells, "|"))
		if r < 2 {
			fmt.Fprintln(s.out, "---+---+---")
		}
	}

	fmt.Fprintf(s.out, "moves (%s, \"sort\" to %s):\n", s.order, strings.ToLower(s.order.ToggleLabel()))
	for _, item := range domain.MoveList(h, s.order) {
		marker := " "
		if item.Current {
			marker = "*"
		}
		fmt.Fprintf(s.out, "%s %2d  %s\n", marker, item.Ply, item.Label)
	}
}
