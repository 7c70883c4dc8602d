package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/muesli/termenv"

	"github.com/jaminalder/tictactoe-timetravel/internal/logging"
	"github.com/jaminalder/tictactoe-timetravel/internal/term"
)

func main() {
	level := flag.String("log-level", "warn", "log level written to stderr")
	flag.Parse()

	logger, err := logging.New(os.Stderr, *level, "console")
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(2)
	}

	s := term.NewSession(os.Stdout, termenv.NewOutput(os.Stdout), logger)
	if err := s.Run(os.Stdin); err != nil {
		logger.Error().Err(err).Msg("read input")
		os.Exit(1)
	}
}
