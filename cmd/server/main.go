package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/jaminalder/tictactoe-timetravel/internal/app"
	"github.com/jaminalder/tictactoe-timetravel/internal/config"
	"github.com/jaminalder/tictactoe-timetravel/internal/logging"
	"github.com/jaminalder/tictactoe-timetravel/internal/web"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (environment only when empty)")
	flag.Parse()

	cfg := config.MustLoad(*configPath)
	logger, err := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	log.Logger = logger

	svc := app.NewService(app.WithLogger(logger.With().Str("component", "games").Logger()))
	srv := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: web.NewServer(svc, web.Options{Logger: logger, Heartbeat: cfg.HTTP.Heartbeat}),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	log.Info().Msg("stopped")
}
