package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Thoxh/smart-biodigester-dashboard/internal/config"
	"github.com/Thoxh/smart-biodigester-dashboard/internal/database"
	"github.com/Thoxh/smart-biodigester-dashboard/internal/feed"
	"github.com/Thoxh/smart-biodigester-dashboard/internal/history"
	"github.com/Thoxh/smart-biodigester-dashboard/internal/server"
	"github.com/Thoxh/smart-biodigester-dashboard/internal/service"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svcs := service.New(db)
	listener := database.NewListener(config.DSN(), config.NotifyChannel())
	liveFeed := feed.New(svcs.Repos, listener, config.PollInterval())
	hist := history.New(svcs.Repos)

	go func() {
		if err := listener.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("listener stopped")
		}
	}()
	go liveFeed.Run(ctx)

	srv := server.New(svcs, liveFeed, hist)
	srv.Start(ctx)

	httpSrv := &http.Server{Addr: config.WebAddr(), Handler: srv.Handler()}
	go func() {
		log.Info().Str("addr", httpSrv.Addr).Msg("dashboard listening")
		if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server exit")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
