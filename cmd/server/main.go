package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"brawl-tracker/internal/config"
	"brawl-tracker/internal/constants"
	fxmodules "brawl-tracker/internal/fx"
	"brawl-tracker/internal/middleware"
	"brawl-tracker/internal/server"
	"brawl-tracker/internal/service"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fxmodules.Module,
		fx.Invoke(runBattleBackground),
		fx.Invoke(runServer),
	).Run()
}

// runBattleBackground warms the battle sync filter from storage and sweeps
// idle battle cursors for the life of the process.
func runBattleBackground(lc fx.Lifecycle, battles *service.BattleService, logger zerolog.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			// an unseeded filter only costs redundant inserts, which storage ignores
			if _, err := battles.SeedSeen(startCtx); err != nil {
				logger.Warn().Err(err).Msg("starting with an empty battle sync filter")
			}
			go battles.RunCursorSweeper(ctx)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}

func runServer(
	lc fx.Lifecycle,
	trackerServer *server.TrackerServer,
	cfg *config.Config,
	db *sql.DB,
	logger zerolog.Logger,
) {
	path, handler := server.NewHandler(trackerServer)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	})

	mux := http.NewServeMux()
	mux.Handle(path, c.Handler(middleware.RequestID(logger)(handler)))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:           http.TimeoutHandler(mux, constants.RequestTimeout, "request timed out"),
		ReadHeaderTimeout: constants.ExternalAPITimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info().Str("addr", srv.Addr).Msg("server starting")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal().Err(err).Msg("server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("server shutdown failed")
				return err
			}
			if err := db.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing database connection")
			}
			logger.Info().Msg("server stopped gracefully")
			return nil
		},
	})
}
