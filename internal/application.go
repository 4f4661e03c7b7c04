package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-match/internal/config"
	"github.com/rocketscienceinc/tictactoe-match/internal/entity"
	"github.com/rocketscienceinc/tictactoe-match/internal/match"
	"github.com/rocketscienceinc/tictactoe-match/internal/repository"
	"github.com/rocketscienceinc/tictactoe-match/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-match/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-match/transport/console"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	controller, err := match.NewController(conf.Board.Rows, conf.Board.Columns,
		match.WithAutoResetDelay(conf.Match.AutoResetDelay),
		match.WithSymbols(entity.NewSymbols(conf.Symbols.P1, conf.Symbols.P2)),
		match.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("could not create match: %w", err)
	}

	var snapshotRepo repository.SnapshotRepository
	if conf.Redis.Enabled {
		redisStorage, err := storage.New(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		snapshotRepo = repository.NewSnapshotRepository(redisStorage, conf.Redis.SnapshotTTL)
	}

	manager := usecase.NewMatchManager(logger, controller, snapshotRepo)
	if err = manager.Start(ctx); err != nil {
		return fmt.Errorf("could not start match: %w", err)
	}
	defer manager.Close(context.Background())

	log.Info("Starting console", "rows", conf.Board.Rows, "columns", conf.Board.Columns, "match_id", manager.ID())

	if err = console.New(logger, manager, os.Stdout).Start(ctx, os.Stdin); err != nil {
		return fmt.Errorf("console error: %w", err)
	}

	log.Info("Console closed, shutting down")

	return nil
}
