package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/config"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/repository"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/repository/storage"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/service"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/usecase"
	"github.com/rocketscienceinc/ultimate-tictactoe/transport/console"
)

var (
	ErrAddrNotFound   = errors.New("redis address string is empty")
	ErrUnknownStorage = errors.New("unknown storage")
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	settings, err := newSettings(conf.Game)
	if err != nil {
		return err
	}

	statsRepo, closeStorage, err := newStatsRepository(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = closeStorage(); err != nil {
			log.Error("could not close storage", "error", err)
		}
	}()

	seed := conf.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	botService := service.NewBotService(rand.New(rand.NewSource(seed))) //nolint: gosec // game randomness
	delay := usecase.ThinkDelay{Min: conf.Game.ThinkDelayMin, Jitter: conf.Game.ThinkDelayJitter}
	gameManager := usecase.NewGameManager(logger, statsRepo, botService, settings, delay)

	consoleErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting console", "storage", conf.Storage, "mode", settings.Mode, "difficulty", settings.Difficulty)
		consoleErrCh <- console.New(logger, gameManager, os.Stdout).Start(ctx, os.Stdin)
	}()

	select {
	case err = <-consoleErrCh:
		if err != nil {
			return fmt.Errorf("console error: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

func newSettings(conf config.Game) (entity.Settings, error) {
	mode, err := entity.ParseMode(conf.Mode)
	if err != nil {
		return entity.Settings{}, fmt.Errorf("invalid game config: %w", err)
	}

	difficulty, err := entity.ParseDifficulty(conf.Difficulty)
	if err != nil {
		return entity.Settings{}, fmt.Errorf("invalid game config: %w", err)
	}

	return entity.NewSettings(mode, difficulty), nil
}

// newStatsRepository - opens the configured counter store and returns its closer.
func newStatsRepository(ctx context.Context, conf *config.Config) (repository.StatsRepository, func() error, error) {
	switch conf.Storage {
	case config.StorageRedis:
		redisAddrString := conf.Redis.GetRedisAddr()
		if conf.Redis.Host == "" {
			return nil, nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewStatsRepository(redisStorage.Connection), redisStorage.Close, nil
	case config.StorageSQLite:
		sqliteStorage, err := storage.NewSQLiteStorage(ctx, conf.SQLiteStoragePath)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		return repository.NewSQLiteStatsRepository(sqliteStorage.Connection), sqliteStorage.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownStorage, conf.Storage)
	}
}
