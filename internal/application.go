package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rubenmarcos/gato-experto/internal/config"
	"github.com/rubenmarcos/gato-experto/internal/repository"
	"github.com/rubenmarcos/gato-experto/internal/repository/storage"
	"github.com/rubenmarcos/gato-experto/internal/service"
	"github.com/rubenmarcos/gato-experto/internal/usecase"
	"github.com/rubenmarcos/gato-experto/transport/terminal"
)

var ErrUnknownStorageType = errors.New("unknown storage type")

// RunApp - wires the knowledge store, the bot and the terminal session
// together and plays until the human quits.
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

	knowledgeRepo, closeStorage, err := newKnowledgeRepository(ctx, logger, conf)
	if err != nil {
		return fmt.Errorf("could not open knowledge storage: %w", err)
	}

	defer func() {
		if err = closeStorage(); err != nil {
			log.Error("could not close knowledge storage", "error", err)
		}
	}()

	botService := service.NewBotService(knowledgeRepo)
	gameUseCase := usecase.NewGameUseCase(botService)

	log.Info("Starting game session", "storage", conf.Storage.Type)

	session := terminal.New(logger, gameUseCase, os.Stdin, os.Stdout)

	errCh := make(chan error, 1)
	go func() {
		errCh <- session.Run(ctx)
	}()

	select {
	case err = <-errCh:
		if err != nil {
			return fmt.Errorf("game session error: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// newKnowledgeRepository - selects the knowledge store backend from the
// config. The second return value closes whatever the backend opened.
func newKnowledgeRepository(ctx context.Context, logger *slog.Logger, conf *config.Config) (repository.KnowledgeRepository, func() error, error) {
	noop := func() error { return nil }

	switch conf.Storage.Type {
	case config.StorageFile:
		return repository.NewFileKnowledgeRepository(logger, conf.Storage.KnowledgeFile), noop, nil

	case config.StorageRedis:
		redisStorage, err := storage.NewRedisStorage(ctx, conf.Storage.Redis.GetRedisAddr())
		if err != nil {
			return nil, noop, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewRedisKnowledgeRepository(redisStorage.Connection), redisStorage.Close, nil

	case config.StorageSQLite:
		sqliteStorage, err := storage.NewSQLiteStorage(conf.Storage.SQLitePath)
		if err != nil {
			return nil, noop, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		if err = sqliteStorage.Init(ctx); err != nil {
			return nil, sqliteStorage.Close, fmt.Errorf("could not init sqlite storage: %w", err)
		}

		return repository.NewSQLiteKnowledgeRepository(sqliteStorage.Connection), sqliteStorage.Close, nil

	default:
		return nil, noop, fmt.Errorf("%w: %q", ErrUnknownStorageType, conf.Storage.Type)
	}
}
