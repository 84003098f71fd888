package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-console/internal/config"
	"github.com/rocketscienceinc/tictactoe-console/internal/console"
	"github.com/rocketscienceinc/tictactoe-console/internal/repository"
	"github.com/rocketscienceinc/tictactoe-console/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-console/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-console/transport/rest"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the game on the process's terminal until the player quits or a signal arrives.
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

	return Run(ctx, logger, conf, os.Stdin, os.Stdout)
}

// Run wires storage, the optional status server and the game manager around in and out.
func Run(ctx context.Context, logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	gameRepo, tallyRepo, closeStorage, err := initStorage(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err := closeStorage(); err != nil {
			log.Error("could not close storage", "error", err)
		}
	}()

	manager := usecase.NewGameManager(logger, console.New(in, out), gameRepo, tallyRepo,
		usecase.WithComputerPause(conf.ComputerPause),
	)

	// run HTTP status server
	httpErrCh := make(chan error, 1)
	if conf.HTTPPort != "" {
		go func() {
			log.Info("Starting HTTP server", "port", conf.HTTPPort)
			server := rest.New(logger, manager.SessionID(), tallyRepo, gameRepo)
			if httpErr := server.Start(ctx, conf.HTTPPort); httpErr != nil {
				log.Error("HTTP server error", "error", httpErr)
				httpErrCh <- httpErr
			}
		}()
	}

	// run the game loop; reading the terminal cannot be interrupted, so it gets its own goroutine
	gameErrCh := make(chan error, 1)
	go func() {
		_, gameErr := manager.Run(ctx)
		gameErrCh <- gameErr
	}()

	select {
	case err = <-gameErrCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("game session failed: %w", err)
		}
		return nil
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		// the game goroutine stays blocked on input; it checks ctx before its next
		// move or prompt, so it never reaches storage closed below
		log.Info("Application context canceled, shutting down")
		manager.Interrupt()
		return nil
	}
}

type storageCloser func() error

func initStorage(ctx context.Context, conf *config.Config) (repository.GameRepository, repository.TallyRepository, storageCloser, error) {
	if !conf.Redis.Enabled {
		return repository.NewMemoryGameRepository(), repository.NewMemoryTallyRepository(), func() error { return nil }, nil
	}

	if conf.Redis.Host == "" || conf.Redis.Port == "" {
		return nil, nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	return repository.NewGameRepository(redisStorage.Connection),
		repository.NewTallyRepository(redisStorage.Connection),
		redisStorage.Close,
		nil
}
