package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/infinite-tictactoe/internal/config"
	"github.com/rocketscienceinc/infinite-tictactoe/internal/entity"
	"github.com/rocketscienceinc/infinite-tictactoe/internal/repository"
	"github.com/rocketscienceinc/infinite-tictactoe/internal/repository/storage"
	"github.com/rocketscienceinc/infinite-tictactoe/internal/usecase"
	"github.com/rocketscienceinc/infinite-tictactoe/transport/rest"
	"github.com/rocketscienceinc/infinite-tictactoe/transport/tcp"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

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

	scoreRepo, closeStorage, err := initScoreRepository(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeStorage()

	rules := entity.Rules{WinLength: conf.Game.WinLength, DrawLimit: conf.Game.DrawLimit}
	gameManager := usecase.NewGameManager(logger, scoreRepo, rules)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	if conf.HTTPEnabled() {
		go func() {
			log.Info("Starting HTTP server", "port", conf.HTTPPort)
			httpServer := rest.New(logger, gameManager, scoreRepo)
			if httpErr := httpServer.Start(ctx, conf.HTTPPort); httpErr != nil {
				log.Error("HTTP server error", "error", httpErr)
				httpErrCh <- httpErr
			}
		}()
	}

	// run game server
	tcpErrCh := make(chan error, 1)
	tcpDone := make(chan struct{})
	go func() {
		defer close(tcpDone)

		log.Info("Starting game server", "port", conf.SocketPort)
		tcpServer := tcp.New(logger, gameManager, conf.Game.OutboundBuffer)
		if tcpErr := tcpServer.Start(ctx, conf.SocketPort); tcpErr != nil {
			log.Error("game server error", "error", tcpErr)
			tcpErrCh <- tcpErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-tcpErrCh:
		return fmt.Errorf("game server error: %w", err)
	case <-ctx.Done():
		<-tcpDone
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// initScoreRepository - Redis-backed scores when enabled, in-memory otherwise.
func initScoreRepository(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.ScoreRepository, func(), error) {
	if !conf.Redis.Enabled {
		return repository.NewMemoryScoreRepository(), func() {}, nil
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	runID := uuid.NewString()
	log.Info("Recording scores in redis", "addr", redisAddrString, "runID", runID)

	closeStorage := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	return repository.NewScoreRepository(redisStorage, runID, conf.Redis.ScoreTTL), closeStorage, nil
}
