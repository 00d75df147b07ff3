package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/transport/redis"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-engine/transport/console"
)

type eventPublisher interface {
	Publish(ctx context.Context, event *entity.Event) error
}

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

	var publisher eventPublisher

	if conf.Events.Redis.Enabled {
		redisClient, err := redis.Connect(ctx, conf.Events.Redis.GetRedisAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis: %w", err)
		}

		redisPublisher := redis.NewPublisher(redisClient, conf.Events.Redis.ChannelPrefix)
		defer func() {
			if err = redisPublisher.Close(); err != nil {
				log.Error("could not close redis publisher", "error", err)
			}
		}()

		publisher = redisPublisher
		log.Info("Publishing game events to redis", "addr", conf.Events.Redis.GetRedisAddr())
	}

	gameUseCase := usecase.NewGameManager(logger, publisher, usecase.Settings{
		BoardSize:      conf.Board.Size,
		CoordinateBase: conf.Board.CoordinateBase,
		Marks:          conf.MarkList(),
	})

	// run console session
	consoleErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting console session", "size", conf.Board.Size, "coordinateBase", conf.Board.CoordinateBase)
		consoleServer := console.New(logger, gameUseCase, os.Stdin, os.Stdout)
		consoleErrCh <- consoleServer.Run(ctx)
	}()

	select {
	case err := <-consoleErrCh:
		if err != nil {
			return fmt.Errorf("console session error: %w", err)
		}
		log.Info("Console session finished")
		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
