package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-relay/internal/config"
	"github.com/rocketscienceinc/tictactoe-relay/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-relay/internal/repository"
	"github.com/rocketscienceinc/tictactoe-relay/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-relay/internal/service"
	"github.com/rocketscienceinc/tictactoe-relay/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-relay/transport/rest"
	"github.com/rocketscienceinc/tictactoe-relay/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application until a signal arrives or a server fails.
func RunApp(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	if ctx == nil {
		ctx = context.Background()
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry)

	var (
		mirror       service.SnapshotMirror = service.NewNoopMirror()
		sessions     repository.SessionRepository
		participants repository.ParticipantRepository
	)

	if conf.Redis.Enabled {
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, storage.RedisOptions{
			Addr:     redisAddrString,
			Password: conf.Redis.Password,
			DB:       conf.Redis.DB,
		})
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		sessions = repository.NewSessionRepository(redisStorage.Connection, conf.Redis.SnapshotTTL)
		participants = repository.NewParticipantRepository(redisStorage.Connection, conf.Redis.SnapshotTTL)
		mirror = service.NewSnapshotMirror(logger, sessions, participants, conf.Redis.MirrorBuffer)

		log.Info("redis mirror enabled", "addr", redisAddrString)
	}

	hub := websocket.NewHub()
	sessionRegistry := service.NewSessionRegistry()
	gameManager := usecase.NewGameManager(
		logger,
		service.NewMatchmakingQueue(sessionRegistry),
		sessionRegistry,
		mirror,
		hub,
		appMetrics,
		usecase.Options{
			MaxWait:       conf.Matchmaking.MaxWait,
			SweepInterval: conf.Matchmaking.SweepInterval,
		},
	)

	wsServer := websocket.New(logger, gameManager, hub, appMetrics, websocket.Config{
		SendBuffer:     conf.Websocket.SendBuffer,
		WriteWait:      conf.Websocket.WriteWait,
		PongWait:       conf.Websocket.PongWait,
		MaxMessageSize: conf.Websocket.MaxMessageSize,
		AllowedOrigins: conf.Websocket.AllowedOrigins,
	})

	// a nil repository converts to a nil reader, which leaves its route unmounted
	httpHandler := rest.NewRouter(logger, sessions, participants, registry, conf.Websocket.AllowedOrigins)

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		mirror.Run(ctx)
		return nil
	})

	group.Go(func() error {
		gameManager.RunSweeper(ctx)
		return nil
	})

	// run HTTP server
	group.Go(func() error {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if err := rest.Start(ctx, conf.HTTPPort, httpHandler); err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// run Websocket server
	group.Go(func() error {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		if err := wsServer.Start(ctx, conf.SocketPort); err != nil {
			return fmt.Errorf("WebSocket server error: %w", err)
		}
		return nil
	})

	// a failing server cancels ctx and takes the others down with it
	group.Go(func() error {
		<-ctx.Done()
		log.Info("Application context canceled, shutting down")
		return nil
	})

	return group.Wait()
}
