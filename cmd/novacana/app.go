package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/peterkuimelis/novacana/internal/config"
	"github.com/peterkuimelis/novacana/internal/game"
	"github.com/peterkuimelis/novacana/internal/log"
	"github.com/peterkuimelis/novacana/internal/logging"
	novanet "github.com/peterkuimelis/novacana/internal/net"
	"github.com/peterkuimelis/novacana/internal/telemetry"
)

// app carries the process-wide pieces every subcommand needs.
type app struct {
	cfg        *config.Config
	logger     *zap.Logger
	redis      *redis.Client
	transcript *os.File
	shutdown   func(context.Context) error
}

func newApp(ctx context.Context, configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		logger.Sync()
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger, shutdown: shutdown}
	if cfg.Game.Transcript != "" {
		a.transcript, err = os.OpenFile(cfg.Game.Transcript, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("open transcript: %w", err)
		}
	}
	if cfg.Redis.Enabled() {
		a.redis, err = novanet.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			a.close()
			return nil, err
		}
		logger.Info("redis connected", zap.String("addr", cfg.Redis.Addr), zap.String("channel", cfg.Redis.Channel))
	}
	return a, nil
}

func (a *app) newEngine() *game.Engine {
	var events log.EventLogger = log.NewZapLogger(a.logger.Named("events"))
	if a.transcript != nil {
		events = log.Tee{events, log.NewTextLogger(a.transcript)}
	}
	return game.NewEngine(game.EngineConfig{
		Logger: events,
		Seed:   a.cfg.Game.Seed,
		Strict: a.cfg.Game.Strict,
	})
}

func (a *app) newSession() *novanet.Session {
	var pubs []novanet.Publisher
	if a.redis != nil {
		pubs = append(pubs, novanet.NewRedisPublisher(a.redis, a.cfg.Redis.Channel, a.logger))
	}
	return novanet.NewSession(novanet.SessionConfig{
		Engine: a.newEngine(),
		Pacer: game.Pacer{
			ResolveDelay: a.cfg.Pacing.ResolveDelay,
			DrainDelay:   a.cfg.Pacing.DrainDelay,
		},
		Logger:     a.logger,
		Publishers: pubs,
	})
}

func (a *app) close() {
	if a.transcript != nil {
		a.transcript.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("close redis", zap.Error(err))
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.shutdown(ctx); err != nil {
		a.logger.Warn("telemetry shutdown", zap.Error(err))
	}
	a.logger.Sync()
}
