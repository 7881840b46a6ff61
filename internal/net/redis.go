package net

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/peterkuimelis/novacana/internal/config"
)

// NewRedisClient builds a client from config and checks the connection.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// RedisPublisher fans snapshots out over a redis pub/sub channel so
// spectators can follow a game without connecting to the host.
type RedisPublisher struct {
	client  redis.UniversalClient
	channel string
	logger  *zap.Logger
}

func NewRedisPublisher(client redis.UniversalClient, channel string, logger *zap.Logger) *RedisPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisPublisher{client: client, channel: channel, logger: logger}
}

// Publish implements Publisher.
func (p *RedisPublisher) Publish(ctx context.Context, msg ServerMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	n, err := p.client.Publish(ctx, p.channel, data).Result()
	if err != nil {
		return fmt.Errorf("publish to %s: %w", p.channel, err)
	}
	p.logger.Debug("snapshot published",
		zap.String("channel", p.channel),
		zap.Stringer("game_id", msg.GameID),
		zap.Int64("receivers", n),
	)
	return nil
}

// decodeRedisMessage parses a payload and reports whether it belongs to the
// wanted game. uuid.Nil accepts every game.
func decodeRedisMessage(payload string, want uuid.UUID) (ServerMessage, bool, error) {
	var msg ServerMessage
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		return msg, false, fmt.Errorf("decode snapshot: %w", err)
	}
	if want != uuid.Nil && msg.GameID != want {
		return msg, false, nil
	}
	return msg, true, nil
}

// WatchRedis subscribes to a snapshot channel and calls fn for every message
// of the wanted game until ctx is done. Undecodable payloads are logged and
// skipped.
func WatchRedis(ctx context.Context, client redis.UniversalClient, channel string, want uuid.UUID, logger *zap.Logger, fn func(ServerMessage)) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	sub := client.Subscribe(ctx, channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe to %s: %w", channel, err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			msg, match, err := decodeRedisMessage(m.Payload, want)
			if err != nil {
				logger.Warn("skipping snapshot", zap.String("channel", channel), zap.Error(err))
				continue
			}
			if match {
				fn(msg)
			}
		}
	}
}
