package net

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/peterkuimelis/novacana/internal/config"
	"github.com/peterkuimelis/novacana/internal/game"
)

func TestDecodeRedisMessage(t *testing.T) {
	id := uuid.New()
	data, err := json.Marshal(StateUpdate(id, game.NewGameState()))
	require.NoError(t, err)

	msg, ok, err := decodeRedisMessage(string(data), uuid.Nil)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, id, msg.GameID)

	_, ok, err = decodeRedisMessage(string(data), id)
	require.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = decodeRedisMessage(string(data), uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = decodeRedisMessage("{", uuid.Nil)
	assert.Error(t, err)
}

// TestRedisRoundTrip needs a live server: NOVACANA_TEST_REDIS=localhost:6379.
func TestRedisRoundTrip(t *testing.T) {
	addr := os.Getenv("NOVACANA_TEST_REDIS")
	if addr == "" {
		t.Skip("NOVACANA_TEST_REDIS not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := NewRedisClient(ctx, config.RedisConfig{Addr: addr})
	require.NoError(t, err)
	defer client.Close()

	channel := "novacana:test:" + uuid.NewString()
	got := make(chan ServerMessage, 1)
	go WatchRedis(ctx, client, channel, uuid.Nil, zaptest.NewLogger(t), func(msg ServerMessage) {
		got <- msg
	})

	pub := NewRedisPublisher(client, channel, zaptest.NewLogger(t))
	s := newTestSession(t, game.Pacer{}, pub)

	// The subscription may not be live yet; keep publishing until it is.
	require.Eventually(t, func() bool {
		s.StartLocal("Alice")
		select {
		case msg := <-got:
			return msg.GameID == s.GameID()
		case <-time.After(100 * time.Millisecond):
			return false
		}
	}, 4*time.Second, 10*time.Millisecond)
}
