package net

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/novacana/internal/game"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		want game.Intent
	}{
		{"play 12", game.PlayIntent(2, 12, 0)},
		{"play 12 40", game.PlayIntent(2, 12, 40)},
		{"  P 3 ", game.PlayIntent(2, 3, 0)},
		{"discard 9", game.DiscardIntent(2, 9)},
		{"a", game.AdvanceIntent(2)},
		{"advance", game.AdvanceIntent(2)},
		{"yes", game.AnswerIntent(2, game.Answer{Accept: true})},
		{"n", game.AnswerIntent(2, game.Answer{})},
		{"draw", game.AnswerIntent(2, game.Answer{Choice: game.ProtoDraw})},
		{"search", game.AnswerIntent(2, game.Answer{Choice: game.ProtoSearch})},
		{"class 4", game.AnswerIntent(2, game.Answer{Class: 4})},
		{"pick 55", game.AnswerIntent(2, game.Answer{TargetID: 55})},
		{"cancel", game.CancelIntent(2)},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			cmd, err := ParseCommand(tt.line, 2)
			require.NoError(t, err)
			require.NotNil(t, cmd.Intent)
			assert.Equal(t, tt.want, *cmd.Intent)
		})
	}
}

func TestParseCommandControl(t *testing.T) {
	cmd, err := ParseCommand("quit", 0)
	require.NoError(t, err)
	assert.True(t, cmd.Quit)

	cmd, err = ParseCommand("", 0)
	require.NoError(t, err)
	assert.True(t, cmd.Show)

	cmd, err = ParseCommand("help", 0)
	require.NoError(t, err)
	assert.True(t, cmd.Help)

	for _, bad := range []string{"play", "play x", "play 1 y", "class", "dance"} {
		_, err := ParseCommand(bad, 0)
		assert.Error(t, err, bad)
	}
}

func TestRender(t *testing.T) {
	gs := game.NewEngine(game.EngineConfig{Seed: 3}).NewGame("Alice", "Bob")
	p2 := gs.Player(2)
	p2.RevealedUntil = gs.Turn + 1

	var out bytes.Buffer
	Render(&out, gs, 1)
	text := out.String()

	assert.Contains(t, text, "OPPONENT Bob  Hand: 5")
	assert.Contains(t, text, "YOU Alice  Hand: 6")
	assert.Contains(t, text, "Revealed: ")
	assert.Contains(t, text, "Turn 1 | Action | Your turn")
	for _, c := range gs.Player(1).Hand {
		assert.Contains(t, text, c.Name)
	}

	p2.RevealedUntil = 0
	out.Reset()
	Render(&out, gs, 1)
	assert.NotContains(t, out.String(), "Revealed: ")
}

func TestRunREPLLocal(t *testing.T) {
	s := newTestSession(t, game.Pacer{})
	s.StartLocal("Alice")
	seat, cancel := NewSessionSeat(s)
	defer cancel()

	// The opening hand is one over the limit, so the turn passes only after
	// a discard.
	extra := s.Snapshot().Player(1).Hand[0]
	var out bytes.Buffer
	in := strings.NewReader(fmt.Sprintf("play 9999\nadvance\nadvance\ndiscard %d\nadvance\nquit\n", extra.ID))
	c := NewClient(seat, 0, in, &out)

	require.NoError(t, c.RunREPL(context.Background()))

	assert.Equal(t, 2, strings.Count(out.String(), "Not allowed."))
	gs := s.Snapshot()
	assert.Equal(t, 2, gs.Turn)
	assert.Equal(t, extra.ID, gs.Discard[0].ID)
}
