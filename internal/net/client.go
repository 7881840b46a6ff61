package net

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/peterkuimelis/novacana/internal/game"
)

// ErrRejected is returned by a seat that can tell an intent was refused.
var ErrRejected = errors.New("intent rejected")

// Seat is where a terminal sends intents and hears about new snapshots.
type Seat interface {
	Submit(ctx context.Context, in game.Intent) error
	Updates() <-chan ServerMessage
}

// sessionSeat plays directly against an in-process session.
type sessionSeat struct {
	s       *Session
	updates <-chan ServerMessage
}

// NewSessionSeat subscribes to a session. The returned function unsubscribes.
func NewSessionSeat(s *Session) (Seat, func()) {
	ch, cancel := s.Subscribe()
	return &sessionSeat{s: s, updates: ch}, cancel
}

func (s *sessionSeat) Submit(ctx context.Context, in game.Intent) error {
	if _, ok := s.s.Submit(ctx, in); !ok {
		return ErrRejected
	}
	return nil
}

func (s *sessionSeat) Updates() <-chan ServerMessage {
	return s.updates
}

// Client is a terminal REPL for one seat. Player 0 plays both sides.
type Client struct {
	seat   Seat
	player int
	in     io.Reader
	out    io.Writer

	state   *game.GameState
	logSeen int
}

func NewClient(seat Seat, player int, in io.Reader, out io.Writer) *Client {
	return &Client{seat: seat, player: player, in: in, out: out}
}

// RunREPL renders snapshots as they arrive and turns typed commands into
// intents. It returns when the game ends, the input closes, or the user quits.
func (c *Client) RunREPL(ctx context.Context) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	updates := c.seat.Updates()
	for {
		select {
		case <-ctx.Done():
			return nil

		case msg, ok := <-updates:
			if !ok {
				return errors.New("connection to host closed")
			}
			if msg.Type == TypeError {
				fmt.Fprintf(c.out, "Error: %s\n", msg.Error)
				continue
			}
			if msg.State == nil {
				continue
			}
			c.update(msg.State)
			if c.state.Over() {
				c.renderGameOver()
				return nil
			}

		case line, ok := <-lines:
			if !ok {
				return nil
			}
			cmd, err := ParseCommand(line, c.player)
			if err != nil {
				fmt.Fprintln(c.out, err)
				continue
			}
			switch {
			case cmd.Quit:
				return nil
			case cmd.Help:
				fmt.Fprint(c.out, helpText)
			case cmd.Show:
				if c.state != nil {
					Render(c.out, c.state, c.viewer())
				}
			case cmd.Intent != nil:
				if err := c.seat.Submit(ctx, *cmd.Intent); err != nil {
					if errors.Is(err, ErrRejected) {
						fmt.Fprintln(c.out, "Not allowed.")
						continue
					}
					return fmt.Errorf("send intent: %w", err)
				}
			}
		}
	}
}

// update prints log lines added since the last snapshot and redraws the
// table once nothing is resolving.
func (c *Client) update(gs *game.GameState) {
	if len(gs.Log) < c.logSeen {
		c.logSeen = 0
	}
	for _, line := range gs.Log[c.logSeen:] {
		fmt.Fprintf(c.out, "T%-2d | %s\n", gs.Turn, line)
	}
	c.logSeen = len(gs.Log)
	c.state = gs

	if !gs.Resolving && gs.Phase != game.PhaseSetup {
		Render(c.out, gs, c.viewer())
	}
}

// viewer is the player whose hand is shown. A hot-seat terminal follows
// whoever has to act next.
func (c *Client) viewer() int {
	if c.player != 0 {
		return c.player
	}
	gs := c.state
	if gs.Decision != nil {
		return gs.Decision.Player
	}
	if gs.Active == 0 {
		return 1
	}
	return gs.Active
}

func (c *Client) renderGameOver() {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "═══════════════════════════════════")
	fmt.Fprintln(c.out, "          GAME OVER")
	fmt.Fprintln(c.out, "═══════════════════════════════════")
	fmt.Fprintln(c.out, c.state.VictoryReason)
	fmt.Fprintln(c.out, "═══════════════════════════════════")
}

const helpText = `Commands:
  play <id> [target]   play a card from hand
  discard <id>         discard a card
  advance | a          resolve the chain or end the turn
  yes | no             answer a complete-system offer
  draw | search        answer Proto-Star
  class <n>            name a class for Dark Matter Void
  pick <id>            choose an Athena target
  cancel               back out of a decision
  state | s            redraw the table
  quit | q
`

// Command is one parsed REPL line.
type Command struct {
	Intent *game.Intent
	Show   bool
	Help   bool
	Quit   bool
}

// ParseCommand turns a REPL line into a command acting as player.
func ParseCommand(line string, player int) (Command, error) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(line)))
	if len(fields) == 0 {
		return Command{Show: true}, nil
	}

	intent := func(in game.Intent) (Command, error) {
		return Command{Intent: &in}, nil
	}
	arg := func(i int) (int, error) {
		if len(fields) <= i {
			return 0, fmt.Errorf("%s needs a number", fields[0])
		}
		n, err := strconv.Atoi(fields[i])
		if err != nil {
			return 0, fmt.Errorf("%q is not a number", fields[i])
		}
		return n, nil
	}

	switch fields[0] {
	case "play", "p":
		id, err := arg(1)
		if err != nil {
			return Command{}, err
		}
		target := 0
		if len(fields) > 2 {
			if target, err = arg(2); err != nil {
				return Command{}, err
			}
		}
		return intent(game.PlayIntent(player, id, target))
	case "discard", "d":
		id, err := arg(1)
		if err != nil {
			return Command{}, err
		}
		return intent(game.DiscardIntent(player, id))
	case "advance", "a":
		return intent(game.AdvanceIntent(player))
	case "yes", "y":
		return intent(game.AnswerIntent(player, game.Answer{Accept: true}))
	case "no", "n":
		return intent(game.AnswerIntent(player, game.Answer{Accept: false}))
	case "draw":
		return intent(game.AnswerIntent(player, game.Answer{Choice: game.ProtoDraw}))
	case "search":
		return intent(game.AnswerIntent(player, game.Answer{Choice: game.ProtoSearch}))
	case "class":
		n, err := arg(1)
		if err != nil {
			return Command{}, err
		}
		return intent(game.AnswerIntent(player, game.Answer{Class: n}))
	case "pick":
		id, err := arg(1)
		if err != nil {
			return Command{}, err
		}
		return intent(game.AnswerIntent(player, game.Answer{TargetID: id}))
	case "cancel", "c":
		return intent(game.CancelIntent(player))
	case "state", "s":
		return Command{Show: true}, nil
	case "help", "?":
		return Command{Help: true}, nil
	case "quit", "q", "exit":
		return Command{Quit: true}, nil
	default:
		return Command{}, fmt.Errorf("unknown command %q (try help)", fields[0])
	}
}
