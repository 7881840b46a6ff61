package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	novanet "github.com/peterkuimelis/novacana/internal/net"
	"github.com/peterkuimelis/novacana/internal/web"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// A missing .env is fine; a broken one is not.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error: load .env: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "local":
		err = runLocal(ctx, os.Args[2:])
	case "host":
		err = runHost(ctx, os.Args[2:])
	case "join":
		err = runJoin(ctx, os.Args[2:])
	case "watch":
		err = runWatch(ctx, os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  novacana local [--name NAME] [--config FILE]")
	fmt.Println("  novacana host  [--name NAME] [--addr ADDR] [--config FILE]")
	fmt.Println("  novacana join  [--name NAME] [--addr ADDR] [--config FILE]")
	fmt.Println("  novacana watch [--game ID] [--config FILE]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  local   Play both seats in this terminal")
	fmt.Println("  host    Serve a game and play as Player 1")
	fmt.Println("  join    Connect to a host and play as Player 2")
	fmt.Println("  watch   Follow games published to redis")
}

func runLocal(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("local", flag.ExitOnError)
	name := fs.String("name", "Player 1", "your name")
	configPath := fs.String("config", "", "path to config file")
	fs.Parse(args)

	a, err := newApp(ctx, *configPath)
	if err != nil {
		return err
	}
	defer a.close()

	session := a.newSession()
	defer session.Close()
	session.StartLocal(*name)

	seat, unsubscribe := novanet.NewSessionSeat(session)
	defer unsubscribe()
	return novanet.NewClient(seat, 0, os.Stdin, os.Stdout).RunREPL(ctx)
}

func runHost(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("host", flag.ExitOnError)
	name := fs.String("name", "Player 1", "your name")
	addr := fs.String("addr", "", "address to listen on (default server.addr)")
	configPath := fs.String("config", "", "path to config file")
	fs.Parse(args)

	a, err := newApp(ctx, *configPath)
	if err != nil {
		return err
	}
	defer a.close()

	listen := *addr
	if listen == "" {
		listen = a.cfg.Server.Addr
	}

	session := a.newSession()
	defer session.Close()
	srv := web.NewServer(session, *name, a.logger)

	seat, unsubscribe := novanet.NewSessionSeat(session)
	defer unsubscribe()
	client := novanet.NewClient(seat, 1, os.Stdin, os.Stdout)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.ListenAndServe(gctx, listen)
	})
	g.Go(func() error {
		// Leaving the REPL ends the host.
		defer cancel()
		fmt.Printf("Waiting for opponent on %s...\n", listen)
		return client.RunREPL(gctx)
	})
	return g.Wait()
}

func runJoin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	name := fs.String("name", "Player 2", "your name")
	addr := fs.String("addr", "localhost:9000", "host address to connect to")
	configPath := fs.String("config", "", "path to config file")
	fs.Parse(args)

	a, err := newApp(ctx, *configPath)
	if err != nil {
		return err
	}
	defer a.close()

	seat, err := novanet.Join(ctx, *addr, *name, a.logger)
	if err != nil {
		return err
	}
	defer seat.Close()

	fmt.Println("Connected! Waiting for game to start...")
	return novanet.NewClient(seat, novanet.JoinerPlayer, os.Stdin, os.Stdout).RunREPL(ctx)
}

func runWatch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	gameID := fs.String("game", "", "only follow this game id")
	configPath := fs.String("config", "", "path to config file")
	fs.Parse(args)

	want := uuid.Nil
	if *gameID != "" {
		id, err := uuid.Parse(*gameID)
		if err != nil {
			return fmt.Errorf("parse game id: %w", err)
		}
		want = id
	}

	a, err := newApp(ctx, *configPath)
	if err != nil {
		return err
	}
	defer a.close()
	if a.redis == nil {
		return errors.New("watch needs redis.addr to be configured")
	}

	w := newWatcher(os.Stdout)
	fmt.Printf("Watching %s...\n", a.cfg.Redis.Channel)
	return novanet.WatchRedis(ctx, a.redis, a.cfg.Redis.Channel, want, a.logger, w.apply)
}
