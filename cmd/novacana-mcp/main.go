package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/peterkuimelis/novacana/internal/config"
	"github.com/peterkuimelis/novacana/internal/game"
	"github.com/peterkuimelis/novacana/internal/logging"
	"github.com/peterkuimelis/novacana/internal/mcp"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error: load .env: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	// stdout carries the protocol; logs go to stderr.
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	mcp.Configure(game.EngineConfig{Seed: cfg.Game.Seed, Strict: cfg.Game.Strict}, logger)

	s := server.NewMCPServer(
		"novacana",
		"1.0.0",
		server.WithToolCapabilities(true),
	)
	mcp.RegisterTools(s)

	logger.Info("serving mcp over stdio")
	if err := server.ServeStdio(s); err != nil {
		logger.Error("mcp server stopped", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
