package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"

	"github.com/claude/fittrack/internal/config"
	fitmcp "github.com/claude/fittrack/internal/mcp"
	"github.com/claude/fittrack/internal/storage"
	"github.com/claude/fittrack/internal/store"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", defaultConfigPath(), "path to config file")
	local := flag.Bool("local", false, "read the database directly instead of the REST API")
	login := flag.String("login", "local", "user login for -local mode")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("fittrack-mcp", Version)
		return
	}

	// stdout carries the MCP protocol.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx := context.Background()
	var (
		ds     store.Store
		userID int
		goal   int
	)

	if *local {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		db, err := storage.New(ctx, cfg.Database.DSN(), cfg.Database.MaxConns)
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		userID, err = db.GetOrCreateUser(ctx, *login, "")
		if err != nil {
			log.Error("failed to resolve user", "login", *login, "error", err)
			os.Exit(1)
		}
		ds, goal = db, cfg.Client.WeeklyGoal
	} else {
		cfg, err := config.LoadClient(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		client := store.NewHTTPClient(cfg.Client.ServerURL, cfg.Client.APIKey)
		me, err := client.Me(ctx)
		if err != nil {
			log.Error("failed to identify user", "server", cfg.Client.ServerURL, "error", err)
			os.Exit(1)
		}
		ds, userID, goal = client, me.ID, cfg.Client.WeeklyGoal
	}

	s := fitmcp.New(ds, goal, Version, log)
	log.Info("mcp server starting", "user_id", userID, "local", *local)

	err := server.ServeStdio(s, server.WithStdioContextFunc(func(ctx context.Context) context.Context {
		return fitmcp.WithUserID(ctx, userID)
	}))
	if err != nil {
		log.Error("mcp server stopped", "error", err)
		os.Exit(1)
	}
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(dir, "fittrack", "config.yaml")
}
