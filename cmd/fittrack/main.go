package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/claude/fittrack/internal/config"
	"github.com/claude/fittrack/internal/store"
	"github.com/claude/fittrack/internal/timer"
	"github.com/claude/fittrack/internal/tui"
	"github.com/claude/fittrack/internal/voice"
	"github.com/claude/fittrack/internal/workout"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", defaultConfigPath(), "path to config file")
	version := flag.Bool("version", false, "print version and exit")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: fittrack [-config path]\n       fittrack [-config path] timer [-work s] [-rest s] [-sets n]\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *version {
		fmt.Println("fittrack", Version)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if flag.Arg(0) == "timer" {
		// The timer needs no server; a missing or partial config falls back
		// to the default durations.
		timerCfg := timer.DefaultConfig()
		if cfg, err := config.LoadClient(*configPath); err == nil {
			timerCfg = cfg.Timer
		}
		if err := runTimer(ctx, os.Stdout, timerCfg, flag.Args()[1:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg, err := config.LoadClient(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := run(ctx, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	if err := os.MkdirAll(cfg.Client.StateDir, 0o700); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}
	logFile, err := os.OpenFile(cfg.Client.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()

	// stdout belongs to the UI.
	log := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("fittrack starting", "version", Version, "server", cfg.Client.ServerURL)

	client := store.NewHTTPClient(cfg.Client.ServerURL, cfg.Client.APIKey)

	drafts, err := workout.OpenDraftDB(cfg.Client.StateDir)
	if err != nil {
		log.Warn("draft autosave disabled", "error", err)
	} else {
		defer drafts.Close()
	}

	// Listening starts from the workout screen; a missing recognizer is
	// reported there when the user asks for voice control.
	rec, voiceErr := voice.Detect(cfg.Voice.Command, log)
	if voiceErr != nil {
		log.Info("voice input unavailable", "reason", voiceErr)
	}

	m, err := tui.New(ctx, tui.Options{
		Store:      client,
		Identity:   client,
		Saver:      workout.NewSaver(client, log),
		Drafts:     drafts,
		Recognizer: rec,
		VoiceErr:   voiceErr,
		Timer:      cfg.Timer,
		WeeklyGoal: cfg.Client.WeeklyGoal,
		Log:        log,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running ui: %w", err)
	}
	log.Info("fittrack stopped")
	return nil
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(dir, "fittrack", "config.yaml")
}
