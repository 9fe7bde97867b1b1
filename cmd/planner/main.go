// Command planner computes stats, comparisons, tech-tree bills and economy
// plans for a saved profile.
//
// Usage:
//
//	planner [-config path] [-version v] [-profile name] [-mode m] <command> [flags]
//	planner stats -mode max
//	planner compare -slot Weapon -idx 2 -level 10
//	planner forge -hammers 5000
//	planner commands                # list commands
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/udisondev/forgeplanner/internal/config"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

// overrides are global flags that take precedence over the config file.
type overrides struct {
	version string
	profile string
	mode    string
}

func run(ctx context.Context, args []string, out io.Writer) error {
	global := flag.NewFlagSet("planner", flag.ContinueOnError)
	global.SetOutput(out)
	cfgPath := global.String("config", config.Path(), "config file")
	var ov overrides
	global.StringVar(&ov.version, "version", "", "game data version (default: config, then latest)")
	global.StringVar(&ov.profile, "profile", "", "profile name")
	global.StringVar(&ov.mode, "mode", "", "tech tree mode: actual, empty, max")
	if err := global.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	rest := global.Args()
	if len(rest) == 0 {
		printUsage(out)
		return nil
	}
	cmd, err := lookupCommand(rest[0])
	if err != nil {
		return err
	}

	// Load config FIRST to determine log level
	cfg, err := config.LoadPlanner(*cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Debug("config loaded", "path", *cfgPath, "data_dir", cfg.DataDir, "database", cfg.Database.Enabled)

	if cmd.standalone {
		return cmd.run(ctx, &session{cfg: cfg, out: out}, rest[1:])
	}

	s, err := openSession(ctx, cfg, ov, out)
	if err != nil {
		return err
	}
	defer s.close()

	return cmd.run(ctx, s, rest[1:])
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
