// Command genmanifest scans a data directory and writes config_manifest.json,
// the per-version list of library files the planner loads.
//
// Usage:
//
//	go run ./cmd/genmanifest                    # scans ./data
//	go run ./cmd/genmanifest -dir path/to/data
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/udisondev/forgeplanner/internal/data"
)

func main() {
	dir := flag.String("dir", "data", "data directory holding versions.json")
	flag.Parse()

	if err := run(*dir); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(dir string) error {
	start := time.Now()
	raw, err := data.GenerateManifest(os.DirFS(dir))
	if err != nil {
		return fmt.Errorf("generating manifest for %s: %w", dir, err)
	}

	out := filepath.Join(dir, data.FileManifest)
	if err := os.WriteFile(out, append(raw, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	slog.Info("manifest written", "file", out, "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}
