package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/bytedance/sonic"

	"github.com/udisondev/forgeplanner/internal/config"
	"github.com/udisondev/forgeplanner/internal/data"
	"github.com/udisondev/forgeplanner/internal/db"
	"github.com/udisondev/forgeplanner/internal/game/techtree"
	"github.com/udisondev/forgeplanner/internal/model"
	"github.com/udisondev/forgeplanner/internal/planner"
)

// profileStore persists the live profile between runs.
type profileStore interface {
	Load(ctx context.Context, name string) (model.Profile, error)
	Save(ctx context.Context, p model.Profile, version string) error
}

// session is one CLI invocation: config, selected data and the planner.
type session struct {
	cfg      config.Planner
	out      io.Writer
	manifest *data.Manifest
	store    *data.Store
	planner  *planner.Planner
	profiles profileStore
	repo     *db.ProfileRepository
	closers  []func()
}

func openSession(ctx context.Context, cfg config.Planner, ov overrides, out io.Writer) (*session, error) {
	s := &session{cfg: cfg, out: out}
	ok := false
	defer func() {
		if !ok {
			s.close()
		}
	}()

	src := data.FSSource{FS: os.DirFS(cfg.DataDir)}
	manifest, err := data.LoadManifest(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("loading manifest from %s: %w", cfg.DataDir, err)
	}
	s.manifest = manifest
	s.store = data.NewStore(data.NewLoader(src, manifest))

	version := firstNonEmpty(ov.version, cfg.Version, manifest.Latest())
	if version == "" {
		return nil, fmt.Errorf("no data versions in %s", cfg.DataDir)
	}
	if !manifest.HasVersion(version) {
		return nil, unknown("version", version, manifest.Versions())
	}

	loadCtx := ctx
	if cfg.LoadTimeout > 0 {
		var cancel context.CancelFunc
		loadCtx, cancel = context.WithTimeout(ctx, cfg.LoadTimeout)
		defer cancel()
	}
	libs, err := s.store.Select(loadCtx, version)
	if err != nil {
		return nil, fmt.Errorf("selecting version %s: %w", version, err)
	}

	if err := s.openProfiles(ctx); err != nil {
		return nil, err
	}

	name := firstNonEmpty(ov.profile, cfg.Profile)
	profile, err := s.profiles.Load(ctx, name)
	switch {
	case errors.Is(err, db.ErrProfileNotFound):
		slog.Info("starting a new profile", "profile", name)
		profile = model.NewProfile(name)
	case err != nil:
		return nil, fmt.Errorf("loading profile %s: %w", name, err)
	}
	profile.Name = name

	s.planner = planner.New(profile, libs)
	s.closers = append(s.closers, func() { _ = s.planner.Close() })

	mode, err := parseMode(firstNonEmpty(ov.mode, cfg.TreeMode))
	if err != nil {
		return nil, err
	}
	if err := s.planner.SetMode(mode); err != nil {
		return nil, err
	}

	slog.Info("session ready", "version", version, "profile", name, "mode", mode)
	ok = true
	return s, nil
}

func (s *session) openProfiles(ctx context.Context) error {
	if !s.cfg.Database.Enabled {
		s.profiles = fileProfiles{path: s.cfg.ProfileFile}
		return nil
	}

	dsn := s.cfg.Database.DSN()
	database, err := db.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	s.closers = append(s.closers, database.Close)
	slog.Info("database connected")

	if err := db.RunMigrations(ctx, dsn); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database migrations applied")

	s.repo = database.Profiles()
	s.profiles = dbProfiles{repo: s.repo}
	return nil
}

// close releases resources in reverse order of acquisition.
func (s *session) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}

// save persists the live profile.
func (s *session) save(ctx context.Context) error {
	p, err := s.planner.Profile()
	if err != nil {
		return err
	}
	if err := s.profiles.Save(ctx, p, s.planner.Libraries().Version); err != nil {
		return fmt.Errorf("saving profile %s: %w", p.Name, err)
	}
	return nil
}

// applyMode overrides the session tree mode when name is set.
func (s *session) applyMode(name string) error {
	if name == "" {
		return nil
	}
	mode, err := parseMode(name)
	if err != nil {
		return err
	}
	return s.planner.SetMode(mode)
}

func parseMode(name string) (techtree.Mode, error) {
	mode, err := techtree.ParseMode(name)
	if errors.Is(err, techtree.ErrUnknownMode) {
		return 0, fmt.Errorf("%w: %w", techtree.ErrUnknownMode, unknown("tree mode", name, techtree.ModeNames()))
	}
	return mode, err
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

type dbProfiles struct {
	repo *db.ProfileRepository
}

func (d dbProfiles) Load(ctx context.Context, name string) (model.Profile, error) {
	rec, err := d.repo.Load(ctx, name)
	if err != nil {
		return model.Profile{}, err
	}
	return rec.Profile, nil
}

func (d dbProfiles) Save(ctx context.Context, p model.Profile, version string) error {
	_, err := d.repo.Save(ctx, p, version)
	return err
}

// fileProfiles keeps a single profile in a JSON file.
type fileProfiles struct {
	path string
}

func (f fileProfiles) Load(_ context.Context, name string) (model.Profile, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return model.Profile{}, fmt.Errorf("reading %s: %w", f.path, db.ErrProfileNotFound)
	}
	if err != nil {
		return model.Profile{}, fmt.Errorf("reading %s: %w", f.path, err)
	}
	var p model.Profile
	if err := sonic.Unmarshal(raw, &p); err != nil {
		return model.Profile{}, fmt.Errorf("parsing %s: %w", f.path, err)
	}
	if p.Name != "" && p.Name != name {
		slog.Warn("profile file holds another profile", "file", f.path, "stored", p.Name, "requested", name)
	}
	return p, nil
}

func (f fileProfiles) Save(_ context.Context, p model.Profile, _ string) error {
	raw, err := sonic.ConfigStd.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	if err := os.WriteFile(f.path, raw, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", f.path, err)
	}
	slog.Info("profile saved", "file", f.path)
	return nil
}
