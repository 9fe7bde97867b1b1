package data

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"runtime"

	"github.com/bytedance/sonic"
	"golang.org/x/sync/errgroup"
)

// Library file names.
const (
	FileTechTreeLibrary        = "TechTreeLibrary.json"
	FileTechTreePosition       = "TechTreePositionLibrary.json"
	FileTechTreeUpgrade        = "TechTreeUpgradeLibrary.json"
	FileItemBalancingConfig    = "ItemBalancingConfig.json"
	FileItemBalancingLibrary   = "ItemBalancingLibrary.json"
	FileWeaponLibrary          = "WeaponLibrary.json"
	FileProjectilesLibrary     = "ProjectilesLibrary.json"
	FileSecondaryStatLibrary   = "SecondaryStatLibrary.json"
	FilePetLibrary             = "PetLibrary.json"
	FilePetUpgradeLibrary      = "PetUpgradeLibrary.json"
	FilePetBalancingLibrary    = "PetBalancingLibrary.json"
	FileSkillLibrary           = "SkillLibrary.json"
	FileSkillPassiveLibrary    = "SkillPassiveLibrary.json"
	FileMountUpgradeLibrary    = "MountUpgradeLibrary.json"
	FileSkinsLibrary           = "SkinsLibrary.json"
	FileSetsLibrary            = "SetsLibrary.json"
	FileForgeUpgradeLibrary    = "ForgeUpgradeLibrary.json"
	FileForgeDropChances       = "ForgeDropChancesLibrary.json"
	FileForgeConfig            = "ForgeConfig.json"
	FileSkillSummonDropChances = "SkillSummonDropChancesLibrary.json"
	FileMountSummonDropChances = "MountSummonDropChancesLibrary.json"
	FileSkillBaseConfig        = "SkillBaseConfig.json"
	FileMountSummonConfig      = "MountSummonConfig.json"
	FileGuildWarDayConfig      = "GuildWarDayConfigLibrary.json"
)

// decodeFunc parses one library file into its field and returns the entry count.
type decodeFunc func(l *Libraries, raw []byte) (int, error)

func decodeMap[T any](field func(*Libraries) *map[string]T) decodeFunc {
	return func(l *Libraries, raw []byte) (int, error) {
		var m map[string]T
		if err := sonic.Unmarshal(raw, &m); err != nil {
			return 0, err
		}
		*field(l) = m
		return len(m), nil
	}
}

func decodeObject[T any](field func(*Libraries) **T) decodeFunc {
	return func(l *Libraries, raw []byte) (int, error) {
		v := new(T)
		if err := sonic.Unmarshal(raw, v); err != nil {
			return 0, err
		}
		*field(l) = v
		return 1, nil
	}
}

// libraryDecoders maps each known library file to its decoder.
// Each decoder writes a distinct field, so files can be decoded concurrently.
var libraryDecoders = map[string]decodeFunc{
	FileTechTreeLibrary:        decodeMap(func(l *Libraries) *map[string]TechEffect { return &l.TechEffects }),
	FileTechTreePosition:       decodeMap(func(l *Libraries) *map[string]TechTreeLayout { return &l.TechTrees }),
	FileTechTreeUpgrade:        decodeMap(func(l *Libraries) *map[string]TechUpgradeTier { return &l.TechUpgrades }),
	FileItemBalancingConfig:    decodeObject(func(l *Libraries) **ItemBalancingConfig { return &l.ItemConfig }),
	FileItemBalancingLibrary:   decodeMap(func(l *Libraries) *map[string]ItemBalance { return &l.Items }),
	FileWeaponLibrary:          decodeMap(func(l *Libraries) *map[string]Weapon { return &l.Weapons }),
	FileProjectilesLibrary:     decodeMap(func(l *Libraries) *map[string]Projectile { return &l.Projectiles }),
	FileSecondaryStatLibrary:   decodeMap(func(l *Libraries) *map[string]SecondaryStat { return &l.SecondaryStats }),
	FilePetLibrary:             decodeMap(func(l *Libraries) *map[string]Pet { return &l.Pets }),
	FilePetUpgradeLibrary:      decodeMap(func(l *Libraries) *map[string]Progression { return &l.PetUpgrades }),
	FilePetBalancingLibrary:    decodeMap(func(l *Libraries) *map[string]PetBalance { return &l.PetBalancing }),
	FileSkillLibrary:           decodeMap(func(l *Libraries) *map[string]Skill { return &l.Skills }),
	FileSkillPassiveLibrary:    decodeMap(func(l *Libraries) *map[string]Progression { return &l.SkillPassives }),
	FileMountUpgradeLibrary:    decodeMap(func(l *Libraries) *map[string]Progression { return &l.MountUpgrades }),
	FileSkinsLibrary:           decodeMap(func(l *Libraries) *map[string]Skin { return &l.Skins }),
	FileSetsLibrary:            decodeMap(func(l *Libraries) *map[string]SetDef { return &l.Sets }),
	FileForgeUpgradeLibrary:    decodeMap(func(l *Libraries) *map[string]ForgeUpgrade { return &l.ForgeUpgrades }),
	FileForgeDropChances:       decodeMap(func(l *Libraries) *map[string]DropChances { return &l.ForgeDropChances }),
	FileForgeConfig:            decodeObject(func(l *Libraries) **ForgeConfig { return &l.ForgeConfig }),
	FileSkillSummonDropChances: decodeMap(func(l *Libraries) *map[string]DropChances { return &l.SkillDropChances }),
	FileMountSummonDropChances: decodeMap(func(l *Libraries) *map[string]DropChances { return &l.MountDropChances }),
	FileSkillBaseConfig:        decodeObject(func(l *Libraries) **SummonConfig { return &l.SkillConfig }),
	FileMountSummonConfig:      decodeObject(func(l *Libraries) **SummonConfig { return &l.MountConfig }),
	FileGuildWarDayConfig:      decodeMap(func(l *Libraries) *map[string]GuildWarDay { return &l.GuildWarDays }),
}

// KnownFiles returns every library file the loader understands, sorted.
func KnownFiles() []string {
	return sortedKeys(libraryDecoders)
}

// Source provides raw library files. Paths are "<version>/<file>"; root files use version "".
type Source interface {
	ReadFile(ctx context.Context, version, name string) ([]byte, error)
}

// FSSource reads library files from a filesystem laid out as <root>/<version>/<file>.
type FSSource struct {
	FS fs.FS
}

// ReadFile reads one file from the filesystem.
func (s FSSource) ReadFile(ctx context.Context, version, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fs.ReadFile(s.FS, path.Join(version, name))
}

// Loader loads and parses every library file of a version.
type Loader struct {
	src      Source
	manifest *Manifest
}

// NewLoader creates a Loader. manifest may be nil, in which case every known file is tried.
func NewLoader(src Source, manifest *Manifest) *Loader {
	return &Loader{src: src, manifest: manifest}
}

// Manifest returns the loader manifest (may be nil).
func (ld *Loader) Manifest() *Manifest {
	return ld.manifest
}

// Load reads all libraries of a version in parallel.
// Files that are absent from the manifest or the source are skipped: the
// corresponding lookups simply miss. Malformed files are reported as errors.
func (ld *Loader) Load(ctx context.Context, version string) (*Libraries, error) {
	if ld.manifest != nil && !ld.manifest.HasVersion(version) {
		return nil, fmt.Errorf("loading version %q: %w", version, ErrUnknownVersion)
	}

	libs := &Libraries{Version: version}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, name := range KnownFiles() {
		if ld.manifest != nil && !ld.manifest.HasLibrary(version, name) {
			slog.Debug("library not in manifest", "version", version, "file", name)
			continue
		}
		decode := libraryDecoders[name]
		g.Go(func() error {
			raw, err := ld.src.ReadFile(gctx, version, name)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					slog.Debug("library file missing", "version", version, "file", name)
					return nil
				}
				return fmt.Errorf("reading %s/%s: %w", version, name, err)
			}
			count, err := decode(libs, raw)
			if err != nil {
				return fmt.Errorf("parsing %s/%s: %w", version, name, err)
			}
			slog.Debug("loaded library", "version", version, "file", name, "count", count)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	libs.BuildIndexes()
	slog.Info("loaded libraries", "version", version)
	return libs, nil
}
