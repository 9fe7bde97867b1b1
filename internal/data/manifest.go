package data

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/tidwall/gjson"
)

// Root-level manifest files.
const (
	FileVersions = "versions.json"
	FileManifest = "config_manifest.json"
)

// ErrUnknownVersion is returned when a version is not listed in the manifest.
var ErrUnknownVersion = errors.New("unknown data version")

// Manifest lists the available data versions and, per version, the library files present.
type Manifest struct {
	versions []string
	raw      []byte
}

// LoadManifest reads versions.json and config_manifest.json from the source root.
// A missing config_manifest.json yields a manifest that only knows the versions.
func LoadManifest(ctx context.Context, src Source) (*Manifest, error) {
	rawVersions, err := src.ReadFile(ctx, "", FileVersions)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", FileVersions, err)
	}
	var versions []string
	if err := sonic.Unmarshal(rawVersions, &versions); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileVersions, err)
	}

	rawManifest, err := src.ReadFile(ctx, "", FileManifest)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading %s: %w", FileManifest, err)
	}
	if rawManifest != nil && !gjson.ValidBytes(rawManifest) {
		return nil, fmt.Errorf("parsing %s: invalid json", FileManifest)
	}

	return NewManifest(versions, rawManifest), nil
}

// NewManifest builds a manifest from a version list and raw config_manifest.json content.
func NewManifest(versions []string, rawManifest []byte) *Manifest {
	v := slices.Clone(versions)
	// Newest first: version strings sort lexicographically.
	slices.SortFunc(v, func(a, b string) int { return strings.Compare(b, a) })
	return &Manifest{versions: v, raw: rawManifest}
}

// Versions returns the known versions, newest first.
func (m *Manifest) Versions() []string {
	return slices.Clone(m.versions)
}

// Latest returns the newest version, "" if none.
func (m *Manifest) Latest() string {
	if len(m.versions) == 0 {
		return ""
	}
	return m.versions[0]
}

// HasVersion reports whether the version is listed.
func (m *Manifest) HasVersion(version string) bool {
	return slices.Contains(m.versions, version)
}

// Libraries returns the library files listed for a version.
func (m *Manifest) Libraries(version string) []string {
	files, _ := m.lookup(version)
	return files
}

// HasLibrary reports whether a library file exists for a version.
// Without file listings every file of a known version is assumed present.
func (m *Manifest) HasLibrary(version, file string) bool {
	files, listed := m.lookup(version)
	if !listed {
		return m.HasVersion(version)
	}
	return slices.Contains(files, file)
}

func (m *Manifest) lookup(version string) ([]string, bool) {
	if len(m.raw) == 0 {
		return nil, false
	}
	var (
		files []string
		found bool
	)
	// Version keys contain dots, so walk the object instead of building a path.
	gjson.ParseBytes(m.raw).ForEach(func(key, value gjson.Result) bool {
		if key.String() != version {
			return true
		}
		found = true
		for _, f := range value.Array() {
			files = append(files, f.String())
		}
		return false
	})
	return files, found
}

// GenerateManifest scans <root>/<version> directories for *.json library files
// and returns the config_manifest.json content. Versions without a directory are skipped.
func GenerateManifest(fsys fs.FS) ([]byte, error) {
	rawVersions, err := fs.ReadFile(fsys, FileVersions)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", FileVersions, err)
	}
	var versions []string
	if err := sonic.Unmarshal(rawVersions, &versions); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileVersions, err)
	}
	if len(versions) == 0 {
		return nil, fmt.Errorf("%s is empty", FileVersions)
	}

	manifest := make(map[string][]string, len(versions))
	for _, version := range versions {
		entries, err := fs.ReadDir(fsys, version)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("scanning version %s: %w", version, err)
		}
		files := make([]string, 0, len(entries))
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
				files = append(files, e.Name())
			}
		}
		slices.Sort(files)
		manifest[version] = files
	}

	out, err := sonic.ConfigStd.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}
	return out, nil
}
