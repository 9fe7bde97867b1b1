// Command profileschema writes the JSON schema of a saved profile, used to
// validate hand-edited profile.json files.
//
// Usage:
//
//	go run ./cmd/profileschema -out config/profile.schema.json
//	go run ./cmd/profileschema                  # print to stdout
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	"github.com/invopop/jsonschema"

	"github.com/udisondev/forgeplanner/internal/model"
)

func main() {
	outPath := flag.String("out", "", "path to write the schema (default: stdout)")
	flag.Parse()

	if err := run(*outPath); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(outPath string) error {
	raw, err := encodeSchema(buildSchema())
	if err != nil {
		return err
	}
	if outPath == "" {
		_, err := os.Stdout.Write(raw)
		return err
	}
	return writeFile(outPath, raw)
}

func buildSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		DoNotReference:            true,
		AllowAdditionalProperties: true,
	}
	schema := reflector.Reflect(new(model.Profile))
	schema.Title = "Forge planner profile"
	schema.Description = "Equipped items, tech tree ranks, mount and calculator inputs of one player"
	return schema
}

func encodeSchema(schema *jsonschema.Schema) ([]byte, error) {
	raw, err := sonic.ConfigStd.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding schema: %w", err)
	}
	return append(raw, '\n'), nil
}

// writeFile replaces path atomically.
func writeFile(path string, raw []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating schema directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
