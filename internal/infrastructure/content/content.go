// Package content loads the world and shop tables a session is built from.
// Both tables ship embedded; a YAML file on disk can replace either one.
package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/spacemining-go/internal/domain/shipyard"
	"github.com/andrescamacho/spacemining-go/internal/domain/system"
	"github.com/andrescamacho/spacemining-go/internal/infrastructure/config"
)

//go:embed world.yaml
var defaultWorldYAML []byte

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Tables is everything a session manager needs to start new games
type Tables struct {
	Generator *system.Generator
	Catalog   *shipyard.Catalog
}

// Load builds the generator and catalog from cfg, falling back to the
// embedded tables for any path left empty
func Load(cfg config.GameConfig) (*Tables, error) {
	worldData, err := readOrDefault(cfg.WorldFile, defaultWorldYAML)
	if err != nil {
		return nil, err
	}
	catalogData, err := readOrDefault(cfg.CatalogFile, defaultCatalogYAML)
	if err != nil {
		return nil, err
	}

	generator, err := ParseWorld(worldData)
	if err != nil {
		return nil, fmt.Errorf("world table: %w", err)
	}
	catalog, err := ParseCatalog(catalogData)
	if err != nil {
		return nil, fmt.Errorf("shop catalog: %w", err)
	}

	return &Tables{Generator: generator, Catalog: catalog}, nil
}

// Default returns the embedded tables
func Default() (*Tables, error) {
	return Load(config.GameConfig{})
}

func readOrDefault(path string, fallback []byte) ([]byte, error) {
	if path == "" {
		return fallback, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file %s: %w", path, err)
	}
	return data, nil
}

// decode rejects keys the target struct does not declare, then runs
// struct validation. An empty document decodes to the zero value.
func decode(data []byte, out interface{}) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse yaml: %w", err)
	}
	return config.NewValidator().Validate(out)
}
