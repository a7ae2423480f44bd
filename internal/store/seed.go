package store

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"wikitree/internal/model"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeedYAML []byte

var errEmptyEventType = errors.New("event type is empty")

// DefaultSeed returns the built-in hospital navigation tree.
func DefaultSeed() (model.Forest, error) {
	return ParseSeed(defaultSeedYAML)
}

func LoadSeedFile(path string) (model.Forest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := ParseSeed(b)
	if err != nil {
		return nil, fmt.Errorf("seed %s: %w", path, err)
	}
	return f, nil
}

// ParseSeed decodes a YAML list of root nodes and validates it.
func ParseSeed(b []byte) (model.Forest, error) {
	var f model.Forest
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, err
	}
	if f == nil {
		f = model.Forest{}
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}
