package hsm

import (
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadDefinition loads a chart definition from a YAML file.
func LoadDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Intentional path-based loading
	if err != nil {
		return nil, fmt.Errorf("failed to read chart file %q: %w", path, err)
	}

	return LoadDefinitionFromBytes(data)
}

// LoadDefinitionFromBytes loads a chart definition from YAML bytes.
func LoadDefinitionFromBytes(data []byte) (*Definition, error) {
	var def Definition

	err := yaml.Unmarshal(data, &def)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	err = def.Validate()
	if err != nil {
		return nil, err
	}

	return &def, nil
}

// LoadDefinitionFromFS loads a chart definition from a filesystem, typically
// an embed.FS holding charts compiled into the binary.
func LoadDefinitionFromFS(fsys fs.FS, path string) (*Definition, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chart from FS: %w", err)
	}

	return LoadDefinitionFromBytes(data)
}

// LoadChart loads a chart definition from a YAML file and compiles it.
func LoadChart(path string) (*Chart, error) {
	def, err := LoadDefinition(path)
	if err != nil {
		return nil, err
	}

	return Compile(def)
}
