package director

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is a scenario file encoding.
type Format string

const (
	YAML Format = "yaml"
	TOML Format = "toml"
)

// FormatOf picks the encoding from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	default:
		return "", fmt.Errorf("unsupported scenario extension: %q", filepath.Ext(path))
	}
}

// Marshal encodes a scenario.
func Marshal(scenario *Scenario, f Format) ([]byte, error) {
	switch f {
	case YAML:
		return yaml.Marshal(scenario)
	case TOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(scenario); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported scenario format: %q", f)
	}
}

// Unmarshal decodes a scenario.
func Unmarshal(data []byte, f Format) (*Scenario, error) {
	var scenario Scenario
	switch f {
	case YAML:
		if err := yaml.Unmarshal(data, &scenario); err != nil {
			return nil, err
		}
	case TOML:
		if _, err := toml.Decode(string(data), &scenario); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported scenario format: %q", f)
	}
	return &scenario, nil
}

// WriteScenario writes a scenario to a YAML or TOML file, chosen by
// extension.
func WriteScenario(scenario *Scenario, path string) error {
	f, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := Marshal(scenario, f)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// ReadScenario reads a scenario from a YAML or TOML file, chosen by
// extension.
func ReadScenario(path string) (*Scenario, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	scenario, err := Unmarshal(data, f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return scenario, nil
}
