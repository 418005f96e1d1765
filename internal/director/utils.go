package director

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// DefaultDir is where generated scenarios are written.
var DefaultDir = filepath.Join("internal", "scenarios")

// GenerateScenarioPath creates a timestamped scenario filename in dir.
func GenerateScenarioPath(dir string, f Format) string {
	if dir == "" {
		dir = DefaultDir
	}
	if f == "" {
		f = YAML
	}
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("scenario_%s.%s", timestamp, f))
}

// ListScenarios returns the scenario files in dir, newest first.
func ListScenarios(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenarios directory: %w", err)
	}

	type found struct {
		path string
		mod  time.Time
	}
	var scenarios []found
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, err := FormatOf(entry.Name()); err != nil {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		scenarios = append(scenarios, found{filepath.Join(dir, entry.Name()), info.ModTime()})
	}

	sort.SliceStable(scenarios, func(i, j int) bool {
		return scenarios[i].mod.After(scenarios[j].mod)
	})
	out := make([]string, len(scenarios))
	for i, s := range scenarios {
		out[i] = s.path
	}
	return out, nil
}

// FindLatestScenario finds the most recent scenario file in dir.
func FindLatestScenario(dir string) (string, error) {
	if dir == "" {
		dir = DefaultDir
	}
	scenarios, err := ListScenarios(dir)
	if err != nil {
		return "", err
	}
	if len(scenarios) == 0 {
		return "", fmt.Errorf("no scenario files found in %s", dir)
	}
	return scenarios[0], nil
}
