package trace

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var csvHeader = []string{"frame", "time", "id", "x", "y", "w", "h", "alpha", "rotation", "color", "value"}

func ftoa(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// WriteCSV writes one row per sprite per frame.
func WriteCSV(w io.Writer, tr *Trace) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, f := range tr.Frames {
		for _, s := range f.Sprites {
			row := []string{
				strconv.Itoa(f.Index), ftoa(f.Time), s.ID,
				ftoa(s.X), ftoa(s.Y), ftoa(s.W), ftoa(s.H),
				ftoa(s.Alpha), ftoa(s.Rotation), s.Color, ftoa(s.Value),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteYAML writes the whole trace as a YAML document.
func WriteYAML(w io.Writer, tr *Trace) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tr); err != nil {
		return err
	}
	return enc.Close()
}

// WriteFile writes tr to path as CSV or YAML, chosen by extension.
func WriteFile(path string, tr *Trace) (err error) {
	var write func(io.Writer, *Trace) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		write = WriteCSV
	case ".yaml", ".yml":
		write = WriteYAML
	default:
		return fmt.Errorf("unsupported trace extension: %q", filepath.Ext(path))
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f, tr)
}
