package preset

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// file is the on-disk preset collection:
//
//	presets:
//	  - name: warm
//	    gains_db: [4, 2, 0, 0, 0, 0, -1, -2]
type file struct {
	Presets []Preset `yaml:"presets"`
}

// Read parses a preset collection from r.
func Read(r io.Reader) ([]Preset, error) {
	var f file

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("preset: decode: %w", err)
	}

	for i, p := range f.Presets {
		if p.Name == "" {
			return nil, fmt.Errorf("preset: entry %d has no name", i)
		}
	}

	return f.Presets, nil
}

// Load reads a preset collection from the YAML file at path.
func Load(path string) ([]Preset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("preset: open: %w", err)
	}
	defer f.Close()

	return Read(f)
}
