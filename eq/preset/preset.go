// Package preset provides named equalizer curves and a YAML file format
// for user-defined ones. A preset is just a list of per-band gains; it
// carries no layout, so applying one to a chain with a different band
// count pads or truncates the same way the settings record does.
package preset

import (
	"fmt"
	"sort"

	"github.com/tabaudio/tabeq/eq"
)

// Preset is a named set of per-band gains in decibels, ordered from the
// lowest band to the highest.
type Preset struct {
	Name    string    `yaml:"name"`
	GainsDB []float64 `yaml:"gains_db"`
}

// Built-in curves for the eight-band layout.
var builtins = map[string][]float64{
	"flat":         {0, 0, 0, 0, 0, 0, 0, 0},
	"rock":         {5, 3, 1, -1, -1, 1, 3, 5},
	"pop":          {-2, 0, 2, 4, 4, 2, 0, -2},
	"jazz":         {0, 0, 2, 4, 4, 2, 0, 0},
	"classical":    {0, 0, 0, 0, 0, -2, -2, -3},
	"dance":        {6, 4, 1, 0, -2, -2, 0, 0},
	"bass_boost":   {8, 6, 3, 1, 0, 0, 0, 0},
	"treble_boost": {0, 0, 0, 0, 1, 3, 6, 8},
	"vocal":        {-2, -3, 1, 4, 4, 3, 1, -1},
}

// Names returns the built-in preset names, sorted.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Lookup returns the built-in preset with the given name.
func Lookup(name string) (Preset, bool) {
	gains, ok := builtins[name]
	if !ok {
		return Preset{}, false
	}

	return Preset{Name: name, GainsDB: append([]float64(nil), gains...)}, true
}

// Apply sets every band of the chain from the preset, padding missing
// gains with 0 dB and ignoring extras beyond the chain's band count.
func Apply(c *eq.Chain, p Preset) error {
	for i := 0; i < c.NumBands(); i++ {
		var gain float64
		if i < len(p.GainsDB) {
			gain = p.GainsDB[i]
		}

		if err := c.SetBandGain(i, gain); err != nil {
			return fmt.Errorf("preset %q: %w", p.Name, err)
		}
	}

	return nil
}
