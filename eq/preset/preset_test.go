package preset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabaudio/tabeq/eq"
)

func TestLookup(t *testing.T) {
	p, ok := Lookup("rock")
	require.True(t, ok)
	assert.Equal(t, "rock", p.Name)
	assert.Len(t, p.GainsDB, 8)

	_, ok = Lookup("nonexistent")
	assert.False(t, ok)
}

func TestLookup_ReturnsCopy(t *testing.T) {
	p, _ := Lookup("flat")
	p.GainsDB[0] = 99

	again, _ := Lookup("flat")
	assert.Zero(t, again.GainsDB[0], "mutating a preset must not change the builtin")
}

func TestNames_SortedAndComplete(t *testing.T) {
	names := Names()

	assert.IsType(t, []string{}, names)
	assert.Contains(t, names, "flat")
	assert.Contains(t, names, "bass_boost")
	assert.True(t, sortedStrings(names), "names must be sorted")
}

func sortedStrings(s []string) bool {
	for i := 1; i < len(s); i++ {
		if s[i-1] > s[i] {
			return false
		}
	}

	return true
}

func TestApply(t *testing.T) {
	chain, err := eq.New(eq.EightBandLayout(), eq.DefaultState(8))
	require.NoError(t, err)
	defer chain.Destroy()

	p, _ := Lookup("jazz")
	require.NoError(t, Apply(chain, p))

	st, err := chain.State()
	require.NoError(t, err)
	assert.Equal(t, p.GainsDB, st.GainsDB)
}

func TestApply_PadsShortPreset(t *testing.T) {
	chain, err := eq.New(eq.EightBandLayout(), eq.State{
		Enabled: true,
		GainsDB: []float64{9, 9, 9, 9, 9, 9, 9, 9},
	})
	require.NoError(t, err)
	defer chain.Destroy()

	require.NoError(t, Apply(chain, Preset{Name: "short", GainsDB: []float64{3, 3}}))

	st, err := chain.State()
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 3, 0, 0, 0, 0, 0, 0}, st.GainsDB,
		"bands past the preset should be reset to 0 dB")
}

func TestApply_DestroyedChain(t *testing.T) {
	chain, err := eq.New(eq.FiveBandLayout(), eq.DefaultState(5))
	require.NoError(t, err)
	chain.Destroy()

	p, _ := Lookup("flat")
	assert.ErrorIs(t, Apply(chain, p), eq.ErrChainNotActive)
}

const sampleYAML = `presets:
  - name: warm
    gains_db: [4, 2, 0, 0, 0, 0, -1, -2]
  - name: bright
    gains_db: [-2, -1, 0, 0, 1, 2, 4, 5]
`

func TestRead(t *testing.T) {
	presets, err := Read(strings.NewReader(sampleYAML))
	require.NoError(t, err)
	require.Len(t, presets, 2)

	assert.Equal(t, "warm", presets[0].Name)
	assert.Equal(t, []float64{4, 2, 0, 0, 0, 0, -1, -2}, presets[0].GainsDB)
	assert.Equal(t, "bright", presets[1].Name)
}

func TestRead_RejectsUnknownFields(t *testing.T) {
	_, err := Read(strings.NewReader("presets:\n  - name: x\n    gians_db: [1]\n"))
	assert.Error(t, err, "typoed keys should be rejected, not ignored")
}

func TestRead_RejectsMissingName(t *testing.T) {
	_, err := Read(strings.NewReader("presets:\n  - gains_db: [1, 2]\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	presets, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, presets, 2)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
