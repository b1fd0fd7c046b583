package settings

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabaudio/tabeq/eq"
)

// failingBackend simulates a broken storage layer.
type failingBackend struct{}

func (failingBackend) Get(string) ([]byte, bool, error) {
	return nil, false, errors.New("storage offline")
}

func (failingBackend) Set(string, []byte) error {
	return errors.New("storage offline")
}

func (failingBackend) Delete(string) error {
	return errors.New("storage offline")
}

func quietLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	return log
}

func TestLoad_EmptyStoreReturnsDefaults(t *testing.T) {
	s := NewStore()

	rec := s.Load(8)

	assert.True(t, rec.Enabled)
	assert.Equal(t, make([]float64, 8), rec.GainsDB)
	assert.Zero(t, rec.MasterDB)
}

func TestSaveLoad_GainsRoundTrip(t *testing.T) {
	s := NewStore()
	gains := []float64{6, 0, 0, 0, 0, 0, 0, -4.5}

	s.Save(Partial{GainsDB: gains})

	rec := s.Load(8)
	assert.Equal(t, gains, rec.GainsDB)
}

func TestSave_MergesNotOverwrites(t *testing.T) {
	s := NewStore()

	s.Save(Partial{Enabled: Bool(false)})
	s.Save(Partial{GainsDB: []float64{1, 2, 3}})

	rec := s.Load(3)
	assert.False(t, rec.Enabled, "enabled flag lost by later gains save")
	assert.Equal(t, []float64{1, 2, 3}, rec.GainsDB)
}

func TestSave_LastWriteWins(t *testing.T) {
	s := NewStore()

	s.Save(Partial{GainsDB: []float64{1, 1, 1}})
	s.Save(Partial{GainsDB: []float64{2, 2, 2}})

	rec := s.Load(3)
	assert.Equal(t, []float64{2, 2, 2}, rec.GainsDB)
}

func TestSave_PreservesOpaqueExtras(t *testing.T) {
	s := NewStore()
	blob := json.RawMessage(`{"target_lang":"fi","voice":"default"}`)

	s.Save(Partial{Extra: map[string]json.RawMessage{"translation": blob}})
	s.Save(Partial{GainsDB: []float64{1, 2}})
	s.Save(Partial{Enabled: Bool(false)})

	rec := s.Load(2)
	require.Contains(t, rec.Extra, "translation")
	assert.Equal(t, blob, rec.Extra["translation"])
}

func TestSave_MasterGain(t *testing.T) {
	s := NewStore()

	s.Save(Partial{MasterDB: Float(-3)})
	s.Save(Partial{GainsDB: []float64{1}})

	rec := s.Load(1)
	assert.Equal(t, -3.0, rec.MasterDB)
}

func TestReset_ClearsToDefaults(t *testing.T) {
	s := NewStore()
	s.Save(Partial{Enabled: Bool(false), GainsDB: []float64{9, 9}})

	s.Reset()

	rec := s.Load(2)
	assert.True(t, rec.Enabled)
	assert.Equal(t, []float64{0, 0}, rec.GainsDB)
}

func TestLoad_SizesGainsToBandCount(t *testing.T) {
	s := NewStore()
	s.Save(Partial{GainsDB: []float64{1, 2, 3, 4, 5, 6, 7, 8}})

	assert.Equal(t, []float64{1, 2, 3, 4, 5}, s.Load(5).GainsDB,
		"extra stored gains should be dropped")
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7, 8, 0, 0}, s.Load(10).GainsDB,
		"missing gains should default to 0 dB")
}

func TestLoad_CorruptRecordReturnsDefaults(t *testing.T) {
	backend := NewMemoryBackend()
	require.NoError(t, backend.Set(DefaultKey, []byte("{not json")))

	s := NewStore(WithBackend(backend), WithLogger(quietLogger()))

	rec := s.Load(5)
	assert.True(t, rec.Enabled)
	assert.Equal(t, make([]float64, 5), rec.GainsDB)
}

func TestStore_FailingBackendIsSwallowed(t *testing.T) {
	s := NewStore(WithBackend(failingBackend{}), WithLogger(quietLogger()))

	// None of these may panic or propagate the storage error.
	s.Save(Partial{GainsDB: []float64{1, 2}})
	s.Reset()

	rec := s.Load(2)
	assert.True(t, rec.Enabled)
	assert.Equal(t, []float64{0, 0}, rec.GainsDB)
}

func TestSaveStateAsync_PersistsChainState(t *testing.T) {
	s := NewStore()

	s.SaveStateAsync(eq.State{Enabled: false, GainsDB: []float64{6, -3}})
	s.Flush()

	rec := s.Load(2)
	assert.False(t, rec.Enabled)
	assert.Equal(t, []float64{6, -3}, rec.GainsDB)
}

func TestChainIntegration_MutationsReachStorage(t *testing.T) {
	s := NewStore()

	chain, err := eq.New(eq.FiveBandLayout(), eq.DefaultState(5), eq.WithPersister(s))
	require.NoError(t, err)

	require.NoError(t, chain.SetBandGain(0, 6))
	require.NoError(t, chain.SetBandGain(4, -4.5))
	require.NoError(t, chain.SetEnabled(false))

	// Teardown races the in-flight writes; they must land harmlessly.
	chain.Destroy()
	s.Flush()

	rec := s.Load(5)
	assert.False(t, rec.Enabled)
	assert.Equal(t, 6.0, rec.GainsDB[0])
	assert.Equal(t, -4.5, rec.GainsDB[4])
}

func TestChainIntegration_RestoreFromStore(t *testing.T) {
	s := NewStore()
	s.Save(Partial{Enabled: Bool(true), GainsDB: []float64{3, 0, 0, 0, -3}})

	rec := s.Load(5)
	chain, err := eq.New(eq.FiveBandLayout(),
		eq.State{Enabled: rec.Enabled, GainsDB: rec.GainsDB},
		eq.WithPersister(s))
	require.NoError(t, err)
	defer chain.Destroy()

	st, err := chain.State()
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 0, 0, 0, -3}, st.GainsDB)
}
