package eq

import (
	"fmt"
	"math"

	"github.com/tabaudio/tabeq/dsp/biquad"
)

// Environment allocates the live filter stages a chain is built from.
// Implementations wrap whatever sample-processing backend is available;
// the default is the biquad DSP environment.
type Environment interface {
	// AllocStage allocates one live filter stage for the given band spec.
	AllocStage(spec BandSpec, sampleRate float64) (Stage, error)
}

// Stage is one live band filter owned by a chain. The gain parameter is
// the only thing a chain touches after allocation: SetGainDB must update
// the running filter in place without resetting its internal state.
type Stage interface {
	// SetGainDB sets the live gain parameter in dB.
	SetGainDB(gainDB float64)

	// GainDB returns the currently applied live gain in dB. With the
	// chain disabled this reads 0 regardless of the configured band gain.
	GainDB() float64

	// Process filters a block of samples in place.
	Process(buf []float64)

	// MagnitudeDB returns the stage's magnitude response in dB at freqHz.
	MagnitudeDB(freqHz float64) float64

	// Reset clears the stage's internal state.
	Reset()
}

// MaxGainDB bounds the per-band gain applied to a stage. Values outside
// [-MaxGainDB, MaxGainDB] are clamped at the stage boundary.
const MaxGainDB = 24.0

// DSPEnvironment allocates biquad filter stages. The zero value is ready
// to use.
type DSPEnvironment struct{}

// AllocStage builds a biquad stage for the band, starting at 0 dB.
func (DSPEnvironment) AllocStage(spec BandSpec, sampleRate float64) (Stage, error) {
	st := &biquadStage{
		spec:       spec,
		sampleRate: sampleRate,
		section:    biquad.NewSection(biquad.Identity()),
	}

	if err := st.design(0); err != nil {
		return nil, err
	}

	return st, nil
}

// biquadStage adapts a biquad.Section to the Stage contract. The section
// is allocated once; gain changes swap coefficients in place, preserving
// the delay line.
type biquadStage struct {
	spec       BandSpec
	sampleRate float64
	section    *biquad.Section
	gainDB     float64
}

func (st *biquadStage) design(gainDB float64) error {
	var (
		c   biquad.Coefficients
		err error
	)

	switch st.spec.Kind {
	case KindLowShelf:
		c, err = biquad.LowShelf(st.spec.FrequencyHz, gainDB, 0, st.sampleRate)
	case KindHighShelf:
		c, err = biquad.HighShelf(st.spec.FrequencyHz, gainDB, 0, st.sampleRate)
	case KindPeaking:
		c, err = biquad.Peak(st.spec.FrequencyHz, gainDB, st.spec.Q, st.sampleRate)
	default:
		err = fmt.Errorf("unknown filter kind %d", st.spec.Kind)
	}

	if err != nil {
		return err
	}

	st.section.SetCoefficients(c)
	st.gainDB = gainDB

	return nil
}

func (st *biquadStage) SetGainDB(gainDB float64) {
	gainDB = clampGainDB(gainDB)
	// The band parameters were validated at allocation time, so a
	// redesign at a new gain cannot fail.
	_ = st.design(gainDB)
}

func (st *biquadStage) GainDB() float64 {
	return st.gainDB
}

func (st *biquadStage) Process(buf []float64) {
	st.section.ProcessBlock(buf)
}

func (st *biquadStage) MagnitudeDB(freqHz float64) float64 {
	return st.section.MagnitudeDB(freqHz, st.sampleRate)
}

func (st *biquadStage) Reset() {
	st.section.Reset()
}

func clampGainDB(gainDB float64) float64 {
	if math.IsNaN(gainDB) {
		return 0
	}

	return math.Max(-MaxGainDB, math.Min(MaxGainDB, gainDB))
}
