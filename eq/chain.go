package eq

import (
	"fmt"
	"math"
)

// Chain is a live N-band equalizer over one audio stream. It owns its
// filter stages exclusively; see the package documentation for the
// ownership and concurrency model.
type Chain struct {
	specs      []BandSpec
	stages     []Stage
	state      State
	master     float64 // linear
	masterDB   float64
	sampleRate float64
	tap        *Tap
	persist    Persister
	destroyed  bool
}

// New builds a chain with one stage per band spec, wired in series, and
// applies the initial state. Gains missing from initial default to 0 dB;
// with Enabled false the stages start flat while the configured gains
// are kept in the snapshot.
//
// It fails with ErrUnsupportedEnvironment when the environment cannot
// allocate a stage for any band.
func New(specs []BandSpec, initial State, opts ...Option) (*Chain, error) {
	if len(specs) == 0 {
		return nil, ErrNoBands
	}

	cfg := applyOptions(opts)

	c := &Chain{
		specs:      append([]BandSpec(nil), specs...),
		stages:     make([]Stage, len(specs)),
		state:      initial.sized(len(specs)),
		masterDB:   cfg.MasterGainDB,
		master:     dbToLinear(cfg.MasterGainDB),
		sampleRate: cfg.SampleRate,
		tap:        &Tap{},
		persist:    cfg.Persister,
	}

	for i, spec := range c.specs {
		st, err := cfg.Environment.AllocStage(spec, cfg.SampleRate)
		if err != nil {
			return nil, fmt.Errorf("%w: band %d (%s @ %g Hz): %v",
				ErrUnsupportedEnvironment, i, spec.Kind, spec.FrequencyHz, err)
		}

		c.stages[i] = st
		st.SetGainDB(c.effectiveGain(i))
	}

	return c, nil
}

// NumBands returns the fixed band count N.
func (c *Chain) NumBands() int {
	return len(c.specs)
}

// Bands returns a copy of the chain's band layout.
func (c *Chain) Bands() []BandSpec {
	return append([]BandSpec(nil), c.specs...)
}

// SetBandGain updates the configured gain of one band and, when the
// chain is enabled, writes the stage's live gain parameter in place. The
// chain topology is untouched. The new state is scheduled for
// persistence; the call never waits for the write.
func (c *Chain) SetBandGain(index int, gainDB float64) error {
	if c.destroyed {
		return ErrChainNotActive
	}

	if index < 0 || index >= len(c.stages) {
		return fmt.Errorf("%w: %d (bands: %d)", ErrInvalidBandIndex, index, len(c.stages))
	}

	c.state.GainsDB[index] = gainDB
	if c.state.Enabled {
		c.stages[index].SetGainDB(gainDB)
	}

	c.persistState()

	return nil
}

// SetEnabled toggles the whole chain. Disabling re-applies every stage at
// 0 dB; enabling restores the configured gains. The series wiring is
// never altered, so the toggle changes only gain ramps, never topology.
func (c *Chain) SetEnabled(enabled bool) error {
	if c.destroyed {
		return ErrChainNotActive
	}

	c.state.Enabled = enabled
	for i, st := range c.stages {
		st.SetGainDB(c.effectiveGain(i))
	}

	c.persistState()

	return nil
}

// SetMasterGainDB updates the master gain applied after the last stage.
func (c *Chain) SetMasterGainDB(gainDB float64) error {
	if c.destroyed {
		return ErrChainNotActive
	}

	c.masterDB = gainDB
	c.master = dbToLinear(gainDB)

	return nil
}

// MasterGainDB returns the current master gain in dB.
func (c *Chain) MasterGainDB() float64 {
	return c.masterDB
}

// State returns a snapshot copy of the chain state. Mutating the
// returned value never affects the live chain.
func (c *Chain) State() (State, error) {
	if c.destroyed {
		return State{}, ErrChainNotActive
	}

	return c.state.Clone(), nil
}

// OutputTap returns the sink-side connection point for downstream
// consumers. The returned tap is stable across all gain and enable
// mutations.
func (c *Chain) OutputTap() (*Tap, error) {
	if c.destroyed {
		return nil, ErrChainNotActive
	}

	return c.tap, nil
}

// LiveBandGainDB reads the stage's currently applied gain parameter.
// Unlike State, this reflects the enable flag: a disabled chain reads
// 0 dB on every band.
func (c *Chain) LiveBandGainDB(index int) (float64, error) {
	if c.destroyed {
		return 0, ErrChainNotActive
	}

	if index < 0 || index >= len(c.stages) {
		return 0, fmt.Errorf("%w: %d (bands: %d)", ErrInvalidBandIndex, index, len(c.stages))
	}

	return c.stages[index].GainDB(), nil
}

// ResponseDB returns the chain's combined magnitude response in dB at
// freqHz, including the master gain. Useful for rendering an EQ curve.
func (c *Chain) ResponseDB(freqHz float64) (float64, error) {
	if c.destroyed {
		return 0, ErrChainNotActive
	}

	db := c.masterDB
	for _, st := range c.stages {
		db += st.MagnitudeDB(freqHz)
	}

	return db, nil
}

// ProcessBlock runs one block of samples through every stage in series,
// applies the master gain and publishes the result to the output tap.
// The buffer is filtered in place. On a destroyed chain this is a no-op:
// the audio path never fails.
func (c *Chain) ProcessBlock(buf []float64) {
	if c.destroyed || len(buf) == 0 {
		return
	}

	for _, st := range c.stages {
		st.Process(buf)
	}

	if c.master != 1 {
		for i, x := range buf {
			buf[i] = x * c.master
		}
	}

	c.tap.publish(buf)
}

// Destroy releases all stages and detaches the tap. Idempotent: calling
// it again is a no-op. A persistence write still in flight after Destroy
// completes harmlessly against the store.
func (c *Chain) Destroy() {
	if c.destroyed {
		return
	}

	for _, st := range c.stages {
		st.Reset()
	}

	c.stages = nil
	c.tap.detachAll()
	c.destroyed = true
}

// Destroyed reports whether the chain has been torn down.
func (c *Chain) Destroyed() bool {
	return c.destroyed
}

func (c *Chain) effectiveGain(index int) float64 {
	if !c.state.Enabled {
		return 0
	}

	return c.state.GainsDB[index]
}

func (c *Chain) persistState() {
	if c.persist == nil {
		return
	}

	c.persist.SaveStateAsync(c.state.Clone())
}

func dbToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}
