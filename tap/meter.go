package tap

import (
	"math"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// Meter tracks peak and RMS levels of tapped output blocks. Peak decays
// exponentially between blocks so short transients stay visible.
type Meter struct {
	decay float64

	mu      sync.Mutex
	peak    float64
	rms     float64
	squared []float64
}

// NewMeter returns a level meter. decay is the per-block peak falloff
// factor in [0, 1); zero holds the peak forever.
func NewMeter(decay float64) *Meter {
	return &Meter{decay: math.Min(math.Max(decay, 0), 0.999)}
}

// Feed consumes one tapped block and updates the levels.
func (m *Meter) Feed(block []float64) {
	if len(block) == 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if cap(m.squared) < len(block) {
		m.squared = make([]float64, len(block))
	}

	sq := m.squared[:len(block)]
	vecmath.MulBlock(sq, block, block)

	var sum, peak float64

	for _, v := range sq {
		sum += v

		if v > peak {
			peak = v
		}
	}

	peak = math.Sqrt(peak)

	m.peak *= m.decay
	if peak > m.peak {
		m.peak = peak
	}

	m.rms = math.Sqrt(sum / float64(len(block)))
}

// Peak returns the decaying peak level, linear full scale.
func (m *Meter) Peak() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.peak
}

// RMS returns the RMS level of the most recent block, linear full
// scale.
func (m *Meter) RMS() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.rms
}

// PeakDB returns the peak level in dBFS, floored at -130 dB.
func (m *Meter) PeakDB() float64 { return toDB(m.Peak()) }

// RMSDB returns the RMS level in dBFS, floored at -130 dB.
func (m *Meter) RMSDB() float64 { return toDB(m.RMS()) }

func toDB(v float64) float64 {
	if v <= 0 {
		return minDB
	}

	db := 20 * math.Log10(v)
	if db < minDB {
		return minDB
	}

	return db
}
