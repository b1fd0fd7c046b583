// Package tap consumes blocks from an equalizer chain's output tap and
// derives monitoring data from them: a smoothed magnitude spectrum and
// peak/RMS levels. Consumers here only observe the signal; they never
// alter it.
package tap

import (
	"fmt"
	"math"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

const minDB = -130.0

// Analyzer turns tapped output blocks into a smoothed magnitude
// spectrum. Feed it from a chain tap:
//
//	t, _ := chain.OutputTap()
//	t.Attach(analyzer.Feed)
type Analyzer struct {
	fftSize    int
	sampleRate float64
	smoothing  float64
	window     []float64
	windowGain float64
	plan       *algofft.Plan[complex128]

	mu        sync.Mutex
	ring      []float64
	write     int
	filled    int
	toHop     int
	hop       int
	windowed  []float64
	input     []complex128
	output    []complex128
	re, im    []float64
	mags      []float64
	binsDB    []float64
	haveFrame bool
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithSmoothing sets the exponential smoothing factor for the spectrum,
// clamped to [0, 0.95]. Zero disables smoothing.
func WithSmoothing(smoothing float64) AnalyzerOption {
	return func(a *Analyzer) {
		a.smoothing = math.Min(math.Max(smoothing, 0), 0.95)
	}
}

// NewAnalyzer returns an analyzer with the given FFT size, which must
// be a power of two. Frames overlap by half the FFT size.
func NewAnalyzer(fftSize int, sampleRate float64, opts ...AnalyzerOption) (*Analyzer, error) {
	if fftSize < 2 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("tap: fft size %d is not a power of two", fftSize)
	}

	if sampleRate <= 0 {
		return nil, fmt.Errorf("tap: invalid sample rate %g", sampleRate)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("tap: fft plan: %w", err)
	}

	win := hannWindow(fftSize)

	sum := 0.0
	for _, w := range win {
		sum += w
	}

	a := &Analyzer{
		fftSize:    fftSize,
		sampleRate: sampleRate,
		smoothing:  0.8,
		window:     win,
		windowGain: sum / float64(fftSize),
		plan:       plan,
		ring:       make([]float64, fftSize),
		hop:        fftSize / 2,
		windowed:   make([]float64, fftSize),
		input:      make([]complex128, fftSize),
		output:     make([]complex128, fftSize),
		re:         make([]float64, fftSize/2+1),
		im:         make([]float64, fftSize/2+1),
		mags:       make([]float64, fftSize/2+1),
		binsDB:     make([]float64, fftSize/2+1),
	}

	for i := range a.binsDB {
		a.binsDB[i] = minDB
	}

	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}

	return a, nil
}

// Feed consumes one tapped block. Samples accumulate in a ring buffer;
// every half-FFT-size samples a new spectrum frame is computed.
func (a *Analyzer) Feed(block []float64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, x := range block {
		a.ring[a.write] = x

		a.write++
		if a.write >= a.fftSize {
			a.write = 0
		}

		if a.filled < a.fftSize {
			a.filled++
		}

		a.toHop++
		if a.filled >= a.fftSize && a.toHop >= a.hop {
			a.toHop = 0
			a.updateFrame()
		}
	}
}

// BinsDB returns a copy of the current smoothed spectrum in dBFS, one
// value per bin from DC to Nyquist.
func (a *Analyzer) BinsDB() []float64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	return append([]float64(nil), a.binsDB...)
}

// BinFrequency returns the center frequency of bin k in Hz.
func (a *Analyzer) BinFrequency(k int) float64 {
	return float64(k) * a.sampleRate / float64(a.fftSize)
}

// NumBins returns the number of spectrum bins, FFT size / 2 + 1.
func (a *Analyzer) NumBins() int { return a.fftSize/2 + 1 }

func (a *Analyzer) updateFrame() {
	const eps = 1e-12

	read := a.write
	for i := 0; i < a.fftSize; i++ {
		a.windowed[i] = a.ring[read]

		read++
		if read >= a.fftSize {
			read = 0
		}
	}

	vecmath.MulBlockInPlace(a.windowed, a.window)

	for i, s := range a.windowed {
		a.input[i] = complex(s, 0)
	}

	if err := a.plan.Forward(a.output, a.input); err != nil {
		return
	}

	for k := range a.re {
		a.re[k] = real(a.output[k])
		a.im[k] = imag(a.output[k])
	}

	vecmath.Magnitude(a.mags, a.re, a.im)

	norm := float64(a.fftSize) * math.Max(a.windowGain, eps)
	last := len(a.binsDB) - 1

	for k := 0; k <= last; k++ {
		mag := a.mags[k] / norm
		if k > 0 && k < last {
			mag *= 2
		}

		db := 20 * math.Log10(math.Max(eps, mag))
		if db < minDB {
			db = minDB
		}

		if !a.haveFrame {
			a.binsDB[k] = db

			continue
		}

		a.binsDB[k] = a.smoothing*a.binsDB[k] + (1-a.smoothing)*db
	}

	a.haveFrame = true
}

func hannWindow(n int) []float64 {
	win := make([]float64, n)
	for i := range win {
		win[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n)))
	}

	return win
}
