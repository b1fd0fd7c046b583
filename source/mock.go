package source

import (
	"fmt"
	"math"
	"sync"
)

// MockBackend implements Backend with a generated sine input and an
// in-memory capture of everything written. It is deterministic and
// needs no hardware, which makes it the backend for tests.
type MockBackend struct {
	// FrequencyHz of the generated input tone.
	FrequencyHz float64
	// Amplitude of the generated tone. Zero means 0.5.
	Amplitude float64
	// MaxBlocks limits how many blocks Read will produce before
	// returning an error; zero means unlimited.
	MaxBlocks int

	initialized bool
}

// NewMockBackend returns a mock producing a tone at the given frequency.
func NewMockBackend(frequencyHz float64) *MockBackend {
	return &MockBackend{FrequencyHz: frequencyHz}
}

func (b *MockBackend) Initialize() error {
	b.initialized = true

	return nil
}

func (b *MockBackend) Terminate() error {
	b.initialized = false

	return nil
}

// OpenDuplex opens a mock stream generating the configured tone.
func (b *MockBackend) OpenDuplex(sampleRate float64, bufferSize int) (Stream, error) {
	if !b.initialized {
		return nil, fmt.Errorf("source: mock backend not initialized")
	}

	amp := b.Amplitude
	if amp == 0 {
		amp = 0.5
	}

	return &mockStream{
		freq:       b.FrequencyHz,
		amp:        amp,
		sampleRate: sampleRate,
		bufferSize: bufferSize,
		maxBlocks:  b.MaxBlocks,
	}, nil
}

type mockStream struct {
	freq       float64
	amp        float64
	sampleRate float64
	bufferSize int
	maxBlocks  int

	mu      sync.Mutex
	started bool
	phase   float64
	blocks  int
	written [][]float32
}

func (s *mockStream) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = true

	return nil
}

func (s *mockStream) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = false

	return nil
}

func (s *mockStream) Close() error { return nil }

func (s *mockStream) Read(data []float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return fmt.Errorf("source: mock stream not started")
	}

	if s.maxBlocks > 0 && s.blocks >= s.maxBlocks {
		return fmt.Errorf("source: mock input exhausted after %d blocks", s.blocks)
	}

	step := 2 * math.Pi * s.freq / s.sampleRate
	for i := range data {
		data[i] = float32(s.amp * math.Sin(s.phase))
		s.phase += step
	}

	s.blocks++

	return nil
}

func (s *mockStream) Write(data []float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return fmt.Errorf("source: mock stream not started")
	}

	s.written = append(s.written, append([]float32(nil), data...))

	return nil
}

// Written returns every block written to the stream so far.
func (s *mockStream) Written() [][]float32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([][]float32, len(s.written))
	copy(out, s.written)

	return out
}
