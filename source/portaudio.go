package source

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// PortAudioBackend implements Backend on the system's default audio
// devices through PortAudio.
type PortAudioBackend struct {
	initialized bool
}

// NewPortAudioBackend returns an uninitialized PortAudio backend.
func NewPortAudioBackend() *PortAudioBackend {
	return &PortAudioBackend{}
}

// Initialize starts the PortAudio subsystem. Calling it on an already
// initialized backend is a no-op.
func (b *PortAudioBackend) Initialize() error {
	if b.initialized {
		return nil
	}

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("source: initialize portaudio: %w", err)
	}

	b.initialized = true

	return nil
}

// Terminate shuts the PortAudio subsystem down.
func (b *PortAudioBackend) Terminate() error {
	if !b.initialized {
		return nil
	}

	b.initialized = false

	return portaudio.Terminate()
}

// OpenDuplex opens a mono duplex stream on the default input and output
// devices.
func (b *PortAudioBackend) OpenDuplex(sampleRate float64, bufferSize int) (Stream, error) {
	if !b.initialized {
		return nil, fmt.Errorf("source: portaudio not initialized")
	}

	in := make([]float32, bufferSize)
	out := make([]float32, bufferSize)

	stream, err := portaudio.OpenDefaultStream(1, 1, sampleRate, bufferSize, in, out)
	if err != nil {
		return nil, fmt.Errorf("source: open duplex stream: %w", err)
	}

	return &portAudioStream{stream: stream, in: in, out: out}, nil
}

type portAudioStream struct {
	stream *portaudio.Stream
	in     []float32
	out    []float32
}

func (s *portAudioStream) Start() error { return s.stream.Start() }
func (s *portAudioStream) Stop() error  { return s.stream.Stop() }
func (s *portAudioStream) Close() error { return s.stream.Close() }

func (s *portAudioStream) Read(data []float32) error {
	if err := s.stream.Read(); err != nil {
		return fmt.Errorf("source: read stream: %w", err)
	}

	copy(data, s.in)

	return nil
}

func (s *portAudioStream) Write(data []float32) error {
	copy(s.out, data)

	if err := s.stream.Write(); err != nil {
		return fmt.Errorf("source: write stream: %w", err)
	}

	return nil
}
