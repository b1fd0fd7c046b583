// Package source connects an audio input to an equalizer chain and
// forwards the processed signal to an output. The audio backend is an
// interface so the pump can run against real hardware or a deterministic
// mock in tests.
package source

// Backend abstracts the audio subsystem lifecycle and stream creation.
type Backend interface {
	// Initialize prepares the audio subsystem. It must be called before
	// OpenDuplex and is idempotent.
	Initialize() error

	// Terminate releases the audio subsystem.
	Terminate() error

	// OpenDuplex opens a mono stream that reads input and writes output
	// in blocks of bufferSize samples.
	OpenDuplex(sampleRate float64, bufferSize int) (Stream, error)
}

// Stream is one open audio stream. Read and Write move exactly one
// buffer of samples and block until the hardware is ready.
type Stream interface {
	Start() error
	Stop() error
	Close() error

	// Read fills data with the next block of input samples.
	Read(data []float32) error

	// Write sends data to the output.
	Write(data []float32) error
}
