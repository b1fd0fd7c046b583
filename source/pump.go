package source

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Processor consumes one block of samples in place. *eq.Chain satisfies
// it.
type Processor interface {
	ProcessBlock(buf []float64)
}

// Pump moves audio from a backend's input through a processor to the
// backend's output, one block at a time.
type Pump struct {
	backend    Backend
	proc       Processor
	sampleRate float64
	bufferSize int
	log        logrus.FieldLogger
}

// PumpOption configures a Pump.
type PumpOption func(*Pump)

// WithSampleRate sets the stream sample rate. Default is 48 kHz.
func WithSampleRate(rate float64) PumpOption {
	return func(p *Pump) {
		if rate > 0 {
			p.sampleRate = rate
		}
	}
}

// WithBufferSize sets the block size in samples. Default is 1024.
func WithBufferSize(size int) PumpOption {
	return func(p *Pump) {
		if size > 0 {
			p.bufferSize = size
		}
	}
}

// WithLogger overrides the pump's logger.
func WithLogger(log logrus.FieldLogger) PumpOption {
	return func(p *Pump) {
		if log != nil {
			p.log = log
		}
	}
}

// NewPump returns a pump connecting the backend to the processor.
func NewPump(backend Backend, proc Processor, opts ...PumpOption) *Pump {
	p := &Pump{
		backend:    backend,
		proc:       proc,
		sampleRate: 48000,
		bufferSize: 1024,
		log:        logrus.StandardLogger(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	return p
}

// SampleRate returns the configured stream sample rate.
func (p *Pump) SampleRate() float64 { return p.sampleRate }

// Run opens the stream and moves blocks until the context is canceled
// or the stream fails. It owns the backend lifecycle: the subsystem is
// initialized on entry and terminated on return.
func (p *Pump) Run(ctx context.Context) error {
	if err := p.backend.Initialize(); err != nil {
		return err
	}
	defer p.backend.Terminate()

	stream, err := p.backend.OpenDuplex(p.sampleRate, p.bufferSize)
	if err != nil {
		return err
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("source: start stream: %w", err)
	}
	defer stream.Stop()

	p.log.WithFields(logrus.Fields{
		"sample_rate": p.sampleRate,
		"buffer_size": p.bufferSize,
	}).Info("audio pump started")

	in := make([]float32, p.bufferSize)
	block := make([]float64, p.bufferSize)

	for {
		select {
		case <-ctx.Done():
			p.log.Info("audio pump stopped")

			return ctx.Err()
		default:
		}

		if err := stream.Read(in); err != nil {
			p.log.WithError(err).Error("audio input failed")

			return err
		}

		for i, v := range in {
			block[i] = float64(v)
		}

		p.proc.ProcessBlock(block)

		for i, v := range block {
			in[i] = float32(v)
		}

		if err := stream.Write(in); err != nil {
			p.log.WithError(err).Error("audio output failed")

			return err
		}
	}
}
