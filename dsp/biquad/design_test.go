package biquad

import (
	"errors"
	"math"
	"testing"
)

const sampleRate = 48000.0

func TestPeak_ZeroGainIsUnity(t *testing.T) {
	c, err := Peak(1000, 0, 1.0, sampleRate)
	if err != nil {
		t.Fatalf("Peak: %v", err)
	}

	for _, f := range []float64{50, 200, 1000, 5000, 20000} {
		db := c.MagnitudeDB(f, sampleRate)
		if math.Abs(db) > 1e-9 {
			t.Errorf("f=%v: got %v dB, want 0", f, db)
		}
	}
}

func TestPeak_GainAtCenter(t *testing.T) {
	for _, gain := range []float64{-12, -4.5, 3, 6, 12} {
		c, err := Peak(1000, gain, 1.0, sampleRate)
		if err != nil {
			t.Fatalf("Peak(gain=%v): %v", gain, err)
		}

		db := c.MagnitudeDB(1000, sampleRate)
		if math.Abs(db-gain) > 1e-6 {
			t.Errorf("gain=%v: center response %v dB", gain, db)
		}
	}
}

func TestLowShelf_GainBelowCorner(t *testing.T) {
	c, err := LowShelf(500, 6, 0, sampleRate)
	if err != nil {
		t.Fatalf("LowShelf: %v", err)
	}

	// Far below the corner the full shelf gain applies; far above it is flat.
	low := c.MagnitudeDB(10, sampleRate)
	if math.Abs(low-6) > 0.1 {
		t.Errorf("low end: got %v dB, want ~6", low)
	}

	high := c.MagnitudeDB(20000, sampleRate)
	if math.Abs(high) > 0.1 {
		t.Errorf("high end: got %v dB, want ~0", high)
	}
}

func TestHighShelf_GainAboveCorner(t *testing.T) {
	c, err := HighShelf(8000, -9, 0, sampleRate)
	if err != nil {
		t.Fatalf("HighShelf: %v", err)
	}

	high := c.MagnitudeDB(22000, sampleRate)
	if math.Abs(high-(-9)) > 0.1 {
		t.Errorf("high end: got %v dB, want ~-9", high)
	}

	low := c.MagnitudeDB(20, sampleRate)
	if math.Abs(low) > 0.1 {
		t.Errorf("low end: got %v dB, want ~0", low)
	}
}

func TestDesign_InvalidParameters(t *testing.T) {
	cases := []struct {
		name       string
		freq       float64
		sampleRate float64
	}{
		{"zero frequency", 0, sampleRate},
		{"negative frequency", -100, sampleRate},
		{"at nyquist", sampleRate / 2, sampleRate},
		{"above nyquist", sampleRate, sampleRate},
		{"zero sample rate", 1000, 0},
		{"nan frequency", math.NaN(), sampleRate},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Peak(tc.freq, 6, 1, tc.sampleRate)
			if err == nil {
				t.Fatal("expected design error, got nil")
			}

			var de *DesignError
			if !errors.As(err, &de) {
				t.Fatalf("expected *DesignError, got %T", err)
			}
		})
	}
}

func TestDesign_DefaultQ(t *testing.T) {
	// q <= 0 falls back to the default shelf slope; the design must
	// still be usable.
	c, err := Peak(1000, 6, 0, sampleRate)
	if err != nil {
		t.Fatalf("Peak: %v", err)
	}

	db := c.MagnitudeDB(1000, sampleRate)
	if math.Abs(db-6) > 1e-6 {
		t.Errorf("center response: got %v dB, want 6", db)
	}
}

func TestResponse_MatchesMagnitudeSquared(t *testing.T) {
	c, err := Peak(1000, 6, 1.4, sampleRate)
	if err != nil {
		t.Fatalf("Peak: %v", err)
	}

	for _, f := range []float64{100, 1000, 10000} {
		h := c.Response(f, sampleRate)
		want := real(h)*real(h) + imag(h)*imag(h)

		got := c.MagnitudeSquared(f, sampleRate)
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("f=%v: closed form %v, complex %v", f, got, want)
		}
	}
}
