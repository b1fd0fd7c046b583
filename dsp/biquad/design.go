package biquad

import (
	"math"
)

// DefaultQ is the quality factor used when the caller supplies none.
// It yields the standard Butterworth-like shelf slope.
const DefaultQ = 1 / math.Sqrt2

// Peak designs a peaking-EQ biquad at freq (Hz) with gain in dB and
// quality factor q. A gain of 0 dB yields a unity response.
func Peak(freq, gainDB, q, sampleRate float64) (Coefficients, error) {
	w0, err := normalizedW0(freq, sampleRate)
	if err != nil {
		return Coefficients{}, err
	}

	q = normalizedQ(q)
	cw := math.Cos(w0)
	sw := math.Sin(w0)
	alpha := sw / (2 * q)
	a := math.Pow(10, gainDB/40)

	b0 := 1 + alpha*a
	b1 := -2 * cw
	b2 := 1 - alpha*a
	a0 := 1 + alpha/a
	a1 := -2 * cw
	a2 := 1 - alpha/a

	return normalize(b0, b1, b2, a0, a1, a2)
}

// LowShelf designs a low-shelf biquad with gain in dB below freq.
func LowShelf(freq, gainDB, q, sampleRate float64) (Coefficients, error) {
	w0, err := normalizedW0(freq, sampleRate)
	if err != nil {
		return Coefficients{}, err
	}

	q = normalizedQ(q)
	cw := math.Cos(w0)
	sw := math.Sin(w0)
	alpha := sw / (2 * q)
	a := math.Pow(10, gainDB/40)
	beta := 2 * math.Sqrt(a) * alpha

	b0 := a * ((a + 1) - (a-1)*cw + beta)
	b1 := 2 * a * ((a - 1) - (a+1)*cw)
	b2 := a * ((a + 1) - (a-1)*cw - beta)
	a0 := (a + 1) + (a-1)*cw + beta
	a1 := -2 * ((a - 1) + (a+1)*cw)
	a2 := (a + 1) + (a-1)*cw - beta

	return normalize(b0, b1, b2, a0, a1, a2)
}

// HighShelf designs a high-shelf biquad with gain in dB above freq.
func HighShelf(freq, gainDB, q, sampleRate float64) (Coefficients, error) {
	w0, err := normalizedW0(freq, sampleRate)
	if err != nil {
		return Coefficients{}, err
	}

	q = normalizedQ(q)
	cw := math.Cos(w0)
	sw := math.Sin(w0)
	alpha := sw / (2 * q)
	a := math.Pow(10, gainDB/40)
	beta := 2 * math.Sqrt(a) * alpha

	b0 := a * ((a + 1) + (a-1)*cw + beta)
	b1 := -2 * a * ((a - 1) + (a+1)*cw)
	b2 := a * ((a + 1) + (a-1)*cw - beta)
	a0 := (a + 1) - (a-1)*cw + beta
	a1 := 2 * ((a - 1) - (a+1)*cw)
	a2 := (a + 1) - (a-1)*cw - beta

	return normalize(b0, b1, b2, a0, a1, a2)
}

func normalizedW0(freq, sampleRate float64) (float64, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, &DesignError{Field: "sampleRate", Value: sampleRate}
	}

	nyquist := sampleRate / 2
	if freq <= 0 || freq >= nyquist || math.IsNaN(freq) || math.IsInf(freq, 0) {
		return 0, &DesignError{Field: "frequency", Value: freq}
	}

	return 2 * math.Pi * freq / sampleRate, nil
}

func normalizedQ(q float64) float64 {
	if q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		return DefaultQ
	}

	return q
}

func normalize(b0, b1, b2, a0, a1, a2 float64) (Coefficients, error) {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return Coefficients{}, &DesignError{Field: "a0", Value: a0}
	}

	return Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}, nil
}
