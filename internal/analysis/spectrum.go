// Package analysis provides frequency-domain analysis of recorded
// temperature traces.
package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitude of the positive-frequency half of
// the Fourier transform of data. The input length is arbitrary.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	spectrum := fft.FFTReal(data)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency returns the frequency [Hz] of the strongest
// non-DC component of a trace sampled every sampleInterval seconds,
// and its power. Returns 0, 0 when the trace is too short.
func DominantFrequency(data []float64, sampleInterval float64) (freq, power float64) {
	ps := PowerSpectrum(data)
	if len(ps) < 2 || sampleInterval <= 0 {
		return 0, 0
	}

	maxIdx := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[maxIdx] {
			maxIdx = i
		}
	}

	span := float64(len(data)) * sampleInterval
	return float64(maxIdx) / span, ps[maxIdx]
}
