package analysis

import (
	"errors"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

var ErrShortSeries = errors.New("analysis: series too short")

// FFT is the discrete Fourier transform of a real series. Any length works;
// powers of two take the radix-2 path.
func FFT(data []float64) []complex128 {
	return fft.FFTReal(data)
}

// PowerSpectrum returns the magnitudes of the first half of the transform.
func PowerSpectrum(data []float64) []float64 {
	fft := FFT(data)
	ps := make([]float64, len(fft)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}

	return ps
}

// Spectrum is the outcome of DominantFrequency.
type Spectrum struct {
	Frequency  float64 // Hz
	Magnitude  float64
	Resolution float64 // Hz per bin
	Samples    int
}

// DominantFrequency finds the strongest non-DC component of a series sampled
// at sampleRate Hz. Only the last power-of-two samples are used, with the
// mean removed so a sagging rope does not swamp the first bin.
func DominantFrequency(series []float64, sampleRate float64) (Spectrum, error) {
	n := 1
	for n*2 <= len(series) {
		n *= 2
	}
	if n < 8 {
		return Spectrum{}, ErrShortSeries
	}

	window := series[len(series)-n:]
	mean := 0.0
	for _, v := range window {
		mean += v
	}
	mean /= float64(n)

	centred := make([]float64, n)
	for i, v := range window {
		centred[i] = v - mean
	}

	ps := PowerSpectrum(centred)
	best := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[best] {
			best = k
		}
	}

	res := sampleRate / float64(n)
	return Spectrum{
		Frequency:  float64(best) * res,
		Magnitude:  ps[best],
		Resolution: res,
		Samples:    n,
	}, nil
}
