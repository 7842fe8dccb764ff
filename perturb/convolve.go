package perturb

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Kernels at or below this length convolve faster in the time domain.
const directKernelThreshold = 64

// convolveSame convolves signal with an odd-length kernel and returns the
// centered portion with the signal's length ("same" mode). The implicit
// zero padding beyond the array ends is what makes broadening of line
// depths continuum-safe at the edges.
func convolveSame(signal, kernel []float64) ([]float64, error) {
	var (
		full []float64
		err  error
	)

	if len(kernel) <= directKernelThreshold {
		full = directConvolve(signal, kernel)
	} else {
		full, err = fftConvolve(signal, kernel)
		if err != nil {
			return nil, err
		}
	}

	start := (len(kernel) - 1) / 2

	return full[start : start+len(signal)], nil
}

// directConvolve performs O(N*M) time-domain linear convolution,
// returning the full result of length len(a) + len(b) - 1.
func directConvolve(a, b []float64) []float64 {
	out := make([]float64, len(a)+len(b)-1)

	for i := range a {
		for j := range b {
			out[i+j] += a[i] * b[j]
		}
	}

	return out
}

// fftConvolve performs linear convolution through a single zero-padded
// FFT round trip. The transform size is the next power of two that holds
// the full convolution result.
func fftConvolve(a, b []float64) ([]float64, error) {
	outLen := len(a) + len(b) - 1
	fftSize := nextPowerOf2(outLen)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("perturb: FFT plan: %w", err)
	}

	aPadded := make([]complex128, fftSize)
	for i, v := range a {
		aPadded[i] = complex(v, 0)
	}

	bPadded := make([]complex128, fftSize)
	for i, v := range b {
		bPadded[i] = complex(v, 0)
	}

	aFreq := make([]complex128, fftSize)
	if err := plan.Forward(aFreq, aPadded); err != nil {
		return nil, fmt.Errorf("perturb: forward FFT: %w", err)
	}

	bFreq := make([]complex128, fftSize)
	if err := plan.Forward(bFreq, bPadded); err != nil {
		return nil, fmt.Errorf("perturb: forward FFT: %w", err)
	}

	// Multiply in frequency domain (convolution)
	for i := range aFreq {
		aFreq[i] *= bFreq[i]
	}

	resultTime := make([]complex128, fftSize)
	if err := plan.Inverse(resultTime, aFreq); err != nil {
		return nil, fmt.Errorf("perturb: inverse FFT: %w", err)
	}

	out := make([]float64, outLen)
	for i := range out {
		out[i] = real(resultTime[i])
	}

	return out, nil
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p *= 2
	}

	return p
}
