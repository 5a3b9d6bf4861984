package sim

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// StationaryDistribution is the long-run probability of each failed-unit
// count, indexed by j = 0..n. A valid vector has non-negative finite
// entries summing to 1.
type StationaryDistribution []float64

// Sum returns the total probability mass.
func (d StationaryDistribution) Sum() float64 {
	return floats.Sum(d)
}

// SumThrough returns the probability that at most j units are failed.
// Negative j yields 0; j past the last state covers the full vector.
func (d StationaryDistribution) SumThrough(j int) float64 {
	if j < 0 {
		return 0
	}
	if j >= len(d) {
		j = len(d) - 1
	}
	return floats.Sum(d[:j+1])
}

// ExpectedOperational returns the time-average number of operational units
// for a system of n components: the sum over j of (n-j)*pi(j).
func (d StationaryDistribution) ExpectedOperational(n int) float64 {
	total := 0.0
	for j, p := range d {
		total += float64(n-j) * p
	}
	return total
}

// checkFinite rejects vectors with negative, NaN or infinite entries.
func (d StationaryDistribution) checkFinite() error {
	for j, p := range d {
		if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
			return fmt.Errorf("probability %g at state %d: %w", p, j, ErrNumericalInstability)
		}
	}
	return nil
}
