// Package weibull implements the rate/shape Weibull distribution used
// throughout OldSpot's reliability core: construction from piecewise MTTF
// segments, reliability/inverse/MTTF queries, and the product composition
// that combines independent competing failure mechanisms.
package weibull

import "math"

// MTTFSegment is one piecewise-stationary segment of an operating trace,
// expressed as a duration and the MTTF a unit would see if it ran under
// that segment's conditions forever.
type MTTFSegment struct {
	Duration float64
	MTTF     float64
}

// Distribution is a two-parameter Weibull distribution, R(t) = exp(-(t/Alpha)^Beta).
// Alpha may be +Inf, meaning the subject never wears under the conditions that
// produced it. Beta is fixed at 2 for every mechanism in this package (JEDEC
// convention) but the type carries it explicitly so Mul can guard against
// combining distributions of unequal shape.
type Distribution struct {
	Alpha float64
	Beta  float64
}

// FromSegments builds the time-weighted harmonic-average Weibull rate
// parameter from a sequence of piecewise MTTF segments, all sharing the
// given shape. A segment with MTTF=+Inf contributes zero to the rate sum;
// if every segment is infinite the result has Alpha=+Inf.
func FromSegments(beta float64, segments []MTTFSegment) Distribution {
	gammaTerm := math.Gamma(1/beta + 1)

	var totalDuration float64
	var rateSum float64 // sum of Δt_i / α_i
	for _, seg := range segments {
		totalDuration += seg.Duration
		if math.IsInf(seg.MTTF, 1) {
			continue
		}
		alphaI := seg.MTTF / gammaTerm
		if alphaI > 0 {
			rateSum += seg.Duration / alphaI
		}
	}

	if rateSum == 0 {
		return Distribution{Alpha: math.Inf(1), Beta: beta}
	}
	return Distribution{Alpha: totalDuration / rateSum, Beta: beta}
}

// Reliability returns R(t) = exp(-(t/alpha)^beta).
func (d Distribution) Reliability(t float64) float64 {
	if math.IsInf(d.Alpha, 1) {
		return 1
	}
	return math.Exp(-math.Pow(t/d.Alpha, d.Beta))
}

// Inverse returns the t such that Reliability(t) = r, for r in (0, 1].
// r=0 is not a valid input (callers must exclude it; see
// component.Unit.GetNextEvent, the sampler, which never draws exactly 0).
func (d Distribution) Inverse(r float64) float64 {
	if math.IsInf(d.Alpha, 1) {
		return math.Inf(1)
	}
	return d.Alpha * math.Pow(-math.Log(r), 1/d.Beta)
}

// MTTF returns alpha * Gamma(1/beta + 1).
func (d Distribution) MTTF() float64 {
	if math.IsInf(d.Alpha, 1) {
		return math.Inf(1)
	}
	return d.Alpha * math.Gamma(1/d.Beta+1)
}

// Rate returns alpha, the characteristic life / rate parameter.
func (d Distribution) Rate() float64 {
	return d.Alpha
}

// Mul composes two Weibull distributions of equal shape via the
// reliability-product identity for independent competing failures:
// 1/alpha = ((1/alpha_a)^beta + (1/alpha_b)^beta)^(1/beta).
// Panics if the shapes differ — this is a programmer error, never a
// recoverable runtime condition.
func (d Distribution) Mul(other Distribution) Distribution {
	if d.Beta != other.Beta {
		panic("weibull: cannot multiply distributions with unequal beta")
	}
	invA := inversePow(d.Alpha, d.Beta)
	invB := inversePow(other.Alpha, other.Beta)
	sum := invA + invB
	if sum == 0 {
		return Distribution{Alpha: math.Inf(1), Beta: d.Beta}
	}
	return Distribution{Alpha: math.Pow(sum, -1/d.Beta), Beta: d.Beta}
}

// inversePow returns (1/alpha)^beta, treating alpha=+Inf as contributing 0.
func inversePow(alpha, beta float64) float64 {
	if math.IsInf(alpha, 1) {
		return 0
	}
	return math.Pow(1/alpha, beta)
}

// Product composes a non-empty slice of equal-shape distributions left to
// right. Panics if the slice is empty or shapes differ (via Mul).
func Product(dists []Distribution) Distribution {
	if len(dists) == 0 {
		panic("weibull: Product requires at least one distribution")
	}
	result := dists[0]
	for _, d := range dists[1:] {
		result = result.Mul(d)
	}
	return result
}
