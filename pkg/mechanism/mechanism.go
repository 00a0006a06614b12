// Package mechanism implements the four transistor-level wearout mechanisms
// OldSpot models — NBTI, EM, HCI, and TDDB — each exposing a shared
// TimeToFailure/Distribution interface over the Weibull engine in
// pkg/weibull.
package mechanism

import (
	"github.com/hplp/oldspot/pkg/trace"
	"github.com/hplp/oldspot/pkg/weibull"
)

// Shared physical constants.
const (
	Q      = 1.60217662e-19 // elementary charge, C
	KB     = 8.6173303e-5   // Boltzmann constant, eV/K
	EVToJ  = 6.242e18       // eV -> J conversion factor
	Beta   = 2.0            // Weibull shape, JEDEC convention
	FailDefault = 0.05      // default relative ΔV_th at failure
)

// Mechanism is the common interface every wearout mechanism implements.
type Mechanism interface {
	// Name returns the mechanism's short identifier ("nbti", "em", "hci", "tddb").
	Name() string

	// TimeToFailure returns the MTTF in seconds for one data point under the
	// given duty cycle. fail, if non-nil, overrides FailDefault.
	TimeToFailure(dp trace.DataPoint, dutyCycle float64, fail *float64) float64

	// Distribution builds the per-mechanism Weibull from piecewise MTTF segments.
	Distribution(segments []weibull.MTTFSegment) weibull.Distribution
}

// All returns the four mechanisms in a stable order, constructed from p.
func All(p *Params) []Mechanism {
	return []Mechanism{
		NewNBTI(p),
		NewEM(p),
		NewHCI(p),
		NewTDDB(p),
	}
}

// ByName returns the named mechanism from the canonical set, or nil if unknown.
func ByName(p *Params, name string) Mechanism {
	for _, m := range All(p) {
		if m.Name() == name {
			return m
		}
	}
	return nil
}

// failThreshold resolves the effective failure threshold for a TimeToFailure call.
func failThreshold(fail *float64, def float64) float64 {
	if fail != nil {
		return *fail
	}
	return def
}

// distributionFromSegments is the common tail of every mechanism's Distribution method.
func distributionFromSegments(segments []weibull.MTTFSegment) weibull.Distribution {
	return weibull.FromSegments(Beta, segments)
}
