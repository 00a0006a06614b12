// Package aggregate summarizes Monte-Carlo time-to-failure samples into
// sample statistics — mean, standard deviation, and a 95% normal confidence
// interval — plus per-mechanism/overall aging-rate lookups pulled straight
// from the Weibull distributions built by the unit reliability builder.
package aggregate

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/hplp/oldspot/pkg/component"
	"github.com/hplp/oldspot/pkg/trace"
)

// Summary holds the sample statistics over one set of TTF observations.
type Summary struct {
	Count      int
	Mean       float64
	StdDev     float64
	CI95Low    float64
	CI95High   float64
}

// normal95 is the z-score for a two-sided 95% confidence interval.
const normal95 = 1.959963984540054

// Summarize computes the sample mean, standard deviation, and a 95% normal
// confidence interval for the mean over samples. Mean is NaN for an empty
// input; StdDev and the CI bounds are NaN whenever fewer than two samples
// are available.
func Summarize(samples []float64) Summary {
	n := len(samples)
	if n == 0 {
		return Summary{Mean: math.NaN(), StdDev: math.NaN(), CI95Low: math.NaN(), CI95High: math.NaN()}
	}
	mean, stddev := stat.MeanStdDev(samples, nil)
	if n == 1 {
		return Summary{Count: 1, Mean: mean, StdDev: math.NaN(), CI95Low: math.NaN(), CI95High: math.NaN()}
	}
	margin := normal95 * stddev / math.Sqrt(float64(n))
	return Summary{
		Count:    n,
		Mean:     mean,
		StdDev:   stddev,
		CI95Low:  mean - margin,
		CI95High: mean + margin,
	}
}

// UnitAgingRates reports the fresh-configuration aging rate of every
// mechanism name, plus the unit's overall aging rate, for a single unit.
type UnitAgingRates struct {
	UnitName    string
	PerMechanism map[string]float64
	Overall     float64
}

// AgingRates computes UnitAgingRates for every unit in the registry, for the
// given mechanism names and the fresh configuration.
func AgingRates(r *component.Registry, mechanismNames []string) []UnitAgingRates {
	out := make([]UnitAgingRates, 0, r.Len())
	for _, u := range r.Units() {
		rates := UnitAgingRates{
			UnitName:     u.Name,
			PerMechanism: make(map[string]float64, len(mechanismNames)),
		}
		for _, name := range mechanismNames {
			rates.PerMechanism[name] = u.AgingRate(name)
		}
		rates.Overall = u.OverallAgingRate(trace.Fresh)
		out = append(out, rates)
	}
	return out
}
