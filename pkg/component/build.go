package component

import (
	"github.com/hplp/oldspot/pkg/mechanism"
	"github.com/hplp/oldspot/pkg/trace"
	"github.com/hplp/oldspot/pkg/weibull"
)

// ComputeReliability implements the unit reliability builder: for every
// configuration the unit has a trace for, and every
// mechanism in mechanisms, it derives the per-mechanism Weibull from the
// trace's duty-cycle/MTTF segments, then composes the per-mechanism
// distributions into OverallReliability via product.
//
// Missing trace quantities are filled from u.Defaults, the unit's own
// declared <default VAR="…"> values (not a system-wide default).
//
// warn receives de-duplicatable diagnostic messages (missing-quantity
// fallbacks, subthreshold clamps, etc.) routed through the mechanisms.
func (u *Unit) ComputeReliability(mechanisms []mechanism.Mechanism, warn func(string)) {
	wireWarn(mechanisms, warn)

	for key, points := range u.Traces {
		perMech := make(map[string]weibull.Distribution, len(mechanisms))
		dists := make([]weibull.Distribution, 0, len(mechanisms))

		for _, m := range mechanisms {
			segments := make([]weibull.MTTFSegment, 0, len(points))
			for _, raw := range points {
				dp := trace.ApplyDefaults(raw, u.Defaults)
				duty := clamp01(Activity(u.Kind, dp, m.Name()))
				mttf := m.TimeToFailure(dp, duty, nil)
				segments = append(segments, weibull.MTTFSegment{Duration: dp.Duration, MTTF: mttf})
			}
			d := m.Distribution(segments)
			perMech[m.Name()] = d
			dists = append(dists, d)
		}

		u.PerMechanismReliability[key] = perMech
		u.OverallReliability[key] = weibull.Product(dists)
	}
}

// wireWarn installs warn on every mechanism that supports it, via a small
// local interface rather than importing each concrete mechanism type.
func wireWarn(mechanisms []mechanism.Mechanism, warn func(string)) {
	type warner interface{ SetWarn(func(string)) }
	for _, m := range mechanisms {
		if w, ok := m.(warner); ok {
			w.SetWarn(warn)
		}
	}
}

// ComputeAll runs ComputeReliability for every unit in the registry, each
// against its own declared defaults.
func ComputeAll(r *Registry, mechanisms []mechanism.Mechanism, warn func(string)) {
	for _, u := range r.Units() {
		u.ComputeReliability(mechanisms, warn)
	}
}
