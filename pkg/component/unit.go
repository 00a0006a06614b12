// Package component implements the failure dependency tree (Group/Unit),
// the flat unit registry, the kind-specific activity policy, and the unit
// reliability builder.
package component

import (
	"math"
	"math/rand"

	"github.com/hplp/oldspot/pkg/trace"
	"github.com/hplp/oldspot/pkg/weibull"
)

// Redundancy describes a Unit's spare-copy policy.
type Redundancy struct {
	Copies int
	Serial bool // true = serial (rejuvenating) redundancy, false = parallel
}

// Unit is a leaf component: a single architectural unit with its own
// traces, per-mechanism/overall reliability distributions, and mutable
// simulation state.
type Unit struct {
	ID   int
	Name string
	Kind Kind

	Copies    int
	Remaining int
	Serial    bool

	// Defaults holds this unit's per-unit fallback values, applied to any
	// trace segment missing a recognised quantity (set at load time from the
	// unit's own <default VAR=...> declarations, or the global baseline when
	// it declares none).
	Defaults trace.Defaults

	Age                float64
	CurrentReliability float64
	Config             trace.Configuration
	// PrevConfig is the Configuration active before the most recent
	// SetConfiguration call; it is the fresh (empty) Configuration before the
	// first call.
	PrevConfig trace.Configuration

	Traces map[string][]trace.DataPoint // keyed by Configuration.Key()

	PerMechanismReliability map[string]map[string]weibull.Distribution // config key -> mechanism name -> dist
	OverallReliability      map[string]weibull.Distribution             // config key -> dist

	failed bool

	// ttfs records observed failure times across MC iterations.
	ttfs []float64
}

// NewUnit constructs a Unit in its fresh (pre-simulation) state.
func NewUnit(id int, name string, kind Kind, redundancy Redundancy) *Unit {
	copies := redundancy.Copies
	if copies < 1 {
		copies = 1
	}
	return &Unit{
		ID:                      id,
		Name:                    name,
		Kind:                    kind,
		Copies:                  copies,
		Remaining:               copies,
		Serial:                  redundancy.Serial,
		CurrentReliability:      1,
		Config:                  trace.Fresh,
		Traces:                  make(map[string][]trace.DataPoint),
		PerMechanismReliability: make(map[string]map[string]weibull.Distribution),
		OverallReliability:      make(map[string]weibull.Distribution),
	}
}

// Failed reports whether the unit has exhausted all of its redundant copies.
func (u *Unit) Failed() bool { return u.failed }

// TTFs returns the observed failure times recorded so far.
func (u *Unit) TTFs() []float64 { return u.ttfs }

// Reset restores simulation state to a fresh start,
// leaving the pre-computed Traces/PerMechanismReliability/OverallReliability
// untouched.
func (u *Unit) Reset() {
	u.Age = 0
	u.CurrentReliability = 1
	u.failed = false
	u.Remaining = u.Copies
	u.Config = trace.Fresh
	u.PrevConfig = trace.Fresh
}

// distributionFor returns the unit's overall reliability distribution for
// the given configuration, falling back to the fresh configuration (with a
// warning via warn) when cfg has no known trace.
func (u *Unit) distributionFor(cfg trace.Configuration, warn func(string)) (weibull.Distribution, trace.Configuration) {
	key := cfg.Key()
	if d, ok := u.OverallReliability[key]; ok {
		return d, cfg
	}
	if warn != nil {
		warn("unit " + u.Name + ": no trace for configuration " + cfg.String() + ", falling back to fresh")
	}
	return u.OverallReliability[trace.Fresh.Key()], trace.Fresh
}

// Reliability returns R(t) under configuration cfg (falling back to fresh
// if unknown).
func (u *Unit) Reliability(cfg trace.Configuration, t float64, warn func(string)) float64 {
	d, _ := u.distributionFor(cfg, warn)
	return d.Reliability(t)
}

// Inverse returns the inverse-reliability (age) mapping to residual
// reliability r under configuration cfg.
func (u *Unit) Inverse(cfg trace.Configuration, r float64, warn func(string)) float64 {
	d, _ := u.distributionFor(cfg, warn)
	return d.Inverse(r)
}

// SetConfiguration records cfg as the unit's current configuration,
// shifting the previous value into PrevConfig.
func (u *Unit) SetConfiguration(cfg trace.Configuration, warn func(string)) {
	if _, ok := u.OverallReliability[cfg.Key()]; !ok {
		if warn != nil {
			warn("unit " + u.Name + ": configuration " + cfg.String() + " has no trace, falling back to fresh")
		}
		cfg = trace.Fresh
	}
	u.PrevConfig = u.Config
	u.Config = cfg
}

// GetNextEvent samples this unit's incremental time to its next failure
// event: draw r uniformly in (0, current_reliability),
// return inverse(r) - inverse(current_reliability), or +Inf when inverse(r)
// is +Inf.
func (u *Unit) GetNextEvent(rng *rand.Rand, warn func(string)) float64 {
	if u.CurrentReliability <= 0 {
		return 0
	}
	r := rng.Float64() * u.CurrentReliability
	for r == 0 {
		r = rng.Float64() * u.CurrentReliability
	}
	invR := u.Inverse(u.Config, r, warn)
	if math.IsInf(invR, 1) {
		return math.Inf(1)
	}
	if invR == 0 && r == u.CurrentReliability {
		return 0
	}
	invCur := u.Inverse(u.Config, u.CurrentReliability, warn)
	return invR - invCur
}

// Advance ages the unit by dt under its current configuration, applying the
// equivalent-age translation needed when the configuration
// just changed.
func (u *Unit) Advance(dt float64, warn func(string)) {
	u.Age += dt
	// When PrevConfig == Config (the common case — no frontier change this
	// iteration) this shift is exactly zero, so it is always safe to apply;
	// a non-empty PrevConfig is required only to skip the very first call,
	// where both are the fresh sentinel anyway.
	if !u.PrevConfig.IsFresh() {
		shift := u.Inverse(u.PrevConfig, u.CurrentReliability, warn) - u.Inverse(u.Config, u.CurrentReliability, warn)
		u.Age -= shift
	}
	u.CurrentReliability = u.Reliability(u.Config, u.Age, warn)
}

// Failure applies one local failure: decrements Remaining, marks failed
// when exhausted, and rejuvenates a serial unit's spare.
func (u *Unit) Failure() {
	if u.Remaining > 0 {
		u.Remaining--
	}
	if u.Remaining == 0 {
		u.failed = true
		return
	}
	if u.Serial {
		u.CurrentReliability = 1
		u.Age = 0
		u.PrevConfig = trace.Fresh
	}
}

// RecordTTF appends t to the unit's observed failure times.
func (u *Unit) RecordTTF(t float64) {
	u.ttfs = append(u.ttfs, t)
}

// AgingRate returns alpha for mechanism m under the fresh configuration
// or NaN if the mechanism has no fresh distribution.
func (u *Unit) AgingRate(m string) float64 {
	perMech, ok := u.PerMechanismReliability[trace.Fresh.Key()]
	if !ok {
		return nanValue()
	}
	d, ok := perMech[m]
	if !ok {
		return nanValue()
	}
	return d.Rate()
}

// OverallAgingRate returns overall_reliability[cfg].Rate(), 0 if the unit's
// simulation state is currently failed (whatever cfg is), or NaN if cfg has
// no distribution.
func (u *Unit) OverallAgingRate(cfg trace.Configuration) float64 {
	if u.failed {
		return 0
	}
	d, ok := u.OverallReliability[cfg.Key()]
	if !ok {
		return nanValue()
	}
	return d.Rate()
}

func nanValue() float64 {
	return math.NaN()
}
