// Package simulate implements the Monte-Carlo event-driven failure
// simulator: it repeatedly advances every healthy unit to the earliest
// sampled failure event, applies redundancy and equivalent-age translation,
// and records time-to-failure observations on every component until the
// root of the failure dependency tree fails.
package simulate

import (
	"math"
	"math/rand"

	"github.com/hplp/oldspot/pkg/component"
	"github.com/hplp/oldspot/pkg/trace"
)

// Progress is an optional, read-only snapshot emitted after each completed
// iteration. It never feeds back into the simulator.
type Progress struct {
	Iteration    int
	RootTTFMean  float64
	WarningCount int
}

// Options configures a Simulator run.
type Options struct {
	Iterations int
	// Warn is not read by Run: the simulator's de-duplicated diagnostics go
	// to the warn sink given to New.
	Warn func(string)
	// OnProgress, if non-nil, is called after every completed iteration.
	OnProgress func(Progress)
}

// Simulator drives the Monte-Carlo event loop over a fixed registry/tree.
type Simulator struct {
	registry *component.Registry
	root     *component.Group
	rng      *rand.Rand

	warn         func(string)
	warnSeen     map[string]bool
	warningCount int
}

// New constructs a Simulator over the given registry and root, seeded from
// seed for reproducibility.
func New(registry *component.Registry, root *component.Group, seed int64, warn func(string)) *Simulator {
	return &Simulator{
		registry: registry,
		root:     root,
		rng:      rand.New(rand.NewSource(seed)), //nolint:gosec
		warn:     warn,
		warnSeen: make(map[string]bool),
	}
}

// dedupWarn forwards msg to the installed warn sink at most once per
// distinct message, so a noisy iteration doesn't flood the log.
func (s *Simulator) dedupWarn(msg string) {
	if s.warnSeen[msg] {
		return
	}
	s.warnSeen[msg] = true
	s.warningCount++
	if s.warn != nil {
		s.warn(msg)
	}
}

// Run executes opts.Iterations independent Monte-Carlo iterations,
// resetting every unit before each one.
func (s *Simulator) Run(opts Options) {
	units := s.registry.Units()

	for iter := 0; iter < opts.Iterations; iter++ {
		s.runOne(units)

		if opts.OnProgress != nil {
			opts.OnProgress(Progress{
				Iteration:    iter + 1,
				RootTTFMean:  meanOf(s.root.TTFs()),
				WarningCount: s.warningCount,
			})
		}
	}
}

func meanOf(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// ttfRecorder is implemented by both *component.Group and *component.Unit.
type ttfRecorder interface {
	RecordTTF(t float64)
}

// runOne executes a single Monte-Carlo iteration: reset all units, then loop
// sampling/advancing/failing until the root fails or no finite event remains.
func (s *Simulator) runOne(units []*component.Unit) {
	for _, u := range units {
		u.Reset()
	}

	t := 0.0
	recorded := make(map[string]bool)

	for !s.root.Failed() {
		frontier := component.FailureFrontier(s.root)
		cfg := trace.NewConfiguration(frontier...)

		for _, u := range units {
			if u.Failed() {
				continue
			}
			u.SetConfiguration(cfg, s.dedupWarn)
		}

		minDt := math.Inf(1)
		var minUnit *component.Unit
		for _, u := range units {
			if u.Failed() {
				continue
			}
			dt := u.GetNextEvent(s.rng, s.dedupWarn)
			if dt < minDt {
				minDt = dt
				minUnit = u
			}
		}

		if math.IsInf(minDt, 1) || minUnit == nil {
			s.dedupWarn("simulate: no finite next event this iteration, aborting")
			return
		}

		for _, u := range units {
			if u.Failed() {
				continue
			}
			u.Advance(minDt, s.dedupWarn)
		}

		minUnit.Failure()
		t += minDt

		component.Walk(s.root, func(n component.Node) {
			if n.Failed() && !recorded[n.NodeName()] {
				recorded[n.NodeName()] = true
				if r, ok := n.(ttfRecorder); ok {
					r.RecordTTF(t)
				}
			}
		})

		// Units enclosed by an already-failed group become irrelevant the
		// moment that group fails: promote them to failed without
		// recording a TTF.
		behind := component.UnitsBehindFailure(s.root, units)
		for name := range behind {
			u := s.registry.ByName(name)
			if u == nil || u.Failed() {
				continue
			}
			recorded[name] = true
			for u.Remaining > 0 {
				u.Failure()
			}
		}
	}
}
