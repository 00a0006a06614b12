package simulate_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hplp/oldspot/pkg/component"
	"github.com/hplp/oldspot/pkg/simulate"
	"github.com/hplp/oldspot/pkg/trace"
	"github.com/hplp/oldspot/pkg/weibull"
)

// buildSerialTwoUnitTree builds a two-unit, intolerant-group system where
// both units have a known, finite-alpha fresh distribution, so the root is
// guaranteed to fail in every iteration.
func buildSerialTwoUnitTree(t *testing.T) (*component.Registry, *component.Group) {
	t.Helper()
	reg := component.NewRegistry()
	a := reg.Add("a", component.KindUnit, component.Redundancy{Copies: 1})
	b := reg.Add("b", component.KindUnit, component.Redundancy{Copies: 1})

	for _, u := range []*component.Unit{a, b} {
		dist := weibull.Distribution{Alpha: 1000, Beta: 2}
		u.OverallReliability[trace.Fresh.Key()] = dist
		u.PerMechanismReliability[trace.Fresh.Key()] = map[string]weibull.Distribution{"nbti": dist}
	}

	root := component.NewGroup("root", 0)
	root.AddChild(a)
	root.AddChild(b)
	return reg, root
}

func TestRunRecordsRootTTFs(t *testing.T) {
	reg, root := buildSerialTwoUnitTree(t)
	sim := simulate.New(reg, root, 42, nil)

	sim.Run(simulate.Options{Iterations: 20})

	ttfs := root.TTFs()
	require.Len(t, ttfs, 20)
	for _, ttf := range ttfs {
		assert.Greater(t, ttf, 0.0)
		assert.False(t, math.IsNaN(ttf))
	}
}

func TestRunReportsProgressEachIteration(t *testing.T) {
	reg, root := buildSerialTwoUnitTree(t)
	sim := simulate.New(reg, root, 7, nil)

	var progressed []simulate.Progress
	sim.Run(simulate.Options{
		Iterations: 5,
		OnProgress: func(p simulate.Progress) { progressed = append(progressed, p) },
	})

	require.Len(t, progressed, 5)
	for i, p := range progressed {
		assert.Equal(t, i+1, p.Iteration)
		assert.False(t, math.IsNaN(p.RootTTFMean))
	}
}

func TestRunParallelRedundancyDelaysUnitFailure(t *testing.T) {
	reg := component.NewRegistry()
	u := reg.Add("u0", component.KindUnit, component.Redundancy{Copies: 2})
	dist := weibull.Distribution{Alpha: 1000, Beta: 2}
	u.OverallReliability[trace.Fresh.Key()] = dist
	u.PerMechanismReliability[trace.Fresh.Key()] = map[string]weibull.Distribution{"nbti": dist}

	root := component.NewGroup("root", 0)
	root.AddChild(u)

	sim := simulate.New(reg, root, 1, nil)
	sim.Run(simulate.Options{Iterations: 10})

	ttfs := u.TTFs()
	assert.Len(t, ttfs, 10)
	assert.Equal(t, 0, u.Remaining)
}

func TestRunAbortsCleanlyWhenNoFiniteEventExists(t *testing.T) {
	reg := component.NewRegistry()
	u := reg.Add("u0", component.KindUnit, component.Redundancy{Copies: 1})
	// Infinite alpha: every sampled event is +Inf, so the loop must abort
	// instead of spinning forever.
	u.OverallReliability[trace.Fresh.Key()] = weibull.Distribution{Alpha: math.Inf(1), Beta: 2}

	root := component.NewGroup("root", 0)
	root.AddChild(u)

	var warnings []string
	sim := simulate.New(reg, root, 3, func(msg string) { warnings = append(warnings, msg) })
	sim.Run(simulate.Options{Iterations: 3})

	assert.Empty(t, root.TTFs())
	assert.NotEmpty(t, warnings)
}

func TestRunPromotesUnitsBehindAnAlreadyFailedGroup(t *testing.T) {
	reg := component.NewRegistry()
	fast := reg.Add("fast", component.KindUnit, component.Redundancy{Copies: 1})
	slow := reg.Add("slow", component.KindUnit, component.Redundancy{Copies: 1})

	fastDist := weibull.Distribution{Alpha: 1, Beta: 2}
	slowDist := weibull.Distribution{Alpha: 1e9, Beta: 2}
	fast.OverallReliability[trace.Fresh.Key()] = fastDist
	fast.PerMechanismReliability[trace.Fresh.Key()] = map[string]weibull.Distribution{"nbti": fastDist}
	slow.OverallReliability[trace.Fresh.Key()] = slowDist
	slow.PerMechanismReliability[trace.Fresh.Key()] = map[string]weibull.Distribution{"nbti": slowDist}

	inner := component.NewGroup("inner", 0) // fails as soon as "slow" fails
	inner.AddChild(slow)
	root := component.NewGroup("root", 0) // intolerant: fails as soon as "fast" or "inner" fails
	root.AddChild(fast)
	root.AddChild(inner)

	sim := simulate.New(reg, root, 99, nil)
	sim.Run(simulate.Options{Iterations: 15})

	// "fast" always fails well before "slow", so the root fails via "fast"
	// every time and "slow" is promoted-failed without ever recording a TTF.
	assert.Len(t, root.TTFs(), 15)
	assert.Empty(t, slow.TTFs())
}
