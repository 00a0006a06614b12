package aggregate_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hplp/oldspot/pkg/aggregate"
	"github.com/hplp/oldspot/pkg/component"
	"github.com/hplp/oldspot/pkg/trace"
	"github.com/hplp/oldspot/pkg/weibull"
)

func TestSummarizeEmpty(t *testing.T) {
	s := aggregate.Summarize(nil)
	assert.Equal(t, 0, s.Count)
	assert.True(t, math.IsNaN(s.Mean))
	assert.True(t, math.IsNaN(s.StdDev))
	assert.True(t, math.IsNaN(s.CI95Low))
	assert.True(t, math.IsNaN(s.CI95High))
}

func TestSummarizeSingleSample(t *testing.T) {
	s := aggregate.Summarize([]float64{10})
	assert.Equal(t, 1, s.Count)
	assert.Equal(t, 10.0, s.Mean)
	assert.True(t, math.IsNaN(s.StdDev))
	assert.True(t, math.IsNaN(s.CI95Low))
	assert.True(t, math.IsNaN(s.CI95High))
}

func TestSummarizeCIContainsMean(t *testing.T) {
	samples := []float64{9, 10, 11, 10, 9, 11, 10}
	s := aggregate.Summarize(samples)
	assert.LessOrEqual(t, s.CI95Low, s.Mean)
	assert.GreaterOrEqual(t, s.CI95High, s.Mean)
}

func TestAgingRatesCoversEveryUnit(t *testing.T) {
	reg := component.NewRegistry()
	u := reg.Add("u0", component.KindUnit, component.Redundancy{Copies: 1})
	u.PerMechanismReliability[trace.Fresh.Key()] = map[string]weibull.Distribution{
		"nbti": {Alpha: 100, Beta: 2},
	}
	u.OverallReliability[trace.Fresh.Key()] = weibull.Distribution{Alpha: 100, Beta: 2}

	rates := aggregate.AgingRates(reg, []string{"nbti", "em"})
	assert.Len(t, rates, 1)
	assert.Equal(t, "u0", rates[0].UnitName)
	assert.Equal(t, 100.0, rates[0].PerMechanism["nbti"])
	assert.True(t, rates[0].PerMechanism["em"] != rates[0].PerMechanism["em"]) // NaN
}
