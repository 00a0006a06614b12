package component_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hplp/oldspot/pkg/component"
	"github.com/hplp/oldspot/pkg/trace"
)

func TestParseKindRoundTrip(t *testing.T) {
	for _, name := range []string{"unit", "core", "logic", "memory"} {
		k, ok := component.ParseKind(name)
		assert.True(t, ok)
		assert.Equal(t, name, k.String())
	}
}

func TestParseKindUnknown(t *testing.T) {
	_, ok := component.ParseKind("bogus")
	assert.False(t, ok)
}

func TestActivityCorePowerRatio(t *testing.T) {
	dp := trace.DataPoint{Data: map[string]float64{trace.QPower: 0.5, trace.QPeakPower: 2}}
	assert.Equal(t, 0.25, component.Activity(component.KindCore, dp, "nbti"))
}

func TestActivityCoreZeroPeakPower(t *testing.T) {
	dp := trace.DataPoint{Data: map[string]float64{trace.QPower: 0.5, trace.QPeakPower: 0}}
	assert.Equal(t, 0.0, component.Activity(component.KindCore, dp, "nbti"))
}

func TestActivityLogicNBTIDiscount(t *testing.T) {
	dp := trace.DataPoint{
		Duration: 1,
		Data:     map[string]float64{trace.QActivity: 1e6, trace.QFrequency: 1e6},
	}
	base := component.Activity(component.KindLogic, dp, "em")
	nbti := component.Activity(component.KindLogic, dp, "nbti")
	assert.InDelta(t, 1.0, base, 1e-9)
	assert.InDelta(t, 0.5, nbti, 1e-9)
}

func TestActivityMemoryMechanismSplit(t *testing.T) {
	dp := trace.DataPoint{}
	assert.Equal(t, 0.0, component.Activity(component.KindMemory, dp, "hci"))
	assert.Equal(t, 1.0, component.Activity(component.KindMemory, dp, "nbti"))
}

func TestActivityUnitRaw(t *testing.T) {
	dp := trace.DataPoint{Data: map[string]float64{trace.QActivity: 0.3}}
	assert.Equal(t, 0.3, component.Activity(component.KindUnit, dp, "em"))
}
