package component_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hplp/oldspot/pkg/component"
	"github.com/hplp/oldspot/pkg/mechanism"
	"github.com/hplp/oldspot/pkg/trace"
)

func TestComputeReliabilityPopulatesOverall(t *testing.T) {
	reg := component.NewRegistry()
	u := reg.Add("core0", component.KindCore, component.Redundancy{Copies: 1})
	u.Traces[trace.Fresh.Key()] = []trace.DataPoint{
		{Time: 86400, Duration: 86400, Data: map[string]float64{
			trace.QVdd: 1.0, trace.QTemperature: 350, trace.QFrequency: 1000e6,
			trace.QPower: 0.8, trace.QPeakPower: 1.0,
		}},
	}

	mechanisms := mechanism.All(mechanism.DefaultParams())
	var warnings []string
	component.ComputeAll(reg, mechanisms, func(msg string) { warnings = append(warnings, msg) })

	d, ok := u.OverallReliability[trace.Fresh.Key()]
	assert.True(t, ok)
	assert.Greater(t, d.Alpha, 0.0)

	perMech, ok := u.PerMechanismReliability[trace.Fresh.Key()]
	assert.True(t, ok)
	assert.Len(t, perMech, 4)
}

func TestComputeReliabilityMultipleConfigurations(t *testing.T) {
	reg := component.NewRegistry()
	u := reg.Add("core0", component.KindCore, component.Redundancy{Copies: 1})
	point := trace.DataPoint{Time: 86400, Duration: 86400, Data: map[string]float64{
		trace.QVdd: 1.0, trace.QTemperature: 350, trace.QFrequency: 1000e6,
		trace.QPower: 0.8, trace.QPeakPower: 1.0,
	}}
	u.Traces[trace.Fresh.Key()] = []trace.DataPoint{point}
	u.Traces[trace.NewConfiguration("sibling").Key()] = []trace.DataPoint{point}

	mechanisms := mechanism.All(mechanism.DefaultParams())
	component.ComputeAll(reg, mechanisms, nil)

	assert.Len(t, u.OverallReliability, 2)
}

func TestComputeReliabilityUsesUnitDefaults(t *testing.T) {
	reg := component.NewRegistry()
	u := reg.Add("core0", component.KindCore, component.Redundancy{Copies: 1})
	u.Defaults = trace.Defaults{Vdd: 1, Temperature: 400, Frequency: 1000e6, Power: 0.8, PeakPower: 1}
	// The trace omits temperature entirely, so the unit's own declared
	// default (400K) must be used instead of the package baseline (350K).
	u.Traces[trace.Fresh.Key()] = []trace.DataPoint{
		{Time: 86400, Duration: 86400, Data: map[string]float64{
			trace.QVdd: 1.0, trace.QFrequency: 1000e6,
			trace.QPower: 0.8, trace.QPeakPower: 1.0,
		}},
	}

	withDefault := trace.Defaults{Vdd: 1, Temperature: 350, Frequency: 1000e6, Power: 0.8, PeakPower: 1}
	other := reg.Add("core1", component.KindCore, component.Redundancy{Copies: 1})
	other.Defaults = withDefault
	other.Traces[trace.Fresh.Key()] = []trace.DataPoint{
		{Time: 86400, Duration: 86400, Data: map[string]float64{
			trace.QVdd: 1.0, trace.QFrequency: 1000e6,
			trace.QPower: 0.8, trace.QPeakPower: 1.0,
		}},
	}

	mechanisms := mechanism.All(mechanism.DefaultParams())
	component.ComputeAll(reg, mechanisms, nil)

	hot := u.OverallReliability[trace.Fresh.Key()]
	cool := other.OverallReliability[trace.Fresh.Key()]
	assert.NotEqual(t, hot.Alpha, cool.Alpha)
}
