package mechanism_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hplp/oldspot/pkg/mechanism"
	"github.com/hplp/oldspot/pkg/trace"
)

func freshPoint() trace.DataPoint {
	return trace.DataPoint{
		Time:     86400,
		Duration: 86400,
		Data: map[string]float64{
			trace.QVdd:         1.0,
			trace.QTemperature: 350,
			trace.QFrequency:   1000e6,
			trace.QActivity:    0.5,
			trace.QPower:       1,
			trace.QPeakPower:   1,
		},
	}
}

func TestAllReturnsFourMechanisms(t *testing.T) {
	ms := mechanism.All(mechanism.DefaultParams())
	assert.Len(t, ms, 4)
	names := map[string]bool{}
	for _, m := range ms {
		names[m.Name()] = true
	}
	assert.True(t, names["nbti"])
	assert.True(t, names["em"])
	assert.True(t, names["hci"])
	assert.True(t, names["tddb"])
}

func TestByNameUnknown(t *testing.T) {
	assert.Nil(t, mechanism.ByName(mechanism.DefaultParams(), "bogus"))
}

func TestNBTIZeroDutyCycleInfinite(t *testing.T) {
	m := mechanism.NewNBTI(mechanism.DefaultParams())
	got := m.TimeToFailure(freshPoint(), 0, nil)
	assert.True(t, math.IsInf(got, 1))
}

func TestNBTIPositiveDutyCycleFinite(t *testing.T) {
	m := mechanism.NewNBTI(mechanism.DefaultParams())
	got := m.TimeToFailure(freshPoint(), 1.0, nil)
	assert.False(t, math.IsInf(got, 1))
	assert.Greater(t, got, 0.0)
}

func TestHCIZeroDutyCycleInfinite(t *testing.T) {
	m := mechanism.NewHCI(mechanism.DefaultParams())
	got := m.TimeToFailure(freshPoint(), 0, nil)
	assert.True(t, math.IsInf(got, 1))
}

func TestEMFallsBackToPowerWhenNoCurrent(t *testing.T) {
	m := mechanism.NewEM(mechanism.DefaultParams())
	var warned string
	m.SetWarn(func(msg string) { warned = msg })
	got := m.TimeToFailure(freshPoint(), 1.0, nil)
	assert.Greater(t, got, 0.0)
	assert.Contains(t, warned, "falling back")
}

func TestEMUsesCurrentDensityWhenPresent(t *testing.T) {
	m := mechanism.NewEM(mechanism.DefaultParams())
	dp := freshPoint()
	dp.Data[trace.QCurrentDensity] = 1e10
	got := m.TimeToFailure(dp, 1.0, nil)
	assert.Greater(t, got, 0.0)
	assert.False(t, math.IsInf(got, 1))
}

func TestTDDBIgnoresDutyCycle(t *testing.T) {
	m := mechanism.NewTDDB(mechanism.DefaultParams())
	dp := freshPoint()
	a := m.TimeToFailure(dp, 0.1, nil)
	b := m.TimeToFailure(dp, 0.9, nil)
	assert.Equal(t, a, b)
}

func TestFailOverrideChangesTTF(t *testing.T) {
	m := mechanism.NewNBTI(mechanism.DefaultParams())
	dp := freshPoint()
	loose := 0.5
	tight := 0.01
	ttfLoose := m.TimeToFailure(dp, 1.0, &loose)
	ttfTight := m.TimeToFailure(dp, 1.0, &tight)
	assert.Greater(t, ttfLoose, ttfTight)
}
