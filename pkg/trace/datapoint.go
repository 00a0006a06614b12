// Package trace defines the operating-trace data model (DataPoint,
// Configuration) and the CSV collaborator that parses delimited trace
// files into ordered DataPoint sequences.
package trace

import "sort"

// Quantity names recognised in a DataPoint's Data map.
const (
	QVdd             = "vdd"
	QTemperature     = "temperature"
	QFrequency       = "frequency"
	QActivity        = "activity"
	QPower           = "power"
	QPeakPower       = "peak_power"
	QCurrent         = "current"
	QCurrentDensity  = "current_density"
)

// Defaults holds the per-unit fallback values applied when a trace is
// missing a recognised quantity. power/peak_power are filled for every unit
// kind, not only Core.
type Defaults struct {
	Vdd         float64
	Temperature float64
	Frequency   float64 // Hz
	Activity    float64
	Power       float64
	PeakPower   float64
}

// DefaultDefaults returns the baseline fallback values: vdd=1,
// temperature=350, frequency=1000MHz, activity=0, power=1, peak_power=1.
func DefaultDefaults() Defaults {
	return Defaults{
		Vdd:         1,
		Temperature: 350,
		Frequency:   1000e6,
		Activity:    0,
		Power:       1,
		PeakPower:   1,
	}
}

// DataPoint is one segment of an operating trace for one unit under one
// surviving configuration.
type DataPoint struct {
	Time     float64 // absolute, seconds
	Duration float64 // seconds; first segment's duration equals its time
	Data     map[string]float64
}

// Get returns the named quantity, falling back to def when absent.
func (dp DataPoint) Get(name string, def float64) float64 {
	if v, ok := dp.Data[name]; ok {
		return v
	}
	return def
}

// ApplyDefaults fills every recognised quantity missing from dp.Data from d,
// returning a new DataPoint (the input is never mutated).
func ApplyDefaults(dp DataPoint, d Defaults) DataPoint {
	out := DataPoint{Time: dp.Time, Duration: dp.Duration, Data: make(map[string]float64, len(dp.Data)+6)}
	for k, v := range dp.Data {
		out.Data[k] = v
	}
	fill := func(name string, def float64) {
		if _, ok := out.Data[name]; !ok {
			out.Data[name] = def
		}
	}
	fill(QVdd, d.Vdd)
	fill(QTemperature, d.Temperature)
	fill(QFrequency, d.Frequency)
	fill(QActivity, d.Activity)
	fill(QPower, d.Power)
	fill(QPeakPower, d.PeakPower)
	return out
}

// Configuration is the set of unit names considered failed when a trace was
// recorded, canonicalised as a sorted slice for stable hashing/ordering. The
// empty/"fresh" configuration is the distinguished initial state.
type Configuration struct {
	names []string
}

// Fresh is the distinguished empty configuration.
var Fresh = Configuration{}

// NewConfiguration canonicalises names into a sorted, de-duplicated Configuration.
func NewConfiguration(names ...string) Configuration {
	if len(names) == 0 {
		return Fresh
	}
	seen := make(map[string]bool, len(names))
	uniq := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		uniq = append(uniq, n)
	}
	sort.Strings(uniq)
	return Configuration{names: uniq}
}

// IsFresh reports whether c is the empty configuration.
func (c Configuration) IsFresh() bool {
	return len(c.names) == 0
}

// Key returns the canonical map key for c: a comma-joined sorted name list,
// or "" for the fresh configuration.
func (c Configuration) Key() string {
	if c.IsFresh() {
		return ""
	}
	out := c.names[0]
	for _, n := range c.names[1:] {
		out += "," + n
	}
	return out
}

// Names returns the configuration's sorted member names (not a copy-safe
// reference; callers must not mutate).
func (c Configuration) Names() []string {
	return c.names
}

func (c Configuration) String() string {
	if c.IsFresh() {
		return "<fresh>"
	}
	return c.Key()
}
