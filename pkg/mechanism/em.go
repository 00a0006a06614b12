package mechanism

import (
	"math"
	"sync"

	"github.com/hplp/oldspot/pkg/trace"
	"github.com/hplp/oldspot/pkg/weibull"
)

// EM models electromigration via Black's equation.
type EM struct {
	p    *Params
	warn func(string)

	warnOnce sync.Once
}

// NewEM constructs an EM mechanism bound to p.
func NewEM(p *Params) *EM { return &EM{p: p} }

// SetWarn installs a warning sink for the current-density fallback.
func (m *EM) SetWarn(warn func(string)) { m.warn = warn }

func (m *EM) Name() string { return "em" }

func (m *EM) Distribution(segments []weibull.MTTFSegment) weibull.Distribution {
	return distributionFromSegments(segments)
}

// TimeToFailure returns TTF = A * j^(-n) * exp(E_a / (k_B*T)), where j is the
// current density: current_density if present, else current/(w*h), else a
// power/V_dd/(w*h) fallback (warned once).
func (m *EM) TimeToFailure(dp trace.DataPoint, dutyCycle float64, fail *float64) float64 {
	temp := dp.Get(trace.QTemperature, 350)
	area := m.p.EMWidth * m.p.EMHeight

	var j float64
	switch {
	case hasQuantity(dp, trace.QCurrentDensity):
		j = dp.Data[trace.QCurrentDensity]
	case hasQuantity(dp, trace.QCurrent):
		j = dp.Data[trace.QCurrent] / area
	default:
		m.warnOnce.Do(func() {
			if m.warn != nil {
				m.warn("em: no current/current_density in trace, falling back to power/vdd/(w*h)")
			}
		})
		vdd := dp.Get(trace.QVdd, 1)
		power := dp.Get(trace.QPower, 1)
		j = power / vdd / area
	}

	if j <= 0 {
		return math.Inf(1)
	}
	return m.p.EMA * math.Pow(j, -m.p.EMn) * math.Exp(m.p.EMEa/(KB*temp))
}

func hasQuantity(dp trace.DataPoint, name string) bool {
	_, ok := dp.Data[name]
	return ok
}
