package mechanism

import (
	"math"

	"github.com/hplp/oldspot/pkg/trace"
	"github.com/hplp/oldspot/pkg/weibull"
)

// TDDB models time-dependent dielectric breakdown.
// The V_dd exponent uses the form V_dd^(a - b*T); see DESIGN.md for the
// sign-convention note.
type TDDB struct {
	p *Params
}

// NewTDDB constructs a TDDB mechanism bound to p.
func NewTDDB(p *Params) *TDDB { return &TDDB{p: p} }

func (m *TDDB) Name() string { return "tddb" }

func (m *TDDB) Distribution(segments []weibull.MTTFSegment) weibull.Distribution {
	return distributionFromSegments(segments)
}

// TimeToFailure returns TTF = V_dd^(a-b*T) * exp((X + Y/T + Z*T)/(k_B*T)).
// dutyCycle and fail are accepted for interface symmetry but unused: TDDB's
// closed form has no duty-cycle or fail-threshold term in the source.
func (m *TDDB) TimeToFailure(dp trace.DataPoint, dutyCycle float64, fail *float64) float64 {
	vdd := dp.Get(trace.QVdd, 1)
	t := dp.Get(trace.QTemperature, 350)

	exponent := m.p.TDDBa - m.p.TDDBb*t
	vTerm := math.Pow(vdd, exponent)
	expTerm := math.Exp((m.p.TDDBX + m.p.TDDBY/t + m.p.TDDBZ*t) / (KB * t))
	return vTerm * expTerm
}
