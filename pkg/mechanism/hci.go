package mechanism

import (
	"math"

	"github.com/hplp/oldspot/pkg/trace"
	"github.com/hplp/oldspot/pkg/weibull"
)

// HCI models hot-carrier injection via the closed-form ExtraTime
// parametrisation.
type HCI struct {
	p *Params
}

// NewHCI constructs an HCI mechanism bound to p.
func NewHCI(p *Params) *HCI { return &HCI{p: p} }

func (m *HCI) Name() string { return "hci" }

func (m *HCI) Distribution(segments []weibull.MTTFSegment) weibull.Distribution {
	return distributionFromSegments(segments)
}

// TimeToFailure implements the closed-form HCI TTF; returns +Inf at zero
// duty cycle.
func (m *HCI) TimeToFailure(dp trace.DataPoint, dutyCycle float64, fail *float64) float64 {
	if dutyCycle == 0 {
		return math.Inf(1)
	}

	vdd := dp.Get(trace.QVdd, 1)
	temp := dp.Get(trace.QTemperature, 350)
	freq := dp.Get(trace.QFrequency, 1000e6)

	vt := KB / EVToJ * temp / Q

	vDsatNum := (vdd - m.p.VT0N + 2*vt) * m.p.HCIL * m.p.HCIEsat
	vDsatDen := vdd - m.p.VT0N + 2*vt + m.p.HCIAbulk*m.p.HCIL*m.p.HCIEsat
	var vDsat float64
	if vDsatDen != 0 {
		vDsat = vDsatNum / vDsatDen
	}

	em := (vdd - vDsat) / m.p.HCIElen
	eOx := (vdd - m.p.VT0N) / m.p.TOx

	aHCI := Q / m.p.COx * m.p.HCIK * math.Sqrt(m.p.COx*(vdd-m.p.VT0N))

	failFrac := failThreshold(fail, m.p.FailDefault)
	deltaVFail := (vdd - m.p.VT0N) * (1 - math.Pow(1+failFrac, -1/m.p.AlphaPowerLaw))

	denom := aHCI * math.Exp(eOx/m.p.HCIE0) * math.Exp(-m.p.HCIPhiIT/EVToJ/(Q*m.p.HCILambda*em))
	if denom <= 0 || em == 0 {
		return math.Inf(1)
	}

	ttf := math.Pow(deltaVFail/denom, 1/m.p.HCIn) / (dutyCycle * freq)
	return ttf
}
