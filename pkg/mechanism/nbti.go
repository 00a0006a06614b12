package mechanism

import (
	"math"

	"github.com/hplp/oldspot/pkg/trace"
	"github.com/hplp/oldspot/pkg/weibull"
)

// NBTI forward-simulates threshold-voltage drift under negative bias
// temperature instability to derive a time to failure.
type NBTI struct {
	p *Params
	// warn receives subthreshold-VDD warnings; may be nil.
	warn func(string)
}

// NewNBTI constructs an NBTI mechanism bound to p.
func NewNBTI(p *Params) *NBTI { return &NBTI{p: p} }

// SetWarn installs a warning sink used for the subthreshold-VDD clamp.
func (m *NBTI) SetWarn(warn func(string)) { m.warn = warn }

func (m *NBTI) Name() string { return "nbti" }

func (m *NBTI) Distribution(segments []weibull.MTTFSegment) weibull.Distribution {
	return distributionFromSegments(segments)
}

// TimeToFailure forward-simulates ΔV_th(t) in fixed 86400s (1 day) steps
// until it crosses the failure threshold, then linearly interpolates
// between the last two samples. The N_IT/N_HT stress terms are recomputed
// from absolute t on every step (not integrated incrementally) — this
// reproduces the piecewise-stationary closed form of the underlying NBTI
// model — but V = V_dd - V_t0_p - ΔV_th still feeds the previous step's
// accumulated drift back into the stress term, per spec.
func (m *NBTI) TimeToFailure(dp trace.DataPoint, dutyCycle float64, fail *float64) float64 {
	if dutyCycle == 0 {
		return math.Inf(1)
	}

	vdd := dp.Get(trace.QVdd, 1)
	temp := dp.Get(trace.QTemperature, 350)

	dcEff := math.Pow(dutyCycle/(1+math.Sqrt((1-dutyCycle)/2)), 1.0/6.0)

	vth := vdd - m.p.VT0P
	if vth < 0 {
		if m.warn != nil {
			m.warn("nbti: V_dd - V_t0_p is negative, clamping to 0")
		}
		vth = 0
	}

	failFrac := failThreshold(fail, m.p.FailDefault)
	deltaVFail := vth * (1 - math.Pow(1+failFrac, -1/m.p.AlphaPowerLaw))

	dt := m.p.NBTIStepSeconds
	kT := KB * temp

	// deltaVAt computes ΔV_th(t) given the ΔV_th accumulated through the
	// previous step, since V = V_dd - V_t0_p - ΔV_th feeds back into the
	// stress terms each step.
	deltaVAt := func(t, prevDelta float64) float64 {
		v := vdd - m.p.VT0P - prevDelta
		if v < 0 {
			if m.warn != nil {
				m.warn("nbti: V_dd - V_t0_p - deltaV_th is negative, clamping to 0")
			}
			v = 0
		}
		dNIT := m.p.NBTIa * math.Pow(v, m.p.NBTIGammaIT) * math.Exp(-m.p.NBTIEaIT/kT) * math.Pow(t, 1.0/6.0)
		dNHT := m.p.NBTIb * math.Pow(v, m.p.NBTIGammaHT) * math.Exp(-m.p.NBTIEaHT/kT)
		return dcEff * 0.027e-12 * (dNIT + dNHT)
	}

	t := dt
	prevT := 0.0
	prevDelta := 0.0
	for {
		delta := deltaVAt(t, prevDelta)
		if delta >= deltaVFail {
			if t == dt {
				return 0
			}
			if delta == prevDelta {
				return t
			}
			frac := (deltaVFail - prevDelta) / (delta - prevDelta)
			return prevT + frac*(t-prevT)
		}
		prevT = t
		prevDelta = delta
		t += dt
	}
}
