package component

import (
	"math"

	"github.com/hplp/oldspot/pkg/trace"
)

// Kind selects a Unit's activity (duty-cycle) policy.
type Kind int

const (
	KindUnit Kind = iota // generic: activity read directly as duty cycle
	KindCore
	KindLogic
	KindMemory
)

func (k Kind) String() string {
	switch k {
	case KindUnit:
		return "unit"
	case KindCore:
		return "core"
	case KindLogic:
		return "logic"
	case KindMemory:
		return "memory"
	default:
		return "unknown"
	}
}

// ParseKind maps the XML unit "type" attribute to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "unit":
		return KindUnit, true
	case "core":
		return KindCore, true
	case "logic":
		return KindLogic, true
	case "memory":
		return KindMemory, true
	default:
		return 0, false
	}
}

// Activity computes the per-mechanism duty cycle for dp under kind. The
// result is not yet clamped to [0,1]; callers clamp.
func Activity(kind Kind, dp trace.DataPoint, mechName string) float64 {
	switch kind {
	case KindCore:
		peak := dp.Get(trace.QPeakPower, 1)
		if peak == 0 {
			return 0
		}
		return dp.Get(trace.QPower, 1) / peak

	case KindLogic:
		freq := dp.Get(trace.QFrequency, 1000e6)
		denom := dp.Duration * freq
		base := 1.0
		if denom != 0 {
			base = math.Min(dp.Get(trace.QActivity, 0)/denom, 1)
		}
		if mechName == "nbti" {
			return 1 - base*base/2
		}
		return base

	case KindMemory:
		if mechName == "hci" {
			return 0
		}
		return 1

	default: // KindUnit
		return dp.Get(trace.QActivity, 0)
	}
}

// clamp01 restricts v to [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

