package mechanism

import "github.com/hplp/oldspot/pkg/paramfile"

// Params carries the tunable device/process constants every mechanism reads.
// Defaults reproduce literature device/process values; any key present in
// a loaded parameter file overrides its corresponding field.
type Params struct {
	L             float64 // channel length, m
	VT0P          float64 // V_t0 for PMOS, V
	VT0N          float64 // V_t0 for NMOS, V
	TOx           float64 // oxide thickness, m
	COx           float64 // oxide capacitance, F/m^2
	AlphaPowerLaw float64 // α in the fail-threshold formula
	FailDefault   float64 // default relative ΔV_th at failure

	// NBTI
	NBTIStepSeconds float64
	NBTIa           float64 // coefficient A in dN_IT
	NBTIb           float64 // coefficient B in dN_HT
	NBTIGammaIT     float64
	NBTIGammaHT     float64
	NBTIEaIT        float64 // eV
	NBTIEaHT        float64 // eV

	// EM (Black's equation)
	EMA float64
	EMn float64
	EMEa float64 // eV
	EMWidth  float64 // m, wire width for j = current/(w*h) fallback
	EMHeight float64 // m, wire height

	// HCI
	HCIK      float64
	HCIEsat   float64
	HCIAbulk  float64
	HCIL      float64 // effective channel length for v_dsat, m
	HCIElen   float64 // l in E_m formula, m
	HCIE0     float64
	HCIPhiIT  float64 // eV
	HCILambda float64 // mean free path scaling, λ
	HCIn      float64 // exponent n in the TTF power law

	// TDDB
	TDDBa float64
	TDDBb float64
	TDDBX float64
	TDDBY float64
	TDDBZ float64
}

// DefaultParams returns the literal defaults from the reference simulator.
func DefaultParams() *Params {
	return &Params{
		L:             45e-9,
		VT0P:          -0.3,
		VT0N:          0.3,
		TOx:           1.2e-9,
		COx:           8.0e-3,
		AlphaPowerLaw: 1.3,
		FailDefault:   FailDefault,

		NBTIStepSeconds: 86400,
		NBTIa:           1.0e-2,
		NBTIb:           1.0e-2,
		NBTIGammaIT:     2.0,
		NBTIGammaHT:     2.0,
		NBTIEaIT:        0.49,
		NBTIEaHT:        0.15,

		EMA:      1.0e6,
		EMn:      1.1,
		EMEa:     0.9,
		EMWidth:  200e-9,
		EMHeight: 200e-9,

		HCIK:      1.0e-5,
		HCIEsat:   6.0e6,
		HCIAbulk:  1.0,
		HCIL:      45e-9,
		HCIElen:   10e-9,
		HCIE0:     1.0,
		HCIPhiIT:  3.7,
		HCILambda: 7.8e-9,
		HCIn:      0.5,

		TDDBa: 78,
		TDDBb: 0.081,
		TDDBX: 0.759,
		TDDBY: -66.8,
		TDDBZ: -8.37e-4,
	}
}

// knownParamKeys lists every key DefaultParams/LoadParams recognises, used
// to warn on unrecognised parameter-file keys.
var knownParamKeys = map[string]bool{
	"L": true, "V_t0_p": true, "V_t0_n": true, "t_ox": true, "C_ox": true,
	"alpha_power_law": true, "fail_default": true,
	"nbti_step_seconds": true, "nbti_a": true, "nbti_b": true,
	"nbti_gamma_it": true, "nbti_gamma_ht": true, "nbti_ea_it": true, "nbti_ea_ht": true,
	"em_a": true, "em_n": true, "em_ea": true, "em_width": true, "em_height": true,
	"hci_k": true, "hci_esat": true, "hci_abulk": true, "hci_l": true,
	"hci_elen": true, "hci_e0": true, "hci_phi_it": true,
	"hci_lambda": true, "hci_n": true,
	"tddb_a": true, "tddb_b": true, "tddb_x": true, "tddb_y": true, "tddb_z": true,
}

// LoadParams loads overrides from a parameter file on top of DefaultParams,
// warning (via warn) on unrecognised keys.
func LoadParams(path string, warn paramfile.WarnFunc) (*Params, error) {
	p := DefaultParams()
	values, err := paramfile.Load(path, warn)
	if err != nil {
		return nil, err
	}
	paramfile.ApplyUnknown(values, knownParamKeys, warn)

	set := func(key string, dst *float64) {
		if v, ok := values[key]; ok {
			*dst = v
		}
	}
	set("L", &p.L)
	set("V_t0_p", &p.VT0P)
	set("V_t0_n", &p.VT0N)
	set("t_ox", &p.TOx)
	set("C_ox", &p.COx)
	set("alpha_power_law", &p.AlphaPowerLaw)
	set("fail_default", &p.FailDefault)
	set("nbti_step_seconds", &p.NBTIStepSeconds)
	set("nbti_a", &p.NBTIa)
	set("nbti_b", &p.NBTIb)
	set("nbti_gamma_it", &p.NBTIGammaIT)
	set("nbti_gamma_ht", &p.NBTIGammaHT)
	set("nbti_ea_it", &p.NBTIEaIT)
	set("nbti_ea_ht", &p.NBTIEaHT)
	set("em_a", &p.EMA)
	set("em_n", &p.EMn)
	set("em_ea", &p.EMEa)
	set("em_width", &p.EMWidth)
	set("em_height", &p.EMHeight)
	set("hci_k", &p.HCIK)
	set("hci_esat", &p.HCIEsat)
	set("hci_abulk", &p.HCIAbulk)
	set("hci_l", &p.HCIL)
	set("hci_elen", &p.HCIElen)
	set("hci_e0", &p.HCIE0)
	set("hci_phi_it", &p.HCIPhiIT)
	set("hci_lambda", &p.HCILambda)
	set("hci_n", &p.HCIn)
	set("tddb_a", &p.TDDBa)
	set("tddb_b", &p.TDDBb)
	set("tddb_x", &p.TDDBX)
	set("tddb_y", &p.TDDBY)
	set("tddb_z", &p.TDDBZ)

	return p, nil
}
