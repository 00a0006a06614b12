// Package xmlconfig loads a system description from XML: a set of <unit>
// declarations (with per-quantity defaults, optional redundancy, and
// per-configuration trace files) followed by a <group> tree referencing
// those units by name.
package xmlconfig

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hplp/oldspot/pkg/component"
	"github.com/hplp/oldspot/pkg/trace"
)

type xmlSystem struct {
	XMLName xml.Name   `xml:"system"`
	Units   []xmlUnit  `xml:"unit"`
	Root    xmlGroup   `xml:"group"`
}

type xmlUnit struct {
	Type    string        `xml:"type,attr"`
	Name    string        `xml:"name,attr"`
	Default []xmlDefault  `xml:"default"`
	Redund  *xmlRedund    `xml:"redundancy"`
	Traces  []xmlTrace    `xml:"trace"`
}

type xmlDefault struct {
	Var   string `xml:"VAR,attr"`
	Value string `xml:"value,attr"`
}

type xmlRedund struct {
	Type  string `xml:"type,attr"`
	Count int    `xml:"count,attr"`
}

type xmlTrace struct {
	File   string `xml:"file,attr"`
	Failed string `xml:"failed,attr"`
}

type xmlGroup struct {
	Name     string      `xml:"name,attr"`
	Failures int         `xml:"failures,attr"`
	Groups   []xmlGroup  `xml:"group"`
	Units    []xmlUnitRef `xml:"unit"`
}

type xmlUnitRef struct {
	Name string `xml:"name,attr"`
}

// Result is the output of Load: the flat unit registry plus the root of the
// failure dependency tree.
type Result struct {
	Registry *component.Registry
	Root     *component.Group
}

// LoadOptions configures trace parsing performed while loading.
type LoadOptions struct {
	// Delimiter is the trace file column delimiter, default ','.
	Delimiter rune
	// BaseDir resolves relative trace file paths; defaults to the XML
	// file's own directory.
	BaseDir string
	// Warn receives de-duplicatable loader diagnostics (a unit declaring no
	// fresh trace, whose fresh trace is then synthesized from its defaults).
	Warn func(string)
}

// LoadFile reads and parses an XML system description from path.
func LoadFile(path string, opts LoadOptions) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("xmlconfig: read %s: %w", path, err)
	}
	if opts.BaseDir == "" {
		opts.BaseDir = filepath.Dir(path)
	}
	return Load(data, opts)
}

// Load parses an XML system description from data.
func Load(data []byte, opts LoadOptions) (*Result, error) {
	var sys xmlSystem
	if err := xml.Unmarshal(data, &sys); err != nil {
		return nil, fmt.Errorf("xmlconfig: parse xml: %w", err)
	}

	reg := component.NewRegistry()
	for _, xu := range sys.Units {
		kind, ok := component.ParseKind(xu.Type)
		if !ok {
			return nil, fmt.Errorf("xmlconfig: unit %q: unknown type %q", xu.Name, xu.Type)
		}
		if reg.ByName(xu.Name) != nil {
			return nil, fmt.Errorf("xmlconfig: duplicate unit name %q", xu.Name)
		}

		redundancy := component.Redundancy{Copies: 1, Serial: false}
		if xu.Redund != nil {
			redundancy.Copies = xu.Redund.Count
			if redundancy.Copies < 1 {
				redundancy.Copies = 1
			}
			redundancy.Serial = xu.Redund.Type == "serial"
		}

		unit := reg.Add(xu.Name, kind, redundancy)

		defaults := trace.DefaultDefaults()
		applyUnitDefaults(&defaults, xu.Default)
		unit.Defaults = defaults

		if err := loadUnitTraces(unit, xu, opts); err != nil {
			return nil, err
		}
		if _, ok := unit.Traces[trace.Fresh.Key()]; !ok && opts.Warn != nil {
			opts.Warn("xmlconfig: unit " + xu.Name + " has no fresh trace, synthesizing one from its defaults")
		}
		ensureFreshTrace(unit, defaults)
	}

	root, err := buildGroup(sys.Root, reg)
	if err != nil {
		return nil, err
	}

	return &Result{Registry: reg, Root: root}, nil
}

func applyUnitDefaults(d *trace.Defaults, overrides []xmlDefault) {
	for _, o := range overrides {
		v, err := parseFloatAttr(o.Value)
		if err != nil {
			continue
		}
		switch o.Var {
		case "vdd":
			d.Vdd = v
		case "temperature":
			d.Temperature = v
		case "frequency":
			d.Frequency = v * 1e6
		case "activity":
			d.Activity = v
		case "power":
			d.Power = v
		case "peak_power":
			d.PeakPower = v
		}
	}
}

func loadUnitTraces(unit *component.Unit, xu xmlUnit, opts LoadOptions) error {
	for _, xt := range xu.Traces {
		cfg := configurationFromFailed(xt.Failed)
		path := xt.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(opts.BaseDir, path)
		}
		points, err := trace.ParseFile(path, trace.ParseOptions{Delimiter: opts.Delimiter})
		if err != nil {
			return fmt.Errorf("xmlconfig: unit %q: %w", unit.Name, err)
		}
		unit.Traces[cfg.Key()] = points
	}
	return nil
}

// ensureFreshTrace synthesizes the fresh trace from defaults when the unit
// declared no <trace failed=""> entry, so the fresh configuration is
// always defined.
func ensureFreshTrace(unit *component.Unit, defaults trace.Defaults) {
	freshKey := trace.Fresh.Key()
	if _, ok := unit.Traces[freshKey]; ok {
		return
	}
	unit.Traces[freshKey] = []trace.DataPoint{
		{
			Time:     1,
			Duration: 1,
			Data: map[string]float64{
				trace.QVdd:         defaults.Vdd,
				trace.QTemperature: defaults.Temperature,
				trace.QFrequency:   defaults.Frequency,
				trace.QActivity:    defaults.Activity,
				trace.QPower:       defaults.Power,
				trace.QPeakPower:   defaults.PeakPower,
			},
		},
	}
}

func configurationFromFailed(failed string) trace.Configuration {
	if failed == "" {
		return trace.Fresh
	}
	names := splitCSV(failed)
	return trace.NewConfiguration(names...)
}

func splitCSV(s string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	return out
}

func buildGroup(xg xmlGroup, reg *component.Registry) (*component.Group, error) {
	g := component.NewGroup(xg.Name, xg.Failures)
	for _, xsub := range xg.Groups {
		sub, err := buildGroup(xsub, reg)
		if err != nil {
			return nil, err
		}
		g.AddChild(sub)
	}
	for _, xu := range xg.Units {
		u := reg.ByName(xu.Name)
		if u == nil {
			return nil, fmt.Errorf("xmlconfig: group %q references unknown unit %q", xg.Name, xu.Name)
		}
		g.AddChild(u)
	}
	return g, nil
}

func parseFloatAttr(s string) (float64, error) {
	var v float64
	_, err := fmt.Sscanf(s, "%g", &v)
	return v, err
}

