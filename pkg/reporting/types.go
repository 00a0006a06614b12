package reporting

import "time"

// RunReport is the complete record of one OldSpot simulation run: its
// configuration, per-unit/per-mechanism aging rates, and the aggregate
// time-to-failure statistics.
type RunReport struct {
	RunID      string    `json:"run_id"`
	SystemFile string    `json:"system_file"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Duration   string    `json:"duration"`

	Iterations   int      `json:"iterations"`
	Seed         int64    `json:"seed"`
	Mechanisms   []string `json:"mechanisms"`
	WarningCount int      `json:"warning_count"`

	Overall RunStatistics    `json:"overall"`
	Groups  []GroupStatistics `json:"groups,omitempty"`
	Units   []UnitAgingReport `json:"units"`

	Warnings []string `json:"warnings,omitempty"`
}

// RunStatistics is the sample mean/stddev/95% CI over a set of TTF
// observations, expressed in the run's configured display time unit.
type RunStatistics struct {
	Count    int     `json:"count"`
	Unit     string  `json:"unit"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"stddev"`
	CI95Low  float64 `json:"ci95_low"`
	CI95High float64 `json:"ci95_high"`
}

// GroupStatistics reports TTF statistics for one named internal node of the
// failure dependency tree.
type GroupStatistics struct {
	Name string        `json:"name"`
	Stat RunStatistics `json:"statistics"`
}

// UnitAgingReport reports the fresh-configuration aging rate of every active
// mechanism, plus the unit's overall aging rate, for a single unit.
type UnitAgingReport struct {
	UnitName     string             `json:"unit_name"`
	PerMechanism map[string]float64 `json:"per_mechanism"`
	Overall      float64            `json:"overall"`
}

// RunSummary is the lightweight index entry returned by Storage.ListReports.
type RunSummary struct {
	RunID      string    `json:"run_id"`
	SystemFile string    `json:"system_file"`
	StartTime  time.Time `json:"start_time"`
	Duration   string    `json:"duration"`
	Iterations int       `json:"iterations"`
	Filepath   string    `json:"filepath"`
}
