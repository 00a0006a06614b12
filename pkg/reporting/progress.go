package reporting

import (
	"encoding/json"
	"fmt"
)

// OutputFormat selects how iteration progress is rendered.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// ProgressReporter renders per-iteration progress emitted by the simulator
// (simulate.Progress), independent of the final RunReport.
type ProgressReporter struct {
	format OutputFormat
	logger *Logger
}

// NewProgressReporter creates a new progress reporter.
func NewProgressReporter(format OutputFormat, logger *Logger) *ProgressReporter {
	return &ProgressReporter{format: format, logger: logger}
}

// ReportIteration reports the state after one completed Monte-Carlo iteration.
func (pr *ProgressReporter) ReportIteration(iteration int, rootTTFMean float64, warningCount int) {
	switch pr.format {
	case FormatJSON:
		data, _ := json.Marshal(map[string]interface{}{
			"event":         "iteration",
			"iteration":     iteration,
			"root_ttf_mean": rootTTFMean,
			"warning_count": warningCount,
		})
		fmt.Println(string(data))
	default:
		fmt.Printf("[iteration %d] root TTF mean so far: %.4g (warnings: %d)\n", iteration, rootTTFMean, warningCount)
	}
}

// ReportRunCompleted reports the final run summary.
func (pr *ProgressReporter) ReportRunCompleted(report *RunReport) {
	switch pr.format {
	case FormatJSON:
		data, _ := json.Marshal(map[string]interface{}{
			"event":  "run_completed",
			"report": report,
		})
		fmt.Println(string(data))
	default:
		fmt.Printf("run %s completed: %d iterations, mean TTF %.4g %s (95%% CI %.4g-%.4g), %d warnings\n",
			report.RunID, report.Iterations, report.Overall.Mean, report.Overall.Unit,
			report.Overall.CI95Low, report.Overall.CI95High, report.WarningCount)
	}
}
