package reporting

import (
	"fmt"
	"os"
	"sort"

	"github.com/olekukonko/tablewriter"
)

// ReportFormat is a textual report rendering.
type ReportFormat string

const (
	ReportFormatTable ReportFormat = "table"
	ReportFormatCSV   ReportFormat = "csv"
)

// Formatter renders a RunReport as a human- or tool-readable table.
type Formatter struct {
	logger *Logger
}

// NewFormatter creates a new report formatter.
func NewFormatter(logger *Logger) *Formatter {
	return &Formatter{logger: logger}
}

// GenerateReport writes a report in the given format to outputPath.
func (f *Formatter) GenerateReport(report *RunReport, format ReportFormat, outputPath string) error {
	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer out.Close()

	switch format {
	case ReportFormatTable:
		return f.writeTable(report, out)
	case ReportFormatCSV:
		return f.writeCSV(report, out)
	default:
		return fmt.Errorf("unsupported report format: %s", format)
	}
}

// writeTable renders per-unit aging rates and the overall TTF statistics as
// aligned ASCII tables.
func (f *Formatter) writeTable(report *RunReport, out *os.File) error {
	fmt.Fprintf(out, "run %s  system %s  iterations %d\n\n", report.RunID, report.SystemFile, report.Iterations)

	summary := tablewriter.NewWriter(out)
	summary.SetHeader([]string{"count", "unit", "mean", "stddev", "ci95 low", "ci95 high"})
	summary.Append([]string{
		fmt.Sprintf("%d", report.Overall.Count),
		report.Overall.Unit,
		fmt.Sprintf("%.4g", report.Overall.Mean),
		fmt.Sprintf("%.4g", report.Overall.StdDev),
		fmt.Sprintf("%.4g", report.Overall.CI95Low),
		fmt.Sprintf("%.4g", report.Overall.CI95High),
	})
	summary.Render()

	fmt.Fprintln(out)

	mechNames := make([]string, len(report.Mechanisms))
	copy(mechNames, report.Mechanisms)
	sort.Strings(mechNames)

	units := tablewriter.NewWriter(out)
	header := append([]string{"unit"}, mechNames...)
	header = append(header, "overall")
	units.SetHeader(header)
	for _, u := range report.Units {
		row := []string{u.UnitName}
		for _, m := range mechNames {
			row = append(row, fmt.Sprintf("%.4g", u.PerMechanism[m]))
		}
		row = append(row, fmt.Sprintf("%.4g", u.Overall))
		units.Append(row)
	}
	units.Render()

	return nil
}

// writeCSV renders the per-unit aging rates as a flat CSV, for downstream
// tooling that doesn't want the table formatting.
func (f *Formatter) writeCSV(report *RunReport, out *os.File) error {
	mechNames := make([]string, len(report.Mechanisms))
	copy(mechNames, report.Mechanisms)
	sort.Strings(mechNames)

	fmt.Fprint(out, "unit")
	for _, m := range mechNames {
		fmt.Fprintf(out, ",%s", m)
	}
	fmt.Fprint(out, ",overall\n")

	for _, u := range report.Units {
		fmt.Fprint(out, u.UnitName)
		for _, m := range mechNames {
			fmt.Fprintf(out, ",%g", u.PerMechanism[m])
		}
		fmt.Fprintf(out, ",%g\n", u.Overall)
	}
	return nil
}
