package reporting_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hplp/oldspot/pkg/reporting"
)

func TestGenerateReportTableIncludesUnitAndMechanismNames(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.txt")

	f := reporting.NewFormatter(testLogger())
	report := sampleReport("run-table", time.Now())
	require.NoError(t, f.GenerateReport(report, reporting.ReportFormatTable, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "run-table")
	assert.Contains(t, out, "u0")
	assert.Contains(t, out, "nbti")
	assert.Contains(t, out, "hci")
}

func TestGenerateReportCSVHasSortedMechanismHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.csv")

	f := reporting.NewFormatter(testLogger())
	report := sampleReport("run-csv", time.Now())
	require.NoError(t, f.GenerateReport(report, reporting.ReportFormatCSV, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := string(data)
	assert.Contains(t, lines, "unit,hci,nbti,overall\n")
	assert.Contains(t, lines, "u0,0.2,0.1,0.3\n")
}

func TestGenerateReportRejectsUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.bad")

	f := reporting.NewFormatter(testLogger())
	report := sampleReport("run-bad", time.Now())
	err := f.GenerateReport(report, reporting.ReportFormat("bogus"), path)
	assert.Error(t, err)
}
