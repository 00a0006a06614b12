package reporting_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hplp/oldspot/pkg/reporting"
)

func testLogger() *reporting.Logger {
	return reporting.NewLogger(reporting.LoggerConfig{
		Level:  reporting.LogLevelError,
		Format: reporting.LogFormatText,
		Output: os.Stderr,
	})
}

func sampleReport(id string, start time.Time) *reporting.RunReport {
	return &reporting.RunReport{
		RunID:      id,
		SystemFile: "system.xml",
		StartTime:  start,
		EndTime:    start.Add(time.Minute),
		Duration:   "1m0s",
		Iterations: 100,
		Seed:       1,
		Mechanisms: []string{"nbti", "hci"},
		Overall:    reporting.RunStatistics{Count: 100, Unit: "years", Mean: 5, StdDev: 1, CI95Low: 4.8, CI95High: 5.2},
		Units: []reporting.UnitAgingReport{
			{UnitName: "u0", PerMechanism: map[string]float64{"nbti": 0.1, "hci": 0.2}, Overall: 0.3},
		},
	}
}

func TestSaveLoadReportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	storage, err := reporting.NewStorage(dir, 0, testLogger())
	require.NoError(t, err)

	report := sampleReport("run-a", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	path, err := storage.SaveReport(report)
	require.NoError(t, err)

	loaded, err := storage.LoadReport(path)
	require.NoError(t, err)
	assert.Equal(t, "run-a", loaded.RunID)
	assert.Equal(t, 100, loaded.Iterations)
}

func TestListReportsSortedNewestFirst(t *testing.T) {
	dir := t.TempDir()
	storage, err := reporting.NewStorage(dir, 0, testLogger())
	require.NoError(t, err)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err = storage.SaveReport(sampleReport("run-old", base))
	require.NoError(t, err)
	_, err = storage.SaveReport(sampleReport("run-new", base.Add(time.Hour)))
	require.NoError(t, err)

	summaries, err := storage.ListReports()
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "run-new", summaries[0].RunID)
	assert.Equal(t, "run-old", summaries[1].RunID)
}

func TestSaveReportRotatesOldestBeyondKeepLastN(t *testing.T) {
	dir := t.TempDir()
	storage, err := reporting.NewStorage(dir, 2, testLogger())
	require.NoError(t, err)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err = storage.SaveReport(sampleReport("run-1", base))
	require.NoError(t, err)
	_, err = storage.SaveReport(sampleReport("run-2", base.Add(time.Hour)))
	require.NoError(t, err)
	_, err = storage.SaveReport(sampleReport("run-3", base.Add(2*time.Hour)))
	require.NoError(t, err)

	summaries, err := storage.ListReports()
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "run-3", summaries[0].RunID)
	assert.Equal(t, "run-2", summaries[1].RunID)
}
