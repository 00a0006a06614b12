package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/hplp/oldspot/pkg/aggregate"
	"github.com/hplp/oldspot/pkg/component"
	"github.com/hplp/oldspot/pkg/config"
	"github.com/hplp/oldspot/pkg/mechanism"
	"github.com/hplp/oldspot/pkg/metrics"
	"github.com/hplp/oldspot/pkg/reporting"
	"github.com/hplp/oldspot/pkg/simulate"
	"github.com/hplp/oldspot/pkg/units"
	"github.com/hplp/oldspot/pkg/xmlconfig"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Args:  cobra.NoArgs,
	Short: "Run a Monte-Carlo reliability simulation",
	Long:  `Loads a system XML description and activity traces, then runs the configured number of Monte-Carlo iterations and reports aging rates and failure-time statistics.`,
	RunE:  runSimulation,
}

func init() {
	runCmd.Flags().String("system", "", "path to system XML file (overrides config)")
	runCmd.Flags().Int("iterations", 0, "number of Monte-Carlo iterations (overrides config)")
	runCmd.Flags().Int64("seed", 0, "RNG seed (0 = derive from config/time)")
	runCmd.Flags().String("format", "text", "progress output format (text, json)")
}

func runSimulation(cmd *cobra.Command, args []string) error {
	systemFlag, _ := cmd.Flags().GetString("system")
	iterFlag, _ := cmd.Flags().GetInt("iterations")
	seedFlag, _ := cmd.Flags().GetInt64("seed")
	outputFormat, _ := cmd.Flags().GetString("format")

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if systemFlag != "" {
		cfg.Simulation.SystemFile = systemFlag
	}
	if iterFlag > 0 {
		cfg.Simulation.Iterations = iterFlag
	}
	if seedFlag != 0 {
		cfg.Simulation.Seed = seedFlag
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logLevel := reporting.LogLevelInfo
	if verbose {
		logLevel = reporting.LogLevelDebug
	}
	logger := reporting.NewLogger(reporting.LoggerConfig{
		Level:  logLevel,
		Format: reporting.LogFormat(cfg.Logging.Format),
		Output: os.Stdout,
	})

	// warn logs each distinct diagnostic once and keeps it for the run report.
	var warnings []string
	warnSeen := make(map[string]bool)
	warn := func(msg string) {
		if warnSeen[msg] {
			return
		}
		warnSeen[msg] = true
		warnings = append(warnings, msg)
		logger.Warn(msg)
	}

	timeUnit, err := units.Parse(cfg.Simulation.TimeUnit)
	if err != nil {
		return err
	}

	delimiter := rune(cfg.Trace.Delimiter[0])

	logger.Info("loading system description", "file", cfg.Simulation.SystemFile)
	result, err := xmlconfig.LoadFile(cfg.Simulation.SystemFile, xmlconfig.LoadOptions{
		Delimiter: delimiter,
		Warn:      warn,
	})
	if err != nil {
		return fmt.Errorf("failed to load system description: %w", err)
	}

	params, err := mechanism.LoadParams(cfg.Mechanisms.ParamsFile, warn)
	if err != nil {
		return fmt.Errorf("failed to load mechanism parameters: %w", err)
	}

	mechanisms := selectMechanisms(params, cfg.Mechanisms.Enabled)
	mechNames := make([]string, len(mechanisms))
	for i, m := range mechanisms {
		mechNames[i] = m.Name()
	}

	logger.Info("computing unit reliability distributions", "units", result.Registry.Len())
	component.ComputeAll(result.Registry, mechanisms, warn)

	var exporter *metrics.Exporter
	var cancelMetrics context.CancelFunc
	if cfg.Metrics.Enabled {
		exporter = metrics.New()
		ctx, cancel := context.WithCancel(context.Background())
		cancelMetrics = cancel
		go func() {
			if err := exporter.Serve(ctx, cfg.Metrics.Listen); err != nil {
				logger.Warn("metrics server stopped", "error", err)
			}
		}()
		logger.Info("metrics exporter listening", "addr", cfg.Metrics.Listen)
		defer cancelMetrics()
	}

	progressReporter := reporting.NewProgressReporter(reporting.OutputFormat(outputFormat), logger)

	sim := simulate.New(result.Registry, result.Root, cfg.Simulation.Seed, warn)

	startTime := time.Now()
	sim.Run(simulate.Options{
		Iterations: cfg.Simulation.Iterations,
		OnProgress: func(p simulate.Progress) {
			progressReporter.ReportIteration(p.Iteration, p.RootTTFMean, p.WarningCount)
			if exporter != nil {
				exporter.Observe(p.Iteration, p.RootTTFMean, p.WarningCount)
			}
		},
	})
	endTime := time.Now()

	report := buildReport(cfg, result, mechNames, timeUnit, startTime, endTime)
	report.Warnings = warnings
	report.WarningCount = len(warnings)

	storage, err := reporting.NewStorage(cfg.Reporting.OutputDir, cfg.Reporting.KeepLastN, logger)
	if err != nil {
		return fmt.Errorf("failed to create report storage: %w", err)
	}
	if _, err := storage.SaveReport(report); err != nil {
		logger.Warn("failed to save report", "error", err)
	}

	for _, format := range cfg.Reporting.Formats {
		if format == "json" {
			continue // already persisted by storage
		}
		formatter := reporting.NewFormatter(logger)
		outPath := fmt.Sprintf("%s/%s.%s", cfg.Reporting.OutputDir, report.RunID, extensionFor(format))
		if err := formatter.GenerateReport(report, reporting.ReportFormat(format), outPath); err != nil {
			logger.Warn("failed to render report", "format", format, "error", err)
		}
	}

	progressReporter.ReportRunCompleted(report)

	if report.Overall.Count == 0 {
		return fmt.Errorf("no root failures observed across %d iterations", cfg.Simulation.Iterations)
	}

	return nil
}

func extensionFor(format string) string {
	if format == "csv" {
		return "csv"
	}
	return "txt"
}

func selectMechanisms(p *mechanism.Params, enabled []string) []mechanism.Mechanism {
	if len(enabled) == 0 {
		return mechanism.All(p)
	}
	out := make([]mechanism.Mechanism, 0, len(enabled))
	for _, name := range enabled {
		if m := mechanism.ByName(p, strings.ToLower(name)); m != nil {
			out = append(out, m)
		}
	}
	return out
}

// buildReport aggregates the root node's recorded TTFs and every unit's
// fresh-configuration aging rates into a persistable RunReport.
func buildReport(cfg *config.Config, result *xmlconfig.Result, mechNames []string, timeUnit units.Unit, start, end time.Time) *reporting.RunReport {
	rootTTFs := make([]float64, len(result.Root.TTFs()))
	for i, t := range result.Root.TTFs() {
		rootTTFs[i] = units.FromSeconds(t, timeUnit)
	}
	overall := aggregate.Summarize(rootTTFs)

	rates := aggregate.AgingRates(result.Registry, mechNames)
	unitReports := make([]reporting.UnitAgingReport, len(rates))
	for i, r := range rates {
		unitReports[i] = reporting.UnitAgingReport{
			UnitName:     r.UnitName,
			PerMechanism: r.PerMechanism,
			Overall:      r.Overall,
		}
	}

	return &reporting.RunReport{
		RunID:      uuid.NewString(),
		SystemFile: cfg.Simulation.SystemFile,
		StartTime:  start,
		EndTime:    end,
		Duration:   end.Sub(start).String(),
		Iterations: cfg.Simulation.Iterations,
		Seed:       cfg.Simulation.Seed,
		Mechanisms: mechNames,
		Overall: reporting.RunStatistics{
			Count:    overall.Count,
			Unit:     string(timeUnit),
			Mean:     overall.Mean,
			StdDev:   overall.StdDev,
			CI95Low:  overall.CI95Low,
			CI95High: overall.CI95High,
		},
		Units: unitReports,
	}
}
