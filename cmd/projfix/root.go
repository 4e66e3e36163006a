package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/ganot/projfix/internal/config"
	"github.com/ganot/projfix/internal/engine"
	"github.com/ganot/projfix/internal/history"
	"github.com/ganot/projfix/internal/issue"
)

var (
	configPath string
	logLevel   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "projfix",
	Short: "Validate and repair MS Project XML files",
	Long: `projfix checks a Microsoft Project XML file for structural problems
(duplicate UIDs, broken references, circular dependencies, malformed dates
and durations, calendar mismatches) and can repair the classes of defects
that are safe to fix automatically.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(repairCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup loads configuration and builds the process logger, honoring the
// --log-level override.
func setup() (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}
	return cfg, newLogger(level), nil
}

// recordRun persists a run to the history database when one is configured.
// History failures are logged, never fatal: the run itself already happened.
func recordRun(ctx context.Context, cfg config.Config, logger *slog.Logger, result *engine.Result, inputPath string, mode engine.Mode) {
	if cfg.History.Path == "" {
		return
	}
	db, err := history.New(cfg.History.Path)
	if err != nil {
		logger.Warn("failed to open history database", "error", err)
		return
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		logger.Warn("failed to migrate history database", "error", err)
		return
	}

	run := history.Run{
		ID:         result.RunID,
		InputPath:  inputPath,
		Mode:       mode.String(),
		Violations: result.Violations.Len(),
		Repairs:    result.Repairs.Len(),
		Success:    result.OK(),
		CreatedAt:  time.Now().UTC(),
	}
	findings := make([]history.Finding, 0, result.Violations.Len()+result.Repairs.Len())
	findings = append(findings, toFindings(result.RunID, "error", &result.Violations)...)
	findings = append(findings, toFindings(result.RunID, "repair", &result.Repairs)...)

	if err := history.NewStore(db).RecordRun(ctx, run, findings); err != nil {
		logger.Warn("failed to record run", "run_id", result.RunID, "error", err)
	}
}

func toFindings(runID, kind string, list *issue.List) []history.Finding {
	findings := make([]history.Finding, 0, list.Len())
	for _, record := range list.Records() {
		findings = append(findings, history.Finding{
			RunID:    runID,
			Kind:     kind,
			Category: string(record.Category),
			Message:  record.Message,
		})
	}
	return findings
}
