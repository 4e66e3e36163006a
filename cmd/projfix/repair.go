package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ganot/projfix/internal/document"
	"github.com/ganot/projfix/internal/engine"
	"github.com/ganot/projfix/internal/report"
)

var repairCmd = &cobra.Command{
	Use:   "repair <input.xml> <output.xml>",
	Short: "Repair a project file and write the result",
	Long: `Repair runs the validation checks, applies every automatic repair, writes
the repaired XML to the output path, and writes a repair log next to it.
Violations that cannot be repaired automatically are reported and leave the
exit code non-zero.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		input, output := args[0], args[1]

		doc, err := document.Load(input)
		if err != nil {
			return err
		}

		result := engine.New(logger).Run(doc, engine.Options{
			Mode:             engine.ModeRepair,
			ExemptUIDs:       cfg.Policy.ExemptUIDs,
			DefaultTaskHours: cfg.Policy.DefaultTaskHours,
		})

		if err := doc.WriteFile(output); err != nil {
			return err
		}
		logPath := repairLogPath(output)
		repairLog := report.RepairLog(&result.Repairs, &result.Violations)
		if err := os.WriteFile(logPath, []byte(repairLog), 0o644); err != nil {
			return fmt.Errorf("failed to write repair log: %w", err)
		}

		fmt.Print(report.RenderValidation(result))
		fmt.Printf("\nRepaired XML saved to: %s\nRepair log saved to:  %s\n", output, logPath)

		recordRun(cmd.Context(), cfg, logger, result, input, engine.ModeRepair)

		if !result.OK() {
			return errValidationFailed
		}
		return nil
	},
}

func repairLogPath(outputPath string) string {
	if strings.HasSuffix(outputPath, ".xml") {
		return strings.TrimSuffix(outputPath, ".xml") + "_repair.log"
	}
	return outputPath + "_repair.log"
}
