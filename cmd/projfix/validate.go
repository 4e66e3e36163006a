package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ganot/projfix/internal/document"
	"github.com/ganot/projfix/internal/engine"
	"github.com/ganot/projfix/internal/report"
)

var validateCmd = &cobra.Command{
	Use:   "validate <input.xml>",
	Short: "Validate a project file without modifying it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}

		doc, err := document.Load(args[0])
		if err != nil {
			return err
		}

		result := engine.New(logger).Run(doc, engine.Options{Mode: engine.ModeValidate})
		fmt.Print(report.RenderValidation(result))

		recordRun(cmd.Context(), cfg, logger, result, args[0], engine.ModeValidate)

		if !result.OK() {
			return errValidationFailed
		}
		return nil
	},
}
