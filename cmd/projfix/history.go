package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ganot/projfix/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded validation and repair runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := setup()
		if err != nil {
			return err
		}
		if cfg.History.Path == "" {
			return errors.New("no history database configured (set history.path or PROJFIX_HISTORY_PATH)")
		}

		db, err := history.New(cfg.History.Path)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.Migrate(); err != nil {
			return err
		}

		runs, err := history.NewStore(db).List(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No runs recorded.")
			return nil
		}
		for _, run := range runs {
			status := "FAIL"
			if run.Success {
				status = "OK"
			}
			fmt.Printf("%s  %-8s  %-4s  violations=%-3d repairs=%-3d  %s  %s\n",
				run.CreatedAt.Format("2006-01-02 15:04:05"),
				run.Mode, status, run.Violations, run.Repairs, run.ID, run.InputPath)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of runs to list")
}
