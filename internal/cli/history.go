package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fauna-warden/internal/db"
	"fauna-warden/internal/engine"
	"fauna-warden/internal/logger"
	"fauna-warden/internal/report"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved planning runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDB()
			if err != nil {
				return err
			}
			defer d.Close()

			if limit <= 0 {
				limit = d.LoadConfig().HistoryLimit
			}
			fmt.Print(report.History(d.GetHistory(limit)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum runs to list (default: configured history limit)")

	cmd.AddCommand(newHistoryShowCmd())
	cmd.AddCommand(newHistoryDeleteCmd())
	cmd.AddCommand(newHistoryClearCmd())
	return cmd
}

func newHistoryShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the placements of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDB()
			if err != nil {
				return err
			}
			defer d.Close()

			run, err := resolveRun(d, args[0])
			if err != nil {
				return err
			}
			plan := &engine.Plan{
				Territory:   run.Territory,
				Assignments: d.GetPlacements(run.ID),
				Relocated:   run.Relocated,
				Total:       run.Total,
			}
			fmt.Printf("Run %s (%s, %s)\n\n", run.ID, run.Territory, run.CreatedAt)
			fmt.Print(report.Blocks(plan))
			fmt.Println()
			fmt.Print(report.Summary(plan))
			return nil
		},
	}
}

func newHistoryDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <run-id>",
		Short: "Delete a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDB()
			if err != nil {
				return err
			}
			defer d.Close()

			run, err := resolveRun(d, args[0])
			if err != nil {
				return err
			}
			if err := d.DeleteRun(run.ID); err != nil {
				return err
			}
			logger.Success("History", fmt.Sprintf("Deleted run %s", run.ID))
			return nil
		},
	}
}

func newHistoryClearCmd() *cobra.Command {
	var olderThan int

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete runs older than a cutoff",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDB()
			if err != nil {
				return err
			}
			defer d.Close()

			count, err := d.ClearHistory(olderThan)
			if err != nil {
				return err
			}
			logger.Success("History", fmt.Sprintf("Removed %d run(s)", count))
			return nil
		},
	}

	cmd.Flags().IntVar(&olderThan, "older-than", 7, "delete runs older than this many days")
	return cmd
}

// resolveRun finds a run by its full ID or by a unique short prefix, so the
// shortened IDs shown in the history table work on the command line.
func resolveRun(d *db.DB, id string) (*db.RunRecord, error) {
	if run := d.GetRunByID(id); run != nil {
		return run, nil
	}
	var match *db.RunRecord
	for _, r := range d.GetHistory(500) {
		if strings.HasPrefix(r.ID, id) {
			if match != nil {
				return nil, fmt.Errorf("run id %q is ambiguous", id)
			}
			r := r
			match = &r
		}
	}
	if match == nil {
		return nil, fmt.Errorf("no run with id %q", id)
	}
	return match, nil
}
