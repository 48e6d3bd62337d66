package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"fauna-warden/internal/config"
	"fauna-warden/internal/db"
	"fauna-warden/internal/engine"
	"fauna-warden/internal/logger"
	"fauna-warden/internal/report"
	"fauna-warden/internal/roster"
	"fauna-warden/internal/territory"
)

func newPlanCmd() *cobra.Command {
	var rosterPath string
	var save bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan a relocation for the configured roster",
		Long: `Load the roster, walk it in order, and give every animal the first state
that keeps it away from its threat and keeps it from menacing anything
already settled. Prints the full before/after detail and a summary, then
saves the run to history.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDB()
			if err != nil {
				return err
			}
			defer d.Close()

			cfg := loadConfig(d)
			if rosterPath != "" {
				cfg.RosterPath = rosterPath
			}

			logger.Banner(version)
			_, err = executePlan(d, cfg, save)
			return err
		},
	}

	cmd.Flags().StringVarP(&rosterPath, "roster", "r", "", "roster CSV path (default: configured roster)")
	cmd.Flags().BoolVar(&save, "save", true, "save the run to history")
	return cmd
}

// executePlan runs one full planning pass with staged output. Shared by the
// plan and watch commands.
func executePlan(d *db.DB, cfg *config.Config, save bool) (*engine.Plan, error) {
	tmap, err := territory.Load(cfg.Territory)
	if err != nil {
		return nil, err
	}

	logger.Section("reading in animals")
	animals, err := roster.LoadFile(cfg.RosterPath)
	if err != nil {
		return nil, err
	}
	fmt.Printf("Loaded %d animals from %s.\n", len(animals), cfg.RosterPath)

	planner := engine.NewPlanner(tmap)

	logger.Section("before relocation")
	fmt.Print(report.Blocks(planner.Baseline(animals)))

	logger.Section("relocating animals")
	start := time.Now()
	plan := planner.Plan(animals)
	durationMs := time.Since(start).Milliseconds()
	fmt.Printf("Animals relocated: %d/%d\n", plan.Relocated, plan.Total)

	logger.Section("after relocation")
	fmt.Print(report.Blocks(plan))

	logger.Section("summary")
	fmt.Print(report.Summary(plan))
	fmt.Println()

	if save {
		runID := d.InsertRun(plan.Territory, cfg.RosterPath, plan.Total, plan.Relocated, durationMs)
		d.InsertPlacements(runID, plan.Assignments)
		logger.Success("Plan", fmt.Sprintf("Saved run %s", runID))
	}

	logger.Section("plan statistics")
	logger.Stats("Territory", plan.Territory)
	logger.Stats("Relocated", fmt.Sprintf("%d/%d", plan.Relocated, plan.Total))
	if min, ok := engine.MinSeparation(planner.Separations(plan)); ok {
		logger.Stats("Separation", fmt.Sprintf("closest threat %d border(s) away", min))
	}
	logger.Stats("Took", fmt.Sprintf("%dms", durationMs))

	return plan, nil
}
