// Package cli provides the command-line interface for the warden.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"fauna-warden/internal/config"
	"fauna-warden/internal/db"
)

var (
	dataDir       string
	territoryName string
	version       string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "fauna-warden",
	Short: "Constraint-aware wildlife relocation planner",
	Long: `Fauna Warden plans wildlife relocations across a territory of adjacent
states. Each animal is moved to the first state where nothing it fears lives
next door and where it does not move in beside anything that fears it.
Animals with nowhere safe to go stay in the holding state.`,
	Run: func(cmd *cobra.Command, args []string) {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("fauna-warden v%s\n", version)
			return
		}
		cmd.Help()
	},
}

// Execute runs the CLI.
func Execute(v string) error {
	version = v
	initializeRootCommand()
	return rootCmd.Execute()
}

// initializeRootCommand sets up the root command and its flags.
// This replaces the init() function to make initialization explicit and testable.
func initializeRootCommand() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory for warden.db (default: working directory)")
	rootCmd.PersistentFlags().StringVarP(&territoryName, "territory", "t", "", "territory map name or YAML path (default: configured territory)")

	rootCmd.Flags().Bool("version", false, "Print version information and quit")

	rootCmd.AddCommand(newPlanCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newTerritoriesCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newWatchCmd())
}

// openDB opens the warden database, honoring --data-dir.
func openDB() (*db.DB, error) {
	return db.Open(dataDir)
}

// loadConfig reads persisted settings and applies command-line overrides.
func loadConfig(d *db.DB) *config.Config {
	cfg := d.LoadConfig()
	if territoryName != "" {
		cfg.Territory = territoryName
	}
	return cfg
}
