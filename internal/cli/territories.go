package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"fauna-warden/internal/report"
	"fauna-warden/internal/territory"
)

func newTerritoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "territories [name]",
		Short: "List built-in territory maps, or inspect one",
		Long: `Without arguments, list the territory maps compiled into the binary. With a
name or a YAML path, show that map: its placement order, each state's
borders, and how connected the territory is.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, name := range territory.Builtin() {
					fmt.Println(name)
				}
				return nil
			}
			m, err := territory.Load(args[0])
			if err != nil {
				return err
			}
			fmt.Print(report.Territory(m))
			return nil
		},
	}
}
