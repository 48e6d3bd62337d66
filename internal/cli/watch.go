package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"fauna-warden/internal/logger"
	"fauna-warden/internal/watch"
)

func newWatchCmd() *cobra.Command {
	var rosterPath string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Replan whenever the roster or territory changes",
		Long: `Plan once, then keep watching the roster file (and the territory map, when
it is a file on disk) and replan on every save. A desktop notification is
sent when a change alters how many animals could be relocated.`,
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
			plan, err := executePlan(d, cfg, true)
			if err != nil {
				return err
			}
			lastRelocated := plan.Relocated

			changes := make(chan string, 8)
			w, err := watch.New(time.Duration(cfg.WatchDebounceMs)*time.Millisecond, func(path string) {
				select {
				case changes <- path:
				default:
				}
			})
			if err != nil {
				return err
			}
			defer w.Close()

			if err := w.Add(cfg.RosterPath); err != nil {
				return err
			}
			// Built-in territories have no file to watch.
			if _, statErr := os.Stat(cfg.Territory); statErr == nil {
				if err := w.Add(cfg.Territory); err != nil {
					return err
				}
			}
			w.Start()

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			logger.Info("Watch", fmt.Sprintf("Watching %s (Ctrl+C to stop)", cfg.RosterPath))

			for {
				select {
				case path := <-changes:
					logger.Info("Watch", fmt.Sprintf("%s changed, replanning", filepath.Base(path)))
					next, err := executePlan(d, cfg, true)
					if err != nil {
						logger.Error("Watch", err.Error())
						continue
					}
					if next.Relocated != lastRelocated {
						if cfg.NotifyDesktop {
							watch.Notify("Fauna Warden",
								fmt.Sprintf("Relocations changed: %d to %d of %d", lastRelocated, next.Relocated, next.Total))
						}
						lastRelocated = next.Relocated
					}

				case <-sig:
					fmt.Println()
					logger.Info("Watch", "Stopped")
					return nil
				}
			}
		},
	}

	cmd.Flags().StringVarP(&rosterPath, "roster", "r", "", "roster CSV path (default: configured roster)")
	return cmd
}
