package cli

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"fauna-warden/internal/api"
	"fauna-warden/internal/logger"
	"fauna-warden/internal/territory"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the planning API over HTTP",
		Long: `Run the warden as a local HTTP service. Clients can inspect territories,
submit rosters for planning, and browse the run history over a JSON API.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDB()
			if err != nil {
				return err
			}
			defer d.Close()

			cfg := loadConfig(d)
			if port > 0 {
				cfg.Port = port
			}

			logger.Banner(version)

			// Warm the configured territory so a broken map shows up at
			// startup rather than on the first request.
			store := territory.NewStore()
			if tmap, err := store.Get(cfg.Territory); err != nil {
				logger.Warn("Territory", err.Error())
			} else {
				logger.Info("Territory", fmt.Sprintf("%s: %d states, holding state %s", tmap.Name, len(tmap.Order), tmap.Default))
			}

			srv := api.NewServer(cfg, store, d)
			addr := fmt.Sprintf("127.0.0.1:%d", cfg.Port)
			logger.Server(addr)
			return http.ListenAndServe(addr, srv.Handler())
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (default: configured port)")
	return cmd
}
