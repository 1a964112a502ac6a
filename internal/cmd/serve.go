package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	httpserver "github.com/clbarnes/yarqueue/internal/server/http"
	"github.com/clbarnes/yarqueue/internal/watch"
	logpkg "github.com/clbarnes/yarqueue/pkg/log"
)

// newServeCommand constructs the `serve` subcommand: the HTTP status
// watcher, blocking until the context is cancelled.
func newServeCommand(logger logpkg.Logger) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve queue progress over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			names, _ := cmd.Flags().GetStringArray("name")
			totals, _ := cmd.Flags().GetIntSlice("total")
			httpAddr, _ := cmd.Flags().GetString("http")
			if len(names) == 0 {
				return fmt.Errorf("at least one --name is required")
			}

			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			if httpAddr == "" {
				httpAddr = cfg.HTTPAddr
			}

			b, err := openBackend(cfg)
			if err != nil {
				return err
			}
			defer b.Close()

			var set watch.Set
			for i, name := range names {
				total := 0
				if i < len(totals) {
					total = totals[i]
				}
				st, err := b.store(name)
				if err != nil {
					return err
				}
				set = append(set, watch.New(name, st, total))
			}

			logger.Info("serving queue status",
				logpkg.Str("http", httpAddr),
				logpkg.Int("queues", len(set)),
			)
			srv := httpserver.New(set, logger.With(logpkg.Component("http")))
			return srv.ListenAndServe(cmd.Context(), httpAddr)
		},
	}
	serveCmd.Flags().StringArrayP("name", "n", nil, "Queue name to expose (repeatable)")
	serveCmd.Flags().IntSliceP("total", "t", nil, "Expected item total per --name (inferred when omitted)")
	serveCmd.Flags().String("http", "", "HTTP listen address (default: configured address)")
	return serveCmd
}
