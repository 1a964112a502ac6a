package cmd

import (
	"github.com/spf13/cobra"

	cfgpkg "github.com/clbarnes/yarqueue/internal/config"
	logpkg "github.com/clbarnes/yarqueue/pkg/log"
)

// NewRootCommand constructs the yarq root command and its subcommands.
func NewRootCommand(logger logpkg.Logger) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "yarq",
		Short:        "yarqueue CLI",
		Long:         "yarq observes and administers process-shared queues backed by Redis or an embedded store.",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().String("redis", "", "Redis address host:port (empty selects the embedded store)")
	rootCmd.PersistentFlags().Int("redis-db", 0, "Redis database index")
	rootCmd.PersistentFlags().String("data-dir", "", "Embedded store directory (default: OS-specific data directory)")
	rootCmd.PersistentFlags().String("fsync", "", "Embedded store fsync mode: always|interval|never")

	rootCmd.AddCommand(
		newWatchCommand(),
		newServeCommand(logger),
		newQueueCommand(),
	)
	return rootCmd
}

// resolveConfig layers file, environment and flags, in increasing
// precedence.
func resolveConfig(cmd *cobra.Command) (cfgpkg.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := cfgpkg.Load(path)
	if err != nil {
		return cfgpkg.Config{}, err
	}
	cfgpkg.FromEnv(&cfg)

	if v, _ := cmd.Flags().GetString("redis"); v != "" {
		cfg.Redis.Addr = v
	}
	if cmd.Flags().Changed("redis-db") {
		v, _ := cmd.Flags().GetInt("redis-db")
		cfg.Redis.DB = v
	}
	if v, _ := cmd.Flags().GetString("data-dir"); v != "" {
		cfg.DataDir = v
	}
	if v, _ := cmd.Flags().GetString("fsync"); v != "" {
		cfg.Fsync = v
	}
	return cfg, nil
}
