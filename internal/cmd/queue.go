package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clbarnes/yarqueue/internal/store"
)

// newQueueCommand constructs the `queue` command group of admin helpers.
func newQueueCommand() *cobra.Command {
	queueCmd := &cobra.Command{
		Use:   "queue",
		Short: "Queue admin helpers",
	}
	queueCmd.AddCommand(
		newQueueLenCommand(),
		newQueueTasksCommand(),
		newQueueClearCommand(),
	)
	return queueCmd
}

func newQueueLenCommand() *cobra.Command {
	lenCmd := &cobra.Command{
		Use:   "len",
		Short: "Print the number of queued items",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withQueueStore(cmd, func(st store.Store) error {
				n, err := st.Len(cmd.Context())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), n)
				return nil
			})
		},
	}
	lenCmd.Flags().StringP("name", "n", "", "Queue name")
	_ = lenCmd.MarkFlagRequired("name")
	return lenCmd
}

func newQueueTasksCommand() *cobra.Command {
	tasksCmd := &cobra.Command{
		Use:   "tasks",
		Short: "Print the outstanding task count (joinable queues)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString("name")
			return withQueueStore(cmd, func(st store.Store) error {
				n, err := st.Counter(cmd.Context(), store.CounterKey(name))
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), n)
				return nil
			})
		},
	}
	tasksCmd.Flags().StringP("name", "n", "", "Queue name")
	_ = tasksCmd.MarkFlagRequired("name")
	return tasksCmd
}

func newQueueClearCommand() *cobra.Command {
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all queued items and reset the task counter",
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString("name")
			return withQueueStore(cmd, func(st store.Store) error {
				// Resetting the counter of a plain queue is a no-op.
				if err := st.Clear(cmd.Context(), store.CounterKey(name)); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "cleared", name)
				return nil
			})
		},
	}
	clearCmd.Flags().StringP("name", "n", "", "Queue name")
	_ = clearCmd.MarkFlagRequired("name")
	return clearCmd
}

// withQueueStore opens the configured backend, resolves the --name queue
// and hands its store to fn, closing everything after.
func withQueueStore(cmd *cobra.Command, fn func(store.Store) error) error {
	name, _ := cmd.Flags().GetString("name")
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	b, err := openBackend(cfg)
	if err != nil {
		return err
	}
	defer b.Close()
	st, err := b.store(name)
	if err != nil {
		return err
	}
	return fn(st)
}
