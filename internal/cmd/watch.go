package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/clbarnes/yarqueue/internal/watch"
)

const barWidth = 20

// newWatchCommand constructs the `watch` subcommand: a terminal progress
// view over one or more queues, polled until done or interrupted.
func newWatchCommand() *cobra.Command {
	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Render queue progress in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			names, _ := cmd.Flags().GetStringArray("name")
			totals, _ := cmd.Flags().GetIntSlice("total")
			intervalMs, _ := cmd.Flags().GetInt("interval-ms")
			once, _ := cmd.Flags().GetBool("once")
			if len(names) == 0 {
				return fmt.Errorf("at least one --name is required")
			}

			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			if intervalMs <= 0 {
				intervalMs = cfg.PollIntervalMS
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

			if once {
				return renderOnce(cmd.Context(), cmd.OutOrStdout(), names, set)
			}
			return renderLoop(cmd.Context(), cmd.OutOrStdout(), names, set, time.Duration(intervalMs)*time.Millisecond)
		},
	}
	watchCmd.Flags().StringArrayP("name", "n", nil, "Queue name to watch (repeatable)")
	watchCmd.Flags().IntSliceP("total", "t", nil, "Expected item total per --name (inferred when omitted)")
	watchCmd.Flags().Int("interval-ms", 0, "Poll interval in ms (default: configured poll interval)")
	watchCmd.Flags().Bool("once", false, "Print a single snapshot and exit")
	return watchCmd
}

func renderOnce(ctx context.Context, out io.Writer, names []string, set watch.Set) error {
	statuses, err := set.Snapshot(ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(out, formatStatus(name, statuses[name]))
	}
	return nil
}

// renderLoop polls until every queue is drained with no tasks in flight,
// or the context is cancelled (SIGINT exits cleanly). An idle snapshot only
// counts as finished after activity has been observed, so a watch started
// ahead of the producer waits for the run instead of exiting immediately.
func renderLoop(ctx context.Context, out io.Writer, names []string, set watch.Set, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	started := false
	for {
		statuses, err := set.Snapshot(ctx)
		if err != nil {
			return err
		}
		active := false
		for _, name := range names {
			st := statuses[name]
			fmt.Fprintln(out, formatStatus(name, st))
			if st.Queued > 0 || st.InProgress > 0 {
				active = true
			}
		}
		if active {
			started = true
		} else if started {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func formatStatus(name string, st watch.Status) string {
	if st.Total == 0 {
		return fmt.Sprintf("%s: %d queued, %d in progress", name, st.Queued, st.InProgress)
	}
	filled := st.Done() * barWidth / st.Total
	if filled < 0 {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}
	bar := strings.Repeat("#", filled) + strings.Repeat("-", barWidth-filled)
	return fmt.Sprintf("%s [%s] %d/%d (%d queued, %d in progress)",
		name, bar, st.Done(), st.Total, st.Queued, st.InProgress)
}
