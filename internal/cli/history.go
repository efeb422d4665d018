package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/mrz1836/buildwatch/internal/history"
	"github.com/mrz1836/buildwatch/internal/tui"
)

// AddHistoryCommand adds the history command group to the root command.
func AddHistoryCommand(root *cobra.Command, global *GlobalFlags) {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect stored attempt history",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show <project>",
		Short: "Show the last recorded attempt of a project",
		Long: `Show the last recorded attempt of a project: its status, label and the
last successful label the next attempt will be compared against.

Examples:
  buildwatch history show alpha
  buildwatch history show -o json alpha`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), GetLogger())
			if err != nil {
				return err
			}
			defer a.close()
			return runHistoryShow(cmd.Context(), cmd.OutOrStdout(), a.store, args[0], global.Output)
		},
	})

	root.AddCommand(cmd)
}

func runHistoryShow(ctx context.Context, w io.Writer, store history.Store, project, format string) error {
	record, err := store.Last(ctx, project)
	if err != nil {
		return err
	}

	out := tui.NewOutput(w, format)
	if format == OutputJSON {
		return out.JSON(record)
	}

	out.Table([]string{"FIELD", "VALUE"}, [][]string{
		{"Project", record.Project},
		{"Status", tui.FormatStatus(record.Status)},
		{"Label", record.Label},
		{"Last successful label", orDash(record.LastSuccessfulLabel)},
		{"Started", record.StartTime.Format("2006-01-02 15:04:05 MST") + " (" + tui.RelativeTime(record.StartTime) + ")"},
		{"Duration", tui.FormatDuration(record.EndTime.Sub(record.StartTime))},
	})
	return nil
}
