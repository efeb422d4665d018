package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/mrz1836/buildwatch/internal/tui"
)

// AddRecipientsCommand adds the recipients command to the root command.
func AddRecipientsCommand(root *cobra.Command, global *GlobalFlags) {
	cmd := &cobra.Command{
		Use:   "recipients <manifest>",
		Short: "Show who would be notified for an attempt",
		Long: `Resolve the recipients of an attempt without sending anything.

Examples:
  buildwatch recipients attempt.yaml
  buildwatch recipients -o json attempt.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), GetLogger())
			if err != nil {
				return err
			}
			defer a.close()
			return runRecipients(cmd.Context(), cmd.OutOrStdout(), a, args[0], global.Output)
		},
	}

	root.AddCommand(cmd)
}

type recipientsResult struct {
	Project    string   `json:"project"`
	Label      string   `json:"label"`
	Status     string   `json:"status"`
	Recipients []string `json:"recipients"`
}

func runRecipients(ctx context.Context, w io.Writer, a *app, path, format string) error {
	at, err := a.loadAttempt(ctx, path)
	if err != nil {
		return err
	}

	recipients := a.publisher(nil).ResolveRecipients(at.Result)
	if recipients == nil {
		recipients = []string{}
	}

	out := tui.NewOutput(w, format)
	if format == OutputJSON {
		return out.JSON(recipientsResult{
			Project:    at.Result.ProjectName(),
			Label:      at.Result.Label(),
			Status:     at.Result.Status().String(),
			Recipients: recipients,
		})
	}

	out.Info(at.Result.ProjectName() + " " + at.Result.Label() + " " + tui.FormatStatus(at.Result.Status()))
	if len(recipients) == 0 {
		out.Warning("no recipients")
		return nil
	}
	rows := make([][]string, len(recipients))
	for i, r := range recipients {
		rows[i] = []string{r}
	}
	out.Table([]string{"ADDRESS"}, rows)
	return nil
}
