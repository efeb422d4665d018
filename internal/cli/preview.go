package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/buildwatch/internal/integration"
	"github.com/mrz1836/buildwatch/internal/tui"
)

// PreviewFlags holds flags specific to the preview command.
type PreviewFlags struct {
	// Pretty renders a markdown summary instead of the raw HTML body.
	Pretty bool
}

// AddPreviewCommand adds the preview command to the root command.
func AddPreviewCommand(root *cobra.Command, global *GlobalFlags) {
	flags := &PreviewFlags{}

	cmd := &cobra.Command{
		Use:   "preview <manifest>",
		Short: "Render the notification for an attempt without sending it",
		Long: `Render the subject, recipients and body that notify would send.

Examples:
  buildwatch preview attempt.yaml            # Raw HTML body
  buildwatch preview --pretty attempt.yaml   # Terminal summary`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), GetLogger())
			if err != nil {
				return err
			}
			defer a.close()
			return runPreview(cmd.Context(), cmd.OutOrStdout(), a, args[0], flags, global.Output)
		},
	}

	cmd.Flags().BoolVar(&flags.Pretty, "pretty", false, "render a markdown summary for the terminal")

	root.AddCommand(cmd)
}

type previewResult struct {
	Subject     string   `json:"subject"`
	From        string   `json:"from"`
	ReplyTo     string   `json:"reply_to,omitempty"`
	Recipients  []string `json:"recipients"`
	Body        string   `json:"body"`
	ContentType string   `json:"content_type"`
}

func runPreview(ctx context.Context, w io.Writer, a *app, path string, flags *PreviewFlags, format string) error {
	at, err := a.loadAttempt(ctx, path)
	if err != nil {
		return err
	}

	pub := a.publisher(nil)
	recipients := pub.ResolveRecipients(at.Result)
	if recipients == nil {
		recipients = []string{}
	}
	msg := pub.NewMessage(at.Result, recipients)

	if format == OutputJSON {
		return tui.NewJSONOutput(w).JSON(previewResult{
			Subject:     msg.Subject,
			From:        msg.From,
			ReplyTo:     msg.ReplyTo,
			Recipients:  recipients,
			Body:        msg.Body,
			ContentType: msg.ContentType,
		})
	}

	if flags.Pretty {
		_, err = fmt.Fprint(w, tui.RenderMarkdown(previewMarkdown(at.Result, msg.Subject, recipients)))
		return err
	}

	_, err = fmt.Fprintf(w, "Subject: %s\nFrom: %s\nTo: %s\nContent-Type: %s\n\n%s\n",
		msg.Subject, msg.From, strings.Join(recipients, ", "), msg.ContentType, msg.Body)
	return err
}

// previewMarkdown summarizes an attempt as markdown for glamour.
func previewMarkdown(snap integration.Snapshot, subject string, recipients []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", subject)
	b.WriteString("| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Status | %s |\n", snap.Status())
	fmt.Fprintf(&b, "| Previous status | %s |\n", snap.PreviousStatus())
	fmt.Fprintf(&b, "| Last successful label | %s |\n", orDash(snap.LastSuccessfulLabel()))
	fmt.Fprintf(&b, "| Duration | %s |\n", tui.FormatDuration(snap.Duration()))
	fmt.Fprintf(&b, "| Recipients | %s |\n", orDash(strings.Join(recipients, ", ")))

	if steps := snap.StepResults(); len(steps) > 0 {
		b.WriteString("\n## Steps\n\n")
		for i, step := range steps {
			name := step.StepName
			if name == "" {
				name = fmt.Sprintf("step %d", i+1)
			}
			result := "success"
			if !step.Success {
				result = "failure"
			}
			fmt.Fprintf(&b, "- %s: %s\n", name, result)
		}
	}

	if mods := snap.Modifications(); len(mods) > 0 {
		b.WriteString("\n## Modifications\n\n")
		for _, m := range mods {
			fmt.Fprintf(&b, "- %s %s (%s)\n", m.UserName, m.FileName, m.Comment)
		}
	}

	if f := snap.Fault(); f != nil {
		fmt.Fprintf(&b, "\n## Exception\n\n%s (%s)\n", f.Message, f.Kind)
	}

	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
