package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mrz1836/buildwatch/internal/errors"
	"github.com/mrz1836/buildwatch/internal/integration"
	"github.com/mrz1836/buildwatch/internal/notify"
	"github.com/mrz1836/buildwatch/internal/signal"
	"github.com/mrz1836/buildwatch/internal/tui"
)

// NotifyFlags holds flags specific to the notify command.
type NotifyFlags struct {
	// Yes skips the confirmation prompt.
	Yes bool
	// DryRun logs messages instead of sending them and leaves history untouched.
	DryRun bool
}

// AddNotifyCommand adds the notify command to the root command.
func AddNotifyCommand(root *cobra.Command, global *GlobalFlags) {
	flags := &NotifyFlags{}

	cmd := &cobra.Command{
		Use:   "notify <manifest>...",
		Short: "Send notifications for completed attempts",
		Long: `Send notifications for one or more completed attempts.

Each manifest is compared with the project's previous attempt from history,
its recipients are resolved from the configured groups, and one message is
sent to all of them. The attempt is then saved as the project's latest.
Use "-" to read a single manifest from standard input.

Examples:
  buildwatch notify attempt.yaml             # Confirm, then send
  buildwatch notify --yes a.yaml b.yaml      # Send without confirmation
  buildwatch notify --dry-run attempt.yaml   # Log the message, touch nothing

Exit codes:
  0: Every notification was sent or had no recipients
  1: A notification or history write failed
  2: Invalid manifest or arguments`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), GetLogger())
			if err != nil {
				return err
			}
			defer a.close()
			return runNotify(cmd.Context(), cmd.OutOrStdout(), a, args, flags, global.Output)
		},
	}

	cmd.Flags().BoolVarP(&flags.Yes, "yes", "y", false, "send without confirmation")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "log messages instead of sending them")

	root.AddCommand(cmd)
}

// notifyResult is the JSON shape of one notified attempt.
type notifyResult struct {
	Project string `json:"project"`
	Label   string `json:"label"`
	Status  string `json:"status"`
	Sent    bool   `json:"sent"`
	Saved   bool   `json:"saved"`
	Error   string `json:"error,omitempty"`
}

func runNotify(ctx context.Context, w io.Writer, a *app, paths []string, flags *NotifyFlags, format string) error {
	if err := uniqueManifests(paths); err != nil {
		return err
	}

	h := signal.NewHandler(ctx)
	defer h.Stop()
	ctx = h.Context()

	attempts, err := a.loadAttempts(ctx, paths)
	if err != nil {
		return err
	}
	if err := uniqueProjects(attempts); err != nil {
		return err
	}

	if !flags.Yes && !flags.DryRun {
		ok, confirmErr := confirmNotify(a, attempts)
		if confirmErr != nil {
			return confirmErr
		}
		if !ok {
			return errors.ErrOperationCanceled
		}
	}

	transport, err := a.transport(flags.DryRun)
	if err != nil {
		return err
	}
	pub := a.publisher(transport)

	snaps := make([]integration.Snapshot, len(attempts))
	for i, at := range attempts {
		snaps[i] = at.Result
	}
	published := pub.PublishAll(ctx, snaps)

	results := make([]notifyResult, len(attempts))
	var failed []error
	for i, at := range attempts {
		res := notifyResult{
			Project: at.Result.ProjectName(),
			Label:   at.Result.Label(),
			Status:  at.Result.Status().String(),
			Sent:    published[i].Sent,
		}
		if published[i].Err != nil {
			res.Error = published[i].Err.Error()
			failed = append(failed, published[i].Err)
		}

		// History is saved even when the notification failed.
		if !flags.DryRun && ctx.Err() == nil {
			record := at.Result.Record()
			if saveErr := a.store.Save(ctx, &record); saveErr != nil {
				a.logger.Error().Err(saveErr).Str("project", res.Project).Msg("failed to save history")
				failed = append(failed, saveErr)
				if res.Error == "" {
					res.Error = saveErr.Error()
				}
			} else {
				res.Saved = true
			}
		}
		results[i] = res
	}

	if err := printNotifyResults(w, format, results); err != nil {
		return err
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d attempts had errors: %w", len(failed), len(attempts), failed[0])
	}
	return ctx.Err()
}

func printNotifyResults(w io.Writer, format string, results []notifyResult) error {
	out := tui.NewOutput(w, format)
	if format == OutputJSON {
		return out.JSON(results)
	}

	for _, r := range results {
		line := fmt.Sprintf("%s %s (%s)", r.Project, r.Label, r.Status)
		switch {
		case r.Error != "":
			out.Warning(line + ": " + r.Error)
		case r.Sent:
			out.Success(line + ": notified")
		default:
			out.Info(line + ": no recipients")
		}
	}
	return nil
}

// confirmNotify asks before sending. Without a terminal it fails with
// ErrNonInteractiveMode so scripts must pass --yes.
func confirmNotify(a *app, attempts []*attempt) (bool, error) {
	if !a.interactive() {
		return false, errors.NewExitCode2Error(errors.ErrNonInteractiveMode)
	}

	description := ""
	for _, at := range attempts {
		description += fmt.Sprintf("%s %s: %s\n", at.Result.ProjectName(), at.Result.Label(), notify.Subject(at.Result))
	}
	return tui.Confirm(fmt.Sprintf("Send notifications for %d attempt(s)?", len(attempts)), description, true)
}

// uniqueManifests rejects reading standard input twice.
func uniqueManifests(paths []string) error {
	stdin := 0
	for _, p := range paths {
		if p == stdinManifest {
			stdin++
		}
	}
	if stdin > 1 {
		return fmt.Errorf("%w: %q can be given only once", errors.ErrInvalidArgument, stdinManifest)
	}
	return nil
}

// uniqueProjects rejects two attempts of one project in a single run, since
// both would be compared against the same previous attempt.
func uniqueProjects(attempts []*attempt) error {
	seen := make(map[string]string, len(attempts))
	for _, at := range attempts {
		project := at.Result.ProjectName()
		if first, ok := seen[project]; ok {
			return fmt.Errorf("%w: %s and %s are both attempts of project %s",
				errors.ErrInvalidArgument, first, at.Source, project)
		}
		seen[project] = at.Source
	}
	return nil
}
