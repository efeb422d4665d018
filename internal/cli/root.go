// Package cli provides the command-line interface for buildwatch.
package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrz1836/buildwatch/internal/errors"
	"github.com/mrz1836/buildwatch/internal/tui"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g., "1.0.0").
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// globalLogger stores the logger initialized in PersistentPreRunE.
// Access is protected by globalLoggerMu.
var (
	globalLogger   zerolog.Logger //nolint:gochecknoglobals // CLI logger requires global access
	globalLoggerMu sync.RWMutex   //nolint:gochecknoglobals // Protects globalLogger
)

// GetLogger returns the initialized logger for use by subcommands.
//
// It MUST only be called after the root command's PersistentPreRunE has
// executed; before that it returns a zero-value logger.
func GetLogger() zerolog.Logger {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	return globalLogger
}

// newRootCmd creates the root command for the buildwatch CLI.
func newRootCmd(flags *GlobalFlags, info BuildInfo) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "buildwatch",
		Short: "buildwatch - build result tracking and notifications",
		Long: `buildwatch turns the results of a build attempt into a status, compares it
with the project's previous attempt and emails the people who care.

Features:
  • Monotone attempt status (success, failure, exception)
  • Recipient groups with always, change and failed policies
  • HTML notifications over SMTP
  • Per-project history in files or redis`,
		Version: formatVersion(info),
		// RunE shows help so PersistentPreRunE still validates flags.
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := BindGlobalFlags(v, cmd); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}

			if !IsValidOutputFormat(flags.Output) {
				return fmt.Errorf("%w: %q must be one of %v", errors.ErrInvalidOutputFormat, flags.Output, ValidOutputFormats())
			}

			logger := InitLogger(flags.Verbose, flags.Quiet)
			globalLoggerMu.Lock()
			globalLogger = logger
			globalLoggerMu.Unlock()

			cmd.SetContext(logger.WithContext(cmd.Context()))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	AddGlobalFlags(cmd, flags)

	AddNotifyCommand(cmd, flags)
	AddRecipientsCommand(cmd, flags)
	AddPreviewCommand(cmd, flags)
	AddHistoryCommand(cmd, flags)
	AddConfigCommand(cmd, flags)

	return cmd
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command and returns the process exit code.
// Errors are reported on stderr in the selected output format.
func Execute(ctx context.Context, info BuildInfo, stderr io.Writer) int {
	return run(ctx, info, os.Args[1:], os.Stdout, stderr)
}

func run(ctx context.Context, info BuildInfo, args []string, stdout, stderr io.Writer) int {
	flags := &GlobalFlags{}
	//nolint:contextcheck // Cobra command pattern uses cmd.Context() internally
	cmd := newRootCmd(flags, info)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	defer CloseLogFile()
	if err == nil {
		return ExitSuccess
	}

	reportError(tui.NewOutput(stderr, flags.Output), err)
	return ExitCodeForError(err)
}

// reportError prints err with a suggested action when one is known.
func reportError(out tui.Output, err error) {
	msg, action := errors.Actionable(err)
	if msg != err.Error() {
		msg = msg + " (" + err.Error() + ")"
	}
	out.Error(stderrors.New(msg)) //nolint:err113 // display only
	if action != "" {
		out.Info("Try: " + action)
	}
}
