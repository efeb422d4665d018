package cli

import (
	stderrors "errors"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrz1836/buildwatch/internal/constants"
	"github.com/mrz1836/buildwatch/internal/errors"
)

// Process exit codes.
const (
	// ExitSuccess means every attempt was resolved, notified where needed
	// and recorded in history.
	ExitSuccess = 0
	// ExitError means a transport, history or configuration failure; the
	// manifests themselves were fine.
	ExitError = 1
	// ExitInvalidInput means the command line or a manifest was rejected
	// before any notification went out.
	ExitInvalidInput = 2
)

// Result formats for notify, recipients, preview, history and config show.
const (
	// OutputText prints one line per attempt, or the rendered message body.
	OutputText = "text"
	// OutputJSON prints a JSON document that CI tooling can parse.
	OutputJSON = "json"
)

// GlobalFlags are the persistent flags shared by every buildwatch subcommand.
type GlobalFlags struct {
	// Output is OutputText or OutputJSON.
	Output string
	// Verbose logs recipient resolution and transport activity at debug level.
	Verbose bool
	// Quiet keeps warnings and errors only.
	Quiet bool
}

//nolint:gochecknoglobals // read-only
var globalFlagNames = []string{"output", "verbose", "quiet"}

// AddGlobalFlags registers GlobalFlags on the root command.
func AddGlobalFlags(cmd *cobra.Command, flags *GlobalFlags) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.Output, "output", "o", OutputText, "result format for attempts and history (text|json)")
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false, "log recipient resolution and delivery details")
	pf.BoolVarP(&flags.Quiet, "quiet", "q", false, "log warnings and errors only")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// BindGlobalFlags exposes the global flags through v, so BUILDWATCH_OUTPUT,
// BUILDWATCH_VERBOSE and BUILDWATCH_QUIET can set them in CI environments.
// cmd may be any subcommand; the flags are looked up on its root.
func BindGlobalFlags(v *viper.Viper, cmd *cobra.Command) error {
	rootFlags := cmd.Root().PersistentFlags()
	for _, name := range globalFlagNames {
		if err := v.BindPFlag(name, rootFlags.Lookup(name)); err != nil {
			return err
		}
	}

	v.SetEnvPrefix(constants.EnvPrefix)
	v.AutomaticEnv()
	return nil
}

// ValidOutputFormats lists the accepted --output values.
func ValidOutputFormats() []string {
	return []string{OutputText, OutputJSON}
}

// IsValidOutputFormat reports whether format is an accepted --output value.
// Matching is case-sensitive.
func IsValidOutputFormat(format string) bool {
	return slices.Contains(ValidOutputFormats(), format)
}

// ExitCodeForError maps a command error to a process exit code. Bad flags,
// invalid manifests, a project given twice and a notify run that needs --yes
// are ExitInvalidInput; delivery and history failures are ExitError.
func ExitCodeForError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.IsExitCode2Error(err),
		stderrors.Is(err, errors.ErrInvalidOutputFormat),
		stderrors.Is(err, errors.ErrInvalidArgument),
		stderrors.Is(err, errors.ErrManifestInvalid),
		isCobraUsageError(err.Error()):
		return ExitInvalidInput
	default:
		return ExitError
	}
}

// cobraUsageMessages are fragments of cobra and pflag errors, which carry
// no sentinel.
//
//nolint:gochecknoglobals // read-only
var cobraUsageMessages = []string{
	"unknown flag",
	"unknown shorthand flag",
	"flag needs an argument",
	"invalid argument",
	"if any flags in the group",
	"required flag",
	"unknown command",
	"accepts ",
	"requires at least",
}

func isCobraUsageError(msg string) bool {
	for _, fragment := range cobraUsageMessages {
		if strings.Contains(msg, fragment) {
			return true
		}
	}
	return false
}
