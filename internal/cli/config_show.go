package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/buildwatch/internal/config"
	"github.com/mrz1836/buildwatch/internal/tui"
)

// AddConfigCommand adds the config command group to the root command.
func AddConfigCommand(root *cobra.Command, global *GlobalFlags) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect buildwatch configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display the effective buildwatch configuration after merging defaults,
~/.buildwatch/config.yaml, .buildwatch/config.yaml and BUILDWATCH_* variables.

The SMTP password is masked in the output.

Examples:
  buildwatch config show
  buildwatch config show -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			return runConfigShow(cmd.Context(), cmd.OutOrStdout(), cfg, global.Output)
		},
	})

	root.AddCommand(cmd)
}

func runConfigShow(ctx context.Context, w io.Writer, cfg *config.Config, format string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	redacted := cfg.Redacted()
	if format == OutputJSON {
		// Round-trip through YAML so JSON keys match the config file keys.
		data, err := yaml.Marshal(redacted)
		if err != nil {
			return fmt.Errorf("failed to encode configuration: %w", err)
		}
		var doc map[string]any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to encode configuration: %w", err)
		}
		return tui.NewJSONOutput(w).JSON(doc)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(redacted); err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	return enc.Close()
}
