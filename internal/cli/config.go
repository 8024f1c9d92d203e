package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/cratemover/internal/config"
)

// NewConfigCommand creates the "config" cobra command, which prints the
// effective settings after all layers are applied.
func NewConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the settings in effect after applying defaults, the config file,
CRATEMOVER_* environment variables and flags.

Examples:
  cratemover config
  CRATEMOVER_STRICT=true cratemover config --yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printConfig(cmd.OutOrStdout(), cfg, configSource)
		},
	}
}

// configOutput is the structured output of the config command.
type configOutput struct {
	Source string         `json:"source" yaml:"source"`
	Config *config.Config `json:"config" yaml:"config"`
}

// printConfig outputs the settings and the file they were read from (empty
// when only defaults, environment and flags apply).
func printConfig(w io.Writer, c *config.Config, source string) error {
	if format := outputFormat(); format.IsStructured() {
		return printStructured(w, format, configOutput{Source: source, Config: c})
	}

	if source == "" {
		source = "(none)"
	}
	fmt.Fprintf(w, "%-12s %s\n", "source", source)

	fmt.Fprintf(w, "%-12s %q\n", config.KeyPlaceholder, c.Placeholder)
	fmt.Fprintf(w, "%-12s %t\n", config.KeyStrict, c.Strict)
	fmt.Fprintf(w, "%-12s %d\n", config.KeyPitch, c.Pitch)
	fmt.Fprintf(w, "%-12s %s\n", config.KeyOutput, c.Output)
	return nil
}
