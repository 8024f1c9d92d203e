package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/cratemover/internal/cargo"
	"github.com/shinji-kodama/cratemover/internal/model"
)

// printStructured writes v as indented JSON or as a YAML document.
func printStructured(w io.Writer, format model.OutputFormat, v interface{}) error {
	switch format {
	case model.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode YAML output: %w", err)
		}
		return enc.Close()
	default:
		// MarshalIndent produces human-readable JSON with 2-space indentation.
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON output: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
}

// styles holds the text-mode styles bound to one output writer. Colors are
// dropped automatically when the writer is not a terminal.
type styles struct {
	answer lipgloss.Style
	muted  lipgloss.Style
	ok     lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		answer: r.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		muted:  r.NewStyle().Faint(true),
		ok:     r.NewStyle().Foreground(lipgloss.Color("10")),
	}
}

// classifyError wraps err in a CLIError whose exit code reflects the kind of
// failure. Errors that already carry an exit code are returned unchanged.
func classifyError(message string, err error) error {
	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		return err
	}
	return model.WrapCLIError(exitCodeFor(err), message, err)
}

// exitCodeFor maps simulation failures to exit codes.
func exitCodeFor(err error) model.ExitCode {
	var cargoErr *cargo.Error
	if !errors.As(err, &cargoErr) {
		return model.ExitGeneralError
	}
	switch cargoErr.Kind {
	case cargo.KindIOFailure:
		return model.ExitInputError
	case cargo.KindMalformedCrateField:
		return model.ExitMalformedDiagram
	case cargo.KindMissingKeyword, cargo.KindNumericParseFailure:
		return model.ExitMalformedCommand
	case cargo.KindStackIndexOutOfRange, cargo.KindInsufficientCrates:
		return model.ExitInvalidMove
	default:
		return model.ExitGeneralError
	}
}
