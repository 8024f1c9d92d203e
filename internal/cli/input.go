package cli

import (
	"context"
	"fmt"

	"github.com/shinji-kodama/cratemover/internal/cargo"
	"github.com/shinji-kodama/cratemover/internal/logging"
)

// inputArg returns the single optional file argument, or "" for the
// default input file.
func inputArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// readInput resolves arg to a file path and reads it.
func readInput(ctx context.Context, arg string) (string, string, error) {
	path, err := resolver.Resolve(ctx, arg)
	if err != nil {
		return "", "", err
	}
	VerboseLog("Reading input from %s", path)

	input, err := cargo.Load(path)
	if err != nil {
		return path, "", classifyError(fmt.Sprintf("cannot read input %s", path), err)
	}
	return path, input, nil
}

// simulationOptions returns the cargo options for the loaded configuration.
func simulationOptions() []cargo.Option {
	return append(cfg.CargoOptions(), cargo.WithLogger(logging.GetLogger("cargo")))
}
