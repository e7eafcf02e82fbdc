// Package main provides the metaframe CLI: attach a YAML schema to a CSV
// table, inspect the resulting metadata, edit it, and export to Arrow.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/leengari/metaframe/internal/config"
	"github.com/leengari/metaframe/internal/logging"
)

// CLI defines the command-line interface using Kong
var CLI struct {
	config.Config `embed:""`

	Verbose bool `name:"verbose" short:"v" help:"Log lifecycle events at info level"`

	// Subcommands
	Inspect InspectCmd `cmd:"" help:"Show the metadata view for a schema and data file"`
	Set     SetCmd     `cmd:"" help:"Edit one metadata attribute, then upgrade or revert it"`
	Export  ExportCmd  `cmd:"" help:"Write data and metadata as an Arrow IPC file"`
}

// App carries the shared runtime state handed to every command
type App struct {
	Logger  *slog.Logger
	Verbose bool
}

func main() {
	CLI.Config = config.Default()
	ctx := kong.Parse(&CLI,
		kong.Name("metaframe"),
		kong.Description("Schema-driven column metadata with upgrade/revert."),
		kong.UsageOnError(),
	)

	logger, closeFn, err := logging.SetupLogger(CLI.Config.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	app := &App{Logger: logger, Verbose: CLI.Verbose}
	if err := ctx.Run(app); err != nil {
		logger.Error("command failed", "command", ctx.Command(), "error", err)
		closeFn()
		os.Exit(1)
	}
	closeFn()
}
