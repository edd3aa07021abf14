package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/IgorBayerl/opcode_counter/internal/analyzer"
	"github.com/IgorBayerl/opcode_counter/internal/logging"
	"github.com/IgorBayerl/opcode_counter/internal/reportconfig"
	"github.com/IgorBayerl/opcode_counter/internal/reporter/textsummary"
	"github.com/urfave/cli/v2"
)

var (
	verbosityFlag = &cli.StringFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity level (Verbose, Info, Warning, Error, Off)",
		Value: logging.Warning.String(),
	}
	logFormatFlag = &cli.StringFlag{
		Name:  "log.format",
		Usage: "Log format to use (terminal|json)",
		Value: string(logging.FormatTerminal),
	}
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML file overriding the default path, marker and limit",
	}
)

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "opcode_counter",
		Usage:     "count the VM opcodes declared in a header",
		ArgsUsage: "[path]",
		Description: "Counts the lines of the header that contain " + analyzer.DefaultMarker +
			" and warns when there are more opcodes than a byte can encode.\n" +
			"The header defaults to " + analyzer.DefaultPath + " relative to the working directory.",
		Flags:           []cli.Flag{verbosityFlag, logFormatFlag, configFlag},
		HideHelpCommand: true,
		Writer:          stdout,
		ErrWriter:       stderr,
		Action: func(ctx *cli.Context) error {
			return run(ctx, stdout, stderr)
		},
	}
}

func run(ctx *cli.Context, stdout, stderr io.Writer) error {
	start := time.Now()

	verbosity, err := logging.ParseVerbosity(ctx.String(verbosityFlag.Name))
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(ctx.String(logFormatFlag.Name))
	if err != nil {
		return err
	}
	logger := logging.NewLogger(stderr, verbosity, format)

	cfg := reportconfig.NewReportConfiguration(verbosity, format)
	if file := ctx.String(configFlag.Name); file != "" {
		if err := cfg.ApplyFile(file); err != nil {
			return err
		}
		logger.Info("Loaded configuration", "file", file)
	}

	// The positional path wins over the config file, even when it is empty;
	// extra arguments are ignored.
	if ctx.NArg() > 0 {
		cfg.SetSourcePath(ctx.Args().First())
	}
	if ctx.NArg() > 1 {
		logger.Warn("Ignoring extra arguments", "args", ctx.Args().Tail())
	}

	if err := countAndReport(cfg, stdout, logger); err != nil {
		return err
	}
	logger.Debug("Opcode report completed", "elapsed", time.Since(start))
	return nil
}

// countAndReport scans the configured header and prints the report. Nothing
// is printed unless the whole file was scanned.
func countAndReport(cfg reportconfig.IReportConfiguration, stdout io.Writer, logger *slog.Logger) error {
	opts := append(reportconfig.CounterOptions(cfg), analyzer.WithLogger(logger))
	counter, err := analyzer.NewCounter(opts...)
	if err != nil {
		return err
	}

	summary, err := counter.Count(cfg.SourcePath())
	if err != nil {
		return err
	}

	builder := textsummary.NewTextReportBuilder(stdout)
	logger.Debug("Generating report", "type", builder.ReportType())
	return builder.CreateReport(summary)
}

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
