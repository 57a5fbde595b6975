// Package cli runs a herd simulation from the command line and prints the
// resulting shop report.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/Apurer/go-gin-yakshop/internal/domains/herd/adapters/herdfile"
	herdapp "github.com/Apurer/go-gin-yakshop/internal/domains/herd/application"
	platformobservability "github.com/Apurer/go-gin-yakshop/internal/platform/observability"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// Run parses args, simulates the herd and writes "Day: N" plus the report to
// stdout. Diagnostics go to stderr. It returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("yakshop", flag.ContinueOnError)
	fs.SetOutput(stderr)
	format := fs.String("format", "", "herd file format: xml or yaml (default: from extension)")
	logLevel := fs.String("log-level", "warn", "log level for diagnostics on stderr")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: %s [flags] <herd-file> <days>\n", fs.Name())
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return exitUsage
	}
	days, err := strconv.ParseUint(fs.Arg(1), 10, 32)
	if err != nil {
		fmt.Fprintf(stderr, "days must be an integer between 0 and 4294967295, got %q\n", fs.Arg(1))
		return exitUsage
	}

	logger := platformobservability.NewLogger(stderr, *logLevel, "text")
	source := herdfile.NewSource(fs.Arg(0))
	if *format != "" {
		source.Format = herdfile.Format(*format)
	}
	service, err := herdapp.Load(ctx, source, herdapp.WithLogger(logger))
	if err != nil {
		logger.Error("failed to load herd", slog.String("path", fs.Arg(0)), slog.String("error", err.Error()))
		fmt.Fprintf(stderr, "yakshop: %v\n", err)
		return exitError
	}
	report, err := service.Report(ctx, uint32(days))
	if err != nil {
		fmt.Fprintf(stderr, "yakshop: %v\n", err)
		return exitError
	}
	fmt.Fprintf(stdout, "Day: %d\n\n%s\n", report.ElapsedDays, report)
	return exitOK
}
