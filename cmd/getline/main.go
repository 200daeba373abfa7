// Package main is the entry point for the getline CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/helixml/getline/application/service"
	"github.com/helixml/getline/domain/linespec"
	"github.com/helixml/getline/internal/config"
	"github.com/helixml/getline/internal/log"
	"github.com/spf13/cobra"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// ErrArgumentCount indicates the command was not given exactly one LINE_SPEC.
var ErrArgumentCount = errors.New("invalid number of arguments")

const usageFormat = `Usage: %[1]s LINE_SPEC
Filter line numbers from standard input.
LINE_SPEC can be a single line number, or a start:end range.
Example: %[1]s 3:12 </etc/services
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command and returns the process exit status. Failures are
// reported on stderr followed by the usage synopsis.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	prog := "getline"
	if len(args) > 0 && args[0] != "" {
		prog = filepath.Base(args[0])
	}

	cmd := rootCmd(prog)
	cmd.SetArgs(append([]string{}, args[min(1, len(args)):]...))
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n\n", err)
		fmt.Fprintf(stderr, usageFormat, prog)
		return 1
	}
	return 0
}

func rootCmd(prog string) *cobra.Command {
	var (
		envFile   string
		number    bool
		logLevel  string
		logFormat string
	)

	cmd := &cobra.Command{
		Use:   prog + " LINE_SPEC",
		Short: "Filter line numbers from standard input",
		Long: `Filter line numbers from standard input.

LINE_SPEC can be a single line number, or a start:end range. Line numbers
are 1-based and the range is inclusive.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  GETLINE_LOG_LEVEL            Log level: DEBUG, INFO, WARN, ERROR (default: WARN)
  GETLINE_LOG_FORMAT           Log format: pretty, json (default: pretty)
  GETLINE_MAX_LINE_BYTES       Longest accepted input line (default: 1048576)
  GETLINE_NUMBER_LINES         Prefix output lines with their number (default: false)`,
		Example:       "  " + prog + " 3:12 </etc/services",
		Version:       version,
		Args:          exactlyOneSpec,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(envFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			flags := cmd.Flags()
			if flags.Changed("number") {
				cfg = cfg.Apply(config.WithNumberLines(number))
			}
			if flags.Changed("log-level") {
				cfg = cfg.Apply(config.WithLogLevel(logLevel))
			}
			if flags.Changed("log-format") {
				cfg = cfg.Apply(config.WithLogFormat(config.ParseLogFormat(logFormat)))
			}

			return runFilter(cmd, cfg, args[0])
		},
	}

	cmd.SetVersionTemplate(fmt.Sprintf("%s version %s\n  commit: %s\n  built:  %s\n", prog, version, commit, date))

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().BoolVarP(&number, "number", "n", false, "Prefix each output line with its line number and a tab")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: DEBUG, INFO, WARN, ERROR (default: WARN)")
	cmd.Flags().StringVar(&logFormat, "log-format", "", "Log format: pretty, json (default: pretty)")

	return cmd
}

func exactlyOneSpec(_ *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: expected 1, got %d", ErrArgumentCount, len(args))
	}
	return nil
}

func runFilter(cmd *cobra.Command, cfg config.AppConfig, arg string) error {
	logger := log.NewLogger(cmd.ErrOrStderr(), cfg)

	spec, err := linespec.Parse(arg)
	if err != nil {
		return err
	}
	logger.Debug("line spec parsed", "start", spec.Start(), "end", spec.End())

	filter := service.NewLineFilter(spec,
		service.WithLogger(logger),
		service.WithMaxLineBytes(cfg.MaxLineBytes()),
		service.WithLineNumbers(cfg.NumberLines()),
	)

	if _, err := filter.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("filter lines: %w", err)
	}
	return nil
}
