package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lucrnz/seconds/internal/duration"
	"github.com/lucrnz/seconds/internal/logging"
	"github.com/lucrnz/seconds/internal/version"
)

// ErrNoInput is returned after printing help when there was nothing to convert.
var ErrNoInput = errors.New("no input")

var validOutputFormats = []string{"text", "json", "yaml"}

type options struct {
	strict  bool
	compact bool
	comma   bool
	output  string
	log     logging.Config
}

func newRootCmd() *cobra.Command {
	opts := &options{log: logging.DefaultConfig()}

	cmd := &cobra.Command{
		Use:   "seconds",
		Short: "Convert between time intervals and seconds",
		Long: `seconds

Converts a duration such as "2d3h" or "2 days, and 3 hours" to a number of
seconds, or a number of seconds to days, hours, minutes and seconds.
`,
		Args:    cobra.ArbitraryArgs,
		Version: version.Long(),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !slices.Contains(validOutputFormats, opts.output) {
				return fmt.Errorf("invalid output format: %s (valid: %s)", opts.output, strings.Join(validOutputFormats, ", "))
			}

			logger, err := opts.log.New(cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}
			cmd.SetContext(logging.WithContext(cmd.Context(), logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Reject malformed durations instead of ignoring unrecognised text")
	cmd.Flags().BoolVarP(&opts.compact, "compact", "c", false, "Print seconds as a compact duration (e.g. 2d3h) instead of words")
	cmd.Flags().BoolVar(&opts.comma, "comma", false, "Group the digits of a seconds result (e.g. 183,600)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "text", "Output format: text, json or yaml")
	opts.log.BindFlags(cmd.Flags())

	// Flags stop at the first argument, so "2d -3h" is all duration text
	cmd.Flags().SetInterspersed(false)

	_ = cmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return validOutputFormats, cobra.ShellCompDirectiveNoFileComp
	})

	// SilenceErrors is true so main controls the error output format
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	// Show usage only when there's a flag parsing error
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		_ = cmd.Usage()
		return err
	})
	cmd.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		printHelp(cmd)
	})
	cmd.SetUsageFunc(func(cmd *cobra.Command) error {
		printHelp(cmd)
		return nil
	})

	return cmd
}

// ExecuteContext runs the root command with the given context.
func ExecuteContext(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

// Main runs the command and returns the process exit code, reporting any
// error on stderr.
func Main(ctx context.Context) int {
	return exitCode(ctx, ExecuteContext(ctx), os.Stderr)
}

// exitCode maps the outcome of a run to an exit status: 0 on success, 1 on
// errors (help has already been printed for ErrNoInput) and 130 when the
// context was cancelled by an interrupt.
func exitCode(ctx context.Context, err error, stderr io.Writer) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrNoInput):
		return 1
	case errors.Is(ctx.Err(), context.Canceled):
		fmt.Fprintln(stderr, "\nInterrupted")
		return 130 // Standard exit code for SIGINT
	default:
		fmt.Fprintln(stderr, err)
		return 1
	}
}

func run(cmd *cobra.Command, args []string, opts *options) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	input, src, err := resolveInput(ctx, cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	switch src {
	case sourceHelp:
		return cmd.Help()
	case sourceNone:
		_ = cmd.Help()
		return ErrNoInput
	}
	logger.Debug("input_resolved", "source", string(src), "bytes", len(input))

	res, err := duration.Convert(input, duration.Options{
		Strict:  opts.strict,
		Compact: opts.compact,
	})
	if err != nil {
		return err
	}

	logger.Debug("dispatch", "mode", string(res.Mode), "seconds", res.Seconds.String())
	for _, q := range res.Quantities {
		logger.Debug("quantity", "count", q.Count.String(), "unit", string(q.Unit))
	}
	if res.Mode == duration.ModeParse && len(res.Quantities) == 0 {
		logger.Info("no_quantities", "input", strings.TrimSpace(input))
	}

	return render(cmd.OutOrStdout(), res, opts)
}
