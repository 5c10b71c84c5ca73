package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/railpath/internal/app"
	"github.com/specialistvlad/railpath/internal/config"
	"github.com/spf13/cobra"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) error {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// usageArgs reports positional argument errors as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return usageError("%s", err.Error())
		}
		return nil
	}
}

// options are the flags shared by every command.
type options struct {
	layout          string
	logFormat       string
	logLevel        string
	healthcheckPort int
	ticks           int
	reroute         bool
}

// appConfig validates the flags and builds the app configuration. A
// positional layout path wins over --layout.
func (o *options) appConfig(args []string) (*app.Config, error) {
	path := o.layout
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return nil, usageError("a layout path is required: pass it as an argument or with --layout")
	}

	logFormat := strings.ToLower(o.logFormat)
	if logFormat != "text" && logFormat != "json" {
		return nil, usageError("invalid log-format: must be 'text' or 'json'")
	}

	logLevel := strings.ToLower(o.logLevel)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	cfg, err := app.NewConfig(app.Config{
		LayoutPath:      path,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		HealthcheckPort: o.healthcheckPort,
		MaxTicks:        o.ticks,
		Reroute:         o.reroute,
	})
	if err != nil {
		return nil, usageError("%s", err.Error())
	}
	slog.Debug("CLI parameter validation complete.", "config", cfg)
	return cfg, nil
}

// NewRootCommand builds the command tree. outW receives command output and
// logs; loader reads layouts.
func NewRootCommand(outW io.Writer, loader config.Loader) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "railpath [flags] [LAYOUT_PATH]",
		Short: "Train routing engine driven by an HCL rail layout",
		Long: `railpath loads a rail layout, discovers the routing graph between its
destinations and switchers, and simulates the trains placed on it.

LAYOUT_PATH is a single .hcl file or a directory containing .hcl files.`,
		Args:          usageArgs(cobra.MaximumNArgs(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.appConfig(args)
			if err != nil {
				return err
			}
			a, err := app.NewApp(outW, cfg, loader)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.Run(cmd.Context())
		},
	}
	root.SetOut(outW)
	root.SetErr(outW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError("%s", err.Error())
	})

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.layout, "layout", "g", "", "Path to the layout file or directory.")
	flags.StringVar(&opts.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	flags.StringVar(&opts.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	root.Flags().IntVar(&opts.healthcheckPort, "healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	root.Flags().IntVar(&opts.ticks, "ticks", 0, "Stop after this many ticks. 0 uses the layout's max_ticks.")
	flags.BoolVar(&opts.reroute, "reroute", false, "Rediscover every connection of a restored graph.")

	root.AddCommand(newPathCommand(outW, loader, opts), newDumpCommand(outW, loader, opts))
	return root
}

// openSettled builds the app and runs discovery to completion.
func openSettled(ctx context.Context, outW io.Writer, loader config.Loader, opts *options, args []string) (*app.App, error) {
	cfg, err := opts.appConfig(args)
	if err != nil {
		return nil, err
	}
	// Logs would interleave with the command output.
	cfg.LogLevel = "error"
	a, err := app.NewApp(outW, cfg, loader)
	if err != nil {
		return nil, err
	}
	if err := a.Settle(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

func newPathCommand(outW io.Writer, loader config.Loader, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "path WORLD FROM TO",
		Short: "Print the shortest route between two named nodes",
		Args:  usageArgs(cobra.ExactArgs(3)),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openSettled(cmd.Context(), outW, loader, opts, nil)
			if err != nil {
				return err
			}
			defer a.Close()

			world, from, to := args[0], args[1], args[2]
			res, err := a.FindPath(world, from, to)
			if err != nil {
				return &ExitError{Code: 1, Message: err.Error()}
			}
			fmt.Fprintln(outW, a.DescribePath(from, res))
			if !res.Found() {
				return &ExitError{Code: 3, Message: fmt.Sprintf("no route from %q to %q", from, to)}
			}
			return nil
		},
	}
}

func newDumpCommand(outW io.Writer, loader config.Loader, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "dump [LAYOUT_PATH]",
		Short: "Print every path node and its connections",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openSettled(cmd.Context(), outW, loader, opts, args)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.Dump(outW)
		},
	}
}

// Execute runs the command tree with args. Every returned error is an
// *ExitError; a nil error means exit code 0.
func Execute(ctx context.Context, outW io.Writer, loader config.Loader, args []string) error {
	root := NewRootCommand(outW, loader)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	return &ExitError{Code: 1, Message: err.Error()}
}
