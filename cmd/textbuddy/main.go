// Package main provides the textbuddy CLI, an interactive editor for a
// newline-delimited list file.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"textbuddy/internal/config"
	"textbuddy/internal/format"
	"textbuddy/internal/logging"
	"textbuddy/internal/session"
	"textbuddy/internal/store"

	"github.com/spf13/cobra"
)

var version = "dev"

const argumentErrorMsg = "Error, this program expects only 1 argument as the filename"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "textbuddy: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode separates storage failures from usage and config mistakes.
func exitCode(err error) int {
	var fatal *store.FatalError
	if errors.As(err, &fatal) {
		return 1
	}
	return 2
}

func newRootCmd() *cobra.Command {
	var (
		configPath   string
		logLevel     string
		forceColor   bool
		forceNoColor bool
		printOnly    bool
		formatFlag   string
	)

	cmd := &cobra.Command{
		Use:           "textbuddy <file>",
		Short:         "Add, delete, sort and search the lines of a text file",
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) != 1 {
				fmt.Fprintln(out, argumentErrorMsg) //nolint:errcheck
				return nil
			}
			if forceColor && forceNoColor {
				return errors.New("--color and --no-color cannot be used together")
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if flags.Changed("format") {
				cfg.Format = formatFlag
			}
			switch {
			case forceColor:
				cfg.Color = config.ColorAlways
			case forceNoColor:
				cfg.Color = config.ColorNever
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, closer, err := logging.New(logging.Options{
				Level:  cfg.LogLevel,
				File:   cfg.LogFile,
				Stderr: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			defer closer.Close()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = logging.WithLogger(ctx, logger)

			target := args[0]
			file := store.Open(target, store.Options{LockTimeout: time.Duration(cfg.LockTimeout)})

			if printOnly {
				entries, err := file.Load(ctx)
				if err != nil {
					return err
				}
				outFile, _ := out.(*os.File)
				return format.WriteEntries(out, target, entries, format.Options{
					Format:  strings.ToLower(cfg.Format),
					OutFile: outFile,
				})
			}

			return session.Run(ctx, file, session.Options{
				Target: target,
				Prompt: cfg.Prompt,
				Color:  session.ResolveColor(cfg.Color, out),
				In:     cmd.InOrStdin(),
				Out:    out,
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "config file (env: TEXTBUDDY_CONFIG, default: $XDG_CONFIG_HOME/textbuddy/config.yaml)")
	flags.StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, or error (env: TEXTBUDDY_LOG_LEVEL)")
	flags.BoolVar(&forceColor, "color", false, "force-enable a coloured prompt even when stdout is not a TTY")
	flags.BoolVar(&forceNoColor, "no-color", false, "disable colours regardless of terminal detection")
	flags.BoolVar(&printOnly, "print", false, "print the file's entries and exit without starting a session")
	flags.StringVar(&formatFlag, "format", "table", "output format for --print: table, plain, or json")

	return cmd
}
