package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

func newRootCommand(signals <-chan os.Signal) *cobra.Command {
	var label string

	rootCmd := &cobra.Command{
		Use:   "calltimer [--label NAME] [--] COMMAND [ARGS...]",
		Short: "Run a command once and report how long it took",
		Long: `calltimer runs COMMAND with its arguments, waits for it to finish and prints
"<label> done in <ms> ms". Nothing is printed when the command fails, and
calltimer exits with the command's exit status.

Environment:
  CALLTIMER_DEBUG         log each timing at debug level
  CALLTIMER_LABEL         label to use when --label is not given
  CALLTIMER_METRICS_FILE  write Prometheus textfile metrics here on success`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configuration, err := getConfiguration()
			if err != nil {
				return fmt.Errorf("unable to parse config: %w", err)
			}

			setupLogging(cmd.ErrOrStderr(), configuration.Debug)
			slog.With("config", configuration).DebugContext(cmd.Context(), "Loaded configuration")

			env := NewEnv(configuration, signals)

			if label == "" {
				label = configuration.Label
			}

			if label == "" {
				label = strings.Join(args, " ")
			}

			result, err := env.RunCommand(label, args, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			err = result.Fprint(cmd.OutOrStdout())
			if err != nil {
				return fmt.Errorf("unable to write summary: %w", err)
			}

			return env.WriteMetrics()
		},
	}

	rootCmd.Flags().StringVar(&label, "label", "", "label to print instead of the command line")
	// Everything after the command name belongs to the command.
	rootCmd.Flags().SetInterspersed(false)

	return rootCmd
}

func setupLogging(w io.Writer, debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// exitCode mirrors the command's status, using the shell's 128+n for signals.
func exitCode(err error) int {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return 1
	}

	if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return 128 + int(status.Signal())
	}

	if exitErr.ExitCode() > 0 {
		return exitErr.ExitCode()
	}

	return 1
}

func main() {
	ctx := context.Background()

	// SIGTERM goes on to the command. SIGINT already reaches it from the
	// terminal, so calltimer only outlives it to report.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	err := newRootCommand(signals).ExecuteContext(ctx)
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			slog.With("err", err).ErrorContext(ctx, "calltimer failed")
		}

		os.Exit(exitCode(err))
	}
}
