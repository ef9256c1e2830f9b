package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/growse/calltimer"
	"github.com/prometheus/client_golang/prometheus"
)

type Env struct {
	configuration *Configuration
	timer         *calltimer.Timer
	registry      *prometheus.Registry
	signals       <-chan os.Signal
}

// NewEnv builds the timer for one run. Signals received on signals while the
// command runs are passed on to it, except SIGINT, which the command already
// gets from the terminal.
func NewEnv(configuration *Configuration, signals <-chan os.Signal) *Env {
	env := &Env{configuration: configuration, signals: signals}

	var opts []calltimer.Option
	if configuration.Debug {
		opts = append(opts, calltimer.WithObserver(calltimer.NewLogObserver(slog.Default(), slog.LevelDebug)))
	}

	if configuration.MetricsFile != "" {
		env.registry = prometheus.NewRegistry()
		opts = append(opts, calltimer.WithObserver(calltimer.NewMetrics(env.registry)))
	}

	env.timer = calltimer.New(opts...)

	return env
}

// RunCommand runs args once. The command's own error is returned untouched so
// its exit status survives.
func (env *Env) RunCommand(
	label string,
	args []string,
	stdin io.Reader,
	stdout, stderr io.Writer,
) (calltimer.Result[struct{}], error) {
	command := exec.Command(args[0], args[1:]...)
	command.Stdin = stdin
	command.Stdout = stdout
	command.Stderr = stderr

	return calltimer.RunErr(env.timer, label, func() (struct{}, error) {
		err := command.Start()
		if err != nil {
			return struct{}{}, err
		}

		done := make(chan struct{})
		go env.relaySignals(command.Process, done)

		err = command.Wait()
		close(done)

		return struct{}{}, err
	})
}

func (env *Env) relaySignals(process *os.Process, done <-chan struct{}) {
	ctx := context.Background()

	for {
		select {
		case <-done:
			return
		case sig := <-env.signals:
			if sig == os.Interrupt {
				slog.With("signal", sig).DebugContext(ctx, "captured signal, waiting for command")
				continue
			}

			slog.With("signal", sig).With("pid", process.Pid).DebugContext(ctx, "forwarding signal to command")
			err := process.Signal(sig)
			if err != nil {
				slog.With("err", err).DebugContext(ctx, "Unable to forward signal")
			}
		}
	}
}

// WriteMetrics writes the textfile collector output, if one was configured.
func (env *Env) WriteMetrics() error {
	if env.registry == nil {
		return nil
	}
	err := prometheus.WriteToTextfile(env.configuration.MetricsFile, env.registry)
	if err != nil {
		return fmt.Errorf("unable to write metrics to %s: %w", env.configuration.MetricsFile, err)
	}
	return nil
}
