package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/viant/schedsim"
	"github.com/viant/schedsim/service/metrics"
	"github.com/viant/schedsim/service/workload"
	"github.com/viant/schedsim/tracing"
)

var errArgumentCount = errors.New("expected exactly one workload file")

// exit codes
const (
	exitFailure    = 1
	exitUsage      = 2
	exitUnreadable = 3
)

type options struct {
	policy   string
	quantum  int
	config   string
	output   string
	format   string
	maxTicks int
	spans    string
	stats    bool
	gantt    bool
	compare  bool
	verbose  bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCommand(os.Stdout)
	if err := root.ExecuteContext(ctx); err != nil {
		slog.Error(err.Error())
		stop()
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, errArgumentCount):
		return exitUsage
	case errors.Is(err, workload.ErrUnreadable):
		return exitUnreadable
	}
	return exitFailure
}

func newRootCommand(stdout io.Writer) *cobra.Command {
	var o options
	root := &cobra.Command{
		Use:   "schedsim <workload-file>",
		Short: "Fixed-partition scheduling simulator",
		Long: `schedsim replays a batch workload on a single simulated CPU with
fixed-partition memory and writes the execution trace.

Each workload line holds: PID, memory, arrival, service, ioInterval, ioDuration, priority

Examples:
  schedsim input_data.txt
  schedsim --policy ep-rr --quantum 50 --stats input_data.txt
  schedsim --compare --quantum 50 input_data.txt`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("%w, got %d", errArgumentCount, len(args))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, o, args[0], stdout)
		},
	}

	root.Flags().StringVarP(&o.policy, "policy", "p", "ep", "scheduling policy: ep or ep-rr")
	root.Flags().IntVarP(&o.quantum, "quantum", "q", 100, "round robin quantum in ticks")
	root.Flags().StringVarP(&o.config, "config", "c", "", "YAML configuration URL")
	root.Flags().StringVarP(&o.output, "output", "o", "", "trace output URL (default output_files/execution.txt)")
	root.Flags().StringVar(&o.format, "format", "", "trace format: text or json")
	root.Flags().IntVar(&o.maxTicks, "max-ticks", 0, "abort after the given number of ticks (0 = unlimited)")
	root.Flags().StringVar(&o.spans, "spans", "", "write OpenTelemetry spans to the given file")
	root.Flags().BoolVar(&o.stats, "stats", false, "print run statistics")
	root.Flags().BoolVar(&o.gantt, "gantt", false, "print running segments per process")
	root.Flags().BoolVar(&o.compare, "compare", false, "simulate under ep and ep-rr and compare, no trace is written")
	root.Flags().BoolVarP(&o.verbose, "verbose", "v", false, "log every state transition")
	return root
}

func run(cmd *cobra.Command, o options, workloadURL string, stdout io.Writer) error {
	ctx := cmd.Context()
	config := schedsim.DefaultConfig()
	if o.config != "" {
		loaded, err := schedsim.LoadConfig(ctx, nil, o.config)
		if err != nil {
			return err
		}
		config = loaded
	}

	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	srvOptions := []schedsim.Option{
		schedsim.WithConfig(config),
		schedsim.WithLogger(logger),
		schedsim.WithOutput(o.output, o.format),
	}
	flags := cmd.Flags()
	if flags.Changed("policy") {
		srvOptions = append(srvOptions, schedsim.WithPolicyMode(o.policy))
	}
	if flags.Changed("quantum") {
		srvOptions = append(srvOptions, schedsim.WithQuantum(o.quantum))
	}
	if flags.Changed("max-ticks") {
		srvOptions = append(srvOptions, schedsim.WithMaxTicks(o.maxTicks))
	}
	if o.spans != "" {
		srvOptions = append(srvOptions, schedsim.WithTracing(o.spans))
		defer func() {
			if err := tracing.Shutdown(context.Background()); err != nil {
				logger.Warn("failed to flush spans", "error", err)
			}
		}()
	}

	srv := schedsim.New(srvOptions...)
	if o.compare {
		return compare(ctx, srv, o, workloadURL, stdout)
	}
	result, err := srv.Run(ctx, workloadURL)
	if err != nil {
		return err
	}
	effective := srv.Config()
	fmt.Fprintf(stdout, "%s: %d processes finished in %d ticks, trace written to %s\n",
		result.Policy, len(result.Processes), result.Ticks, effective.Output.URL)
	if o.stats {
		metrics.Render(stdout, result.Statistics)
	}
	if o.gantt {
		metrics.RenderSegments(stdout, result.Statistics.Segments)
	}
	return nil
}

func compare(ctx context.Context, srv *schedsim.Service, o options, workloadURL string, stdout io.Writer) error {
	results, err := srv.Compare(ctx, workloadURL)
	if err != nil {
		return err
	}
	stats := make([]*metrics.Statistics, 0, len(results))
	for _, result := range results {
		fmt.Fprintf(stdout, "%s: %d processes finished in %d ticks\n", result.Policy, len(result.Processes), result.Ticks)
		if o.stats {
			metrics.Render(stdout, result.Statistics)
		}
		if o.gantt {
			metrics.RenderSegments(stdout, result.Statistics.Segments)
		}
		stats = append(stats, result.Statistics)
	}
	metrics.Compare(stdout, stats...)
	return nil
}
