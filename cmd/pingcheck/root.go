package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hamed0406/pingcheck/internal/checker"
	"github.com/hamed0406/pingcheck/internal/config"
	"github.com/hamed0406/pingcheck/internal/domain"
	"github.com/hamed0406/pingcheck/internal/logging"
	"github.com/hamed0406/pingcheck/internal/probe"
)

// app carries what a command run needs; tests swap the prober and streams.
type app struct {
	cfg       config.Config
	stdout    io.Writer
	stderr    io.Writer
	newProber func(*zap.Logger, probe.Params) probe.Prober
	exitCode  domain.ExitCode
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		cfg:    config.FromEnv(),
		stdout: stdout,
		stderr: stderr,
		newProber: func(l *zap.Logger, p probe.Params) probe.Prober {
			return probe.NewICMPProber(l, p)
		},
	}
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pingcheck",
		Short: "Check internet connectivity by pinging public DNS servers",
		Long: `pingcheck sends ICMP echo requests to 1.1.1.1 and 8.8.8.8 in parallel,
prints whether each one answered, and exits.

Exit status is 0 when every probe resolved normally and 2 when a probe task
failed abnormally. With --mode sequential the first unreachable target also
exits 2.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCheck(cmd.Context())
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&a.cfg.Mode, "mode", a.cfg.Mode, "scheduling mode: concurrent or sequential")
	f.StringVar(&a.cfg.LogDir, "log-dir", a.cfg.LogDir, "directory for the rotating log file")
	f.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "log level: debug, info, warn or error")
	f.BoolVar(&a.cfg.Privileged, "privileged", a.cfg.Privileged, "use raw ICMP sockets (needs root or CAP_NET_RAW)")

	cmd.AddCommand(newPreflightCmd(a))
	return cmd
}

func (a *app) runCheck(ctx context.Context) error {
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	level, _ := a.cfg.Level()
	logger, err := logging.NewLogger(a.cfg.LogDir, level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	params := probe.DefaultParams()
	params.Privileged = a.cfg.Privileged
	targets := config.Targets()

	logger.Info("check_start",
		zap.Strings("targets", targets),
		zap.String("mode", a.cfg.Mode),
		zap.Bool("privileged", params.Privileged),
	)

	fmt.Fprintln(a.stdout, "Checking internet connection...")
	chk := checker.New(logger, a.newProber(logger, params), checker.NewReporter(a.stdout, a.stderr), a.cfg.CheckMode())
	a.exitCode = chk.Run(ctx, targets)
	return nil
}

// execute runs the command line and maps the result to a process exit code.
func execute(args []string) int {
	return run(context.Background(), newApp(os.Stdout, os.Stderr), args)
}

func run(ctx context.Context, a *app, args []string) int {
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(a.stderr, "Error:", err)
		return 1
	}
	return int(a.exitCode)
}
