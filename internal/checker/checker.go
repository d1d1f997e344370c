package checker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/hamed0406/pingcheck/internal/domain"
	"github.com/hamed0406/pingcheck/internal/probe"
)

type Checker struct {
	Logger   *zap.Logger
	Prober   probe.Prober
	Reporter *Reporter
	Mode     domain.Mode
}

func New(logger *zap.Logger, prober probe.Prober, reporter *Reporter, mode domain.Mode) *Checker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if mode == "" {
		mode = domain.ModeConcurrent
	}
	return &Checker{
		Logger:   logger,
		Prober:   prober,
		Reporter: reporter,
		Mode:     mode,
	}
}

// Run probes every target once and returns the exit code for the batch.
//
// In concurrent mode Down outcomes are reported but leave the exit code at
// ExitOK; only an abnormal task failure yields ExitFailure, and it does so
// without waiting for the remaining tasks. In sequential mode the first Down
// stops the run with ExitFailure.
func (c *Checker) Run(ctx context.Context, targets []string) domain.ExitCode {
	if c.Mode == domain.ModeSequential {
		return c.runSequential(ctx, targets)
	}
	return c.runConcurrent(ctx, targets)
}

func (c *Checker) runConcurrent(ctx context.Context, targets []string) domain.ExitCode {
	start := time.Now()
	// Buffered to len(targets) so tasks still running after an early abort
	// can deliver their outcome and exit.
	results := make(chan domain.Outcome, len(targets))
	for _, raw := range targets {
		go c.dispatch(ctx, domain.Target(raw), results)
	}

	var sum summary
	for range targets {
		out := <-results
		if !c.consume(out, &sum) {
			return domain.ExitFailure
		}
	}
	c.logSummary(sum, start)
	return domain.ExitOK
}

func (c *Checker) runSequential(ctx context.Context, targets []string) domain.ExitCode {
	start := time.Now()
	results := make(chan domain.Outcome, 1)

	var sum summary
	for _, raw := range targets {
		go c.dispatch(ctx, domain.Target(raw), results)
		out := <-results
		if !c.consume(out, &sum) || out.Status == domain.StatusDown {
			c.Logger.Warn("check_stopped",
				zap.String("mode", string(c.Mode)),
				zap.String("address", string(out.Target)),
				zap.Int("remaining", len(targets)-sum.total()),
			)
			return domain.ExitFailure
		}
	}
	c.logSummary(sum, start)
	return domain.ExitOK
}

// consume reports one outcome and folds it into sum. It returns false when
// the outcome must abort the run.
func (c *Checker) consume(out domain.Outcome, sum *summary) bool {
	c.Reporter.Report(out)
	c.logOutcome(out)
	if out.Status == domain.StatusAbnormal {
		c.Logger.Error("check_aborted",
			zap.String("mode", string(c.Mode)),
			zap.String("address", string(out.Target)),
			zap.Error(out.Reason),
		)
		return false
	}
	sum.add(out)
	return true
}

// dispatch runs one probe task and always delivers exactly one outcome,
// including when the task panics or calls runtime.Goexit.
func (c *Checker) dispatch(ctx context.Context, t domain.Target, results chan<- domain.Outcome) {
	start := time.Now()
	var out domain.Outcome
	resolved := false
	defer func() {
		if r := recover(); r != nil || !resolved {
			out = domain.Outcome{
				Target:  t,
				Status:  domain.StatusAbnormal,
				Reason:  taskFailure(r),
				Latency: time.Since(start),
			}
		}
		results <- out
	}()

	err := c.Prober.Probe(ctx, string(t))
	out = domain.Outcome{Target: t, Status: domain.StatusUp, Latency: time.Since(start)}
	if err != nil {
		out.Status = domain.StatusDown
		out.Reason = err
	}
	resolved = true
}

func taskFailure(r any) error {
	if r == nil {
		return errors.New("probe task exited without a result")
	}
	if err, ok := r.(error); ok {
		return fmt.Errorf("probe task panicked: %w", err)
	}
	return fmt.Errorf("probe task panicked: %v", r)
}

func (c *Checker) logOutcome(out domain.Outcome) {
	fields := []zap.Field{
		zap.String("address", string(out.Target)),
		zap.String("status", out.Status.String()),
		zap.Duration("latency", out.Latency),
	}
	if out.Reason != nil {
		fields = append(fields, zap.Error(out.Reason))
	}
	if probe.KindOf(out.Reason) == probe.KindPermissionDenied {
		c.Logger.Error("probe_permission_denied", fields...)
		return
	}
	c.Logger.Debug("probe_result", fields...)
}

type summary struct {
	up   int
	down int
	errs error
}

func (s *summary) add(out domain.Outcome) {
	if out.Up() {
		s.up++
		return
	}
	s.down++
	s.errs = multierr.Append(s.errs, fmt.Errorf("%s: %w", out.Target, out.Reason))
}

func (s *summary) total() int { return s.up + s.down }

func (c *Checker) logSummary(sum summary, start time.Time) {
	fields := []zap.Field{
		zap.String("mode", string(c.Mode)),
		zap.Int("up", sum.up),
		zap.Int("down", sum.down),
		zap.Duration("elapsed", time.Since(start)),
	}
	if sum.errs != nil {
		fields = append(fields, zap.Errors("failures", multierr.Errors(sum.errs)))
	}
	c.Logger.Info("check_complete", fields...)
}
