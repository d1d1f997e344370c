package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hamed0406/pingcheck/internal/probe"
)

var errPreflight = errors.New("preflight failed")

func newPreflightCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "preflight",
		Short: "Verify configuration and ICMP socket permissions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.preflight(probe.CheckSocket)
		},
	}
}

func (a *app) preflight(checkSocket func(privileged bool) error) error {
	failed := false
	fail := func(msg string) {
		fmt.Fprintln(a.stderr, "✖", msg)
		failed = true
	}
	ok := func(msg string) { fmt.Fprintln(a.stdout, "✔", msg) }

	if err := a.cfg.Validate(); err != nil {
		fail("configuration: " + err.Error())
	} else {
		ok(fmt.Sprintf("mode=%s log_dir=%s log_level=%s", a.cfg.CheckMode(), a.cfg.LogDir, a.cfg.LogLevel))
	}

	kind := "datagram"
	if a.cfg.Privileged {
		kind = "raw"
	}
	switch err := checkSocket(a.cfg.Privileged); {
	case err == nil:
		ok(kind + " ICMP socket available")
	case errors.Is(err, probe.ErrPermissionDenied):
		hint := "run as root or grant CAP_NET_RAW"
		if !a.cfg.Privileged {
			hint = `allow your group in sysctl net.ipv4.ping_group_range`
		}
		fail(fmt.Sprintf("%s ICMP socket refused (%v); %s", kind, err, hint))
	default:
		fail(fmt.Sprintf("%s ICMP socket unavailable: %v", kind, err))
	}

	if failed {
		return errPreflight
	}
	ok("preflight passed")
	return nil
}
