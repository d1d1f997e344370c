package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"

	"github.com/hamed0406/pingcheck/internal/domain"
)

// DefaultTargets are the public DNS resolvers probed on every run.
var DefaultTargets = []string{
	"1.1.1.1",
	"8.8.8.8",
}

type Config struct {
	LogDir     string // logs directory
	LogLevel   string // zap level name: debug, info, warn, error
	Mode       string // "concurrent" or "sequential"
	Privileged bool   // raw ICMP sockets; false uses datagram ICMP
}

func FromEnv() Config {
	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}

	logLevel := strings.TrimSpace(os.Getenv("LOG_LEVEL"))
	if logLevel == "" {
		logLevel = "info"
	}

	mode := strings.TrimSpace(os.Getenv("CHECK_MODE"))
	if mode == "" {
		mode = string(domain.ModeConcurrent)
	}

	// Raw sockets by default; unparsable values keep the default.
	privileged := true
	if v := os.Getenv("PING_PRIVILEGED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			privileged = b
		}
	}

	return Config{
		LogDir:     logDir,
		LogLevel:   logLevel,
		Mode:       mode,
		Privileged: privileged,
	}
}

// Targets returns a copy of the fixed target list.
func Targets() []string {
	return append([]string(nil), DefaultTargets...)
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var err error
	if strings.TrimSpace(c.LogDir) == "" {
		err = multierr.Append(err, fmt.Errorf("log dir is empty"))
	}
	if _, lerr := c.Level(); lerr != nil {
		err = multierr.Append(err, lerr)
	}
	if _, merr := domain.ParseMode(c.Mode); merr != nil {
		err = multierr.Append(err, merr)
	}
	return err
}

func (c Config) Level() (zapcore.Level, error) {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("log level: %w", err)
	}
	return lvl, nil
}

func (c Config) CheckMode() domain.Mode {
	m, err := domain.ParseMode(c.Mode)
	if err != nil {
		return domain.ModeConcurrent
	}
	return m
}
