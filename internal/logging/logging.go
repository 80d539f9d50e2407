// Package logging builds the zap logger used for diagnostics. Logs go to
// stderr so they never mix with exported data on stdout.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvLevel names the environment variable that sets the log level.
const EnvLevel = "WF_LOG_LEVEL"

// New returns a console logger writing to w at the given level.
// An empty level disables logging entirely.
func New(w io.Writer, level string) (*zap.Logger, error) {
	if strings.TrimSpace(level) == "" {
		return zap.NewNop(), nil
	}

	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(w),
		lvl,
	)
	return zap.New(core), nil
}

// ResolveLevel picks the effective level: --verbose forces debug, otherwise
// $WF_LOG_LEVEL, otherwise disabled.
func ResolveLevel(verbose bool) string {
	if verbose {
		return "debug"
	}
	return os.Getenv(EnvLevel)
}
