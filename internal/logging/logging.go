package logging

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const DefaultLevel = "warn"

// New builds a JSON production logger at level, or at debug when verbose is
// set. Output goes to w, or to stderr when w is nil.
func New(level string, verbose bool, w io.Writer) (*zap.Logger, error) {
	config := zap.NewProductionConfig()

	if strings.TrimSpace(level) == "" {
		level = DefaultLevel
	}
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	if verbose {
		parsed = zapcore.DebugLevel
	}
	config.Level = zap.NewAtomicLevelAt(parsed)

	if w == nil {
		logger, err := config.Build()
		if err != nil {
			return nil, fmt.Errorf("build logger: %w", err)
		}
		return logger, nil
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(config.EncoderConfig), zapcore.AddSync(w), config.Level)
	return zap.New(core), nil
}
