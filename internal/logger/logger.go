package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// Log is replaced by Init. Until then it discards everything.
var Log = zap.NewNop()

func Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl

	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	Log = l
	return nil
}

func Sync() {
	_ = Log.Sync()
}
