package calltimer

import (
	"context"
	"log/slog"
	"time"
)

// LogObserver logs each timed call with the same record Track writes.
type LogObserver struct {
	logger *slog.Logger
	level  slog.Level
}

func NewLogObserver(logger *slog.Logger, level slog.Level) *LogObserver {
	if logger == nil {
		logger = slog.Default()
	}

	return &LogObserver{logger: logger, level: level}
}

func (o *LogObserver) Observe(label string, elapsed time.Duration) {
	o.logger.With("method", label).With("duration", elapsed).Log(context.Background(), o.level, "timings")
}
