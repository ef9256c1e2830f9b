package calltimer

import (
	"context"
	"log/slog"
	"runtime"
	"strings"
	"time"
)

// Track logs the time since start under the name of the function it was
// deferred from:
//
//	defer calltimer.Track(time.Now())
func Track(start time.Time) {
	ctx := context.Background()
	elapsed := time.Since(start)

	slog.With("method", callerName(3)).With("duration", elapsed).DebugContext(ctx, "timings")
}

// callerName skips runtime frames so deferred calls resolve to the deferring function.
func callerName(skip int) string {
	pc := make([]uintptr, 10) // at least 1 entry needed
	n := runtime.Callers(skip, pc)
	frames := runtime.CallersFrames(pc[:n])

	for {
		frame, more := frames.Next()
		if frame.Function != "" && !strings.HasPrefix(frame.Function, "runtime.") {
			return shortName(frame.Function)
		}

		if !more {
			return ""
		}
	}
}
