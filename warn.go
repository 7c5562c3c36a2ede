package dispatch

import "log/slog"

// WarnDefault builds a default implementation that logs a warning naming the
// unmatched classes and returns result. It never fails. A nil logger means
// slog.Default() at call time.
//
//	reg.RegisterDefault("rss", dispatch.WarnDefault("rss", logger, math.NaN()))
func WarnDefault(method Method, logger *slog.Logger, result any) Impl {
	return func(x Classed, _ ...any) (any, error) {
		l := logger
		if l == nil {
			l = slog.Default()
		}
		l.Warn("no method for classes, using default",
			"method", method,
			"classes", classesOf(x),
		)
		return result, nil
	}
}
