package logger

// MultiLogger forwards every message to each of its loggers.
type MultiLogger []Logger

// Enabled reports whether any underlying logger accepts level.
func (m MultiLogger) Enabled(level Level) bool {
	for _, l := range m {
		if l.Enabled(level) {
			return true
		}
	}
	return false
}

// Debugf logs at DEBUG.
func (m MultiLogger) Debugf(format string, args ...any) {
	for _, l := range m {
		l.Debugf(format, args...)
	}
}

// Infof logs at INFO.
func (m MultiLogger) Infof(format string, args ...any) {
	for _, l := range m {
		l.Infof(format, args...)
	}
}

// Warnf logs at WARN.
func (m MultiLogger) Warnf(format string, args ...any) {
	for _, l := range m {
		l.Warnf(format, args...)
	}
}

// Errorf logs at ERROR.
func (m MultiLogger) Errorf(format string, args ...any) {
	for _, l := range m {
		l.Errorf(format, args...)
	}
}

// Criticalf logs at CRITICAL.
func (m MultiLogger) Criticalf(format string, args ...any) {
	for _, l := range m {
		l.Criticalf(format, args...)
	}
}

// NopLogger discards all messages.
type NopLogger struct{}

func (NopLogger) Enabled(Level) bool { return false }
func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any) {}
func (NopLogger) Warnf(string, ...any) {}
func (NopLogger) Errorf(string, ...any) {}
func (NopLogger) Criticalf(string, ...any) {}
