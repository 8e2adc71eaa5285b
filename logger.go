package fletch

// Logger receives the builder's diagnostic output. The builder only ever
// logs best-effort degradations, such as a rejected base URL or a body that
// failed to encode, and only at Debug level, so a no-op logger is a
// perfectly good default.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field is one structured key/value attached to a log line.
type Field struct {
	Key   string
	Value any
}

type nopLogger struct{}

func (nopLogger) Debug(msg string, fields ...Field) {}
func (nopLogger) Info(msg string, fields ...Field)  {}
func (nopLogger) Warn(msg string, fields ...Field)  {}
func (nopLogger) Error(msg string, fields ...Field) {}

// NewNopLogger returns a Logger that discards everything.
func NewNopLogger() Logger {
	return nopLogger{}
}
