package port

// Fields is a set of structured attributes attached to a log entry.
type Fields map[string]interface{}

// LoggerPort is the logging contract the core depends on. Concrete
// adapters (slog, fluent-bit, multilogger) live in internal/adapters/logger.
type LoggerPort interface {
	Info(msg string, fields Fields)

	Warn(msg string, fields Fields)

	Error(msg string, err error, fields Fields)

	Debug(msg string, fields Fields)

	// WithFields returns a derived logger that includes the given fields
	// in every subsequent entry.
	WithFields(fields Fields) LoggerPort
}
