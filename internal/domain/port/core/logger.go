package core

// LogLevel represents logging severity
type LogLevel int

const (
	// LogLevelDebug for per-operation detail
	LogLevelDebug LogLevel = iota
	// LogLevelInfo for normal operational events
	LogLevelInfo
	// LogLevelWarn for recoverable anomalies
	LogLevelWarn
	// LogLevelError for failures
	LogLevelError
)

// Logger is the structured logging port used across the domain layer.
// Fields carry structured context and may be nil.
type Logger interface {
	// SetLevel sets the minimum level that will be emitted
	SetLevel(level LogLevel)
	// GetLevel returns the current minimum level
	GetLevel() LogLevel
	// Debug logs at debug level
	Debug(message string, fields map[string]any)
	// Info logs at info level
	Info(message string, fields map[string]any)
	// Warn logs at warn level
	Warn(message string, fields map[string]any)
	// Error logs at error level
	Error(message string, fields map[string]any)
	// Flush writes any buffered entries before shutdown
	Flush() error
}
