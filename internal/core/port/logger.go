package port

// Fields - произвольные структурированные поля лога.
type Fields map[string]interface{}

// LoggerPort - абстракция логгера для ядра. Реализации: slog (stdout),
// fluent-bit, композитный мультилоггер.
type LoggerPort interface {
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	Error(msg string, err error, fields Fields)
	Debug(msg string, fields Fields)
	WithFields(fields Fields) LoggerPort
}
