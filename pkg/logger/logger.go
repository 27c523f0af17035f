package logger

// Backend is a destination log messages are dispatched to.
type Backend interface {
	Log(message string, keyvals ...any)
	Debug(message string, keyvals ...any)
	Info(message string, keyvals ...any)
	Warn(message string, keyvals ...any)
	Error(message string, keyvals ...any)
	Fatal(message string, keyvals ...any)
}

var backends []Backend

// Init configures the global logger with one or more backends. Logging
// before Init is called is a no-op.
func Init(b ...Backend) {
	backends = b
}

func each(fn func(Backend)) {
	for _, b := range backends {
		fn(b)
	}
}

// Log writes a message at the default level.
func Log(message string, keyvals ...any) {
	each(func(b Backend) { b.Log(message, keyvals...) })
}

// Debug writes a message at DEBUG level.
func Debug(message string, keyvals ...any) {
	each(func(b Backend) { b.Debug(message, keyvals...) })
}

// Info writes a message at INFO level.
func Info(message string, keyvals ...any) {
	each(func(b Backend) { b.Info(message, keyvals...) })
}

// Warn writes a message at WARN level.
func Warn(message string, keyvals ...any) {
	each(func(b Backend) { b.Warn(message, keyvals...) })
}

// Error writes a message at ERROR level.
func Error(message string, keyvals ...any) {
	each(func(b Backend) { b.Error(message, keyvals...) })
}

// Fatal writes a message at FATAL level and terminates the program.
func Fatal(message string, keyvals ...any) {
	each(func(b Backend) { b.Fatal(message, keyvals...) })
}
