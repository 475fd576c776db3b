package core

// Fields are extra key/values attached to a log entry.
type Fields map[string]interface{}

// Logger is implemented by the logging services.
// expected args: error | Fields | anything printable
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
