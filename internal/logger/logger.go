package logger

import (
	"sync"
)

// Logger is the logging surface used across the model packages. Messages
// carry a component tag so batch runs can be filtered per model.
type Logger interface {
	Debug(component, message string, fields map[string]interface{})
	Info(component, message string, fields map[string]interface{})
	Warning(component, message string, fields map[string]interface{})
	Error(component string, err error, fields map[string]interface{})
}

var (
	defaultMu     sync.RWMutex
	defaultLogger Logger = NewConsoleLogger(WarnLevel)
)

// SetDefault replaces the process-wide logger. Passing nil restores a
// console logger at warn level.
func SetDefault(l Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if l == nil {
		l = NewConsoleLogger(WarnLevel)
	}
	defaultLogger = l
}

func Default() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}
