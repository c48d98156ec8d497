package utils

import (
	"runtime/debug"

	"github.com/sirupsen/logrus"
)

// SafeGo runs fn in a goroutine and logs any panic instead of crashing the process.
func SafeGo(log logrus.FieldLogger, fn func()) {
	go func() {
		defer Recover(log)
		fn()
	}()
}

// Recover logs a recovered panic. Use with defer.
func Recover(log logrus.FieldLogger) {
	if r := recover(); r != nil {
		log.WithField("stack", string(debug.Stack())).Errorf("panic in background job: %v", r)
	}
}
