package threads

import (
	"fmt"
	"runtime"
	"syscall"

	"github.com/go-errors/errors"
	"github.com/petermattis/goid"
	"github.com/sirupsen/logrus"
)

// fatal reports misuse of a synchronization primitive and ends the process
// through the logger's ExitFunc. It never returns.
func fatal(action string, code syscall.Errno) {
	file, line, function := "?", 0, "?"
	if pc, f, l, ok := runtime.Caller(2); ok {
		file, line = f, l
		if fn := runtime.FuncForPC(pc); fn != nil {
			function = fn.Name()
		}
	}
	tid := gettid()

	log().WithFields(logrus.Fields{
		"action":    action,
		"code":      int(code),
		"error":     code.Error(),
		"thread":    tid,
		"goroutine": goid.Get(),
		"file":      file,
		"line":      line,
		"function":  function,
		"stack":     string(errors.Wrap(code, 2).Stack()),
	}).Fatalf("fatal error %s (%d) in thread %d at %s:%d in %s\n Error message: %s",
		action, int(code), tid, file, line, function, code.Error())

	// ExitFunc may have been replaced by something that returns
	panic(fmt.Sprintf("threads: fatal error %s: %s", action, code.Error()))
}
