package errors

import (
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// handler holds the ErrorHandler that Report and ReportPanic deliver to.
var handler atomic.Pointer[ErrorHandler]

// SetHandler installs the process-wide error handler. Nil restores a
// non-verbose LogHandler.
func SetHandler(h ErrorHandler) {
	if h == nil {
		h = &LogHandler{}
	}
	handler.Store(&h)
}

// CurrentHandler returns the installed error handler.
func CurrentHandler() ErrorHandler {
	if h := handler.Load(); h != nil {
		return *h
	}
	SetHandler(nil)
	return *handler.Load()
}

// Report delivers err to the installed handler, stamping the time if unset.
func Report(err *ShardError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	CurrentHandler().HandleError(err)
}

// ReportError wraps err with op and kind and reports it with the caller's
// stack. A nil err is ignored.
func ReportError(op string, kind ErrorKind, err error) {
	if err == nil {
		return
	}
	Report(&ShardError{Op: op, Kind: kind, Err: err, StackTrace: CaptureStack()})
}

// ReportPanic delivers a recovered panic to the installed handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	CurrentHandler().HandlePanic(err)
}

// Recover reports a panic in progress and stops it. Use it directly in a
// defer statement:
//
//	defer errors.Recover("shard.Surface.Load")
func Recover(op string) {
	if r := recover(); r != nil {
		reportRecovered(op, r)
	}
}

// RecoverWithCallback is Recover followed by callback(r), so the caller can
// reset state after a panic.
func RecoverWithCallback(op string, callback func(r any)) {
	if r := recover(); r != nil {
		reportRecovered(op, r)
		if callback != nil {
			callback(r)
		}
	}
}

func reportRecovered(op string, r any) {
	ReportPanic(&PanicError{Op: op, Value: r, StackTrace: CaptureStack()})
}

// CaptureStack formats the stack of its caller's caller, one
// "function\n\tfile:line" entry per frame.
func CaptureStack() string {
	var pcs [32]uintptr
	n := runtime.Callers(3, pcs[:])
	if n == 0 {
		return ""
	}
	var sb strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		sb.WriteString(f.Function)
		sb.WriteString("\n\t")
		sb.WriteString(f.File)
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(f.Line))
		sb.WriteByte('\n')
		if !more {
			return sb.String()
		}
	}
}
