package errors

import (
	"os"
	"sync"

	"github.com/hashicorp/go-hclog"
)

// LogHandler is an ErrorHandler that writes structured log lines through hclog.
// The zero value logs to stderr at error level.
type LogHandler struct {
	// Verbose adds stack traces to every entry.
	Verbose bool
	// Logger overrides the destination. Nil means a stderr logger named "shard".
	Logger hclog.Logger

	once     sync.Once
	fallback hclog.Logger
}

func (h *LogHandler) logger() hclog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	h.once.Do(func() {
		h.fallback = hclog.New(&hclog.LoggerOptions{
			Name:   "shard",
			Level:  hclog.Error,
			Output: os.Stderr,
		})
	})
	return h.fallback
}

// HandleError logs a ShardError.
func (h *LogHandler) HandleError(err *ShardError) {
	if err == nil {
		return
	}
	args := []any{"op", err.Op, "kind", err.Kind.String(), "error", err.Err}
	if h.Verbose && err.StackTrace != "" {
		args = append(args, "stack", err.StackTrace)
	}
	h.logger().Error("engine error", args...)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	args := []any{"value", err.Value}
	if err.Op != "" {
		args = append(args, "op", err.Op)
	}
	if h.Verbose && err.StackTrace != "" {
		args = append(args, "stack", err.StackTrace)
	}
	h.logger().Error("recovered panic", args...)
}
