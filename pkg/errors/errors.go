// Package errors provides structured error handling for the shard engine.
//
// Errors that have a caller (building a tree from a document, looking up a
// kind) are returned. Errors that happen asynchronously, such as a failed
// image load or a panic inside an action handler, have no caller and are
// sent to the global ErrorHandler instead.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindSchema indicates a props value that does not match what a kind expects.
	KindSchema
	// KindUnknownKind indicates a node kind with no registered factory.
	KindUnknownKind
	// KindLoad indicates an asynchronous content load failure.
	KindLoad
	// KindLayout indicates a failure while measuring or placing nodes.
	KindLayout
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindPlatform indicates a native view or UI loop error.
	KindPlatform
)

func (k ErrorKind) String() string {
	switch k {
	case KindSchema:
		return "schema"
	case KindUnknownKind:
		return "unknown-kind"
	case KindLoad:
		return "load"
	case KindLayout:
		return "layout"
	case KindPanic:
		return "panic"
	case KindPlatform:
		return "platform"
	default:
		return "unknown"
	}
}

// ShardError represents a structured error reported by the engine.
type ShardError struct {
	// Op is the operation that failed (e.g., "shadow.image.load").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *ShardError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ShardError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "shard.Surface.dispatch").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// SchemaError reports a props value that a kind cannot accept.
// Missing required keys leave Got nil and set Missing.
type SchemaError struct {
	// Kind is the node kind whose props were being read.
	Kind string
	// Key is the props key (dotted for nested objects, e.g. "layout.width").
	Key string
	// Got is a short rendering of the offending value.
	Got string
	// Missing is set when a required key was absent or null.
	Missing bool
	// Reason optionally narrows down what was expected.
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Missing {
		return fmt.Sprintf("%s: missing required %s", e.Kind, e.Key)
	}
	msg := fmt.Sprintf("%s: unexpected value for %s: %s", e.Kind, e.Key, e.Got)
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	return msg
}

// UnknownKindError is returned when no factory is registered for a kind.
type UnknownKindError struct {
	Kind string
	// Suggestion is the closest registered kind, if any is close enough.
	Suggestion string
}

func (e *UnknownKindError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown kind %q (did you mean %q?)", e.Kind, e.Suggestion)
	}
	return fmt.Sprintf("unknown kind %q", e.Kind)
}

// ErrorHandler receives errors reported by the engine.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *ShardError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
